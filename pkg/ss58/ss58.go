/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package ss58 implements the SS58 address codec for the KILT network prefix.
package ss58

import (
	"bytes"

	"github.com/btcsuite/btcutil/base58"
	"github.com/pkg/errors"
	"golang.org/x/crypto/blake2b"
)

// NetworkPrefix is the registered SS58 prefix of the KILT network.
const NetworkPrefix = 38

// PublicKeySize is the raw key length encoded into an address.
const PublicKeySize = 32

const checksumSize = 2

var checksumPreimage = []byte("SS58PRE")

// Encode returns the SS58 address for the given 32-byte public key.
func Encode(publicKey []byte) (string, error) {
	if len(publicKey) != PublicKeySize {
		return "", errors.Errorf("invalid public key length: %d", len(publicKey))
	}

	payload := append([]byte{NetworkPrefix}, publicKey...)

	return base58.Encode(append(payload, checksum(payload)...)), nil
}

// Decode validates an SS58 address and returns the public key it encodes.
func Decode(address string) ([]byte, error) {
	decoded := base58.Decode(address)

	if len(decoded) != 1+PublicKeySize+checksumSize {
		return nil, errors.Errorf("invalid address length: %d", len(decoded))
	}

	if decoded[0] != NetworkPrefix {
		return nil, errors.Errorf("invalid network prefix: %d", decoded[0])
	}

	payload := decoded[:1+PublicKeySize]
	if !bytes.Equal(decoded[1+PublicKeySize:], checksum(payload)) {
		return nil, errors.New("invalid address checksum")
	}

	return decoded[1 : 1+PublicKeySize], nil
}

// Validate checks that an address is a well-formed KILT SS58 address.
func Validate(address string) error {
	_, err := Decode(address)

	return err
}

func checksum(payload []byte) []byte {
	h := blake2b.Sum512(append(checksumPreimage, payload...))

	return h[:checksumSize]
}

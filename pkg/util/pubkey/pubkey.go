/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package pubkey validates raw public key material and exports it in JWK
// format.
package pubkey

import (
	"crypto/ed25519"
	"encoding/base64"

	"github.com/btcsuite/btcd/btcec"
	"github.com/pkg/errors"
	gojose "github.com/square/go-jose/v3"
	"github.com/square/go-jose/v3/json"

	"github.com/trustbloc/kilt-core-go/pkg/document"
)

const (
	secp256k1Crv = "secp256k1"
	secp256k1Kty = "EC"

	okpKty    = "OKP"
	x25519Crv = "X25519"

	rawKeySize = 32
)

// JWK is a public key in JSON Web Key format.
type JWK struct {
	Kty string `json:"kty"`
	Crv string `json:"crv"`
	X   string `json:"x"`
	Y   string `json:"y,omitempty"`
}

// Validate checks that the raw key material is well formed for the given key
// type.
func Validate(keyType string, publicKey []byte) error {
	switch keyType {
	case document.Ed25519KeyType, document.Sr25519KeyType, document.X25519KeyType:
		if len(publicKey) != rawKeySize {
			return errors.Errorf("invalid %s public key length: %d", keyType, len(publicKey))
		}
	case document.EcdsaKeyType:
		if _, err := btcec.ParsePubKey(publicKey, btcec.S256()); err != nil {
			return errors.Wrap(err, "invalid ecdsa public key")
		}
	default:
		return errors.Errorf("unsupported key type: %s", keyType)
	}

	return nil
}

// GetPublicKeyJWK returns the public key in JWK format. sr25519 keys have no
// registered JWK representation.
func GetPublicKeyJWK(keyType string, publicKey []byte) (*JWK, error) {
	if err := Validate(keyType, publicKey); err != nil {
		return nil, err
	}

	switch keyType {
	case document.Ed25519KeyType:
		return ed25519JWK(publicKey)
	case document.X25519KeyType:
		return &JWK{Kty: okpKty, Crv: x25519Crv, X: encodeCoordinate(publicKey)}, nil
	case document.EcdsaKeyType:
		return secp256k1JWK(publicKey)
	default:
		return nil, errors.Errorf("no JWK representation for key type: %s", keyType)
	}
}

func ed25519JWK(publicKey []byte) (*JWK, error) {
	joseJWK := gojose.JSONWebKey{Key: ed25519.PublicKey(publicKey)}

	jsonJWK, err := joseJWK.MarshalJSON()
	if err != nil {
		return nil, err
	}

	var jwk JWK
	if err := json.Unmarshal(jsonJWK, &jwk); err != nil {
		return nil, err
	}

	return &jwk, nil
}

// gojose doesn't handle the secp256k1 curve so the coordinates are encoded
// directly.
func secp256k1JWK(publicKey []byte) (*JWK, error) {
	key, err := btcec.ParsePubKey(publicKey, btcec.S256())
	if err != nil {
		return nil, err
	}

	ecdsaKey := key.ToECDSA()

	return &JWK{
		Kty: secp256k1Kty,
		Crv: secp256k1Crv,
		X:   encodeCoordinate(ecdsaKey.X.FillBytes(make([]byte, rawKeySize))),
		Y:   encodeCoordinate(ecdsaKey.Y.FillBytes(make([]byte, rawKeySize))),
	}, nil
}

func encodeCoordinate(data []byte) string {
	return base64.RawURLEncoding.EncodeToString(data)
}

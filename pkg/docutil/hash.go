/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package docutil

import (
	"fmt"
	"hash"

	"github.com/multiformats/go-multihash"
	"golang.org/x/crypto/blake2b"
)

// Blake2b256Code is the multihash code for blake2b with a 256-bit digest.
const Blake2b256Code = uint(multihash.BLAKE2B_MIN + 31)

// ComputeMultihash will compute the hash for the supplied bytes using multihash code.
func ComputeMultihash(multihashCode uint, bytes []byte) ([]byte, error) {
	h, err := GetHash(multihashCode)
	if err != nil {
		return nil, err
	}

	if _, hashErr := h.Write(bytes); hashErr != nil {
		return nil, hashErr
	}

	return multihash.Encode(h.Sum(nil), uint64(multihashCode))
}

// GetHash will return hash based on specified multihash code.
func GetHash(multihashCode uint) (h hash.Hash, err error) {
	switch multihashCode {
	case Blake2b256Code:
		h, err = blake2b.New256(nil)
	default:
		err = fmt.Errorf("algorithm not supported, unable to compute hash")
	}

	return h, err
}

// IsComputedUsingMultihashAlgorithm checks that the given multihash has been
// computed with the given code.
func IsComputedUsingMultihashAlgorithm(mh []byte, code uint64) bool {
	decoded, err := multihash.Decode(mh)
	if err != nil {
		return false
	}

	return decoded.Code == code
}

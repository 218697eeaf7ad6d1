/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package encoder

import "github.com/multiformats/go-multibase"

// EncodeToString encodes the bytes as a self-describing base58btc string.
func EncodeToString(data []byte) string {
	// base58btc encoding of arbitrary bytes cannot fail
	encoded, _ := multibase.Encode(multibase.Base58BTC, data)

	return encoded
}

// DecodeString decodes the multibase-encoded content to bytes.
func DecodeString(encodedContent string) ([]byte, error) {
	_, data, err := multibase.Decode(encodedContent)

	return data, err
}

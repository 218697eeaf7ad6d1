/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package pubkey

import (
	"bytes"
	"crypto/ed25519"
	"crypto/rand"
	"testing"

	"github.com/btcsuite/btcd/btcec"
	"github.com/stretchr/testify/require"

	"github.com/trustbloc/kilt-core-go/pkg/document"
)

func TestValidate(t *testing.T) {
	raw := bytes.Repeat([]byte{1}, 32)

	t.Run("success", func(t *testing.T) {
		require.NoError(t, Validate(document.Ed25519KeyType, raw))
		require.NoError(t, Validate(document.Sr25519KeyType, raw))
		require.NoError(t, Validate(document.X25519KeyType, raw))

		key, err := btcec.NewPrivateKey(btcec.S256())
		require.NoError(t, err)
		require.NoError(t, Validate(document.EcdsaKeyType, key.PubKey().SerializeCompressed()))
	})

	t.Run("error - wrong length", func(t *testing.T) {
		err := Validate(document.Ed25519KeyType, raw[:16])
		require.Error(t, err)
		require.Contains(t, err.Error(), "invalid ed25519 public key length")
	})

	t.Run("error - not a curve point", func(t *testing.T) {
		err := Validate(document.EcdsaKeyType, append([]byte{0x05}, bytes.Repeat([]byte{2}, 32)...))
		require.Error(t, err)
		require.Contains(t, err.Error(), "invalid ecdsa public key")
	})

	t.Run("error - unsupported type", func(t *testing.T) {
		err := Validate("rsa", raw)
		require.Error(t, err)
		require.Contains(t, err.Error(), "unsupported key type")
	})
}

func TestGetPublicKeyJWK(t *testing.T) {
	t.Run("ed25519", func(t *testing.T) {
		publicKey, _, err := ed25519.GenerateKey(rand.Reader)
		require.NoError(t, err)

		jwk, err := GetPublicKeyJWK(document.Ed25519KeyType, publicKey)
		require.NoError(t, err)
		require.Equal(t, "OKP", jwk.Kty)
		require.Equal(t, "Ed25519", jwk.Crv)
		require.NotEmpty(t, jwk.X)
		require.Empty(t, jwk.Y)
	})

	t.Run("x25519", func(t *testing.T) {
		jwk, err := GetPublicKeyJWK(document.X25519KeyType, bytes.Repeat([]byte{9}, 32))
		require.NoError(t, err)
		require.Equal(t, "OKP", jwk.Kty)
		require.Equal(t, "X25519", jwk.Crv)
		require.NotEmpty(t, jwk.X)
	})

	t.Run("secp256k1", func(t *testing.T) {
		key, err := btcec.NewPrivateKey(btcec.S256())
		require.NoError(t, err)

		jwk, err := GetPublicKeyJWK(document.EcdsaKeyType, key.PubKey().SerializeCompressed())
		require.NoError(t, err)
		require.Equal(t, "EC", jwk.Kty)
		require.Equal(t, "secp256k1", jwk.Crv)
		require.NotEmpty(t, jwk.X)
		require.NotEmpty(t, jwk.Y)
	})

	t.Run("error - sr25519 has no JWK representation", func(t *testing.T) {
		_, err := GetPublicKeyJWK(document.Sr25519KeyType, bytes.Repeat([]byte{9}, 32))
		require.Error(t, err)
		require.Contains(t, err.Error(), "no JWK representation")
	})

	t.Run("error - invalid key", func(t *testing.T) {
		_, err := GetPublicKeyJWK(document.Ed25519KeyType, []byte{1})
		require.Error(t, err)
	})
}

/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package document provides the typed DID document model produced by light
// DID creation and by resolution of on-chain DIDs.
package document

import (
	"github.com/btcsuite/btcutil/base58"
	"github.com/pkg/errors"
)

// Key type identifiers used throughout the library.
const (
	// Ed25519KeyType is an ed25519 signing key.
	Ed25519KeyType = "ed25519"

	// Sr25519KeyType is an sr25519 signing key.
	Sr25519KeyType = "sr25519"

	// EcdsaKeyType is a secp256k1 signing key.
	EcdsaKeyType = "ecdsa"

	// X25519KeyType is an x25519 encryption key.
	X25519KeyType = "x25519"
)

// Verification method suite names.
const (
	Ed25519VerificationKey2018        = "Ed25519VerificationKey2018"
	Sr25519VerificationKey2020        = "Sr25519VerificationKey2020"
	EcdsaSecp256k1VerificationKey2019 = "EcdsaSecp256k1VerificationKey2019"
	X25519KeyAgreementKey2019         = "X25519KeyAgreementKey2019"
)

// Contexts injected into the JSON-LD representation.
const (
	// DIDContext is the core W3C DID context.
	DIDContext = "https://www.w3.org/ns/did/v1"

	// KiltContext is the kilt method context.
	KiltContext = "https://www.kilt.io/contexts/did/v1"
)

// Reserved light DID fragments.
const (
	// AuthenticationFragment identifies the light DID authentication key.
	AuthenticationFragment = "#authentication"

	// EncryptionFragment identifies the light DID key agreement key.
	EncryptionFragment = "#encryption"
)

var suiteByKeyType = map[string]string{
	Ed25519KeyType: Ed25519VerificationKey2018,
	Sr25519KeyType: Sr25519VerificationKey2020,
	EcdsaKeyType:   EcdsaSecp256k1VerificationKey2019,
	X25519KeyType:  X25519KeyAgreementKey2019,
}

var keyTypeBySuite = map[string]string{
	Ed25519VerificationKey2018:        Ed25519KeyType,
	Sr25519VerificationKey2020:        Sr25519KeyType,
	EcdsaSecp256k1VerificationKey2019: EcdsaKeyType,
	X25519KeyAgreementKey2019:         X25519KeyType,
}

// Document is a W3C DID document. Verification relationships reference
// verification methods by their full DID URL.
type Document struct {
	Context              []string             `json:"@context,omitempty"`
	ID                   string               `json:"id"`
	AlsoKnownAs          []string             `json:"alsoKnownAs,omitempty"`
	VerificationMethod   []VerificationMethod `json:"verificationMethod,omitempty"`
	Authentication       []string             `json:"authentication,omitempty"`
	AssertionMethod      []string             `json:"assertionMethod,omitempty"`
	KeyAgreement         []string             `json:"keyAgreement,omitempty"`
	CapabilityDelegation []string             `json:"capabilityDelegation,omitempty"`
	Service              []Service            `json:"service,omitempty"`
}

// VerificationMethod binds a key to the document under a fragment identifier.
type VerificationMethod struct {
	ID              string `json:"id"`
	Controller      string `json:"controller"`
	Type            string `json:"type"`
	PublicKeyBase58 string `json:"publicKeyBase58"`
}

// Service represents any type of service the entity wishes to advertise.
type Service struct {
	ID              string   `json:"id"`
	Type            []string `json:"type"`
	ServiceEndpoint []string `json:"serviceEndpoint"`
}

// NewVerificationMethod creates a verification method for raw key material of
// the given key type.
func NewVerificationMethod(id, controller, keyType string, publicKey []byte) (VerificationMethod, error) {
	suite, ok := suiteByKeyType[keyType]
	if !ok {
		return VerificationMethod{}, errors.Errorf("unsupported key type: %s", keyType)
	}

	return VerificationMethod{
		ID:              id,
		Controller:      controller,
		Type:            suite,
		PublicKeyBase58: base58.Encode(publicKey),
	}, nil
}

// KeyType returns the key type identifier for the verification method suite.
func (vm *VerificationMethod) KeyType() (string, bool) {
	keyType, ok := keyTypeBySuite[vm.Type]

	return keyType, ok
}

// RawPublicKey returns the decoded key material.
func (vm *VerificationMethod) RawPublicKey() []byte {
	return base58.Decode(vm.PublicKeyBase58)
}

// FindVerificationMethod returns the verification method with the given DID
// URL, or nil.
func (doc *Document) FindVerificationMethod(id string) *VerificationMethod {
	for i := range doc.VerificationMethod {
		if doc.VerificationMethod[i].ID == id {
			return &doc.VerificationMethod[i]
		}
	}

	return nil
}

// FindService returns the service with the given DID URL, or nil.
func (doc *Document) FindService(id string) *Service {
	for i := range doc.Service {
		if doc.Service[i].ID == id {
			return &doc.Service[i]
		}
	}

	return nil
}

// WithContext returns a shallow copy of the document carrying the JSON-LD
// contexts for this method.
func (doc *Document) WithContext() *Document {
	withCtx := *doc
	withCtx.Context = []string{DIDContext, KiltContext}

	return &withCtx
}

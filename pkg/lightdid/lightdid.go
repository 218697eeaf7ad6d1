/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package lightdid implements the self-certifying light DID variant: the
// entire document is derived from an authentication key and optional
// auxiliary data carried inside the URI, with no chain lookup.
package lightdid

import (
	"strings"

	"github.com/fxamacker/cbor/v2"
	"github.com/pkg/errors"

	"github.com/trustbloc/kilt-core-go/pkg/did"
	"github.com/trustbloc/kilt-core-go/pkg/document"
	"github.com/trustbloc/kilt-core-go/pkg/encoder"
	"github.com/trustbloc/kilt-core-go/pkg/ss58"
	"github.com/trustbloc/kilt-core-go/pkg/util/pubkey"
)

// ErrUnsupportedKey is returned for key types a light DID cannot carry.
var ErrUnsupportedKey = errors.New("unsupported key type")

// ErrInvalidLightDid is returned when a URI cannot be decoded into a light
// DID document.
var ErrInvalidLightDid = errors.New("invalid light DID")

// serializationVersion is the version byte prefixed to the encoded details
// blob. Only version 0 exists.
const serializationVersion = 0x00

var authKeyCodeByType = map[string]string{
	document.Sr25519KeyType: "00",
	document.Ed25519KeyType: "01",
}

var authKeyTypeByCode = map[string]string{
	"00": document.Sr25519KeyType,
	"01": document.Ed25519KeyType,
}

// cbor encoding is canonical so that equal inputs produce equal URIs
var encMode, _ = cbor.CanonicalEncOptions().EncMode()

// Key is raw public key material with its key type.
type Key struct {
	Type      string
	PublicKey []byte
}

// CreateInput describes a light DID document to be created.
type CreateInput struct {
	Authentication Key
	KeyAgreement   *Key
	Service        []document.Service
}

type keyDetails struct {
	Type      string `cbor:"type"`
	PublicKey []byte `cbor:"publicKey"`
}

type serviceDetails struct {
	ID              string   `cbor:"id"`
	Type            []string `cbor:"type"`
	ServiceEndpoint []string `cbor:"serviceEndpoint"`
}

type lightDidDetails struct {
	KeyAgreement *keyDetails      `cbor:"keyAgreement,omitempty"`
	Service      []serviceDetails `cbor:"service,omitempty"`
}

// NewDocument derives a light DID URI from the input and returns the
// document for it. The document always has exactly one authentication
// verification method at #authentication; the key agreement key, if any, is
// at #encryption.
func NewDocument(input CreateInput) (*document.Document, error) {
	authCode, ok := authKeyCodeByType[input.Authentication.Type]
	if !ok {
		return nil, errors.Wrapf(ErrUnsupportedKey, "%s cannot be a light DID authentication key",
			input.Authentication.Type)
	}

	if err := pubkey.Validate(input.Authentication.Type, input.Authentication.PublicKey); err != nil {
		return nil, err
	}

	if input.KeyAgreement != nil {
		if input.KeyAgreement.Type != document.X25519KeyType {
			return nil, errors.Wrapf(ErrUnsupportedKey, "%s is not an encryption key type",
				input.KeyAgreement.Type)
		}

		if err := pubkey.Validate(input.KeyAgreement.Type, input.KeyAgreement.PublicKey); err != nil {
			return nil, err
		}
	}

	if err := validateServices(input.Service); err != nil {
		return nil, err
	}

	address, err := ss58.Encode(input.Authentication.PublicKey)
	if err != nil {
		return nil, err
	}

	encodedDetails, err := serializeDetails(input.KeyAgreement, input.Service)
	if err != nil {
		return nil, err
	}

	uri := did.LightUri(authCode, address, encodedDetails)

	return buildDocument(uri, input.Authentication, input.KeyAgreement, input.Service)
}

// DocumentFromUri is the inverse of NewDocument: it reconstructs the full
// light DID document from the URI alone. When allowFragment is false a DID
// URL carrying a fragment is rejected.
func DocumentFromUri(uri string, allowFragment bool) (*document.Document, error) {
	parsed, err := did.Parse(uri)
	if err != nil {
		return nil, errors.Wrap(ErrInvalidLightDid, err.Error())
	}

	if parsed.Type != did.LightType {
		return nil, errors.Wrapf(ErrInvalidLightDid, "not a light DID: %s", uri)
	}

	if !allowFragment && parsed.Fragment != "" {
		return nil, errors.Wrapf(ErrInvalidLightDid, "DID URL with fragment not allowed: %s", uri)
	}

	authKeyType, ok := authKeyTypeByCode[parsed.AuthKeyTypeEncoding]
	if !ok {
		return nil, errors.Wrapf(ErrInvalidLightDid, "unrecognized key type encoding: %s",
			parsed.AuthKeyTypeEncoding)
	}

	authKey, err := ss58.Decode(parsed.Address)
	if err != nil {
		return nil, errors.Wrap(ErrInvalidLightDid, err.Error())
	}

	keyAgreement, services, err := deserializeDetails(parsed.EncodedDetails)
	if err != nil {
		return nil, err
	}

	return buildDocument(parsed.Did, Key{Type: authKeyType, PublicKey: authKey}, keyAgreement, services)
}

func validateServices(services []document.Service) error {
	for _, s := range services {
		if s.ID == document.AuthenticationFragment || s.ID == document.EncryptionFragment {
			return errors.Errorf("service ID %s is reserved", s.ID)
		}

		if !strings.HasPrefix(s.ID, "#") {
			return errors.Errorf("service ID must be a fragment: %s", s.ID)
		}
	}

	return nil
}

func serializeDetails(keyAgreement *Key, services []document.Service) (string, error) {
	if keyAgreement == nil && len(services) == 0 {
		return "", nil
	}

	details := lightDidDetails{}

	if keyAgreement != nil {
		details.KeyAgreement = &keyDetails{Type: keyAgreement.Type, PublicKey: keyAgreement.PublicKey}
	}

	for _, s := range services {
		details.Service = append(details.Service, serviceDetails{
			// fragment prefix is implied by the owning DID
			ID:              strings.TrimPrefix(s.ID, "#"),
			Type:            s.Type,
			ServiceEndpoint: s.ServiceEndpoint,
		})
	}

	serialized, err := encMode.Marshal(&details)
	if err != nil {
		return "", errors.Wrap(err, "failed to serialize light DID details")
	}

	return encoder.EncodeToString(append([]byte{serializationVersion}, serialized...)), nil
}

func deserializeDetails(encodedDetails string) (*Key, []document.Service, error) {
	if encodedDetails == "" {
		return nil, nil, nil
	}

	decoded, err := encoder.DecodeString(encodedDetails)
	if err != nil {
		return nil, nil, errors.Wrap(ErrInvalidLightDid, err.Error())
	}

	if len(decoded) == 0 || decoded[0] != serializationVersion {
		return nil, nil, errors.Wrap(ErrInvalidLightDid, "unsupported details serialization version")
	}

	var details lightDidDetails
	if err := cbor.Unmarshal(decoded[1:], &details); err != nil {
		return nil, nil, errors.Wrap(ErrInvalidLightDid, err.Error())
	}

	// decoded details obey the same rules as create input
	var keyAgreement *Key
	if details.KeyAgreement != nil {
		if details.KeyAgreement.Type != document.X25519KeyType {
			return nil, nil, errors.Wrapf(ErrInvalidLightDid, "%s is not an encryption key type",
				details.KeyAgreement.Type)
		}

		if err := pubkey.Validate(details.KeyAgreement.Type, details.KeyAgreement.PublicKey); err != nil {
			return nil, nil, errors.Wrap(ErrInvalidLightDid, err.Error())
		}

		keyAgreement = &Key{Type: details.KeyAgreement.Type, PublicKey: details.KeyAgreement.PublicKey}
	}

	var services []document.Service

	for _, s := range details.Service {
		services = append(services, document.Service{
			ID:              "#" + s.ID,
			Type:            s.Type,
			ServiceEndpoint: s.ServiceEndpoint,
		})
	}

	if err := validateServices(services); err != nil {
		return nil, nil, errors.Wrap(ErrInvalidLightDid, err.Error())
	}

	return keyAgreement, services, nil
}

func buildDocument(uri string, authentication Key, keyAgreement *Key, services []document.Service) (*document.Document, error) {
	authID := uri + document.AuthenticationFragment

	authMethod, err := document.NewVerificationMethod(authID, uri, authentication.Type, authentication.PublicKey)
	if err != nil {
		return nil, err
	}

	doc := &document.Document{
		ID:                 uri,
		VerificationMethod: []document.VerificationMethod{authMethod},
		Authentication:     []string{authID},
	}

	if keyAgreement != nil {
		encID := uri + document.EncryptionFragment

		encMethod, err := document.NewVerificationMethod(encID, uri, keyAgreement.Type, keyAgreement.PublicKey)
		if err != nil {
			return nil, err
		}

		doc.VerificationMethod = append(doc.VerificationMethod, encMethod)
		doc.KeyAgreement = []string{encID}
	}

	for _, s := range services {
		doc.Service = append(doc.Service, document.Service{
			ID:              uri + s.ID,
			Type:            s.Type,
			ServiceEndpoint: s.ServiceEndpoint,
		})
	}

	return doc, nil
}

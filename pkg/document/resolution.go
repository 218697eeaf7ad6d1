/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package document

// Supported representation media types.
const (
	// JSONMediaType is the plain JSON DID document representation.
	JSONMediaType = "application/did+json"

	// JSONLDMediaType is the JSON-LD DID document representation.
	JSONLDMediaType = "application/did+ld+json"

	// CBORMediaType is the CBOR DID document representation.
	CBORMediaType = "application/did+cbor"
)

// Resolution error codes returned in metadata, per the W3C DID resolution
// contract. These are values callers branch on, never Go errors.
const (
	// InvalidDidError indicates a malformed DID.
	InvalidDidError = "invalidDid"

	// InvalidDidURLError indicates a malformed DID URL.
	InvalidDidURLError = "invalidDidUrl"

	// NotFoundError indicates the DID or DID URL fragment does not exist.
	NotFoundError = "notFound"

	// RepresentationNotSupportedError indicates an unsupported accept value.
	RepresentationNotSupportedError = "representationNotSupported"
)

// ResolutionMetadata describes the outcome of the resolution process itself.
type ResolutionMetadata struct {
	Error       string `json:"error,omitempty"`
	ContentType string `json:"contentType,omitempty"`
}

// DocumentMetadata describes the resolved document's lifecycle state.
type DocumentMetadata struct {
	Deactivated bool   `json:"deactivated,omitempty"`
	CanonicalID string `json:"canonicalId,omitempty"`
}

// ResolutionResult describes a resolution result.
type ResolutionResult struct {
	ResolutionMetadata ResolutionMetadata `json:"didResolutionMetadata"`
	DocumentMetadata   DocumentMetadata   `json:"didDocumentMetadata"`
	Document           *Document          `json:"didDocument,omitempty"`
}

// RepresentationResult is a resolution result carrying the document encoded
// in the negotiated representation.
type RepresentationResult struct {
	ResolutionMetadata ResolutionMetadata `json:"didResolutionMetadata"`
	DocumentMetadata   DocumentMetadata   `json:"didDocumentMetadata"`
	DocumentStream     []byte             `json:"didDocumentStream,omitempty"`
}

// DereferencingMetadata describes the outcome of dereferencing a DID URL.
type DereferencingMetadata struct {
	Error       string `json:"error,omitempty"`
	ContentType string `json:"contentType,omitempty"`
}

// DereferenceResult describes a dereferencing result. ContentStream holds the
// dereferenced resource encoded in the negotiated representation.
type DereferenceResult struct {
	DereferencingMetadata DereferencingMetadata `json:"dereferencingMetadata"`
	ContentMetadata       DocumentMetadata      `json:"contentMetadata"`
	ContentStream         []byte                `json:"contentStream,omitempty"`
}

/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package resolver

import (
	"encoding/json"

	"github.com/fxamacker/cbor/v2"
	"github.com/pkg/errors"

	"github.com/trustbloc/kilt-core-go/pkg/document"
)

var cborEncMode, _ = cbor.CanonicalEncOptions().EncMode()

// IsSupportedContentType reports whether the media type is a supported
// document representation.
func IsSupportedContentType(contentType string) bool {
	switch contentType {
	case document.JSONMediaType, document.JSONLDMediaType, document.CBORMediaType:
		return true
	default:
		return false
	}
}

// MarshalDocument encodes the document in the given representation. The
// JSON-LD representation carries the W3C and method contexts; the others
// carry the document without contexts.
func MarshalDocument(doc *document.Document, contentType string) ([]byte, error) {
	switch contentType {
	case document.JSONMediaType:
		return json.Marshal(doc)
	case document.JSONLDMediaType:
		return json.Marshal(doc.WithContext())
	case document.CBORMediaType:
		return cborEncMode.Marshal(doc)
	default:
		return nil, errors.Errorf("unsupported media type: %s", contentType)
	}
}

// MarshalContent encodes a dereferenced document fragment (a verification
// method or a service endpoint) in the given representation. Fragment objects
// have no standalone JSON-LD context, so both JSON representations are
// identical.
func MarshalContent(content interface{}, contentType string) ([]byte, error) {
	switch contentType {
	case document.JSONMediaType, document.JSONLDMediaType:
		return json.Marshal(content)
	case document.CBORMediaType:
		return cborEncMode.Marshal(content)
	default:
		return nil, errors.Errorf("unsupported media type: %s", contentType)
	}
}

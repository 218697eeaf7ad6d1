/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package log

import "go.uber.org/zap"

// Log Fields.
const (
	FieldDid          = "did"
	FieldDidURL       = "didUrl"
	FieldIdentifier   = "identifier"
	FieldContentType  = "contentType"
	FieldBlockNumber  = "blockNumber"
	FieldCredentialID = "credentialId"
	FieldTotal        = "total"
	FieldCanonicalID  = "canonicalId"
)

// WithDid sets the did field.
func WithDid(value string) zap.Field {
	return zap.String(FieldDid, value)
}

// WithDidURL sets the did-url field.
func WithDidURL(value string) zap.Field {
	return zap.String(FieldDidURL, value)
}

// WithIdentifier sets the identifier field.
func WithIdentifier(value string) zap.Field {
	return zap.String(FieldIdentifier, value)
}

// WithContentType sets the content-type field.
func WithContentType(value string) zap.Field {
	return zap.String(FieldContentType, value)
}

// WithBlockNumber sets the block-number field.
func WithBlockNumber(value uint64) zap.Field {
	return zap.Uint64(FieldBlockNumber, value)
}

// WithCredentialID sets the credential-id field.
func WithCredentialID(value string) zap.Field {
	return zap.String(FieldCredentialID, value)
}

// WithTotal sets the total field.
func WithTotal(value int) zap.Field {
	return zap.Int(FieldTotal, value)
}

// WithCanonicalID sets the canonical-id field.
func WithCanonicalID(value string) zap.Field {
	return zap.String(FieldCanonicalID, value)
}

// WithError sets the error field.
func WithError(err error) zap.Field {
	return zap.Error(err)
}

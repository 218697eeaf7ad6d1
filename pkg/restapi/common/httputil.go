/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package common

import (
	"encoding/json"
	"net/http"

	"github.com/trustbloc/kilt-core-go/pkg/internal/log"
)

// WriteResponse writes a JSON response to the response writer
func WriteResponse(rw http.ResponseWriter, status int, v interface{}) {
	rw.Header().Set("Content-Type", "application/json")
	rw.WriteHeader(status)

	if err := json.NewEncoder(rw).Encode(v); err != nil {
		logger.Error("Unable to write response", log.WithError(err))
	}
}

// WriteStream writes an already-encoded document stream with its negotiated
// content type
func WriteStream(rw http.ResponseWriter, status int, contentType string, data []byte) {
	rw.Header().Set("Content-Type", contentType)
	rw.WriteHeader(status)

	if _, err := rw.Write(data); err != nil {
		logger.Error("Unable to write response", log.WithError(err))
	}
}

// WriteError writes an error to the response writer
func WriteError(rw http.ResponseWriter, status int, err error) {
	rw.Header().Set("Content-Type", "text/plain")
	rw.WriteHeader(status)

	if _, e := rw.Write([]byte(err.Error())); e != nil {
		logger.Error("Unable to write error response", log.WithError(e))
	}
}

/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package diddochandler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"

	"github.com/trustbloc/kilt-core-go/pkg/api/chain"
	"github.com/trustbloc/kilt-core-go/pkg/did"
	"github.com/trustbloc/kilt-core-go/pkg/document"
	"github.com/trustbloc/kilt-core-go/pkg/mocks"
	"github.com/trustbloc/kilt-core-go/pkg/resolver"
	"github.com/trustbloc/kilt-core-go/pkg/ss58"
)

const basePath = "/document"

func TestNewResolveHandler(t *testing.T) {
	handler := NewResolveHandler(basePath, resolver.New(mocks.NewMockChainClient()))
	require.Equal(t, basePath+"/{id}", handler.Path())
	require.Equal(t, http.MethodGet, handler.Method())
	require.NotNil(t, handler.Handler())
}

func TestResolveHandler(t *testing.T) {
	address, err := ss58.Encode(bytes.Repeat([]byte{1}, 32))
	require.NoError(t, err)

	fullDid := did.FullUri(address)

	client := mocks.NewMockChainClient().WithLinkedInfo(&chain.LinkedInfo{
		Identifier: address,
		Record: &chain.DidRecord{
			Authentication: "0xauth",
			PublicKeys: map[string]chain.PublicKeyEntry{
				"0xauth": {Type: document.Ed25519KeyType, PublicKey: bytes.Repeat([]byte{1}, 32)},
			},
		},
	})

	handler := NewResolveHandler(basePath, resolver.New(client))

	t.Run("success - resolve", func(t *testing.T) {
		rw := serve(t, handler, fullDid, document.JSONLDMediaType)

		require.Equal(t, http.StatusOK, rw.Code)
		require.Equal(t, document.JSONLDMediaType, rw.Header().Get("Content-Type"))

		var doc document.Document
		require.NoError(t, json.NewDecoder(rw.Body).Decode(&doc))
		require.Equal(t, fullDid, doc.ID)
		require.Len(t, doc.Context, 2)
	})

	t.Run("success - dereference fragment", func(t *testing.T) {
		rw := serve(t, handler, fullDid+"#0xauth", document.JSONMediaType)

		require.Equal(t, http.StatusOK, rw.Code)

		var vm document.VerificationMethod
		require.NoError(t, json.NewDecoder(rw.Body).Decode(&vm))
		require.Equal(t, fullDid+"#0xauth", vm.ID)
	})

	t.Run("bad request - invalid DID", func(t *testing.T) {
		rw := serve(t, handler, "did:kilt:full:not-an-address", document.JSONMediaType)

		require.Equal(t, http.StatusBadRequest, rw.Code)

		var result document.RepresentationResult
		require.NoError(t, json.NewDecoder(rw.Body).Decode(&result))
		require.Equal(t, document.InvalidDidError, result.ResolutionMetadata.Error)
	})

	t.Run("not found", func(t *testing.T) {
		unknown, err := ss58.Encode(bytes.Repeat([]byte{9}, 32))
		require.NoError(t, err)

		rw := serve(t, handler, did.FullUri(unknown), document.JSONMediaType)

		require.Equal(t, http.StatusNotFound, rw.Code)
	})

	t.Run("not found - dereference unknown fragment", func(t *testing.T) {
		rw := serve(t, handler, fullDid+"#nonexistent-fragment", document.JSONMediaType)

		require.Equal(t, http.StatusNotFound, rw.Code)

		var result document.DereferenceResult
		require.NoError(t, json.NewDecoder(rw.Body).Decode(&result))
		require.Equal(t, document.NotFoundError, result.DereferencingMetadata.Error)
	})

	t.Run("not acceptable - unsupported accept", func(t *testing.T) {
		rw := serve(t, handler, fullDid, "text/html")

		require.Equal(t, http.StatusNotAcceptable, rw.Code)
	})

	t.Run("gone - deactivated DID", func(t *testing.T) {
		deleted := mocks.NewMockChainClient().WithDeletedDid(address)

		rw := serve(t, NewResolveHandler(basePath, resolver.New(deleted)), fullDid, document.JSONMediaType)

		require.Equal(t, http.StatusGone, rw.Code)

		var result document.RepresentationResult
		require.NoError(t, json.NewDecoder(rw.Body).Decode(&result))
		require.True(t, result.DocumentMetadata.Deactivated)
	})

	t.Run("internal server error - chain failure", func(t *testing.T) {
		failing := mocks.NewMockChainClient()
		failing.DeletedErr = errors.New("connection reset")

		rw := serve(t, NewResolveHandler(basePath, resolver.New(failing)), fullDid, document.JSONMediaType)

		require.Equal(t, http.StatusInternalServerError, rw.Code)
		require.Equal(t, "text/plain", rw.Header().Get("Content-Type"))

		body, err := io.ReadAll(rw.Body)
		require.NoError(t, err)
		require.Contains(t, string(body), "connection reset")
	})

	t.Run("internal server error - dereference failure", func(t *testing.T) {
		handler := NewResolveHandler(basePath, &failingResolver{})

		rw := serve(t, handler, fullDid+"#0xauth", document.JSONMediaType)

		require.Equal(t, http.StatusInternalServerError, rw.Code)
	})
}

func serve(t *testing.T, handler *ResolveHandler, id, accept string) *httptest.ResponseRecorder {
	t.Helper()

	router := mux.NewRouter()
	router.HandleFunc(handler.Path(), handler.Handler()).Methods(handler.Method())

	req := httptest.NewRequest(http.MethodGet, basePath+"/"+url.PathEscape(id), nil)
	req.Header.Set("Accept", accept)

	rw := httptest.NewRecorder()
	router.ServeHTTP(rw, req)

	return rw
}

type failingResolver struct{}

func (r *failingResolver) ResolveRepresentation(_ context.Context, _,
	_ string) (*document.RepresentationResult, error) {
	return nil, errors.New("resolver error")
}

func (r *failingResolver) Dereference(_ context.Context, _, _ string) (*document.DereferenceResult, error) {
	return nil, errors.New("resolver error")
}

/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package diddochandler provides the W3C DID resolution HTTP binding for the
// did:kilt resolver.
package diddochandler

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/trustbloc/kilt-core-go/pkg/document"
	"github.com/trustbloc/kilt-core-go/pkg/internal/log"
	"github.com/trustbloc/kilt-core-go/pkg/restapi/common"
)

var logger = log.New("kilt-core-restapi-diddochandler")

// Resolver resolves DIDs and dereferences DID URLs into representation
// results.
type Resolver interface {
	ResolveRepresentation(ctx context.Context, didUri, accept string) (*document.RepresentationResult, error)
	Dereference(ctx context.Context, didUrl, accept string) (*document.DereferenceResult, error)
}

// ResolveHandler resolves DID documents.
type ResolveHandler struct {
	*handler
	resolver Resolver
}

// NewResolveHandler returns a new DID document resolve handler.
func NewResolveHandler(basePath string, resolver Resolver) *ResolveHandler {
	rh := &ResolveHandler{resolver: resolver}
	rh.handler = newHandler(
		fmt.Sprintf("%s/{id}", basePath),
		http.MethodGet,
		rh.Resolve,
	)

	return rh
}

// Resolve resolves a DID or dereferences a DID URL, negotiating the
// representation via the Accept header.
func (o *ResolveHandler) Resolve(rw http.ResponseWriter, req *http.Request) {
	id := getID(req)
	accept := req.Header.Get("Accept")

	logger.Debug("Resolving DID document", log.WithDid(id), log.WithContentType(accept))

	if strings.Contains(id, "#") {
		o.dereference(rw, req, id, accept)

		return
	}

	result, err := o.doResolve(req.Context(), id, accept)
	if err != nil {
		common.WriteError(rw, err.(*common.HTTPError).Status(), err)

		return
	}

	if result.ResolutionMetadata.Error != "" {
		common.WriteResponse(rw, statusForError(result.ResolutionMetadata.Error), result)

		return
	}

	if result.DocumentMetadata.Deactivated {
		common.WriteResponse(rw, http.StatusGone, result)

		return
	}

	common.WriteStream(rw, http.StatusOK, result.ResolutionMetadata.ContentType, result.DocumentStream)
}

func (o *ResolveHandler) doResolve(ctx context.Context, id, accept string) (*document.RepresentationResult, error) {
	result, err := o.resolver.ResolveRepresentation(ctx, id, accept)
	if err != nil {
		logger.Error("Internal server error", log.WithDid(id), log.WithError(err))

		return nil, common.NewHTTPError(http.StatusInternalServerError, err)
	}

	return result, nil
}

func (o *ResolveHandler) dereference(rw http.ResponseWriter, req *http.Request, didUrl, accept string) {
	result, err := o.doDereference(req.Context(), didUrl, accept)
	if err != nil {
		common.WriteError(rw, err.(*common.HTTPError).Status(), err)

		return
	}

	if result.DereferencingMetadata.Error != "" {
		common.WriteResponse(rw, statusForError(result.DereferencingMetadata.Error), result)

		return
	}

	common.WriteStream(rw, http.StatusOK, result.DereferencingMetadata.ContentType, result.ContentStream)
}

func (o *ResolveHandler) doDereference(ctx context.Context, didUrl, accept string) (*document.DereferenceResult, error) {
	result, err := o.resolver.Dereference(ctx, didUrl, accept)
	if err != nil {
		logger.Error("Internal server error", log.WithDidURL(didUrl), log.WithError(err))

		return nil, common.NewHTTPError(http.StatusInternalServerError, err)
	}

	return result, nil
}

func statusForError(code string) int {
	switch code {
	case document.InvalidDidError, document.InvalidDidURLError:
		return http.StatusBadRequest
	case document.NotFoundError:
		return http.StatusNotFound
	case document.RepresentationNotSupportedError:
		return http.StatusNotAcceptable
	default:
		return http.StatusInternalServerError
	}
}

var getID = func(req *http.Request) string {
	return mux.Vars(req)["id"]
}

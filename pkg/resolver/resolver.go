/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package resolver implements W3C DID resolution and dereferencing for the
// did:kilt method. All protocol-level failures (invalidDid, notFound,
// representationNotSupported, invalidDidUrl) are reported as metadata in the
// structured result; only chain-adapter failures outside the document lookup
// surface as Go errors.
package resolver

import (
	"context"
	"sort"

	"github.com/trustbloc/kilt-core-go/pkg/api/chain"
	"github.com/trustbloc/kilt-core-go/pkg/did"
	"github.com/trustbloc/kilt-core-go/pkg/document"
	"github.com/trustbloc/kilt-core-go/pkg/internal/log"
	"github.com/trustbloc/kilt-core-go/pkg/lightdid"
)

var logger = log.New("kilt-core-resolver")

// Resolver resolves did:kilt URIs against an injected chain adapter. It holds
// no state of its own; every resolution re-queries current chain state.
type Resolver struct {
	client chain.Client
}

// New returns a new resolver backed by the given chain adapter.
func New(client chain.Client) *Resolver {
	return &Resolver{client: client}
}

// Resolve resolves a DID into a document plus resolution and document
// metadata.
func (r *Resolver) Resolve(ctx context.Context, didUri string) (*document.ResolutionResult, error) {
	parsed, err := did.Parse(didUri)
	if err != nil || parsed.Fragment != "" {
		return &document.ResolutionResult{
			ResolutionMetadata: document.ResolutionMetadata{Error: document.InvalidDidError},
		}, nil
	}

	return r.resolveParsed(ctx, parsed)
}

func (r *Resolver) resolveParsed(ctx context.Context, parsed *did.Parsed) (*document.ResolutionResult, error) {
	linkedInfo := r.queryLinkedInfo(ctx, parsed.Address)

	if parsed.Type == did.FullType && linkedInfo != nil && linkedInfo.Record != nil {
		doc, err := documentFromLinkedInfo(parsed.Did, linkedInfo)
		if err != nil {
			return nil, err
		}

		return &document.ResolutionResult{Document: doc}, nil
	}

	if parsed.Type == did.LightType {
		return r.resolveLight(ctx, parsed, linkedInfo)
	}

	deleted, err := r.client.QueryDeletedDid(ctx, parsed.Address)
	if err != nil {
		return nil, err
	}

	if deleted {
		// the DID existed and was explicitly deleted, which is distinct
		// from never having existed
		return &document.ResolutionResult{
			DocumentMetadata: document.DocumentMetadata{Deactivated: true},
		}, nil
	}

	return &document.ResolutionResult{
		ResolutionMetadata: document.ResolutionMetadata{Error: document.NotFoundError},
	}, nil
}

func (r *Resolver) resolveLight(ctx context.Context, parsed *did.Parsed,
	linkedInfo *chain.LinkedInfo) (*document.ResolutionResult, error) {
	if linkedInfo != nil && linkedInfo.Record != nil {
		// migrated to a full DID: callers must prefer the canonical form
		canonicalID := did.FullUri(parsed.Address)

		logger.Debug("Light DID has been migrated", log.WithDid(parsed.Did), log.WithCanonicalID(canonicalID))

		return &document.ResolutionResult{
			DocumentMetadata: document.DocumentMetadata{CanonicalID: canonicalID},
			Document:         &document.Document{ID: parsed.Did},
		}, nil
	}

	deleted, err := r.client.QueryDeletedDid(ctx, parsed.Address)
	if err != nil {
		return nil, err
	}

	if deleted {
		return &document.ResolutionResult{
			DocumentMetadata: document.DocumentMetadata{Deactivated: true},
		}, nil
	}

	doc, err := lightdid.DocumentFromUri(parsed.Did, false)
	if err != nil {
		return &document.ResolutionResult{
			ResolutionMetadata: document.ResolutionMetadata{Error: document.InvalidDidError},
		}, nil
	}

	return &document.ResolutionResult{Document: doc}, nil
}

// ResolveRepresentation resolves a DID and encodes the document in the
// requested representation. An unsupported accept value fails with
// representationNotSupported before any chain query is made.
func (r *Resolver) ResolveRepresentation(ctx context.Context, didUri,
	accept string) (*document.RepresentationResult, error) {
	if accept == "" {
		accept = document.JSONLDMediaType
	}

	if !IsSupportedContentType(accept) {
		return &document.RepresentationResult{
			ResolutionMetadata: document.ResolutionMetadata{Error: document.RepresentationNotSupportedError},
		}, nil
	}

	resolved, err := r.Resolve(ctx, didUri)
	if err != nil {
		return nil, err
	}

	result := &document.RepresentationResult{
		ResolutionMetadata: resolved.ResolutionMetadata,
		DocumentMetadata:   resolved.DocumentMetadata,
	}

	if resolved.Document == nil {
		return result, nil
	}

	stream, err := MarshalDocument(resolved.Document, accept)
	if err != nil {
		return nil, err
	}

	logger.Debug("Resolved DID representation", log.WithDid(didUri), log.WithContentType(accept))

	result.ResolutionMetadata.ContentType = accept
	result.DocumentStream = stream

	return result, nil
}

// Dereference resolves a DID URL and returns the resource it points at: the
// whole document when there is no fragment, otherwise the matching
// verification method or service endpoint. Unsupported accept values fall
// back to plain JSON.
func (r *Resolver) Dereference(ctx context.Context, didUrl, accept string) (*document.DereferenceResult, error) {
	if !IsSupportedContentType(accept) {
		accept = document.JSONMediaType
	}

	parsed, err := did.Parse(didUrl)
	if err != nil {
		return &document.DereferenceResult{
			DereferencingMetadata: document.DereferencingMetadata{Error: document.InvalidDidURLError},
		}, nil
	}

	resolved, err := r.resolveParsed(ctx, parsed)
	if err != nil {
		return nil, err
	}

	if resolved.Document == nil {
		return &document.DereferenceResult{
			DereferencingMetadata: document.DereferencingMetadata{Error: document.NotFoundError},
			ContentMetadata:       resolved.DocumentMetadata,
		}, nil
	}

	if parsed.Fragment == "" {
		stream, err := MarshalDocument(resolved.Document, accept)
		if err != nil {
			return nil, err
		}

		return &document.DereferenceResult{
			DereferencingMetadata: document.DereferencingMetadata{ContentType: accept},
			ContentMetadata:       resolved.DocumentMetadata,
			ContentStream:         stream,
		}, nil
	}

	content := findFragment(resolved.Document, parsed.Did+"#"+parsed.Fragment)
	if content == nil {
		logger.Debug("Fragment not found in resolved document", log.WithDidURL(didUrl))

		return &document.DereferenceResult{
			DereferencingMetadata: document.DereferencingMetadata{Error: document.NotFoundError},
			ContentMetadata:       resolved.DocumentMetadata,
		}, nil
	}

	stream, err := MarshalContent(content, accept)
	if err != nil {
		return nil, err
	}

	return &document.DereferenceResult{
		DereferencingMetadata: document.DereferencingMetadata{ContentType: accept},
		ContentStream:         stream,
	}, nil
}

// queryLinkedInfo treats adapter failures as "no document" so that resolution
// always produces a structured result.
func (r *Resolver) queryLinkedInfo(ctx context.Context, identifier string) *chain.LinkedInfo {
	linkedInfo, err := r.client.QueryLinkedInfo(ctx, identifier)
	if err != nil {
		logger.Warn("Failed to query linked DID info", log.WithIdentifier(identifier), log.WithError(err))

		return nil
	}

	return linkedInfo
}

func findFragment(doc *document.Document, id string) interface{} {
	if vm := doc.FindVerificationMethod(id); vm != nil {
		return vm
	}

	if svc := doc.FindService(id); svc != nil {
		return svc
	}

	return nil
}

func documentFromLinkedInfo(uri string, info *chain.LinkedInfo) (*document.Document, error) {
	record := info.Record

	doc := &document.Document{ID: uri}

	// key IDs are sorted so that repeated resolutions produce identical
	// documents
	keyIDs := make([]string, 0, len(record.PublicKeys))
	for keyID := range record.PublicKeys {
		keyIDs = append(keyIDs, keyID)
	}

	sort.Strings(keyIDs)

	for _, keyID := range keyIDs {
		entry := record.PublicKeys[keyID]

		method, err := document.NewVerificationMethod(uri+"#"+keyID, uri, entry.Type, entry.PublicKey)
		if err != nil {
			return nil, err
		}

		doc.VerificationMethod = append(doc.VerificationMethod, method)
	}

	if record.Authentication != "" {
		doc.Authentication = []string{uri + "#" + record.Authentication}
	}

	if record.AssertionMethod != "" {
		doc.AssertionMethod = []string{uri + "#" + record.AssertionMethod}
	}

	if record.CapabilityDelegation != "" {
		doc.CapabilityDelegation = []string{uri + "#" + record.CapabilityDelegation}
	}

	for _, keyID := range record.KeyAgreement {
		doc.KeyAgreement = append(doc.KeyAgreement, uri+"#"+keyID)
	}

	for _, svc := range record.Services {
		doc.Service = append(doc.Service, document.Service{
			ID:              uri + "#" + svc.ID,
			Type:            svc.ServiceTypes,
			ServiceEndpoint: svc.URLs,
		})
	}

	if info.Web3Name != "" {
		doc.AlsoKnownAs = []string{"w3n:" + info.Web3Name}
	}

	return doc, nil
}

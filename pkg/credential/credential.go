/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package credential reconstructs public credentials from chain history. The
// chain stores only a commitment entry per credential; the full content
// exists transiently inside the originating extrinsic and is rebuilt here by
// replaying and filtering the block that contains it.
package credential

import (
	"context"
	"reflect"

	"github.com/fxamacker/cbor/v2"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/trustbloc/kilt-core-go/pkg/api/chain"
	"github.com/trustbloc/kilt-core-go/pkg/did"
	"github.com/trustbloc/kilt-core-go/pkg/internal/log"
)

var logger = log.New("kilt-core-credential")

// ErrPublicCredential indicates that a credential could not be reconstructed
// from the block named by its commitment entry. The block number is trusted
// input, so this points at an integrity violation or an adapter
// inconsistency and is not retried.
var ErrPublicCredential = errors.New("public credential cannot be reconstructed")

var cborDecMode, _ = cbor.DecOptions{
	DefaultMapType: reflect.TypeOf(map[string]interface{}(nil)),
}.DecMode()

// PublicCredential is an immutable snapshot of a credential reconstructed
// from chain history.
type PublicCredential struct {
	ID           string      `json:"id"`
	CTypeHash    string      `json:"cTypeHash"`
	Subject      string      `json:"subject"`
	Claims       interface{} `json:"claims"`
	DelegationID string      `json:"delegationId,omitempty"`
	Attester     string      `json:"attester"`
	BlockNumber  uint64      `json:"blockNumber"`
	Revoked      bool        `json:"revoked"`
}

type candidate struct {
	input    *chain.CredentialInput
	attester string
}

// FromChain rebuilds the full credential content for the given identifier
// from the block named by its commitment entry.
func FromChain(ctx context.Context, fetcher chain.BlockFetcher, credentialID string,
	entry chain.CommitmentEntry) (*PublicCredential, error) {
	block, err := fetcher.GetBlockByNumber(ctx, entry.BlockNumber)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to fetch block %d", entry.BlockNumber)
	}

	if block == nil {
		return nil, errors.Wrapf(ErrPublicCredential, "block %d not found", entry.BlockNumber)
	}

	extrinsic := findStoringExtrinsic(block, credentialID)
	if extrinsic == nil {
		return nil, errors.Wrapf(ErrPublicCredential,
			"no successful extrinsic in block %d stores credential %s", entry.BlockNumber, credentialID)
	}

	match, err := findLastMatchingCandidate(extrinsic.Call, credentialID)
	if err != nil {
		return nil, err
	}

	if match == nil {
		return nil, errors.Wrap(ErrPublicCredential,
			"the block should always contain the full credential, originating from this call")
	}

	var claims interface{}
	if err := cborDecMode.Unmarshal(match.input.Claims, &claims); err != nil {
		return nil, errors.Wrap(ErrPublicCredential, err.Error())
	}

	logger.Debug("Reconstructed public credential",
		log.WithCredentialID(credentialID), log.WithBlockNumber(entry.BlockNumber))

	return &PublicCredential{
		ID:           credentialID,
		CTypeHash:    match.input.CTypeHash,
		Subject:      match.input.Subject,
		Claims:       claims,
		DelegationID: match.input.DelegationID,
		Attester:     did.FullUri(match.attester),
		BlockNumber:  entry.BlockNumber,
		Revoked:      entry.Revoked,
	}, nil
}

// CredentialsFromChain rebuilds every credential in the wrapped query result.
// The per-credential reconstructions run concurrently; the first failure
// cancels the rest and propagates. A non-nil queryErr fails fast before any
// reconstruction is attempted.
func CredentialsFromChain(ctx context.Context, fetcher chain.BlockFetcher,
	records []chain.CommitmentRecord, queryErr error) ([]*PublicCredential, error) {
	if queryErr != nil {
		return nil, queryErr
	}

	credentials := make([]*PublicCredential, len(records))

	g, gctx := errgroup.WithContext(ctx)

	for i, record := range records {
		i, record := i, record

		g.Go(func() error {
			reconstructed, err := FromChain(gctx, fetcher, record.CredentialID, record.Entry)
			if err != nil {
				return err
			}

			credentials[i] = reconstructed

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	logger.Debug("Reconstructed public credentials", log.WithTotal(len(credentials)))

	return credentials, nil
}

// findStoringExtrinsic scans successful extrinsics in reverse order so that
// the most recent write wins, matching the chain's last-write-wins state
// semantics.
func findStoringExtrinsic(block *chain.Block, credentialID string) *chain.Extrinsic {
	for i := len(block.Extrinsics) - 1; i >= 0; i-- {
		extrinsic := &block.Extrinsics[i]

		if !extrinsic.Succeeded() {
			continue
		}

		for j := range extrinsic.Events {
			if extrinsic.Events[j].IsCredentialStored(credentialID) {
				return extrinsic
			}
		}
	}

	return nil
}

// findLastMatchingCandidate flattens nested batches, pairs every
// add-credential call with its authorizing DID and returns the last candidate
// whose recomputed identifier equals the requested one.
func findLastMatchingCandidate(root chain.Call, credentialID string) (*candidate, error) {
	var match *candidate

	for _, call := range flattenCalls(root) {
		if !call.IsDidAuthorized() {
			continue
		}

		attester := call.Authorized.Submitter

		for _, inner := range flattenCalls(call.Authorized.Call) {
			if !inner.IsAddCredential() {
				continue
			}

			recomputed, err := ComputeID(inner.Credential, attester)
			if err != nil {
				return nil, err
			}

			if recomputed == credentialID {
				// later calls overwrite earlier ones
				match = &candidate{input: inner.Credential, attester: attester}
			}
		}
	}

	return match, nil
}

// flattenCalls expands arbitrarily nested batch calls into a single ordered
// list using an explicit worklist.
func flattenCalls(root chain.Call) []chain.Call {
	worklist := []chain.Call{root}

	var flattened []chain.Call

	for len(worklist) > 0 {
		call := worklist[0]
		worklist = worklist[1:]

		if call.IsBatch() {
			// children go to the front of the worklist to preserve call order
			worklist = append(append([]chain.Call{}, call.Batch...), worklist...)

			continue
		}

		flattened = append(flattened, call)
	}

	return flattened
}

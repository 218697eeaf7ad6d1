/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package credential

import (
	"github.com/fxamacker/cbor/v2"
	"github.com/pkg/errors"

	"github.com/trustbloc/kilt-core-go/pkg/api/chain"
	"github.com/trustbloc/kilt-core-go/pkg/docutil"
	"github.com/trustbloc/kilt-core-go/pkg/encoder"
)

var cborEncMode, _ = cbor.CanonicalEncOptions().EncMode()

// ComputeID derives the deterministic credential identifier from the
// credential input and the attester identifier. The same derivation runs at
// issuance and at reconstruction; recomputing it is the only integrity check
// available since the chain stores a commitment entry, not the payload.
func ComputeID(input *chain.CredentialInput, attesterIdentifier string) (string, error) {
	payload, err := cborEncMode.Marshal([]interface{}{
		input.Claims,
		input.CTypeHash,
		input.Subject,
		input.DelegationID,
		attesterIdentifier,
	})
	if err != nil {
		return "", errors.Wrap(err, "failed to encode credential id payload")
	}

	mh, err := docutil.ComputeMultihash(docutil.Blake2b256Code, payload)
	if err != nil {
		return "", err
	}

	return encoder.EncodeToString(mh), nil
}

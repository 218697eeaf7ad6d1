/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package chain defines the capabilities that the resolver and the public
// credential reconstructor consume from an already-connected KILT chain.
// Implementations are expected to handle transport, SCALE decoding and
// timeout discipline; everything here is decoded, typed data.
package chain

import "context"

// Client is the full capability set consumed by this library.
type Client interface {
	LinkedInfoResolver
	DeletedDidChecker
	BlockFetcher
}

// LinkedInfoResolver queries the DID pallet storage for the document and
// linked resources of an identifier.
type LinkedInfoResolver interface {
	// QueryLinkedInfo returns the on-chain linked info for the given
	// identifier, or nil if the identifier has no full DID.
	QueryLinkedInfo(ctx context.Context, identifier string) (*LinkedInfo, error)
}

// DeletedDidChecker performs a membership test against the deleted-DID set.
type DeletedDidChecker interface {
	// QueryDeletedDid returns true if the identifier belonged to a full DID
	// that has been explicitly deleted.
	QueryDeletedDid(ctx context.Context, identifier string) (bool, error)
}

// BlockFetcher retrieves historical blocks with their extrinsics and events.
type BlockFetcher interface {
	// GetBlockByNumber returns the block at the given height, or nil if the
	// connected node does not have it.
	GetBlockByNumber(ctx context.Context, number uint64) (*Block, error)
}

// LinkedInfo is the decoded result of a linked-info query: the DID storage
// entry plus the resources linked to the same identifier.
type LinkedInfo struct {
	Identifier string
	Accounts   []string
	Web3Name   string
	Record     *DidRecord
}

// DidRecord is the on-chain DID storage entry. Keys are referenced by their
// on-chain key ID (hex-encoded hash of the key entry), which also becomes the
// verification method fragment during resolution.
type DidRecord struct {
	Authentication       string
	KeyAgreement         []string
	AssertionMethod      string
	CapabilityDelegation string
	PublicKeys           map[string]PublicKeyEntry
	Services             []ServiceRecord
}

// PublicKeyEntry holds key material for one on-chain key.
type PublicKeyEntry struct {
	// Type is one of the key type identifiers in pkg/document.
	Type      string
	PublicKey []byte
}

// ServiceRecord is an on-chain service endpoint entry.
type ServiceRecord struct {
	ID           string
	ServiceTypes []string
	URLs         []string
}

// Block is a historical block with its extrinsics paired to their events.
type Block struct {
	Number     uint64
	Extrinsics []Extrinsic
}

// Extrinsic is a decoded extrinsic with the events it emitted. DispatchError
// is empty for successful extrinsics.
type Extrinsic struct {
	Call          Call
	Events        []Event
	DispatchError string
}

// Event is a decoded runtime event. CredentialID is set for public-credential
// events only.
type Event struct {
	Section      string
	Method       string
	CredentialID string
}

// Call is a decoded runtime call, modelled as a tagged union: exactly one of
// Batch, Authorized or Credential is set for the call kinds this library
// inspects; plain calls carry only Section and Method.
type Call struct {
	Section string
	Method  string

	// Batch holds the nested calls of utility.batch, utility.batch_all and
	// utility.force_batch. Batches may nest arbitrarily.
	Batch []Call

	// Authorized is set for did.submit_did_call: a call wrapped with the
	// authorizing DID identifier.
	Authorized *AuthorizedCall

	// Credential is set for public_credentials.add.
	Credential *CredentialInput
}

// AuthorizedCall is a call submitted through the DID pallet on behalf of the
// DID owning Submitter (an SS58 identifier).
type AuthorizedCall struct {
	Submitter string
	Call      Call
}

// CredentialInput is the argument payload of a public_credentials.add call.
// Claims is the CBOR-encoded claim structure exactly as submitted.
type CredentialInput struct {
	CTypeHash    string
	Subject      string
	Claims       []byte
	DelegationID string
}

// CommitmentRecord pairs a credential identifier with its on-chain commitment
// entry.
type CommitmentRecord struct {
	CredentialID string
	Entry        CommitmentEntry
}

// CommitmentEntry is the minimal on-chain record proving a credential was
// issued: the block holding the originating extrinsic and the revocation flag.
type CommitmentEntry struct {
	BlockNumber uint64
	Revoked     bool
}

const (
	utilitySection           = "utility"
	didSection               = "did"
	publicCredentialsSection = "public_credentials"

	submitDidCallMethod    = "submit_did_call"
	addCredentialMethod    = "add"
	credentialStoredMethod = "CredentialStored"
)

// IsBatch reports whether the call is one of the utility batch variants.
func (c *Call) IsBatch() bool {
	if c.Section != utilitySection {
		return false
	}

	switch c.Method {
	case "batch", "batch_all", "force_batch":
		return true
	default:
		return false
	}
}

// IsDidAuthorized reports whether the call is a DID-authorized wrapper call.
func (c *Call) IsDidAuthorized() bool {
	return c.Section == didSection && c.Method == submitDidCallMethod && c.Authorized != nil
}

// IsAddCredential reports whether the call adds a public credential.
func (c *Call) IsAddCredential() bool {
	return c.Section == publicCredentialsSection && c.Method == addCredentialMethod && c.Credential != nil
}

// IsCredentialStored reports whether the event records storage of the given
// credential identifier.
func (e *Event) IsCredentialStored(credentialID string) bool {
	return e.Section == publicCredentialsSection && e.Method == credentialStoredMethod &&
		e.CredentialID == credentialID
}

// Succeeded reports whether the extrinsic dispatched without error.
func (e *Extrinsic) Succeeded() bool {
	return e.DispatchError == ""
}

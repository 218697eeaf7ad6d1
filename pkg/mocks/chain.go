/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package mocks

import (
	"context"
	"sync"

	"github.com/trustbloc/kilt-core-go/pkg/api/chain"
)

// MockChainClient mocks the chain query adapter for testing purposes.
type MockChainClient struct {
	sync.RWMutex
	linkedInfo map[string]*chain.LinkedInfo
	deleted    map[string]bool
	blocks     map[uint64]*chain.Block

	LinkedInfoErr error
	DeletedErr    error
	BlockErr      error
}

// NewMockChainClient creates a mock chain client.
func NewMockChainClient() *MockChainClient {
	return &MockChainClient{
		linkedInfo: make(map[string]*chain.LinkedInfo),
		deleted:    make(map[string]bool),
		blocks:     make(map[uint64]*chain.Block),
	}
}

// WithLinkedInfo sets the linked info returned for its identifier.
func (m *MockChainClient) WithLinkedInfo(info *chain.LinkedInfo) *MockChainClient {
	m.Lock()
	defer m.Unlock()

	m.linkedInfo[info.Identifier] = info

	return m
}

// WithDeletedDid marks an identifier as belonging to a deleted DID.
func (m *MockChainClient) WithDeletedDid(identifier string) *MockChainClient {
	m.Lock()
	defer m.Unlock()

	m.deleted[identifier] = true

	return m
}

// WithBlock sets the block returned for its number.
func (m *MockChainClient) WithBlock(block *chain.Block) *MockChainClient {
	m.Lock()
	defer m.Unlock()

	m.blocks[block.Number] = block

	return m
}

// QueryLinkedInfo returns the configured linked info, or nil.
func (m *MockChainClient) QueryLinkedInfo(_ context.Context, identifier string) (*chain.LinkedInfo, error) {
	if m.LinkedInfoErr != nil {
		return nil, m.LinkedInfoErr
	}

	m.RLock()
	defer m.RUnlock()

	return m.linkedInfo[identifier], nil
}

// QueryDeletedDid returns whether the identifier has been marked deleted.
func (m *MockChainClient) QueryDeletedDid(_ context.Context, identifier string) (bool, error) {
	if m.DeletedErr != nil {
		return false, m.DeletedErr
	}

	m.RLock()
	defer m.RUnlock()

	return m.deleted[identifier], nil
}

// GetBlockByNumber returns the configured block, or nil.
func (m *MockChainClient) GetBlockByNumber(_ context.Context, number uint64) (*chain.Block, error) {
	if m.BlockErr != nil {
		return nil, m.BlockErr
	}

	m.RLock()
	defer m.RUnlock()

	return m.blocks[number], nil
}

/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package log

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/trustbloc/kilt-core-go/pkg/internal/log"
)

func TestDefaultLevel(t *testing.T) {
	SetDefaultLevel(log.ERROR)
	defer SetDefaultLevel(log.INFO)

	require.Equal(t, log.ERROR, GetLevel("moduley"))
}

func TestSetLevel(t *testing.T) {
	SetLevel("modulex", log.DEBUG)

	require.Equal(t, log.DEBUG, GetLevel("modulex"))
}

func TestSetSpec(t *testing.T) {
	require.NoError(t, SetSpec("modulea=debug:moduleb=warning:error"))
	defer SetDefaultLevel(log.INFO)

	require.Contains(t, GetSpec(), "modulea=debug")
	require.Contains(t, GetSpec(), "moduleb=warn")

	require.Equal(t, log.DEBUG, GetLevel("modulea"))
	require.Equal(t, log.WARNING, GetLevel("moduleb"))
	require.Equal(t, log.ERROR, GetLevel("modulec"))

	require.Error(t, SetSpec("modulea=confusing"))
}

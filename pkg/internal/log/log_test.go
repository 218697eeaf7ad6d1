/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package log

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSetLevel(t *testing.T) {
	const module = "set-level-module"

	require.Equal(t, INFO, GetLevel(module))

	SetLevel(module, DEBUG)
	require.Equal(t, DEBUG, GetLevel(module))

	SetLevel(module, ERROR)
	require.Equal(t, ERROR, GetLevel(module))
}

func TestSetDefaultLevel(t *testing.T) {
	const module = "default-level-module"

	SetLevel(module, WARNING)

	SetDefaultLevel(ERROR)
	defer SetDefaultLevel(INFO)

	// explicitly set modules keep their level, everything else follows
	require.Equal(t, WARNING, GetLevel(module))
	require.Equal(t, ERROR, GetLevel("default-level-other-module"))
}

func TestSetSpec(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		require.NoError(t, SetSpec("spec-module1=debug:spec-module2=warning:error"))
		defer SetDefaultLevel(INFO)

		require.Equal(t, DEBUG, GetLevel("spec-module1"))
		require.Equal(t, WARNING, GetLevel("spec-module2"))
		require.Equal(t, ERROR, GetLevel("spec-module3"))
	})

	t.Run("error - invalid default level", func(t *testing.T) {
		require.Error(t, SetSpec("confusing"))
	})

	t.Run("error - invalid module level", func(t *testing.T) {
		require.Error(t, SetSpec("module1=confusing"))
	})

	t.Run("error - malformed field", func(t *testing.T) {
		require.Error(t, SetSpec("module1=info=debug"))
	})
}

func TestGetSpec(t *testing.T) {
	SetLevel("get-spec-module", DEBUG)

	require.Contains(t, GetSpec(), "get-spec-module=debug")
}

func TestParseLevel(t *testing.T) {
	for level, expected := range map[string]Level{
		"debug": DEBUG, "info": INFO, "warning": WARNING, "warn": WARNING, "error": ERROR,
	} {
		parsed, err := ParseLevel(level)
		require.NoError(t, err, fmt.Sprintf("level: %s", level))
		require.Equal(t, expected, parsed)
	}

	_, err := ParseLevel("confusing")
	require.Error(t, err)
}

func TestLogger(t *testing.T) {
	logger := New("logger-module")
	require.NotNil(t, logger)

	SetLevel("logger-module", DEBUG)

	require.True(t, logger.Core().Enabled(DEBUG))

	SetLevel("logger-module", ERROR)

	require.False(t, logger.Core().Enabled(DEBUG))
}

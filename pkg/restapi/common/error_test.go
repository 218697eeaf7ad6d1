/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package common

import (
	"net/http"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func TestHTTPError(t *testing.T) {
	inner := errors.New("injected")

	err := NewHTTPError(http.StatusInternalServerError, inner)
	require.Equal(t, http.StatusInternalServerError, err.Status())
	require.Equal(t, "injected", err.Error())
	require.ErrorIs(t, err, inner)
}

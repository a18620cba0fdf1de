// Package test contains assertion helpers shared by package tests.
package test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ava12/shapegen"
)

func Assert(t *testing.T, cond bool, message string, params ...any) {
	t.Helper()
	require.Truef(t, cond, message, params...)
}

func Expect(t *testing.T, cond bool, expected, got any) {
	t.Helper()
	require.Truef(t, cond, "expecting %v, got %v", expected, got)
}

func ExpectBool(t *testing.T, expected, got bool) {
	t.Helper()
	Expect(t, expected == got, expected, got)
}

func ExpectInt(t *testing.T, expected, got int) {
	t.Helper()
	Expect(t, expected == got, expected, got)
}

// ExpectErrorCode fails unless e is (or wraps) *shapegen.Error with expected code.
func ExpectErrorCode(t *testing.T, expected int, e error) {
	t.Helper()
	if shapegen.HasCode(e, expected) {
		return
	}

	require.Failf(t, "wrong error", "expecting error code %d, got %v", expected, e)
}

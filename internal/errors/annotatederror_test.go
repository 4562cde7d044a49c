package errors

import (
	"github.com/stretchr/testify/require"
	"log/slog"
	"slices"
	"testing"
)

func TestAnnotatedError(t *testing.T) {
	err := New("test error", slog.String("id", "123"))
	require.Equal(t, "test error", err.Error())

	// Sentinels are detected through wrap chains but never across distinct instances.
	sentinel := NewSentinel("boundary")
	require.NotErrorIs(t, err, NewSentinel("boundary"))
	wrapped := Wrap(sentinel, "add context", slog.Int("attempt", 3))
	require.ErrorIs(t, wrapped, sentinel)
	require.Equal(t, "add context: boundary", wrapped.Error())

	var annotated *AnnotatedError
	require.True(t, As(err, &annotated))

	// Ensure log values are coming through.
	group := annotated.LogValue().Group()
	require.Contains(t, group, slog.String("id", "123"))

	// Assert there's a valid source pointing at this file.
	sourceIdx := slices.IndexFunc(group, func(attr slog.Attr) bool {
		return attr.Key == "source"
	})
	require.GreaterOrEqual(t, sourceIdx, 0)
	require.Contains(t, group[sourceIdx].Value.String(), "annotatederror_test.go")
}

func TestWrapNil(t *testing.T) {
	require.NoError(t, Wrap(nil, "never happened"))
}

func TestWrapChainLogValue(t *testing.T) {
	inner := New("inner", slog.String("key", "value"))
	outer := Wrap(inner, "outer")

	var annotated *AnnotatedError
	require.True(t, As(outer, &annotated))
	group := annotated.LogValue().Group()

	causeIdx := slices.IndexFunc(group, func(attr slog.Attr) bool {
		return attr.Key == "cause"
	})
	require.GreaterOrEqual(t, causeIdx, 0, "wrapped cause missing from log value")

	require.Equal(t, "outer: inner", outer.Error())
}

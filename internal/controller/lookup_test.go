package controller_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/dairydesk/internal/controller"
)

func TestLookupEnsureFetchesOnce(t *testing.T) {
	calls := 0
	l := controller.NewLookup(func(context.Context) ([]string, error) {
		calls++
		return []string{"COW-001", "COW-002"}, nil
	})

	require.NoError(t, l.Ensure(context.Background()))
	require.NoError(t, l.Ensure(context.Background()))
	assert.Equal(t, 1, calls)

	l.Invalidate()
	require.NoError(t, l.Ensure(context.Background()))
	assert.Equal(t, 2, calls)
}

func TestLookupEnsureKeepsNothingOnFailure(t *testing.T) {
	boom := errors.New("network down")
	fail := true
	l := controller.NewLookup(func(context.Context) ([]string, error) {
		if fail {
			return nil, boom
		}
		return []string{"COW-001"}, nil
	})

	require.ErrorIs(t, l.Ensure(context.Background()), boom)
	assert.Empty(t, l.Match(""))

	// The next attempt retries the fetch instead of caching the failure.
	fail = false
	require.NoError(t, l.Ensure(context.Background()))
	assert.Equal(t, []string{"COW-001"}, l.Match(""))
}

func TestLookupFetchAndInstall(t *testing.T) {
	calls := 0
	l := controller.NewLookup(func(context.Context) ([]string, error) {
		calls++
		return []string{"CALF-101"}, nil
	})

	ids, err := l.Fetch(context.Background())
	require.NoError(t, err)
	assert.Empty(t, l.Match(""), "Fetch alone installs nothing")

	l.Install(ids)
	assert.Equal(t, []string{"CALF-101"}, l.Match(""))

	_, err = l.Fetch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, calls, "an installed list serves later fetches")
}

func TestLookupMatch(t *testing.T) {
	l := controller.NewLookup(nil)
	l.Install([]string{"COW-001", "COW-002", "BULL-007"})

	assert.Equal(t, []string{"COW-001", "COW-002"}, l.Match("cow"))
	assert.Equal(t, []string{"BULL-007"}, l.Match("BULL"))
	assert.Len(t, l.Match(""), 3)
	assert.Empty(t, l.Match("goat"))
}

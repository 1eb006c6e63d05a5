package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conn-castle/distup/internal/gav"
)

func TestCached_MemoizesLookups(t *testing.T) {
	core := mustGav(t, "org.example:core:1.0")
	next := &fakeChannel{
		id:     "base",
		latest: map[gav.Key]string{core.Key(): "2.0"},
	}
	repo := NewCached(next, time.Minute)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		latest, err := repo.FindLatestVersionOf(ctx, core)
		require.NoError(t, err)
		assert.Equal(t, "2.0", latest.Version)

		deps, err := repo.ResolveDescriptor(ctx, core)
		require.NoError(t, err)
		assert.Nil(t, deps)
	}
	assert.Equal(t, 1, next.latestCalls)
	assert.Equal(t, 1, next.descriptorCalls, "an absent descriptor is cached too")

	repo.Flush()
	_, err := repo.FindLatestVersionOf(ctx, core)
	require.NoError(t, err)
	assert.Equal(t, 2, next.latestCalls)
}

func TestCached_DoesNotCacheErrors(t *testing.T) {
	next := &fakeChannel{id: "base", err: errors.New("boom")}
	repo := NewCached(next, time.Minute)
	g := mustGav(t, "org.example:core:1.0")

	_, err := repo.FindLatestVersionOf(context.Background(), g)
	require.Error(t, err)
	_, err = repo.FindLatestVersionOf(context.Background(), g)
	require.Error(t, err)
	assert.Equal(t, 2, next.latestCalls)
}

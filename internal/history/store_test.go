// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package history

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/bookforge/internal/build"
	"github.com/pdiddy/bookforge/pkg/types"
)

func newTestStore(t *testing.T) (*Store, string) {
	t.Helper()
	dir := t.TempDir()
	s, err := NewStore(dir, types.HistoryConfig{})
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s, dir
}

func TestNewStoreCreatesDatabase(t *testing.T) {
	_, dir := newTestStore(t)
	_, err := os.Stat(filepath.Join(dir, "index", "builds.db"))
	assert.NoError(t, err)
}

func TestRecordAndRecent(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Record(build.VariantResult{
		Mode:     types.ModeShowProblems,
		Status:   build.StatusBuilt,
		Artifact: "output/test_with_problems.pdf",
		Duration: 1500 * time.Millisecond,
	}, "digest-1"))
	require.NoError(t, s.Record(build.VariantResult{
		Mode:   types.ModeHideProblems,
		Status: build.StatusFailed,
		Err:    errors.New("emergency stop"),
	}, "digest-1"))

	entries, err := s.Recent(ctx, 0)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	// Newest first.
	assert.Equal(t, types.ModeHideProblems, entries[0].Mode)
	assert.Equal(t, string(build.StatusFailed), entries[0].Status)
	assert.Equal(t, "emergency stop", entries[0].Error)

	assert.Equal(t, types.ModeShowProblems, entries[1].Mode)
	assert.Equal(t, "output/test_with_problems.pdf", entries[1].Artifact)
	assert.Equal(t, 1500*time.Millisecond, entries[1].Duration)
	assert.Equal(t, "digest-1", entries[1].Digest)
	assert.False(t, entries[1].CreatedAt.IsZero())
}

func TestRecentLimit(t *testing.T) {
	s, _ := newTestStore(t)
	for i := 0; i < 5; i++ {
		require.NoError(t, s.Record(build.VariantResult{
			Mode:   types.ModeShowProblems,
			Status: build.StatusBuilt,
		}, "d"))
	}

	entries, err := s.Recent(context.Background(), 3)
	require.NoError(t, err)
	assert.Len(t, entries, 3)
}

func TestLastDigest(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	// Nothing recorded yet.
	digest, err := s.LastDigest(ctx, types.ModeShowProblems)
	require.NoError(t, err)
	assert.Empty(t, digest)

	require.NoError(t, s.Record(build.VariantResult{
		Mode:   types.ModeShowProblems,
		Status: build.StatusBuilt,
	}, "old"))
	require.NoError(t, s.Record(build.VariantResult{
		Mode:   types.ModeShowProblems,
		Status: build.StatusBuilt,
	}, "new"))
	// Failed passes never win.
	require.NoError(t, s.Record(build.VariantResult{
		Mode:   types.ModeShowProblems,
		Status: build.StatusFailed,
		Err:    errors.New("boom"),
	}, "broken"))

	digest, err = s.LastDigest(ctx, types.ModeShowProblems)
	require.NoError(t, err)
	assert.Equal(t, "new", digest)

	// The other mode is independent.
	digest, err = s.LastDigest(ctx, types.ModeHideProblems)
	require.NoError(t, err)
	assert.Empty(t, digest)
}

func TestStoreReopens(t *testing.T) {
	dir := t.TempDir()

	s, err := NewStore(dir, types.HistoryConfig{})
	require.NoError(t, err)
	require.NoError(t, s.Record(build.VariantResult{
		Mode:   types.ModeHideProblems,
		Status: build.StatusBuilt,
	}, "d"))
	require.NoError(t, s.Close())

	s2, err := NewStore(dir, types.HistoryConfig{})
	require.NoError(t, err)
	defer s2.Close()

	entries, err := s2.Recent(context.Background(), 0)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

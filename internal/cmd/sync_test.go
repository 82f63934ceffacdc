package cmd

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shipit/internal/config"
	"shipit/internal/execx"
	"shipit/internal/exitcode"
)

func syncConfig() *config.Config {
	return &config.Config{DevBranch: "dev", MainBranch: "mainline"}
}

func TestSyncBranches_CommandSequence(t *testing.T) {
	dir := setupTestRepo(t)

	fake := &execx.FakeRunner{}
	repo := openWithFake(t, dir, fake)

	start, err := repo.CurrentBranch()
	require.NoError(t, err)

	require.NoError(t, syncBranches(context.Background(), syncConfig(), repo))

	assert.Equal(t, []string{
		"git rev-parse --show-toplevel",
		"git fetch --prune",
		"git checkout dev",
		"git pull --ff-only",
		"git checkout mainline",
		"git pull --ff-only",
		"git merge --no-ff dev",
		"git push",
		"git checkout " + start,
	}, fake.CommandLines())
}

func TestSyncBranches_DirtyTreeAborts(t *testing.T) {
	dir := setupTestRepo(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "README.md"), []byte("# Dirty\n"), 0o644))

	fake := &execx.FakeRunner{}
	repo := openWithFake(t, dir, fake)

	err := syncBranches(context.Background(), syncConfig(), repo)
	require.Error(t, err)
	assert.Equal(t, exitcode.UncommittedChanges, exitcode.From(err))

	// no branch was touched
	for _, line := range fake.CommandLines() {
		assert.NotContains(t, line, "git checkout")
	}
}

func TestSyncBranches_FastForwardFailure(t *testing.T) {
	dir := setupTestRepo(t)

	fake := &execx.FakeRunner{
		Responses: []execx.FakeResponse{
			{Prefix: "git pull --ff-only", Err: errors.New("fatal: not possible to fast-forward")},
		},
	}
	repo := openWithFake(t, dir, fake)

	err := syncBranches(context.Background(), syncConfig(), repo)
	require.Error(t, err)
	assert.Equal(t, exitcode.FastForwardFailed, exitcode.From(err))

	lines := fake.CommandLines()
	assert.NotContains(t, lines, "git merge --no-ff dev")
	assert.NotContains(t, lines, "git push")
}

func TestSyncBranches_MergeFailure(t *testing.T) {
	dir := setupTestRepo(t)

	fake := &execx.FakeRunner{
		Responses: []execx.FakeResponse{
			{Prefix: "git merge --no-ff", Err: errors.New("CONFLICT (content)")},
		},
	}
	repo := openWithFake(t, dir, fake)

	err := syncBranches(context.Background(), syncConfig(), repo)
	require.Error(t, err)
	assert.Equal(t, exitcode.MergeFailed, exitcode.From(err))
	assert.NotContains(t, fake.CommandLines(), "git push")
}

func TestSyncBranches_PushFailure(t *testing.T) {
	dir := setupTestRepo(t)

	fake := &execx.FakeRunner{
		Responses: []execx.FakeResponse{
			{Prefix: "git push", Err: errors.New("remote rejected")},
		},
	}
	repo := openWithFake(t, dir, fake)

	err := syncBranches(context.Background(), syncConfig(), repo)
	require.Error(t, err)
	assert.Equal(t, exitcode.PushFailed, exitcode.From(err))
}

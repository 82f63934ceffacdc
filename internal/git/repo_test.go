package git

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shipit/internal/execx"
)

func setupTestRepo(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()

	run := func(args ...string) {
		t.Helper()
		cmd := exec.Command("git", args...)
		cmd.Dir = dir
		require.NoError(t, cmd.Run(), "git %v", args)
	}

	run("init")
	run("config", "user.email", "test@test.com")
	run("config", "user.name", "Test User")

	readme := filepath.Join(dir, "README.md")
	require.NoError(t, os.WriteFile(readme, []byte("# Test\n"), 0o644))
	run("add", "README.md")
	run("commit", "-m", "Initial commit")

	return dir
}

func TestOpen(t *testing.T) {
	dir := setupTestRepo(t)

	repo, err := Open(dir, execx.New())
	require.NoError(t, err)
	assert.NotEmpty(t, repo.Root())
}

func TestOpen_NotARepository(t *testing.T) {
	_, err := Open(t.TempDir(), execx.New())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a git repository")
}

func TestOpen_Subdirectory(t *testing.T) {
	dir := setupTestRepo(t)
	sub := filepath.Join(dir, "Sources", "App")
	require.NoError(t, os.MkdirAll(sub, 0o755))

	repo, err := Open(sub, execx.New())
	require.NoError(t, err)
	// root resolves to the repository top level, not the subdirectory
	assert.NotEqual(t, sub, repo.Root())
}

func TestCurrentBranch(t *testing.T) {
	dir := setupTestRepo(t)

	repo, err := Open(dir, execx.New())
	require.NoError(t, err)

	branch, err := repo.CurrentBranch()
	require.NoError(t, err)
	assert.Contains(t, []string{"main", "master"}, branch)
}

func TestHasUncommittedChanges(t *testing.T) {
	dir := setupTestRepo(t)

	repo, err := Open(dir, execx.New())
	require.NoError(t, err)

	dirty, err := repo.HasUncommittedChanges()
	require.NoError(t, err)
	assert.False(t, dirty)

	// untracked files do not count
	require.NoError(t, os.WriteFile(filepath.Join(dir, "scratch.txt"), []byte("x"), 0o644))
	dirty, err = repo.HasUncommittedChanges()
	require.NoError(t, err)
	assert.False(t, dirty)

	// modified tracked files do
	require.NoError(t, os.WriteFile(filepath.Join(dir, "README.md"), []byte("# Changed\n"), 0o644))
	dirty, err = repo.HasUncommittedChanges()
	require.NoError(t, err)
	assert.True(t, dirty)
}

func TestLocalBranchExists(t *testing.T) {
	dir := setupTestRepo(t)

	cmd := exec.Command("git", "branch", "feature/x")
	cmd.Dir = dir
	require.NoError(t, cmd.Run())

	repo, err := Open(dir, execx.New())
	require.NoError(t, err)

	assert.True(t, repo.LocalBranchExists("feature/x"))
	assert.False(t, repo.LocalBranchExists("feature/y"))
}

func TestDeleteLocalBranch(t *testing.T) {
	dir := setupTestRepo(t)

	cmd := exec.Command("git", "branch", "stale")
	cmd.Dir = dir
	require.NoError(t, cmd.Run())

	repo, err := Open(dir, execx.New())
	require.NoError(t, err)

	require.NoError(t, repo.DeleteLocalBranch(context.Background(), "stale"))
	assert.False(t, repo.LocalBranchExists("stale"))

	// deleting a branch that does not exist is a no-op
	require.NoError(t, repo.DeleteLocalBranch(context.Background(), "stale"))
}

func TestGitCommandsGoThroughRunner(t *testing.T) {
	dir := setupTestRepo(t)

	fake := &execx.FakeRunner{
		Responses: []execx.FakeResponse{
			{Prefix: "git rev-parse --show-toplevel", Stdout: dir},
			{Prefix: "git rev-list --count", Stdout: "2"},
		},
	}
	repo, err := Open(dir, fake)
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, repo.Fetch(ctx))
	require.NoError(t, repo.Checkout(ctx, "dev"))
	require.NoError(t, repo.Push(ctx))
	require.NoError(t, repo.PullFastForward(ctx))
	require.NoError(t, repo.MergeNoFF(ctx, "dev"))

	ahead, err := repo.AheadOfUpstream(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, ahead)

	lines := fake.CommandLines()
	assert.Contains(t, lines, "git fetch --prune")
	assert.Contains(t, lines, "git checkout dev")
	assert.Contains(t, lines, "git push")
	assert.Contains(t, lines, "git pull --ff-only")
	assert.Contains(t, lines, "git merge --no-ff dev")
}

func TestAheadOfUpstream_NoUpstream(t *testing.T) {
	dir := setupTestRepo(t)

	repo, err := Open(dir, execx.New())
	require.NoError(t, err)

	// the test repo has no remote, so @{u} does not resolve
	ahead, err := repo.AheadOfUpstream(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, ahead)
}

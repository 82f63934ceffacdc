// Package git provides git operations for shipit.
//
// Repository inspection (status, branches, ahead counts) goes through go-git;
// anything touching the network or rewriting the worktree (fetch, checkout,
// push, pull, merge) shells out to the git CLI so the user's credentials,
// hooks and merge drivers behave exactly as they do in a terminal.
package git

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"

	"shipit/internal/debug"
	"shipit/internal/execx"
)

// Repo represents an opened git repository rooted at a fixed path.
type Repo struct {
	repo   *gogit.Repository
	root   string
	runner execx.Runner
}

// Open opens the repository containing dir, walking up parent directories.
// Returns an error if dir is not inside a git repository.
func Open(dir string, runner execx.Runner) (*Repo, error) {
	r, err := gogit.PlainOpenWithOptions(dir, &gogit.PlainOpenOptions{
		DetectDotGit:          true,
		EnableDotGitCommonDir: true,
	})
	if err != nil {
		return nil, fmt.Errorf("not a git repository: %s: %w", dir, err)
	}

	root, err := runner.Output(context.Background(), dir, "git", "rev-parse", "--show-toplevel")
	if err != nil {
		return nil, fmt.Errorf("resolve repository root at %s: %w", dir, err)
	}

	return &Repo{repo: r, root: root, runner: runner}, nil
}

// Root returns the repository root directory.
func (r *Repo) Root() string {
	return r.root
}

// CurrentBranch returns the name of the checked-out branch.
func (r *Repo) CurrentBranch() (string, error) {
	head, err := r.repo.Head()
	if err != nil {
		return "", fmt.Errorf("get HEAD: %w", err)
	}
	return head.Name().Short(), nil
}

// HasUncommittedChanges reports whether any tracked file is modified or
// staged. Untracked files do not count: they cannot be lost by a push.
func (r *Repo) HasUncommittedChanges() (bool, error) {
	wt, err := r.repo.Worktree()
	if err != nil {
		return false, fmt.Errorf("get worktree: %w", err)
	}
	status, err := wt.Status()
	if err != nil {
		return false, fmt.Errorf("git status: %w", err)
	}
	for _, s := range status {
		if s.Staging == gogit.Untracked && s.Worktree == gogit.Untracked {
			continue
		}
		if s.Staging != gogit.Unmodified || s.Worktree != gogit.Unmodified {
			return true, nil
		}
	}
	return false, nil
}

// LocalBranchExists reports whether a local branch with the given name exists.
func (r *Repo) LocalBranchExists(branch string) bool {
	_, err := r.repo.Reference(plumbing.NewBranchReferenceName(branch), true)
	return err == nil
}

// AheadOfUpstream returns the number of local commits not yet pushed to the
// upstream of the current branch. A branch without an upstream counts as
// zero ahead, so callers skip the push; the PR checkout path always sets
// an upstream before this is consulted.
func (r *Repo) AheadOfUpstream(ctx context.Context) (int, error) {
	out, err := r.runner.Output(ctx, r.root, "git", "rev-list", "--count", "@{u}..HEAD")
	if err != nil {
		if strings.Contains(err.Error(), "no upstream") {
			return 0, nil
		}
		return 0, fmt.Errorf("count unpushed commits: %w", err)
	}
	n, err := strconv.Atoi(strings.TrimSpace(out))
	if err != nil {
		return 0, fmt.Errorf("parse rev-list output %q: %w", out, err)
	}
	return n, nil
}

// Fetch updates remote-tracking branches.
func (r *Repo) Fetch(ctx context.Context) error {
	_, err := r.runner.Output(ctx, r.root, "git", "fetch", "--prune")
	return err
}

// Checkout switches to an existing branch.
func (r *Repo) Checkout(ctx context.Context, branch string) error {
	_, err := r.runner.Output(ctx, r.root, "git", "checkout", branch)
	return err
}

// DeleteLocalBranch force-deletes a local branch. Deleting a branch that
// does not exist is not an error.
func (r *Repo) DeleteLocalBranch(ctx context.Context, branch string) error {
	if !r.LocalBranchExists(branch) {
		return nil
	}
	debug.Logf("deleting local branch %s", branch)
	_, err := r.runner.Output(ctx, r.root, "git", "branch", "-D", branch)
	return err
}

// Push pushes the current branch to its upstream.
func (r *Repo) Push(ctx context.Context) error {
	_, err := r.runner.Output(ctx, r.root, "git", "push")
	return err
}

// PullFastForward updates the current branch, failing if histories diverged.
func (r *Repo) PullFastForward(ctx context.Context) error {
	_, err := r.runner.Output(ctx, r.root, "git", "pull", "--ff-only")
	return err
}

// MergeNoFF merges branch into the current branch with a merge commit.
func (r *Repo) MergeNoFF(ctx context.Context, branch string) error {
	_, err := r.runner.Output(ctx, r.root, "git", "merge", "--no-ff", branch)
	return err
}

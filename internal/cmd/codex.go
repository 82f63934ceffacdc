package cmd

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"shipit/internal/cli"
	"shipit/internal/config"
	"shipit/internal/debug"
	"shipit/internal/execx"
	"shipit/internal/exitcode"
	"shipit/internal/gh"
	"shipit/internal/git"
)

var codexResume bool

var codexCmd = &cobra.Command{
	Use:   "codex [PR]",
	Short: "Fetch, verify and merge a pull request",
	Long: `Codex runs the full pull-request flow: resolve the target PR (explicit
number, or the first open PR carrying the configured label), check out
its branch, build or test it, push any local commits, merge the PR
(auto-merge with a direct-merge fallback), and fast-forward the base
branch to the merged result.

With --resume the checkout is skipped and the flow continues on the
current branch.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var number int
		if len(args) == 1 {
			n, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid PR number %q", args[0])
			}
			number = n
		}
		return runCodex(cmd.Context(), number, codexResume)
	},
}

func init() {
	codexCmd.Flags().BoolVar(&codexResume, "resume", false, "Continue the flow on the current branch without re-checkout")
}

func runCodex(ctx context.Context, number int, resume bool) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	runner := execx.New()
	repo, err := openRepo(runner)
	if err != nil {
		return err
	}
	client := gh.NewClient(runner, repo.Root())

	pr, err := resolvePR(ctx, client, cfg, number)
	if err != nil {
		return err
	}
	cli.Stepf("PR #%d: %s (%s -> %s)", pr.Number, pr.Title, pr.HeadRef, pr.BaseRef)

	if !resume {
		// A stale local branch with the PR's head name would collide with
		// the checkout, so it is deleted first.
		if err := cleanupCollidingBranch(ctx, repo, pr.HeadRef); err != nil {
			return err
		}
		if err := client.Checkout(ctx, pr.Number); err != nil {
			return err
		}
	} else if number != 0 {
		// Resume with an explicit PR number still cleans up; without one the
		// label lookup could target the wrong PR when run off a PR branch,
		// so cleanup is skipped entirely in that case.
		if err := cleanupCollidingBranch(ctx, repo, pr.HeadRef); err != nil {
			return err
		}
	} else {
		debug.Logf("resume without explicit PR number, skipping branch cleanup")
	}

	if err := runBuild(ctx, cfg, runner, repo.Root()); err != nil {
		return err
	}

	if err := pushIfAhead(ctx, repo); err != nil {
		return err
	}

	return finishPR(ctx, client, repo, pr, cfg.DevBranch)
}

// finishPR merges the pull request and, only after the merge succeeded,
// fast-forwards its base branch to the merged result.
func finishPR(ctx context.Context, client *gh.Client, repo *git.Repo, pr gh.PR, fallbackBase string) error {
	if err := client.Merge(ctx, pr.Number); err != nil {
		return exitcode.Wrap(exitcode.MergeFailed, err)
	}
	cli.Successf("merged PR #%d", pr.Number)

	base := pr.BaseRef
	if base == "" {
		base = fallbackBase
	}
	if err := syncBase(ctx, repo, base); err != nil {
		return err
	}
	cli.Successf("%s is up to date", base)
	return nil
}

// resolvePR finds the target pull request: the explicit number if given,
// otherwise the first open PR carrying the configured label.
func resolvePR(ctx context.Context, client *gh.Client, cfg *config.Config, number int) (gh.PR, error) {
	if number != 0 {
		pr, err := client.View(ctx, number)
		if err != nil {
			return gh.PR{}, exitcode.Wrap(exitcode.MissingPR, err)
		}
		return pr, nil
	}

	pr, ok, err := client.FirstOpenPRWithLabel(ctx, cfg.PRLabel)
	if err != nil {
		return gh.PR{}, exitcode.Wrap(exitcode.MissingPR, err)
	}
	if !ok {
		return gh.PR{}, exitcode.Errorf(exitcode.MissingPR, "no open PR with label %q", cfg.PRLabel)
	}
	return pr, nil
}

// cleanupCollidingBranch deletes a stale local branch matching the PR's
// head branch name, unless it is currently checked out.
func cleanupCollidingBranch(ctx context.Context, repo *git.Repo, headRef string) error {
	current, err := repo.CurrentBranch()
	if err != nil {
		return err
	}
	if current == headRef {
		return nil
	}
	return repo.DeleteLocalBranch(ctx, headRef)
}

// pushIfAhead pushes local commits when the working tree is clean and the
// branch is ahead of its upstream. A dirty tree aborts the flow before
// anything is pushed.
func pushIfAhead(ctx context.Context, repo *git.Repo) error {
	dirty, err := repo.HasUncommittedChanges()
	if err != nil {
		return err
	}
	if dirty {
		return exitcode.Errorf(exitcode.UncommittedChanges, "uncommitted changes in working tree, commit or stash them first")
	}

	ahead, err := repo.AheadOfUpstream(ctx)
	if err != nil {
		return err
	}
	if ahead == 0 {
		return nil
	}

	cli.Stepf("pushing %d local commit(s)", ahead)
	if err := repo.Push(ctx); err != nil {
		return exitcode.Wrap(exitcode.PushFailed, err)
	}
	return nil
}

// syncBase fast-forwards the PR's base branch to the merged result.
func syncBase(ctx context.Context, repo *git.Repo, base string) error {
	if err := repo.Checkout(ctx, base); err != nil {
		return err
	}
	if err := repo.PullFastForward(ctx); err != nil {
		return exitcode.Wrap(exitcode.FastForwardFailed, err)
	}
	return nil
}

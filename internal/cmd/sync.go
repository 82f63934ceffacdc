package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"shipit/internal/cli"
	"shipit/internal/config"
	"shipit/internal/debug"
	"shipit/internal/execx"
	"shipit/internal/exitcode"
	"shipit/internal/git"
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Synchronize the main branch with the development branch",
	Long: `Sync fast-forwards both long-lived branches and merges the development
branch into the main branch with a merge commit, then pushes the
result. Branch names come from SHIPIT_DEV_BRANCH and SHIPIT_MAIN_BRANCH
(defaults: dev, main). The previously checked-out branch is restored
afterwards.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		repo, err := openRepo(execx.New())
		if err != nil {
			return err
		}
		return syncBranches(cmd.Context(), cfg, repo)
	},
}

// syncBranches updates both long-lived branches and folds the development
// branch into the main branch: fetch, ff-only pull of each branch, no-ff
// merge, push. A dirty tree aborts before any branch is switched.
func syncBranches(ctx context.Context, cfg *config.Config, repo *git.Repo) error {
	dirty, err := repo.HasUncommittedChanges()
	if err != nil {
		return err
	}
	if dirty {
		return exitcode.Errorf(exitcode.UncommittedChanges, "uncommitted changes in working tree, commit or stash them first")
	}

	startBranch, err := repo.CurrentBranch()
	if err != nil {
		return err
	}

	if err := repo.Fetch(ctx); err != nil {
		return err
	}

	cli.Stepf("updating %s", cfg.DevBranch)
	if err := repo.Checkout(ctx, cfg.DevBranch); err != nil {
		return err
	}
	if err := repo.PullFastForward(ctx); err != nil {
		return exitcode.Wrap(exitcode.FastForwardFailed, err)
	}

	cli.Stepf("updating %s", cfg.MainBranch)
	if err := repo.Checkout(ctx, cfg.MainBranch); err != nil {
		return err
	}
	if err := repo.PullFastForward(ctx); err != nil {
		return exitcode.Wrap(exitcode.FastForwardFailed, err)
	}

	cli.Stepf("merging %s into %s", cfg.DevBranch, cfg.MainBranch)
	if err := repo.MergeNoFF(ctx, cfg.DevBranch); err != nil {
		return exitcode.Wrap(exitcode.MergeFailed, err)
	}
	if err := repo.Push(ctx); err != nil {
		return exitcode.Wrap(exitcode.PushFailed, err)
	}

	if startBranch != cfg.MainBranch {
		if err := repo.Checkout(ctx, startBranch); err != nil {
			debug.Logf("restore branch %s: %v", startBranch, err)
		}
	}

	cli.Successf("%s is in sync with %s", cfg.MainBranch, cfg.DevBranch)
	return nil
}

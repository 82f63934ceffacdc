package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"shipit/internal/cli"
	"shipit/internal/config"
	"shipit/internal/debug"
	"shipit/internal/execx"
	"shipit/internal/exitcode"
	"shipit/internal/xcode"
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build or test the current project",
	Long: `Build detects the workspace or project in the repository root, picks a
scheme (SHIPIT_SCHEME, config file, or the first listed one), and runs
the test action when the scheme has test targets, the build action
otherwise. On failure the project is opened in Xcode and the captured
log is kept for inspection.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		runner := execx.New()
		repo, err := openRepo(runner)
		if err != nil {
			return err
		}
		return runBuild(cmd.Context(), cfg, runner, repo.Root())
	},
}

// runBuild is the shared build/test step used by both the build and codex
// commands. A failed run exits with the build/test failure code after the
// project has been opened in Xcode.
func runBuild(ctx context.Context, cfg *config.Config, runner execx.Runner, root string) error {
	container, err := xcode.DetectContainer(root)
	if err != nil {
		return err
	}
	cli.Stepf("using %s", container.Path)

	tool := xcode.NewTool(runner, root)

	scheme := cfg.Scheme
	var listing string
	if scheme == "" {
		listing, err = tool.Listing(ctx, container)
		if err != nil {
			return err
		}
		scheme = xcode.FirstScheme(listing)
		if scheme == "" {
			return fmt.Errorf("no scheme found in %s", container.Path)
		}
	} else {
		// A listing failure with an explicit scheme is not fatal: the run
		// falls back to the plain build action.
		listing, err = tool.Listing(ctx, container)
		if err != nil {
			debug.Logf("scheme listing failed, assuming no test targets: %v", err)
			listing = ""
		}
	}
	cli.Stepf("scheme %s", scheme)

	result := tool.Run(ctx, container, scheme, cfg.Destination, listing)
	if result.Err != nil {
		if result.LogPath != "" {
			cli.Errorf("%s failed, log kept at %s", result.Failure, result.LogPath)
		} else {
			cli.Errorf("%s failed", result.Failure)
		}
		if openErr := tool.OpenInIDE(ctx, container); openErr != nil {
			debug.Logf("open project in Xcode: %v", openErr)
		}
		return exitcode.Errorf(exitcode.BuildFailed, "%s failed: %v", result.Failure, result.Err)
	}

	if result.Tested {
		cli.Successf("tests passed")
	} else {
		cli.Successf("build succeeded")
	}
	return nil
}

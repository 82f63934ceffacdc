// Package cmd implements the CLI commands for shipit.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"shipit/internal/config"
	"shipit/internal/execx"
	"shipit/internal/git"
)

var rootCmd = &cobra.Command{
	Use:   "shipit",
	Short: "Personal build and pull-request workflow helper",
	Long: `Shipit automates a single-operator development workflow: build or test
the current Xcode project, fetch and merge a pull request, keep the
long-lived branches synchronized, and update itself.

It orchestrates git, the GitHub CLI (gh) and xcodebuild; it keeps no
state of its own.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// SetVersionInfo sets the version string shown by --version.
func SetVersionInfo(version, commit, date string) {
	rootCmd.Version = fmt.Sprintf("%s (commit %s, built %s)", version, commit, date)
}

func init() {
	rootCmd.AddCommand(buildCmd)
	rootCmd.AddCommand(codexCmd)
	rootCmd.AddCommand(debugCmd)
	rootCmd.AddCommand(installCmd)
	rootCmd.AddCommand(syncCmd)
	rootCmd.AddCommand(updateCmd)
}

// openRepo resolves the repository containing the current working directory.
// Every command that touches git goes through this so the root path is
// resolved exactly once per invocation.
func openRepo(runner execx.Runner) (*git.Repo, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("get working directory: %w", err)
	}
	return git.Open(wd, runner)
}

// loadConfig resolves the immutable per-invocation configuration.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}
	return cfg, nil
}

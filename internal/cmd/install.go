package cmd

import (
	"github.com/spf13/cobra"

	"shipit/internal/cli"
	"shipit/internal/execx"
)

var installCmd = &cobra.Command{
	Use:   "install",
	Short: "Install the GitHub CLI dependency",
	Long:  `Install installs gh via Homebrew. git and xcodebuild ship with Xcode.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		if execx.LookPath("gh") {
			cli.Successf("gh is already installed")
			return nil
		}
		runner := execx.New()
		if err := runner.Run(cmd.Context(), "", "brew", "install", "gh"); err != nil {
			return err
		}
		cli.Successf("gh installed")
		return nil
	},
}

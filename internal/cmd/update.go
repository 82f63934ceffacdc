package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"shipit/internal/cli"
	"shipit/internal/exitcode"
	"shipit/internal/update"
)

var updateLocal string

var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Replace the installed shipit binary",
	Long: `Update downloads the latest release binary and replaces the running
executable. With --local the binary is copied from a local path instead
(useful after building from source). A failed download or copy leaves
the installed binary untouched.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		dest, err := executablePath()
		if err != nil {
			return err
		}

		if cmd.Flags().Changed("local") {
			src := updateLocal
			if src == "" {
				src = "shipit"
			}
			if err := update.FromLocal(src, dest); err != nil {
				return exitcode.Wrap(exitcode.CopyFailed, err)
			}
			cli.Successf("replaced %s from %s", dest, src)
			return nil
		}

		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		cli.Stepf("downloading %s", cfg.UpdateURL)
		if err := update.FromURL(cmd.Context(), cfg.UpdateURL, dest); err != nil {
			return exitcode.Wrap(exitcode.DownloadFailed, err)
		}
		cli.Successf("updated %s", dest)
		return nil
	},
}

func init() {
	updateCmd.Flags().StringVar(&updateLocal, "local", "", "Copy the binary from a local path instead of downloading (default \"shipit\")")
	updateCmd.Flags().Lookup("local").NoOptDefVal = "shipit"
}

// executablePath resolves the path of the running binary, following the
// symlink Homebrew and friends typically put on PATH.
func executablePath() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("locate running executable: %w", err)
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return exe, nil
}

package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"shipit/internal/execx"
	"shipit/internal/xcode"
)

var debugCmd = &cobra.Command{
	Use:   "debug",
	Short: "Print resolved configuration and detected targets",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runDebug(cmd.Context(), cmd)
	},
}

func runDebug(ctx context.Context, cmd *cobra.Command) error {
	out := cmd.OutOrStdout()
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	fmt.Fprintln(out, "config:")
	fmt.Fprintf(out, "  scheme:       %s\n", orAuto(cfg.Scheme))
	fmt.Fprintf(out, "  destination:  %s\n", cfg.Destination)
	fmt.Fprintf(out, "  dev branch:   %s\n", cfg.DevBranch)
	fmt.Fprintf(out, "  main branch:  %s\n", cfg.MainBranch)
	fmt.Fprintf(out, "  pr label:     %s\n", cfg.PRLabel)
	fmt.Fprintf(out, "  update url:   %s\n", cfg.UpdateURL)
	fmt.Fprintf(out, "  sources:      %s\n", strings.Join(cfg.Sources(), ", "))

	runner := execx.New()

	fmt.Fprintln(out, "tools:")
	for _, tool := range []struct {
		name string
		args []string
	}{
		{"git", []string{"--version"}},
		{"gh", []string{"--version"}},
		{"xcodebuild", []string{"-version"}},
	} {
		version, err := runner.Output(ctx, "", tool.name, tool.args...)
		if err != nil {
			fmt.Fprintf(out, "  %-12s not available\n", tool.name)
			continue
		}
		fmt.Fprintf(out, "  %-12s %s\n", tool.name, firstLine(version))
	}

	repo, err := openRepo(runner)
	if err != nil {
		fmt.Fprintf(out, "repository: %v\n", err)
		return nil
	}
	fmt.Fprintf(out, "repository: %s\n", repo.Root())

	branch, err := repo.CurrentBranch()
	if err == nil {
		fmt.Fprintf(out, "  branch:     %s\n", branch)
	}

	container, err := xcode.DetectContainer(repo.Root())
	if err != nil {
		fmt.Fprintf(out, "  container:  %v\n", err)
		return nil
	}
	fmt.Fprintf(out, "  container:  %s\n", container.Path)

	listing, err := xcode.NewTool(runner, repo.Root()).Listing(ctx, container)
	if err != nil {
		fmt.Fprintf(out, "  schemes:    %v\n", err)
		return nil
	}
	fmt.Fprintf(out, "  scheme:     %s (auto-detected)\n", xcode.FirstScheme(listing))
	fmt.Fprintf(out, "  tests:      %t\n", xcode.HasTestTargets(listing))
	return nil
}

func orAuto(s string) string {
	if s == "" {
		return "(auto-detect)"
	}
	return s
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}

package xcode

import (
	"context"
	"fmt"
	"strings"

	"shipit/internal/execx"
)

// Tool runs xcodebuild inside a project directory.
type Tool struct {
	runner execx.Runner
	dir    string
}

// NewTool returns a Tool operating in dir.
func NewTool(runner execx.Runner, dir string) *Tool {
	return &Tool{runner: runner, dir: dir}
}

// Listing fetches the raw `xcodebuild -list` output for the container.
func (t *Tool) Listing(ctx context.Context, c Container) (string, error) {
	args := append(c.Args(), "-list")
	out, err := t.runner.Output(ctx, t.dir, "xcodebuild", args...)
	if err != nil {
		return "", fmt.Errorf("list schemes: %w", err)
	}
	return out, nil
}

// FirstScheme returns the first scheme named in a -list output, or "" if
// the listing has no Schemes section.
func FirstScheme(listing string) string {
	inSchemes := false
	for _, line := range strings.Split(listing, "\n") {
		trimmed := strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(trimmed, "Schemes:"):
			inSchemes = true
		case inSchemes && trimmed == "":
			inSchemes = false
		case inSchemes:
			return trimmed
		}
	}
	return ""
}

// HasTestTargets reports whether the listing suggests the scheme has test
// targets. Two checks, in order: a target name in the Targets section with
// a "Tests" suffix, then a plain substring scan of the whole listing as a
// fallback for listings without a Targets section (workspaces).
func HasTestTargets(listing string) bool {
	inTargets := false
	for _, line := range strings.Split(listing, "\n") {
		trimmed := strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(trimmed, "Targets:"):
			inTargets = true
		case inTargets && trimmed == "":
			inTargets = false
		case inTargets:
			if strings.HasSuffix(trimmed, "Tests") {
				return true
			}
		}
	}
	return strings.Contains(listing, "Tests")
}

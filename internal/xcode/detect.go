// Package xcode drives xcodebuild: workspace/project detection, scheme
// listing, build and test execution, and failure classification.
package xcode

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Container identifies the workspace or project xcodebuild should operate on.
type Container struct {
	Path        string
	IsWorkspace bool
}

// Args returns the xcodebuild arguments selecting this container.
func (c Container) Args() []string {
	if c.IsWorkspace {
		return []string{"-workspace", c.Path}
	}
	return []string{"-project", c.Path}
}

// DetectContainer finds the workspace or project file in dir.
//
// Policy: workspaces are preferred over projects. Within each kind, a file
// whose base name matches the enclosing directory name wins; otherwise the
// first match found is used. Returns an error if dir holds neither.
func DetectContainer(dir string) (Container, error) {
	dirName := filepath.Base(dir)

	workspaces, err := globSorted(dir, "*.xcworkspace")
	if err != nil {
		return Container{}, err
	}
	if pick := pickMatching(workspaces, dirName); pick != "" {
		return Container{Path: pick, IsWorkspace: true}, nil
	}

	projects, err := globSorted(dir, "*.xcodeproj")
	if err != nil {
		return Container{}, err
	}
	if pick := pickMatching(projects, dirName); pick != "" {
		return Container{Path: pick, IsWorkspace: false}, nil
	}

	return Container{}, fmt.Errorf("no workspace or project found in %s", dir)
}

func globSorted(dir, pattern string) ([]string, error) {
	matches, err := filepath.Glob(filepath.Join(dir, pattern))
	if err != nil {
		return nil, fmt.Errorf("scan %s for %s: %w", dir, pattern, err)
	}
	// filepath.Glob returns sorted paths; filter out anything unreadable
	var out []string
	for _, m := range matches {
		if _, err := os.Stat(m); err == nil {
			out = append(out, m)
		}
	}
	return out, nil
}

// pickMatching prefers a candidate whose base name (without extension)
// equals dirName, falling back to the first candidate.
func pickMatching(candidates []string, dirName string) string {
	if len(candidates) == 0 {
		return ""
	}
	for _, c := range candidates {
		base := filepath.Base(c)
		if strings.TrimSuffix(base, filepath.Ext(base)) == dirName {
			return c
		}
	}
	return candidates[0]
}

// Package update replaces the installed shipit binary, either from a
// release download URL or from a locally built copy.
package update

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"shipit/internal/debug"
)

// FromURL downloads url and atomically replaces the binary at destPath.
// The download lands in a temporary file next to the destination first, so
// a failed or empty download leaves the existing binary untouched.
func FromURL(ctx context.Context, url, destPath string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("build request for %s: %w", url, err)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("download %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("download %s: unexpected status %s", url, resp.Status)
	}

	tmp, err := os.CreateTemp(filepath.Dir(destPath), ".shipit-update-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	n, err := io.Copy(tmp, resp.Body)
	if closeErr := tmp.Close(); closeErr != nil && err == nil {
		err = closeErr
	}
	if err != nil {
		return fmt.Errorf("write download: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("download %s: empty response body", url)
	}
	debug.Logf("downloaded %d bytes to %s", n, tmpPath)

	return install(tmpPath, destPath)
}

// FromLocal replaces the binary at destPath with the file at srcPath.
func FromLocal(srcPath, destPath string) error {
	src, err := os.Open(srcPath)
	if err != nil {
		return fmt.Errorf("open %s: %w", srcPath, err)
	}
	defer src.Close()

	tmp, err := os.CreateTemp(filepath.Dir(destPath), ".shipit-update-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	n, err := io.Copy(tmp, src)
	if closeErr := tmp.Close(); closeErr != nil && err == nil {
		err = closeErr
	}
	if err != nil {
		return fmt.Errorf("copy %s: %w", srcPath, err)
	}
	if n == 0 {
		return fmt.Errorf("copy %s: source is empty", srcPath)
	}

	return install(tmpPath, destPath)
}

// install makes the staged file executable and renames it over the
// destination. Rename within the same directory is atomic.
func install(stagedPath, destPath string) error {
	if err := os.Chmod(stagedPath, 0o755); err != nil {
		return fmt.Errorf("chmod %s: %w", stagedPath, err)
	}
	if err := os.Rename(stagedPath, destPath); err != nil {
		return fmt.Errorf("replace %s: %w", destPath, err)
	}
	return nil
}

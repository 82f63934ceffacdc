package xcode

import (
	"context"
	"fmt"
	"os"

	"shipit/internal/debug"
)

// RunResult reports the outcome of a build or test run.
type RunResult struct {
	// Tested is true if the test action ran, false for a plain build.
	Tested bool
	// LogPath is the captured log. Empty after a successful run (the log
	// is deleted on success); populated after a failure for inspection.
	LogPath string
	// Failure classifies a failed run. Only meaningful when Err is set.
	Failure FailureKind
	// Err is the underlying xcodebuild error, nil on success.
	Err error
}

// Run executes the test action if the listing shows test targets, otherwise
// the build action. Output is captured to a temporary log file which is
// removed on success and kept for the user on failure.
func (t *Tool) Run(ctx context.Context, c Container, scheme, destination, listing string) RunResult {
	action := "build"
	tested := false
	args := append(c.Args(), "-scheme", scheme)
	if HasTestTargets(listing) {
		action = "test"
		tested = true
		args = append(args, "-destination", destination)
	}
	args = append(args, action)

	logFile, err := os.CreateTemp("", "shipit-build-*.log")
	if err != nil {
		return RunResult{Tested: tested, Err: fmt.Errorf("create build log: %w", err)}
	}
	logPath := logFile.Name()
	debug.Logf("xcodebuild %s, log at %s", action, logPath)

	runErr := t.runner.RunLogged(ctx, t.dir, logFile, "xcodebuild", args...)
	if closeErr := logFile.Close(); closeErr != nil && runErr == nil {
		runErr = fmt.Errorf("close build log: %w", closeErr)
	}

	if runErr != nil {
		return RunResult{
			Tested:  tested,
			LogPath: logPath,
			Failure: ClassifyFailure(TailOfFile(logPath)),
			Err:     runErr,
		}
	}

	if err := os.Remove(logPath); err != nil {
		debug.Logf("remove build log %s: %v", logPath, err)
	}
	return RunResult{Tested: tested}
}

// OpenInIDE opens the container in Xcode for manual inspection.
func (t *Tool) OpenInIDE(ctx context.Context, c Container) error {
	_, err := t.runner.Output(ctx, t.dir, "open", c.Path)
	return err
}

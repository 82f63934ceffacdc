// Package execx abstracts external command execution so callers can be
// tested without spawning processes.
package execx

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"shipit/internal/debug"
)

// Runner runs external commands in a given working directory.
type Runner interface {
	// Output runs the command and returns its trimmed stdout.
	// On a non-zero exit the error includes captured stderr.
	Output(ctx context.Context, dir, name string, args ...string) (string, error)

	// Run runs the command with stdio inherited from the parent process.
	Run(ctx context.Context, dir, name string, args ...string) error

	// RunLogged runs the command with stdout and stderr written to w.
	RunLogged(ctx context.Context, dir string, w io.Writer, name string, args ...string) error
}

// execRunner is the default Runner backed by os/exec.
type execRunner struct{}

// New returns the default process-spawning Runner.
func New() Runner {
	return execRunner{}
}

func (execRunner) Output(ctx context.Context, dir, name string, args ...string) (string, error) {
	debug.Logf("exec: %s %s (dir=%s)", name, strings.Join(args, " "), dir)
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			msg = strings.TrimSpace(stdout.String())
		}
		if msg != "" {
			return "", fmt.Errorf("%s %s: %w: %s", name, strings.Join(args, " "), err, msg)
		}
		return "", fmt.Errorf("%s %s: %w", name, strings.Join(args, " "), err)
	}
	return strings.TrimSpace(stdout.String()), nil
}

func (execRunner) Run(ctx context.Context, dir, name string, args ...string) error {
	debug.Logf("exec: %s %s (dir=%s)", name, strings.Join(args, " "), dir)
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%s %s: %w", name, strings.Join(args, " "), err)
	}
	return nil
}

func (execRunner) RunLogged(ctx context.Context, dir string, w io.Writer, name string, args ...string) error {
	debug.Logf("exec (logged): %s %s (dir=%s)", name, strings.Join(args, " "), dir)
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	cmd.Stdout = w
	cmd.Stderr = w

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%s %s: %w", name, strings.Join(args, " "), err)
	}
	return nil
}

// LookPath reports whether an executable is available on PATH.
func LookPath(name string) bool {
	_, err := exec.LookPath(name)
	return err == nil
}

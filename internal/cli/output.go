// Package cli provides terminal output helpers for shipit.
package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
)

var (
	errMark  = color.New(color.FgRed, color.Bold).Sprint("✗")
	okMark   = color.New(color.FgGreen, color.Bold).Sprint("✓")
	stepMark = color.New(color.FgCyan).Sprint("→")

	// Out and ErrOut are swappable for tests.
	Out    io.Writer = os.Stdout
	ErrOut io.Writer = os.Stderr
)

// Errorf prints a failure line to the error stream.
func Errorf(format string, args ...any) {
	fmt.Fprintf(ErrOut, "%s %s\n", errMark, fmt.Sprintf(format, args...))
}

// Successf prints a success line to the output stream.
func Successf(format string, args ...any) {
	fmt.Fprintf(Out, "%s %s\n", okMark, fmt.Sprintf(format, args...))
}

// Stepf prints a progress line to the output stream.
func Stepf(format string, args ...any) {
	fmt.Fprintf(Out, "%s %s\n", stepMark, fmt.Sprintf(format, args...))
}

package execx

import (
	"context"
	"fmt"
	"io"
	"strings"
)

// Call records a single command invocation made through a FakeRunner.
type Call struct {
	Dir  string
	Name string
	Args []string
}

// String renders the call as a shell-like line, used by tests for matching.
func (c Call) String() string {
	return strings.TrimSpace(c.Name + " " + strings.Join(c.Args, " "))
}

// FakeRunner is a scripted Runner for tests. Responses are matched by
// command-line prefix; unmatched commands succeed with empty output.
type FakeRunner struct {
	Calls     []Call
	Responses []FakeResponse
}

// FakeResponse scripts the result for commands whose rendered line starts
// with Prefix.
type FakeResponse struct {
	Prefix string
	Stdout string
	Err    error
}

func (f *FakeRunner) record(dir, name string, args []string) Call {
	call := Call{Dir: dir, Name: name, Args: args}
	f.Calls = append(f.Calls, call)
	return call
}

func (f *FakeRunner) respond(call Call) (string, error) {
	line := call.String()
	for _, r := range f.Responses {
		if strings.HasPrefix(line, r.Prefix) {
			return r.Stdout, r.Err
		}
	}
	return "", nil
}

// Output implements Runner.
func (f *FakeRunner) Output(_ context.Context, dir, name string, args ...string) (string, error) {
	return f.respond(f.record(dir, name, args))
}

// Run implements Runner.
func (f *FakeRunner) Run(_ context.Context, dir, name string, args ...string) error {
	_, err := f.respond(f.record(dir, name, args))
	return err
}

// RunLogged implements Runner.
func (f *FakeRunner) RunLogged(_ context.Context, dir string, w io.Writer, name string, args ...string) error {
	out, err := f.respond(f.record(dir, name, args))
	if out != "" {
		fmt.Fprint(w, out)
	}
	return err
}

// CommandLines returns every recorded call rendered as a shell-like line.
func (f *FakeRunner) CommandLines() []string {
	lines := make([]string, 0, len(f.Calls))
	for _, c := range f.Calls {
		lines = append(lines, c.String())
	}
	return lines
}

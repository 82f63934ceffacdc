// Package gh wraps the GitHub CLI for pull-request operations.
package gh

import (
	"context"
	"fmt"
	"strconv"

	"github.com/tidwall/gjson"

	"shipit/internal/debug"
	"shipit/internal/execx"
)

// PR holds the pull-request fields shipit needs.
type PR struct {
	Number  int
	Title   string
	HeadRef string
	BaseRef string
}

// Client runs gh commands inside a repository.
type Client struct {
	runner execx.Runner
	dir    string
}

// NewClient returns a Client operating in the given repository directory.
func NewClient(runner execx.Runner, dir string) *Client {
	return &Client{runner: runner, dir: dir}
}

const prFields = "number,title,headRefName,baseRefName"

func prFromJSON(v gjson.Result) PR {
	return PR{
		Number:  int(v.Get("number").Int()),
		Title:   v.Get("title").String(),
		HeadRef: v.Get("headRefName").String(),
		BaseRef: v.Get("baseRefName").String(),
	}
}

// FirstOpenPRWithLabel returns the first open pull request carrying label,
// or ok=false if there is none.
func (c *Client) FirstOpenPRWithLabel(ctx context.Context, label string) (PR, bool, error) {
	out, err := c.runner.Output(ctx, c.dir, "gh", "pr", "list",
		"--state", "open",
		"--label", label,
		"--limit", "1",
		"--json", prFields)
	if err != nil {
		return PR{}, false, fmt.Errorf("list pull requests: %w", err)
	}

	list := gjson.Parse(out)
	if !list.IsArray() || len(list.Array()) == 0 {
		return PR{}, false, nil
	}
	pr := prFromJSON(list.Array()[0])
	debug.Logf("resolved PR #%d (%s) via label %q", pr.Number, pr.HeadRef, label)
	return pr, true, nil
}

// View fetches a pull request by number.
func (c *Client) View(ctx context.Context, number int) (PR, error) {
	out, err := c.runner.Output(ctx, c.dir, "gh", "pr", "view",
		strconv.Itoa(number),
		"--json", prFields)
	if err != nil {
		return PR{}, fmt.Errorf("view pull request #%d: %w", number, err)
	}
	return prFromJSON(gjson.Parse(out)), nil
}

// Checkout checks out the pull request's branch locally.
func (c *Client) Checkout(ctx context.Context, number int) error {
	if err := c.runner.Run(ctx, c.dir, "gh", "pr", "checkout", strconv.Itoa(number)); err != nil {
		return fmt.Errorf("checkout pull request #%d: %w", number, err)
	}
	return nil
}

// Merge merges the pull request. It first requests a host-side auto-merge
// (completes once required checks pass); if the host rejects that, it falls
// back to an immediate merge commit.
func (c *Client) Merge(ctx context.Context, number int) error {
	n := strconv.Itoa(number)
	err := c.runner.Run(ctx, c.dir, "gh", "pr", "merge", n, "--auto", "--merge")
	if err == nil {
		return nil
	}
	debug.Logf("auto-merge rejected for #%d, falling back to direct merge: %v", number, err)

	if err := c.runner.Run(ctx, c.dir, "gh", "pr", "merge", n, "--merge"); err != nil {
		return fmt.Errorf("merge pull request #%d: %w", number, err)
	}
	return nil
}

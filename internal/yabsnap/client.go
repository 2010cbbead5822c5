// Package yabsnap shells out to the yabsnap snapshot tool and normalizes
// its results. It is the only place the tool's command line is known.
package yabsnap

import (
	"bufio"
	"context"
	"encoding/json"
	"strings"

	"github.com/melih-ucgun/snapback/internal/catalog"
)

// Client invokes yabsnap subcommands. All calls are synchronous and
// blocking; the caller owns serialization.
type Client struct {
	Bin    string // snapshot tool binary
	Sudo   string // privilege helper prefixed to mutating subcommands
	NoSudo bool   // invoke mutating subcommands directly

	runner Runner
}

func NewClient(bin, sudo string, noSudo bool) *Client {
	if bin == "" {
		bin = "yabsnap"
	}
	if sudo == "" {
		sudo = "sudo"
	}
	return &Client{Bin: bin, Sudo: sudo, NoSudo: noSudo, runner: execRunner{}}
}

// WithRunner replaces the command runner. Test seam.
func (c *Client) WithRunner(r Runner) *Client {
	c.runner = r
	return c
}

// listLine is one stdout line of `yabsnap list-json`.
type listLine struct {
	File struct {
		Prefix    string `json:"prefix"`
		Timestamp string `json:"timestamp"`
	} `json:"file"`
	Comment string `json:"comment"`
	Source  string `json:"source"`
	Trigger string `json:"trigger"`
}

// List retrieves all snapshots in machine-readable form, one JSON object per
// line. A line that fails to parse, or carries a malformed timestamp, fails
// the whole call.
func (c *Client) List(ctx context.Context) ([]catalog.Record, error) {
	out, err := c.runner.Run(ctx, c.Bin, "list-json")
	if err != nil {
		return nil, err
	}
	var records []catalog.Record
	sc := bufio.NewScanner(strings.NewReader(out))
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		var ll listLine
		if err := json.Unmarshal([]byte(line), &ll); err != nil {
			return nil, &ParseError{Line: line, Err: err}
		}
		if _, err := catalog.ParseTimestamp(ll.File.Timestamp); err != nil {
			return nil, &ParseError{Line: line, Err: err}
		}
		records = append(records, catalog.Record{
			Timestamp: ll.File.Timestamp,
			Comment:   ll.Comment,
			Source:    ll.Source,
			Trigger:   ll.Trigger,
			Path:      ll.File.Prefix + ll.File.Timestamp,
		})
	}
	return records, nil
}

// RollbackGen produces the rollback script text for one snapshot.
func (c *Client) RollbackGen(ctx context.Context, timestamp string) (string, error) {
	return c.runner.Run(ctx, c.Bin, "rollback-gen", timestamp)
}

// Create takes a new snapshot of all configured sources.
func (c *Client) Create(ctx context.Context, dryRun bool) error {
	return c.mutate(ctx, dryRun, "create")
}

// CreateRecovery takes a recovery snapshot.
func (c *Client) CreateRecovery(ctx context.Context, dryRun bool) error {
	return c.mutate(ctx, dryRun, "create-recovery")
}

// Delete removes the snapshot with the given timestamp.
func (c *Client) Delete(ctx context.Context, timestamp string, dryRun bool) error {
	return c.mutate(ctx, dryRun, "delete", timestamp)
}

// mutate runs a privileged subcommand. The dry-run modifier is forwarded
// unconditionally when set, never dropped.
func (c *Client) mutate(ctx context.Context, dryRun bool, args ...string) error {
	if dryRun {
		args = append(args, "--dry-run")
	}
	name := c.Bin
	if !c.NoSudo {
		args = append([]string{c.Bin}, args...)
		name = c.Sudo
	}
	_, err := c.runner.Run(ctx, name, args...)
	return err
}

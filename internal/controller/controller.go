// Package controller is the interactive session state machine. It binds
// operator input to catalog refreshes, rollback script generation and
// mutating snapshot commands, independent of any rendering toolkit.
package controller

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/melih-ucgun/snapback/internal/catalog"
	"github.com/melih-ucgun/snapback/internal/rollback"
	"github.com/melih-ucgun/snapback/internal/yabsnap"
)

// State of the interactive session.
type State int

const (
	StateListing State = iota
	StateEmpty
	StateBusy
	StateTerminated
)

// EventKind is one discrete operator intent.
type EventKind int

const (
	EventSelect EventKind = iota
	EventConfirm
	EventCancel
	EventDelete
	EventCreate
	EventCreateRecovery
	EventQuit
)

// Event drives the state machine. Index is only meaningful for EventSelect.
type Event struct {
	Kind  EventKind
	Index int
}

// Screen is the presentation boundary. Any UI that can render an ordered
// list, ask a yes/no question and print notices can drive a session.
type Screen interface {
	// Pick renders the catalog lines with the given highlight and blocks
	// until the operator produces the next event.
	Pick(lines []string, selected int) (Event, error)
	// Ask poses a yes/no question.
	Ask(question string) (bool, error)
	Success(msg string)
	Info(msg string)
	Warn(msg string)
	Error(msg string)
}

// Controller owns the catalog and sequences every external-tool call. One
// event is processed to completion before the next is accepted, so no two
// tool invocations are ever in flight at once.
type Controller struct {
	client   *yabsnap.Client
	pipeline *rollback.Pipeline
	screen   Screen
	filter   *catalog.Filter

	dryRun   bool
	catalog  *catalog.Catalog
	selected int
	state    State
}

func New(client *yabsnap.Client, pipeline *rollback.Pipeline, screen Screen, filter *catalog.Filter, dryRun bool) *Controller {
	return &Controller{
		client:   client,
		pipeline: pipeline,
		screen:   screen,
		filter:   filter,
		dryRun:   dryRun,
		catalog:  &catalog.Catalog{},
		state:    StateListing,
	}
}

// State reports the current session state.
func (c *Controller) State() State { return c.state }

// Run drives the session to termination. It only returns an error on a
// Screen failure; tool failures are notified to the operator and absorbed.
func (c *Controller) Run(ctx context.Context) error {
	if !c.refresh(ctx) {
		// Startup listing failed; there is nothing to browse.
		c.state = StateTerminated
		return nil
	}
	if c.catalog.Empty() {
		c.state = StateEmpty
		c.screen.Info("No snapshots available for rollback.")
		c.state = StateTerminated
		return nil
	}
	for c.state == StateListing {
		ev, err := c.screen.Pick(c.catalog.Lines(), c.selected)
		if err != nil {
			return fmt.Errorf("read input: %w", err)
		}
		c.handle(ctx, ev)
	}
	return nil
}

func (c *Controller) handle(ctx context.Context, ev Event) {
	switch ev.Kind {
	case EventSelect:
		if ev.Index < 0 || ev.Index >= c.catalog.Len() {
			// The screen must only offer valid indices; this is a bug in
			// the presentation layer, not an operator error.
			slog.Error("selection index out of range", "index", ev.Index, "len", c.catalog.Len())
			return
		}
		c.selected = ev.Index
	case EventConfirm:
		c.rollback(ctx)
		// One rollback action ends the session, succeed or fail.
		c.state = StateTerminated
	case EventCancel, EventQuit:
		c.state = StateTerminated
	case EventDelete:
		rec := c.catalog.At(c.selected)
		c.mutate(ctx, "Snapshot "+rec.Timestamp+" deleted", func() error {
			return c.client.Delete(ctx, rec.Timestamp, c.dryRun)
		})
	case EventCreate:
		c.mutate(ctx, "Snapshot created", func() error {
			return c.client.Create(ctx, c.dryRun)
		})
	case EventCreateRecovery:
		c.mutate(ctx, "Recovery snapshot created", func() error {
			return c.client.CreateRecovery(ctx, c.dryRun)
		})
	default:
		slog.Error("unhandled event", "kind", ev.Kind)
	}
}

// rollback runs the one-shot generate, persist, confirm, execute flow for
// the highlighted snapshot.
func (c *Controller) rollback(ctx context.Context) {
	c.state = StateBusy
	rec := c.catalog.At(c.selected)
	script, err := c.pipeline.Generate(ctx, rec.Timestamp)
	if err != nil {
		c.screen.Error("Error generating rollback script:\n" + err.Error())
		return
	}
	if err := c.pipeline.Persist(script); err != nil {
		c.screen.Error(err.Error())
		return
	}
	c.screen.Success("Script saved to " + c.pipeline.OutputPath)
	yes, err := c.screen.Ask("Execute the rollback script now?")
	if err != nil || !yes {
		return
	}
	if err := c.pipeline.Execute(ctx); err != nil {
		c.screen.Error(err.Error())
		return
	}
	c.screen.Success("Rollback script executed successfully.")
}

// mutate runs a catalog-changing action and always refreshes afterwards:
// even a reported failure may have partially changed external state. The
// highlight resets to the first entry after the refresh.
func (c *Controller) mutate(ctx context.Context, successMsg string, action func() error) {
	c.state = StateBusy
	if err := action(); err != nil {
		c.screen.Error(err.Error())
	} else if c.dryRun {
		c.screen.Success(successMsg + " (dry run)")
	} else {
		c.screen.Success(successMsg)
	}
	c.refresh(ctx)
	c.selected = 0
	if c.catalog.Empty() {
		c.state = StateEmpty
		c.screen.Info("No snapshots left.")
		c.state = StateTerminated
		return
	}
	c.state = StateListing
}

// refresh rebuilds the catalog from a fresh listing. On listing failure the
// previous catalog is kept; a stale view beats an empty one.
func (c *Controller) refresh(ctx context.Context) bool {
	records, err := c.client.List(ctx)
	if err != nil {
		c.screen.Error("Error retrieving snapshot list:\n" + err.Error())
		return false
	}
	records, err = c.filter.Apply(records)
	if err != nil {
		c.screen.Error(err.Error())
		return false
	}
	cat, warnings := catalog.Build(records)
	for _, w := range warnings {
		c.screen.Warn(w)
	}
	c.catalog = cat
	return true
}

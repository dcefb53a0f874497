package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/roach88/montage/internal/alias"
	"github.com/roach88/montage/internal/project"
	"github.com/roach88/montage/internal/resolve"
)

// Engine executes commands against the project aggregate and keeps
// exact undo/redo history.
//
// Concurrency model: one logical thread of control. A command executes
// to completion, including awaited sub-steps such as duration probes,
// before the next command is accepted. There is no parallel mutation of
// project state anywhere.
//
// After every successful execute, undo, or redo, the engine runs one
// propagation pass so derived timing (alias references, end lengths,
// total duration) is consistent before control returns to the caller.
type Engine struct {
	env   *Env
	coord *Coordinator
	clock *Clock

	journal Journal
	undo    []Command
	redo    []Command
}

// Journal receives a record of every history transition. Implemented by
// the session store; nil disables journaling.
type Journal interface {
	Record(ctx context.Context, entry JournalEntry) error
}

// JournalEntry is one history transition.
type JournalEntry struct {
	Seq     int64
	Command string
	Op      string // "execute", "undo", or "redo"
	At      time.Time
}

// Option configures an Engine.
type Option func(*Engine)

// WithHost sets the rendering/UI host. Default: NopHost.
func WithHost(h Host) Option {
	return func(e *Engine) {
		e.env.Host = h
	}
}

// WithIDGenerator overrides clip identity generation. Default: UUIDv7.
func WithIDGenerator(g IDGenerator) Option {
	return func(e *Engine) {
		e.env.IDs = g
	}
}

// WithJournal enables command journaling.
func WithJournal(j Journal) Option {
	return func(e *Engine) {
		e.journal = j
	}
}

// New creates an engine owning the given project.
func New(p *project.Project, r *resolve.Resolver, opts ...Option) *Engine {
	e := &Engine{
		env: &Env{
			Project:  p,
			Host:     NopHost{},
			Resolver: r,
			IDs:      UUIDv7Generator{},
		},
		coord: &Coordinator{},
		clock: NewClock(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Project returns the owned aggregate. Callers must not mutate it
// directly; all mutation flows through Execute.
func (e *Engine) Project() *project.Project {
	return e.env.Project
}

// Coordinator exposes the propagation coordinator for state inspection.
func (e *Engine) Coordinator() *Coordinator {
	return e.coord
}

// ResolveAll runs the full resolution pipeline over the project: alias
// references first (so every numeric value is in place), then the
// two-phase smart pass, then one propagation pass. Called at project
// load and after document-level replacements.
func (e *Engine) ResolveAll(ctx context.Context) error {
	if err := alias.Resolve(e.env.Project); err != nil {
		return err
	}
	if err := e.env.Resolver.Resolve(ctx, e.env.Project); err != nil {
		return err
	}
	return e.coord.Propagate(ctx, e.env)
}

// Execute runs a command, propagates derived timing, and pushes the
// command onto the undo history.
//
// Structural errors (stale track/clip indices) are logged and absorbed:
// the call succeeds, nothing is mutated, and nothing reaches history.
// Any other failure rolls the command back so the project never holds a
// partially applied mutation.
func (e *Engine) Execute(ctx context.Context, cmd Command) error {
	if err := cmd.Execute(ctx, e.env); err != nil {
		if errors.Is(err, ErrInvalidIndex) {
			slog.Warn("command addressed a stale index, ignoring",
				"command", cmd.Name(),
				"error", err,
			)
			return nil
		}
		return fmt.Errorf("execute %s: %w", cmd.Name(), err)
	}

	if err := e.coord.Propagate(ctx, e.env); err != nil {
		// The mutation produced an unresolvable project (e.g. a timing
		// update introduced a bad alias). Roll back to the pre-execute
		// snapshot and re-propagate the restored state.
		if uerr := cmd.Undo(ctx, e.env); uerr != nil {
			slog.Error("rollback after failed propagation also failed",
				"command", cmd.Name(),
				"error", uerr,
			)
		} else if perr := e.coord.Propagate(ctx, e.env); perr != nil {
			slog.Error("propagation still failing after rollback",
				"command", cmd.Name(),
				"error", perr,
			)
		}
		return fmt.Errorf("execute %s: %w", cmd.Name(), err)
	}

	e.undo = append(e.undo, cmd)
	e.redo = nil
	e.record(ctx, cmd.Name(), "execute")
	return nil
}

// Undo reverses the most recent command and moves it to the redo stack.
func (e *Engine) Undo(ctx context.Context) error {
	if len(e.undo) == 0 {
		return ErrNothingToUndo
	}
	cmd := e.undo[len(e.undo)-1]

	if err := cmd.Undo(ctx, e.env); err != nil {
		return fmt.Errorf("undo %s: %w", cmd.Name(), err)
	}
	if err := e.coord.Propagate(ctx, e.env); err != nil {
		return fmt.Errorf("undo %s: %w", cmd.Name(), err)
	}

	e.undo = e.undo[:len(e.undo)-1]
	e.redo = append(e.redo, cmd)
	e.record(ctx, cmd.Name(), "undo")
	return nil
}

// Redo re-applies the most recently undone command.
func (e *Engine) Redo(ctx context.Context) error {
	if len(e.redo) == 0 {
		return ErrNothingToRedo
	}
	cmd := e.redo[len(e.redo)-1]

	if err := cmd.Execute(ctx, e.env); err != nil {
		return fmt.Errorf("redo %s: %w", cmd.Name(), err)
	}
	if err := e.coord.Propagate(ctx, e.env); err != nil {
		return fmt.Errorf("redo %s: %w", cmd.Name(), err)
	}

	e.redo = e.redo[:len(e.redo)-1]
	e.undo = append(e.undo, cmd)
	e.record(ctx, cmd.Name(), "redo")
	return nil
}

// CanUndo reports whether the undo stack is non-empty.
func (e *Engine) CanUndo() bool {
	return len(e.undo) > 0
}

// CanRedo reports whether the redo stack is non-empty.
func (e *Engine) CanRedo() bool {
	return len(e.redo) > 0
}

// HistoryLen returns the number of undoable commands.
func (e *Engine) HistoryLen() int {
	return len(e.undo)
}

// record writes a journal entry. Journal failures are logged, never
// fatal: losing a journal line must not fail an edit that already
// applied cleanly.
func (e *Engine) record(ctx context.Context, command, op string) {
	if e.journal == nil {
		return
	}
	entry := JournalEntry{
		Seq:     e.clock.Next(),
		Command: command,
		Op:      op,
		At:      time.Now().UTC(),
	}
	if err := e.journal.Record(ctx, entry); err != nil {
		slog.Error("journal write failed",
			"command", command,
			"op", op,
			"seq", entry.Seq,
			"error", err,
		)
	}
}

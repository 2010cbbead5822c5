// Package rollback owns the rollback script lifecycle: generated by the
// snapshot tool, persisted to a fixed path, optionally executed.
package rollback

import (
	"context"
	"fmt"
	"os"

	"github.com/melih-ucgun/snapback/internal/yabsnap"
)

// Stage identifies where in the script lifecycle a failure happened.
type Stage string

const (
	StageGeneration  Stage = "generation"
	StagePersistence Stage = "persistence"
	StageExecution   Stage = "execution"
)

// StageError wraps a failure with the lifecycle stage it occurred in.
type StageError struct {
	Stage Stage
	Err   error
}

func (e *StageError) Error() string { return fmt.Sprintf("rollback %s: %v", e.Stage, e.Err) }

func (e *StageError) Unwrap() error { return e.Err }

// Pipeline generates, persists and optionally executes rollback scripts.
// OutputPath is fixed for the session; persisting always truncates it, no
// append, no versioning.
type Pipeline struct {
	Client     *yabsnap.Client
	OutputPath string

	runner yabsnap.Runner
}

func NewPipeline(client *yabsnap.Client, outputPath string) *Pipeline {
	return &Pipeline{Client: client, OutputPath: outputPath, runner: yabsnap.ExecRunner()}
}

// WithRunner replaces the script runner. Test seam.
func (p *Pipeline) WithRunner(r yabsnap.Runner) *Pipeline {
	p.runner = r
	return p
}

// Generate asks the repository client for the script text. Nothing is
// written on failure.
func (p *Pipeline) Generate(ctx context.Context, timestamp string) (string, error) {
	script, err := p.Client.RollbackGen(ctx, timestamp)
	if err != nil {
		return "", &StageError{Stage: StageGeneration, Err: err}
	}
	return script, nil
}

// Persist writes the script to OutputPath, truncating whatever was there.
func (p *Pipeline) Persist(script string) error {
	if err := os.WriteFile(p.OutputPath, []byte(script), 0o644); err != nil {
		return &StageError{Stage: StagePersistence, Err: err}
	}
	return nil
}

// Execute runs the persisted script with the process's ambient privileges.
// Callers only reach this after Persist succeeded and the operator
// confirmed.
func (p *Pipeline) Execute(ctx context.Context) error {
	if _, err := p.runner.Run(ctx, "bash", p.OutputPath); err != nil {
		return &StageError{Stage: StageExecution, Err: err}
	}
	return nil
}

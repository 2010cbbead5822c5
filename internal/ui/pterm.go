// Package ui renders the interactive session with pterm widgets.
package ui

import (
	"github.com/pterm/pterm"

	"github.com/melih-ucgun/snapback/internal/controller"
)

const (
	actionRollback       = "Generate rollback script"
	actionDelete         = "Delete snapshot"
	actionCreate         = "Create snapshot"
	actionCreateRecovery = "Create recovery snapshot"
	actionQuit           = "Quit"
)

// PtermScreen implements controller.Screen on top of pterm's interactive
// widgets. One round of prompting (snapshot menu, then action menu) yields
// two events for the controller: the selection, then the action. The action
// is held back and handed out on the following Pick call so the controller
// sees one event at a time.
type PtermScreen struct {
	pending []controller.Event
}

func NewPtermScreen() *PtermScreen { return &PtermScreen{} }

func (s *PtermScreen) Pick(lines []string, selected int) (controller.Event, error) {
	if len(s.pending) > 0 {
		ev := s.pending[0]
		s.pending = s.pending[1:]
		return ev, nil
	}
	if selected < 0 || selected >= len(lines) {
		selected = 0
	}
	choice, err := pterm.DefaultInteractiveSelect.
		WithOptions(lines).
		WithDefaultOption(lines[selected]).
		WithMaxHeight(12).
		Show("Snapshots")
	if err != nil {
		return controller.Event{}, err
	}
	action, err := pterm.DefaultInteractiveSelect.
		WithOptions([]string{actionRollback, actionDelete, actionCreate, actionCreateRecovery, actionQuit}).
		Show("Action for " + choice)
	if err != nil {
		return controller.Event{}, err
	}
	s.pending = append(s.pending, controller.Event{Kind: actionKind(action)})
	return controller.Event{Kind: controller.EventSelect, Index: indexOf(lines, choice)}, nil
}

func actionKind(action string) controller.EventKind {
	switch action {
	case actionRollback:
		return controller.EventConfirm
	case actionDelete:
		return controller.EventDelete
	case actionCreate:
		return controller.EventCreate
	case actionCreateRecovery:
		return controller.EventCreateRecovery
	default:
		return controller.EventQuit
	}
}

func indexOf(lines []string, choice string) int {
	for i, l := range lines {
		if l == choice {
			return i
		}
	}
	return 0
}

func (s *PtermScreen) Ask(question string) (bool, error) {
	return pterm.DefaultInteractiveConfirm.Show(question)
}

func (s *PtermScreen) Success(msg string) { pterm.Success.Println(msg) }

func (s *PtermScreen) Info(msg string) { pterm.Info.Println(msg) }

func (s *PtermScreen) Warn(msg string) { pterm.Warning.Println(msg) }

func (s *PtermScreen) Error(msg string) { pterm.Error.Println(msg) }

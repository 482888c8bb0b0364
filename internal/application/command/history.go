package command

import (
	"context"
	"fmt"

	"github.com/tutorbook/tutorbook/internal/application/model"
)

// ══════════════════════════════════════════════════════════════════════════════
// UNDO / REDO COMMANDS
// ══════════════════════════════════════════════════════════════════════════════

// HistoryHandler moves the model through its undo history.
type HistoryHandler struct {
	model model.Model
}

// NewHistoryHandler creates a new HistoryHandler.
func NewHistoryHandler(m model.Model) *HistoryHandler {
	return &HistoryHandler{model: m}
}

// Undo restores the previous state.
func (h *HistoryHandler) Undo(ctx context.Context) (err error) {
	done := observe(ctx, "undo")
	defer func() { done(err) }()

	if err := ctx.Err(); err != nil {
		return err
	}
	if err := h.model.UndoAddressBook(); err != nil {
		return fmt.Errorf("undo: %w", err)
	}
	return nil
}

// Redo restores the state last undone.
func (h *HistoryHandler) Redo(ctx context.Context) (err error) {
	done := observe(ctx, "redo")
	defer func() { done(err) }()

	if err := ctx.Err(); err != nil {
		return err
	}
	if err := h.model.RedoAddressBook(); err != nil {
		return fmt.Errorf("redo: %w", err)
	}
	return nil
}

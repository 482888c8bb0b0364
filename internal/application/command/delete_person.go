package command

import (
	"context"
	"fmt"

	"github.com/tutorbook/tutorbook/internal/application/model"
	"github.com/tutorbook/tutorbook/internal/domain/person"
	"github.com/tutorbook/tutorbook/pkg/logger"
)

// ══════════════════════════════════════════════════════════════════════════════
// DELETE PERSON COMMAND
// ══════════════════════════════════════════════════════════════════════════════

// DeletePersonCommand removes a person and cascades to their lessons.
type DeletePersonCommand struct {
	Name string
}

// DeletePersonResult reports what the cascade did.
type DeletePersonResult struct {
	Person person.Person

	// LessonsRemoved had the person as their only participant, or became
	// the same lesson as another one.
	LessonsRemoved int

	// LessonsUpdated continue without the person.
	LessonsUpdated int
}

// DeletePersonHandler handles the DeletePersonCommand.
type DeletePersonHandler struct {
	model model.Model
}

// NewDeletePersonHandler creates a new DeletePersonHandler.
func NewDeletePersonHandler(m model.Model) *DeletePersonHandler {
	return &DeletePersonHandler{model: m}
}

// Handle deletes the person.
func (h *DeletePersonHandler) Handle(ctx context.Context, cmd DeletePersonCommand) (res *DeletePersonResult, err error) {
	done := observe(ctx, "delete_person")
	defer func() { done(err, logger.PersonName(cmd.Name)) }()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	p, err := findByName(h.model, cmd.Name)
	if err != nil {
		return nil, fmt.Errorf("delete_person: %w", err)
	}

	associated := len(h.model.AssociatedLessons(p))
	before := h.model.AddressBook().LessonCount()
	if err := h.model.DeletePerson(p); err != nil {
		return nil, fmt.Errorf("delete_person: %w", err)
	}

	removed := before - h.model.AddressBook().LessonCount()
	return &DeletePersonResult{
		Person:         p,
		LessonsRemoved: removed,
		LessonsUpdated: associated - removed,
	}, nil
}

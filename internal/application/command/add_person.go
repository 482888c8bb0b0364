package command

import (
	"context"
	"fmt"

	"github.com/tutorbook/tutorbook/internal/application/model"
	"github.com/tutorbook/tutorbook/internal/domain/person"
	"github.com/tutorbook/tutorbook/pkg/logger"
)

// ══════════════════════════════════════════════════════════════════════════════
// ADD PERSON COMMAND
// ══════════════════════════════════════════════════════════════════════════════

// AddPersonCommand adds a contact, tutor or tutee.
type AddPersonCommand struct {
	Person PersonInput
}

// AddPersonResult contains the added person.
type AddPersonResult struct {
	Person person.Person
}

// AddPersonHandler handles the AddPersonCommand.
type AddPersonHandler struct {
	model model.Model
}

// NewAddPersonHandler creates a new AddPersonHandler.
func NewAddPersonHandler(m model.Model) *AddPersonHandler {
	return &AddPersonHandler{model: m}
}

// Handle validates the input and adds the person.
func (h *AddPersonHandler) Handle(ctx context.Context, cmd AddPersonCommand) (res *AddPersonResult, err error) {
	done := observe(ctx, "add_person")
	defer func() { done(err, logger.PersonName(cmd.Person.Name)) }()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	p, err := cmd.Person.Build()
	if err != nil {
		return nil, fmt.Errorf("add_person: %w", err)
	}
	if err := h.model.AddPerson(p); err != nil {
		return nil, fmt.Errorf("add_person: %w", err)
	}
	return &AddPersonResult{Person: p}, nil
}

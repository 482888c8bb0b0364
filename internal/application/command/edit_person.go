package command

import (
	"context"
	"fmt"

	"github.com/tutorbook/tutorbook/internal/application/model"
	"github.com/tutorbook/tutorbook/internal/domain/person"
	"github.com/tutorbook/tutorbook/internal/domain/shared"
	"github.com/tutorbook/tutorbook/pkg/logger"
)

// ══════════════════════════════════════════════════════════════════════════════
// EDIT PERSON COMMAND
// ══════════════════════════════════════════════════════════════════════════════

// EditPersonCommand changes fields of an existing person. Nil fields are kept.
type EditPersonCommand struct {
	// Name identifies the person to edit.
	Name string

	NewName    *string
	NewPhone   *string
	NewEmail   *string
	NewAddress *string
	NewHours   *string
	// NewSubjects replaces the whole subject list when non-nil.
	NewSubjects []string
}

// IsEmpty reports whether the command changes nothing.
func (c EditPersonCommand) IsEmpty() bool {
	return c.NewName == nil && c.NewPhone == nil && c.NewEmail == nil &&
		c.NewAddress == nil && c.NewHours == nil && c.NewSubjects == nil
}

// EditPersonResult contains the person before and after the edit.
type EditPersonResult struct {
	Before person.Person
	After  person.Person
}

// EditPersonHandler handles the EditPersonCommand.
type EditPersonHandler struct {
	model model.Model
}

// NewEditPersonHandler creates a new EditPersonHandler.
func NewEditPersonHandler(m model.Model) *EditPersonHandler {
	return &EditPersonHandler{model: m}
}

// Handle applies the edit and replaces the person.
func (h *EditPersonHandler) Handle(ctx context.Context, cmd EditPersonCommand) (res *EditPersonResult, err error) {
	done := observe(ctx, "edit_person")
	defer func() { done(err, logger.PersonName(cmd.Name)) }()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if cmd.IsEmpty() {
		return nil, ErrNothingToEdit
	}

	target, err := findByName(h.model, cmd.Name)
	if err != nil {
		return nil, fmt.Errorf("edit_person: %w", err)
	}
	edited, err := applyEdit(target, cmd)
	if err != nil {
		return nil, fmt.Errorf("edit_person: %w", err)
	}
	if err := h.model.SetPerson(target, edited); err != nil {
		return nil, fmt.Errorf("edit_person: %w", err)
	}
	return &EditPersonResult{Before: target, After: edited}, nil
}

func applyEdit(p person.Person, cmd EditPersonCommand) (person.Person, error) {
	if cmd.NewName != nil {
		v, err := shared.NewName(*cmd.NewName)
		if err != nil {
			return p, err
		}
		p = p.WithName(v)
	}
	if cmd.NewPhone != nil {
		v, err := shared.NewPhone(*cmd.NewPhone)
		if err != nil {
			return p, err
		}
		p = p.WithPhone(v)
	}
	if cmd.NewEmail != nil {
		v, err := shared.NewEmail(*cmd.NewEmail)
		if err != nil {
			return p, err
		}
		p = p.WithEmail(v)
	}
	if cmd.NewAddress != nil {
		v, err := shared.NewAddress(*cmd.NewAddress)
		if err != nil {
			return p, err
		}
		p = p.WithAddress(v)
	}
	if cmd.NewHours != nil {
		if !p.IsTutee() {
			return p, ErrHoursNotApplicable
		}
		v, err := shared.NewHours(*cmd.NewHours)
		if err != nil {
			return p, err
		}
		p = p.WithHours(v)
	}
	if cmd.NewSubjects != nil {
		subjects, err := parseSubjects(cmd.NewSubjects)
		if err != nil {
			return p, err
		}
		p = p.WithSubjects(subjects...)
	}
	return p, nil
}

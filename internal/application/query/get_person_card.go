package query

import (
	"context"
	"fmt"

	"github.com/tutorbook/tutorbook/internal/application/model"
	"github.com/tutorbook/tutorbook/internal/domain/person"
	"github.com/tutorbook/tutorbook/internal/domain/shared"
	"github.com/tutorbook/tutorbook/internal/infrastructure/persistence/projections"
)

// ══════════════════════════════════════════════════════════════════════════════
// GET PERSON CARD QUERY
// ══════════════════════════════════════════════════════════════════════════════

// GetPersonCardQuery looks up one person by name.
type GetPersonCardQuery struct {
	Name string
}

// GetPersonCardHandler handles the GetPersonCardQuery.
type GetPersonCardHandler struct {
	model model.Model
}

// NewGetPersonCardHandler creates a new GetPersonCardHandler.
func NewGetPersonCardHandler(m model.Model) *GetPersonCardHandler {
	return &GetPersonCardHandler{model: m}
}

// Handle builds the card for the named person.
func (h *GetPersonCardHandler) Handle(ctx context.Context, q GetPersonCardQuery) (*projections.PersonCard, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	name, err := shared.NewName(q.Name)
	if err != nil {
		return nil, fmt.Errorf("get_person_card: %w", err)
	}

	book := h.model.AddressBook()
	p, ok := book.FindPerson(person.KeyOf(name))
	if !ok {
		return nil, fmt.Errorf("get_person_card: %w", shared.ErrPersonNotFound)
	}
	card := projections.BuildPersonCard(book, p)
	return &card, nil
}

// ══════════════════════════════════════════════════════════════════════════════
// SCHEDULE CLASHES QUERY
// ══════════════════════════════════════════════════════════════════════════════

// ClashesHandler reports people whose lessons overlap.
type ClashesHandler struct {
	model model.Model
	view  *projections.PersonCardView
}

// NewClashesHandler creates a new ClashesHandler.
func NewClashesHandler(m model.Model) *ClashesHandler {
	return &ClashesHandler{model: m, view: projections.NewPersonCardView()}
}

// Handle rebuilds the card view and returns the cards with clashes.
func (h *ClashesHandler) Handle(ctx context.Context) ([]projections.PersonCard, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	h.view.Rebuild(h.model.AddressBook())
	return h.view.WithClashes(), nil
}

// Package query contains the read operations run against the model.
package query

import (
	"context"
	"fmt"

	"github.com/tutorbook/tutorbook/internal/application/model"
	"github.com/tutorbook/tutorbook/internal/domain/person"
	"github.com/tutorbook/tutorbook/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// LIST PERSONS QUERY
// ══════════════════════════════════════════════════════════════════════════════

// ListPersonsQuery filters the person list. Empty fields match everyone.
type ListPersonsQuery struct {
	// Keywords match whole words of a name, ignoring case.
	Keywords []string

	// Subject restricts to people listing the subject.
	Subject string

	// Role restricts to one variant.
	Role person.Role
}

// Predicate builds the filter predicate, validating subject and role.
func (q ListPersonsQuery) Predicate() (person.Predicate, error) {
	preds := make([]person.Predicate, 0, 3)
	if len(q.Keywords) > 0 {
		preds = append(preds, person.NameContainsKeywords(q.Keywords...))
	}
	if q.Subject != "" {
		s, err := shared.NewSubject(q.Subject)
		if err != nil {
			return nil, err
		}
		preds = append(preds, person.HasSubject(s))
	}
	if q.Role != "" {
		if !q.Role.IsValid() {
			return nil, shared.NewValidationError("Role", person.RoleConstraints)
		}
		preds = append(preds, person.HasRole(q.Role))
	}
	if len(preds) == 0 {
		return person.ShowAll, nil
	}
	return person.And(preds...), nil
}

// ListPersonsResult contains the filtered people.
type ListPersonsResult struct {
	Persons []person.Person

	// Total is the number of people in the book before filtering.
	Total int
}

// ListPersonsHandler handles the ListPersonsQuery.
type ListPersonsHandler struct {
	model model.Model
}

// NewListPersonsHandler creates a new ListPersonsHandler.
func NewListPersonsHandler(m model.Model) *ListPersonsHandler {
	return &ListPersonsHandler{model: m}
}

// Handle updates the model's filtered view and returns it.
func (h *ListPersonsHandler) Handle(ctx context.Context, q ListPersonsQuery) (*ListPersonsResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	pred, err := q.Predicate()
	if err != nil {
		return nil, fmt.Errorf("list_persons: %w", err)
	}
	h.model.UpdateFilteredPersonList(pred)
	return &ListPersonsResult{
		Persons: h.model.FilteredPersonList(),
		Total:   h.model.AddressBook().PersonCount(),
	}, nil
}

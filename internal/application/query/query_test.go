package query

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tutorbook/tutorbook/internal/application/model"
	"github.com/tutorbook/tutorbook/internal/domain/lesson"
	"github.com/tutorbook/tutorbook/internal/domain/person"
	"github.com/tutorbook/tutorbook/internal/domain/shared"
	tu "github.com/tutorbook/tutorbook/internal/testutil"
)

func TestListPersonsHandler(t *testing.T) {
	m := model.NewManager(tu.TypicalAddressBook())
	h := NewListPersonsHandler(m)
	ctx := context.Background()

	tests := []struct {
		name  string
		query ListPersonsQuery
		want  []string
	}{
		{"everyone", ListPersonsQuery{}, []string{"Alice Pauline", "Benson Meier", "Carl Kurz", "Daniel", "Elle Meyer"}},
		{"keywords", ListPersonsQuery{Keywords: []string{"meyer", "daniel"}}, []string{"Daniel", "Elle Meyer"}},
		{"subject", ListPersonsQuery{Subject: "math"}, []string{"Alice Pauline", "Benson Meier", "Daniel"}},
		{"role and subject", ListPersonsQuery{Role: person.RoleTutee, Subject: "PHYSICS"}, []string{"Benson Meier"}},
		{"no match", ListPersonsQuery{Keywords: []string{"zed"}}, []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := h.Handle(ctx, tt.query)
			require.NoError(t, err)
			got := make([]string, len(res.Persons))
			for i, p := range res.Persons {
				got[i] = p.Name().String()
			}
			assert.Equal(t, tt.want, got)
			assert.Equal(t, 5, res.Total)
		})
	}
}

func TestListPersonsHandler_InvalidFilter(t *testing.T) {
	h := NewListPersonsHandler(model.NewManager(tu.TypicalAddressBook()))

	_, err := h.Handle(context.Background(), ListPersonsQuery{Subject: "astrology"})
	verr, ok := shared.AsValidation(err)
	require.True(t, ok)
	assert.Equal(t, shared.SubjectConstraints, verr.Message)

	_, err = h.Handle(context.Background(), ListPersonsQuery{Role: "mentor"})
	assert.Error(t, err)
}

func TestGetPersonCardHandler(t *testing.T) {
	m := model.NewManager(tu.TypicalAddressBook())
	h := NewGetPersonCardHandler(m)

	card, err := h.Handle(context.Background(), GetPersonCardQuery{Name: "elle   meyer"})
	require.NoError(t, err)
	assert.True(t, card.Person.Equal(tu.Elle))
	require.Len(t, card.Associates, 1)
	assert.True(t, card.Associates[0].Equal(tu.Daniel))

	_, err = h.Handle(context.Background(), GetPersonCardQuery{Name: "Nobody"})
	assert.ErrorIs(t, err, shared.ErrPersonNotFound)
}

func TestClashesHandler(t *testing.T) {
	m := model.NewManager(tu.TypicalAddressBook())
	h := NewClashesHandler(m)
	ctx := context.Background()

	cards, err := h.Handle(ctx)
	require.NoError(t, err)
	assert.Empty(t, cards)

	require.NoError(t, m.AddLesson(tu.NewLesson(shared.SubjectBiology, lesson.Friday, "09:30", "11:00", tu.Benson)))
	cards, err = h.Handle(ctx)
	require.NoError(t, err)
	require.Len(t, cards, 1)
	assert.True(t, cards[0].Person.Equal(tu.Benson))
}

// Package projections builds read models derived from the address book.
package projections

import (
	"sync"
	"time"

	"github.com/tutorbook/tutorbook/internal/domain/addressbook"
	"github.com/tutorbook/tutorbook/internal/domain/lesson"
	"github.com/tutorbook/tutorbook/internal/domain/person"
	"github.com/tutorbook/tutorbook/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// PERSON CARD
// ══════════════════════════════════════════════════════════════════════════════

// PersonCard bundles a person with everything derived from their lessons.
type PersonCard struct {
	Person person.Person

	// Lessons the person takes part in, in book order.
	Lessons []lesson.Lesson

	// Associates share at least one lesson with the person.
	Associates []person.Person

	// Subjects is the union of the subjects taught in Lessons.
	Subjects shared.SubjectSet

	// Clashes lists pairs of the person's lessons that overlap in time.
	Clashes []LessonClash
}

// LessonClash is a pair of overlapping lessons, in book order.
type LessonClash struct {
	First  lesson.Lesson
	Second lesson.Lesson
}

// BuildPersonCard derives the card for p. p must be in book.
func BuildPersonCard(book *addressbook.AddressBook, p person.Person) PersonCard {
	lessons := book.AssociatedLessons(p)
	return PersonCard{
		Person:     p,
		Lessons:    lessons,
		Associates: book.AssociatedPeople(p),
		Subjects:   book.UniqueSubjectsInLessons(p),
		Clashes:    findClashes(lessons),
	}
}

func findClashes(lessons []lesson.Lesson) []LessonClash {
	var out []LessonClash
	for i := range lessons {
		for j := i + 1; j < len(lessons); j++ {
			if lessons[i].Clashes(lessons[j]) {
				out = append(out, LessonClash{First: lessons[i], Second: lessons[j]})
			}
		}
	}
	return out
}

// HasClashes reports whether any two of the person's lessons overlap.
func (c PersonCard) HasClashes() bool {
	return len(c.Clashes) > 0
}

// ══════════════════════════════════════════════════════════════════════════════
// PERSON CARD VIEW
// ══════════════════════════════════════════════════════════════════════════════

// PersonCardView caches a card for every person in a book. Rebuild replaces
// all cards at once; readers never observe a partially rebuilt view.
type PersonCardView struct {
	mu sync.RWMutex

	cards map[person.Key]*PersonCard

	// order keeps cards in book order.
	order []person.Key

	lastUpdated time.Time
	version     int64
}

// NewPersonCardView creates an empty view.
func NewPersonCardView() *PersonCardView {
	return &PersonCardView{cards: make(map[person.Key]*PersonCard)}
}

// Rebuild derives every card from book.
func (v *PersonCardView) Rebuild(book *addressbook.AddressBook) {
	persons := book.Persons()
	cards := make(map[person.Key]*PersonCard, len(persons))
	order := make([]person.Key, 0, len(persons))
	for _, p := range persons {
		card := BuildPersonCard(book, p)
		cards[p.Key()] = &card
		order = append(order, p.Key())
	}

	v.mu.Lock()
	defer v.mu.Unlock()
	v.cards = cards
	v.order = order
	v.lastUpdated = time.Now()
	v.version++
}

// Get returns the card for the person whose identity key is key.
func (v *PersonCardView) Get(key person.Key) (PersonCard, bool) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	card, ok := v.cards[key]
	if !ok {
		return PersonCard{}, false
	}
	return *card, true
}

// ByName looks a card up by a display name, matching the way person identity
// is compared.
func (v *PersonCardView) ByName(name shared.Name) (PersonCard, bool) {
	return v.Get(person.KeyOf(name))
}

// All returns every card in book order.
func (v *PersonCardView) All() []PersonCard {
	v.mu.RLock()
	defer v.mu.RUnlock()
	out := make([]PersonCard, 0, len(v.order))
	for _, k := range v.order {
		out = append(out, *v.cards[k])
	}
	return out
}

// WithClashes returns the cards of people whose lessons overlap.
func (v *PersonCardView) WithClashes() []PersonCard {
	var out []PersonCard
	for _, card := range v.All() {
		if card.HasClashes() {
			out = append(out, card)
		}
	}
	return out
}

// Version increments on every rebuild.
func (v *PersonCardView) Version() int64 {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.version
}

// LastUpdated returns when the view was last rebuilt.
func (v *PersonCardView) LastUpdated() time.Time {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.lastUpdated
}

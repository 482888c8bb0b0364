package model

import (
	"github.com/tutorbook/tutorbook/internal/domain/addressbook"
	"github.com/tutorbook/tutorbook/internal/domain/person"
)

// FilteredPersons is the subset of people matching a predicate. It is a
// display projection: it is re-derived from the book and never snapshotted.
type FilteredPersons struct {
	pred  person.Predicate
	items []person.Person
}

// NewFilteredPersons starts with every person visible.
func NewFilteredPersons(book *addressbook.AddressBook) *FilteredPersons {
	f := &FilteredPersons{pred: person.ShowAll}
	f.Refresh(book)
	return f
}

// SetPredicate replaces the predicate and re-derives the view.
func (f *FilteredPersons) SetPredicate(pred person.Predicate, book *addressbook.AddressBook) {
	if pred == nil {
		panic("model: nil person predicate")
	}
	f.pred = pred
	f.Refresh(book)
}

// Refresh re-derives the view from book in book order.
func (f *FilteredPersons) Refresh(book *addressbook.AddressBook) {
	items := make([]person.Person, 0, book.PersonCount())
	for _, p := range book.Persons() {
		if f.pred(p) {
			items = append(items, p)
		}
	}
	f.items = items
}

// Items returns a copy of the visible people.
func (f *FilteredPersons) Items() []person.Person {
	out := make([]person.Person, len(f.items))
	copy(out, f.items)
	return out
}

// Len returns the number of visible people.
func (f *FilteredPersons) Len() int {
	return len(f.items)
}

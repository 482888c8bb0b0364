// Package addressbook holds the AddressBook aggregate, its snapshot history,
// and the storage contract implemented in infrastructure.
package addressbook

import (
	"github.com/tutorbook/tutorbook/internal/domain/lesson"
	"github.com/tutorbook/tutorbook/internal/domain/person"
	"github.com/tutorbook/tutorbook/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// AGGREGATE
// ══════════════════════════════════════════════════════════════════════════════

// AddressBook owns an ordered set of people and lessons.
//
// Invariants, checked before every change is applied:
//  1. no two people are the same person;
//  2. no two lessons are the same lesson;
//  3. every lesson participant resolves to a person in the book.
type AddressBook struct {
	persons []person.Person
	lessons []lesson.Lesson
}

// New creates an empty address book.
func New() *AddressBook {
	return &AddressBook{
		persons: make([]person.Person, 0),
		lessons: make([]lesson.Lesson, 0),
	}
}

// FromData builds an address book by adding people then lessons in order.
// The first invariant violation is returned along with the offending index.
func FromData(persons []person.Person, lessons []lesson.Lesson) (*AddressBook, error) {
	b := New()
	for i, p := range persons {
		if err := b.AddPerson(p); err != nil {
			return nil, &shared.RecordError{Entity: "person", Index: i, Err: err}
		}
	}
	for i, l := range lessons {
		if err := b.AddLesson(l); err != nil {
			return nil, &shared.RecordError{Entity: "lesson", Index: i, Err: err}
		}
	}
	return b, nil
}

// Copy returns a deep copy. Entities are immutable values, so copying the
// slices is enough.
func (b *AddressBook) Copy() *AddressBook {
	c := &AddressBook{
		persons: make([]person.Person, len(b.persons)),
		lessons: make([]lesson.Lesson, len(b.lessons)),
	}
	copy(c.persons, b.persons)
	copy(c.lessons, b.lessons)
	return c
}

// ResetData replaces the whole content with a copy of other.
func (b *AddressBook) ResetData(other *AddressBook) {
	if other == nil {
		panic("addressbook: ResetData called with nil AddressBook")
	}
	c := other.Copy()
	b.persons = c.persons
	b.lessons = c.lessons
}

// Persons returns the people in insertion order.
func (b *AddressBook) Persons() []person.Person {
	out := make([]person.Person, len(b.persons))
	copy(out, b.persons)
	return out
}

// Lessons returns the lessons in insertion order.
func (b *AddressBook) Lessons() []lesson.Lesson {
	out := make([]lesson.Lesson, len(b.lessons))
	copy(out, b.lessons)
	return out
}

// PersonCount returns the number of people.
func (b *AddressBook) PersonCount() int { return len(b.persons) }

// LessonCount returns the number of lessons.
func (b *AddressBook) LessonCount() int { return len(b.lessons) }

// Equal compares people and lessons in order using full equality.
func (b *AddressBook) Equal(other *AddressBook) bool {
	if other == nil || len(b.persons) != len(other.persons) || len(b.lessons) != len(other.lessons) {
		return false
	}
	for i := range b.persons {
		if !b.persons[i].Equal(other.persons[i]) {
			return false
		}
	}
	for i := range b.lessons {
		if !b.lessons[i].Equal(other.lessons[i]) {
			return false
		}
	}
	return true
}

// ══════════════════════════════════════════════════════════════════════════════
// PEOPLE
// ══════════════════════════════════════════════════════════════════════════════

func requirePerson(p person.Person, op string) {
	if p.IsZero() {
		panic("addressbook: " + op + " called with zero Person")
	}
}

func (b *AddressBook) indexOfPerson(key person.Key) int {
	for i, existing := range b.persons {
		if existing.Key() == key {
			return i
		}
	}
	return -1
}

// HasPerson reports whether a person that is the same person as p exists.
func (b *AddressBook) HasPerson(p person.Person) bool {
	requirePerson(p, "HasPerson")
	return b.indexOfPerson(p.Key()) >= 0
}

// FindPerson looks a person up by identity key.
func (b *AddressBook) FindPerson(key person.Key) (person.Person, bool) {
	if i := b.indexOfPerson(key); i >= 0 {
		return b.persons[i], true
	}
	return person.Person{}, false
}

// AddPerson appends p. Returns ErrDuplicatePerson if the same person exists.
func (b *AddressBook) AddPerson(p person.Person) error {
	requirePerson(p, "AddPerson")
	if b.indexOfPerson(p.Key()) >= 0 {
		return shared.ErrDuplicatePerson
	}
	b.persons = append(b.persons, p)
	return nil
}

// SetPerson replaces target with edited in place. Lesson participants keyed
// to target are re-pointed when the identity key changes.
func (b *AddressBook) SetPerson(target, edited person.Person) error {
	requirePerson(target, "SetPerson")
	requirePerson(edited, "SetPerson")

	i := b.indexOfPerson(target.Key())
	if i < 0 {
		return shared.ErrPersonNotFound
	}
	if j := b.indexOfPerson(edited.Key()); j >= 0 && j != i {
		return shared.ErrDuplicatePerson
	}

	oldKey, newKey := b.persons[i].Key(), edited.Key()
	b.persons[i] = edited
	if oldKey != newKey {
		for li, l := range b.lessons {
			if l.Involves(oldKey) {
				b.lessons[li] = l.ReplaceParticipant(oldKey, newKey)
			}
		}
	}
	return nil
}

// DeletePerson removes p. Lessons whose only participant was p are removed;
// shared lessons keep running without p. A shared lesson that becomes the
// same lesson as one already kept is merged into it.
func (b *AddressBook) DeletePerson(p person.Person) error {
	requirePerson(p, "DeletePerson")

	i := b.indexOfPerson(p.Key())
	if i < 0 {
		return shared.ErrPersonNotFound
	}
	key := b.persons[i].Key()

	b.persons = append(b.persons[:i:i], b.persons[i+1:]...)

	kept := make([]lesson.Lesson, 0, len(b.lessons))
	for _, l := range b.lessons {
		if !l.Involves(key) {
			kept = append(kept, l)
			continue
		}
		if edited, ok := l.WithoutParticipant(key); ok {
			kept = append(kept, edited)
		}
	}
	b.lessons = distinctLessons(kept)
	return nil
}

// distinctLessons keeps the first of every group of same lessons.
func distinctLessons(lessons []lesson.Lesson) []lesson.Lesson {
	out := lessons[:0]
	for _, l := range lessons {
		dup := false
		for _, k := range out {
			if k.IsSameLesson(l) {
				dup = true
				break
			}
		}
		if !dup {
			out = append(out, l)
		}
	}
	return out
}

// ══════════════════════════════════════════════════════════════════════════════
// LESSONS
// ══════════════════════════════════════════════════════════════════════════════

func requireLesson(l lesson.Lesson, op string) {
	if l.IsZero() {
		panic("addressbook: " + op + " called with zero Lesson")
	}
}

func (b *AddressBook) indexOfLesson(l lesson.Lesson) int {
	for i, existing := range b.lessons {
		if existing.IsSameLesson(l) {
			return i
		}
	}
	return -1
}

func (b *AddressBook) checkParticipants(l lesson.Lesson) error {
	for _, k := range l.Participants() {
		if b.indexOfPerson(k) < 0 {
			return shared.ErrDanglingParticipant
		}
	}
	return nil
}

// HasLesson reports whether a lesson that is the same lesson as l exists.
func (b *AddressBook) HasLesson(l lesson.Lesson) bool {
	requireLesson(l, "HasLesson")
	return b.indexOfLesson(l) >= 0
}

// AddLesson appends l after checking for duplicates and dangling participants.
func (b *AddressBook) AddLesson(l lesson.Lesson) error {
	requireLesson(l, "AddLesson")
	if b.indexOfLesson(l) >= 0 {
		return shared.ErrDuplicateLesson
	}
	if err := b.checkParticipants(l); err != nil {
		return err
	}
	b.lessons = append(b.lessons, l)
	return nil
}

// SetLesson replaces target with edited in place.
func (b *AddressBook) SetLesson(target, edited lesson.Lesson) error {
	requireLesson(target, "SetLesson")
	requireLesson(edited, "SetLesson")

	i := b.indexOfLesson(target)
	if i < 0 {
		return shared.ErrLessonNotFound
	}
	if j := b.indexOfLesson(edited); j >= 0 && j != i {
		return shared.ErrDuplicateLesson
	}
	if err := b.checkParticipants(edited); err != nil {
		return err
	}
	b.lessons[i] = edited
	return nil
}

// DeleteLesson removes the lesson that is the same lesson as l.
func (b *AddressBook) DeleteLesson(l lesson.Lesson) error {
	requireLesson(l, "DeleteLesson")
	i := b.indexOfLesson(l)
	if i < 0 {
		return shared.ErrLessonNotFound
	}
	b.lessons = append(b.lessons[:i:i], b.lessons[i+1:]...)
	return nil
}

// ══════════════════════════════════════════════════════════════════════════════
// ASSOCIATIONS
// ══════════════════════════════════════════════════════════════════════════════

// AssociatedLessons returns the lessons p takes part in, in book order.
func (b *AddressBook) AssociatedLessons(p person.Person) []lesson.Lesson {
	requirePerson(p, "AssociatedLessons")
	key := p.Key()
	out := make([]lesson.Lesson, 0)
	for _, l := range b.lessons {
		if l.Involves(key) {
			out = append(out, l)
		}
	}
	return out
}

// AssociatedPeople returns everyone who shares a lesson with p, in order of
// first appearance. p itself is excluded.
func (b *AddressBook) AssociatedPeople(p person.Person) []person.Person {
	requirePerson(p, "AssociatedPeople")
	key := p.Key()

	byKey := make(map[person.Key]person.Person, len(b.persons))
	for _, existing := range b.persons {
		byKey[existing.Key()] = existing
	}

	seen := map[person.Key]struct{}{key: {}}
	out := make([]person.Person, 0)
	for _, l := range b.lessons {
		if !l.Involves(key) {
			continue
		}
		for _, k := range l.Participants() {
			if _, dup := seen[k]; dup {
				continue
			}
			seen[k] = struct{}{}
			if other, ok := byKey[k]; ok {
				out = append(out, other)
			}
		}
	}
	return out
}

// UniqueSubjectsInLessons returns the union of subjects across p's lessons.
func (b *AddressBook) UniqueSubjectsInLessons(p person.Person) shared.SubjectSet {
	lessons := b.AssociatedLessons(p)
	subjects := make([]shared.Subject, 0, len(lessons))
	for _, l := range lessons {
		subjects = append(subjects, l.Subject())
	}
	return shared.NewSubjectSet(subjects...)
}

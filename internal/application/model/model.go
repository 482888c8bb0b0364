// Package model owns the live address book, its undo/redo history and the
// filtered person view shown to users.
package model

import (
	"github.com/tutorbook/tutorbook/config"
	"github.com/tutorbook/tutorbook/internal/domain/addressbook"
	"github.com/tutorbook/tutorbook/internal/domain/lesson"
	"github.com/tutorbook/tutorbook/internal/domain/person"
	"github.com/tutorbook/tutorbook/internal/domain/shared"
)

// Model is the surface the command layer works against.
//
// Every mutating call either succeeds and commits one snapshot, or fails with
// a recoverable domain error and leaves state and history untouched. Passing a
// zero Person or Lesson, or a nil predicate, panics.
type Model interface {
	// ─────────────────────────────────────────────────────────────────────────
	// Preferences
	// ─────────────────────────────────────────────────────────────────────────

	UserPrefs() config.UserPrefs
	SetUserPrefs(prefs config.UserPrefs)

	// ─────────────────────────────────────────────────────────────────────────
	// Address book
	// ─────────────────────────────────────────────────────────────────────────

	// AddressBook returns a copy of the live book.
	AddressBook() *addressbook.AddressBook

	// SetAddressBook replaces the live contents and commits.
	SetAddressBook(book *addressbook.AddressBook)

	HasPerson(p person.Person) bool
	FindPerson(key person.Key) (person.Person, bool)
	AddPerson(p person.Person) error
	SetPerson(target, edited person.Person) error
	DeletePerson(p person.Person) error

	HasLesson(l lesson.Lesson) bool
	AddLesson(l lesson.Lesson) error
	SetLesson(target, edited lesson.Lesson) error
	DeleteLesson(l lesson.Lesson) error

	AssociatedPeople(p person.Person) []person.Person
	AssociatedLessons(p person.Person) []lesson.Lesson
	UniqueSubjectsInLessons(p person.Person) shared.SubjectSet

	// ─────────────────────────────────────────────────────────────────────────
	// Filtered view
	// ─────────────────────────────────────────────────────────────────────────

	FilteredPersonList() []person.Person
	UpdateFilteredPersonList(pred person.Predicate)

	// ─────────────────────────────────────────────────────────────────────────
	// History
	// ─────────────────────────────────────────────────────────────────────────

	CanUndoAddressBook() bool
	CanRedoAddressBook() bool
	UndoAddressBook() error
	RedoAddressBook() error

	// CommitAddressBook records the live state as a new snapshot. Mutating
	// methods call it themselves.
	CommitAddressBook()
}

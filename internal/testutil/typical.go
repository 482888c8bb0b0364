// Package testutil provides ready-made people, lessons and books for tests.
package testutil

import (
	"github.com/tutorbook/tutorbook/internal/domain/addressbook"
	"github.com/tutorbook/tutorbook/internal/domain/lesson"
	"github.com/tutorbook/tutorbook/internal/domain/person"
	"github.com/tutorbook/tutorbook/internal/domain/shared"
)

// PersonBuilder builds people with sensible defaults.
type PersonBuilder struct {
	params person.Params
	role   person.Role
	hours  shared.Hours
}

// NewPersonBuilder starts from Amy Bee, a plain contact.
func NewPersonBuilder() *PersonBuilder {
	return &PersonBuilder{
		params: person.Params{
			Name:    "Amy Bee",
			Phone:   "85355255",
			Email:   "amy@gmail.com",
			Address: "123, Jurong West Ave 6, #08-111",
		},
		role: person.RolePerson,
	}
}

func (b *PersonBuilder) Name(v string) *PersonBuilder    { b.params.Name = shared.Name(v); return b }
func (b *PersonBuilder) Phone(v string) *PersonBuilder   { b.params.Phone = shared.Phone(v); return b }
func (b *PersonBuilder) Email(v string) *PersonBuilder   { b.params.Email = shared.Email(v); return b }
func (b *PersonBuilder) Address(v string) *PersonBuilder { b.params.Address = shared.Address(v); return b }

// Subjects sets the subject list.
func (b *PersonBuilder) Subjects(s ...shared.Subject) *PersonBuilder {
	b.params.Subjects = s
	return b
}

// Tutor switches the role to tutor.
func (b *PersonBuilder) Tutor() *PersonBuilder {
	b.role = person.RoleTutor
	return b
}

// Tutee switches the role to tutee with the given hours.
func (b *PersonBuilder) Tutee(hours int) *PersonBuilder {
	b.role = person.RoleTutee
	b.hours = shared.Hours(hours)
	return b
}

// Build returns the person.
func (b *PersonBuilder) Build() person.Person {
	switch b.role {
	case person.RoleTutor:
		return person.NewTutor(b.params)
	case person.RoleTutee:
		return person.NewTutee(b.params, b.hours)
	default:
		return person.NewPerson(b.params)
	}
}

// Typical people.
var (
	Alice = NewPersonBuilder().Name("Alice Pauline").Phone("94351253").
		Email("alice@example.com").Address("123, Jurong West Ave 6, #08-111").
		Subjects(shared.SubjectMath).Tutor().Build()
	Benson = NewPersonBuilder().Name("Benson Meier").Phone("98765432").
		Email("johnd@example.com").Address("311, Clementi Ave 2, #02-25").
		Subjects(shared.SubjectPhysics, shared.SubjectMath).Tutee(3).Build()
	Carl = NewPersonBuilder().Name("Carl Kurz").Phone("95352563").
		Email("heinz@example.com").Address("wall street").Build()
	Daniel = NewPersonBuilder().Name("Daniel").Phone("94351253").
		Email("daniel@example.com").Address("10th street").
		Subjects(shared.SubjectMath).Tutee(69).Build()
	Elle = NewPersonBuilder().Name("Elle Meyer").Phone("9482224").
		Email("werner@example.com").Address("michegan ave").
		Subjects(shared.SubjectEnglish).Tutor().Build()
)

// NewLesson builds a lesson from raw day and times, panicking on bad input.
func NewLesson(subject shared.Subject, day lesson.Day, start, end string, participants ...person.Person) lesson.Lesson {
	s, err := lesson.NewClockTime("Start", start)
	if err != nil {
		panic(err)
	}
	e, err := lesson.NewClockTime("End", end)
	if err != nil {
		panic(err)
	}
	slot, err := lesson.NewTimeSlot(s, e)
	if err != nil {
		panic(err)
	}
	keys := make([]person.Key, len(participants))
	for i, p := range participants {
		keys[i] = p.Key()
	}
	l, err := lesson.NewLesson(lesson.Params{Subject: subject, Day: day, Slot: slot, Participants: keys})
	if err != nil {
		panic(err)
	}
	return l
}

// MathLesson is taught by Alice to Benson and Daniel.
func MathLesson() lesson.Lesson {
	return NewLesson(shared.SubjectMath, lesson.Monday, "10:00", "12:00", Alice, Benson, Daniel)
}

// EnglishLesson is taught by Elle to Daniel.
func EnglishLesson() lesson.Lesson {
	return NewLesson(shared.SubjectEnglish, lesson.Wednesday, "14:00", "15:30", Elle, Daniel)
}

// PhysicsSolo has Benson as its only participant.
func PhysicsSolo() lesson.Lesson {
	return NewLesson(shared.SubjectPhysics, lesson.Friday, "09:00", "10:00", Benson)
}

// TypicalPersons returns the typical people in book order.
func TypicalPersons() []person.Person {
	return []person.Person{Alice, Benson, Carl, Daniel, Elle}
}

// TypicalLessons returns the typical lessons in book order.
func TypicalLessons() []lesson.Lesson {
	return []lesson.Lesson{MathLesson(), EnglishLesson(), PhysicsSolo()}
}

// TypicalAddressBook returns a book holding every typical person and lesson.
func TypicalAddressBook() *addressbook.AddressBook {
	b, err := addressbook.FromData(TypicalPersons(), TypicalLessons())
	if err != nil {
		panic(err)
	}
	return b
}

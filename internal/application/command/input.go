// Package command contains the write operations run against the model.
// Commands carry raw user input; handlers validate it into domain values.
package command

import (
	"github.com/tutorbook/tutorbook/internal/application/model"
	"github.com/tutorbook/tutorbook/internal/domain/lesson"
	"github.com/tutorbook/tutorbook/internal/domain/person"
	"github.com/tutorbook/tutorbook/internal/domain/shared"
)

var (
	// ErrNothingToEdit is returned when an edit names no field.
	ErrNothingToEdit = shared.NewDomainError("command", "EditPerson", shared.ErrValidation,
		"at least one field to edit must be provided")

	// ErrHoursNotApplicable is returned when hours are set on a non-tutee.
	ErrHoursNotApplicable = shared.NewDomainError("command", "EditPerson", shared.ErrValidation,
		"hours can only be set on a tutee")
)

// findByName resolves a raw name to the stored person.
func findByName(m model.Model, raw string) (person.Person, error) {
	name, err := shared.NewName(raw)
	if err != nil {
		return person.Person{}, err
	}
	p, ok := m.FindPerson(person.KeyOf(name))
	if !ok {
		return person.Person{}, shared.ErrPersonNotFound
	}
	return p, nil
}

// ══════════════════════════════════════════════════════════════════════════════
// PERSON INPUT
// ══════════════════════════════════════════════════════════════════════════════

// PersonInput holds the raw fields of a person as typed by a user.
type PersonInput struct {
	Role     person.Role
	Name     string
	Phone    string
	Email    string
	Address  string
	Hours    string // tutees only
	Subjects []string
}

// Build validates every field in display order and returns the person. The
// first invalid field is reported.
func (in PersonInput) Build() (person.Person, error) {
	role := in.Role
	if role == "" {
		role = person.RolePerson
	}
	if !role.IsValid() {
		return person.Person{}, shared.NewValidationError("Role", person.RoleConstraints)
	}

	name, err := shared.NewName(in.Name)
	if err != nil {
		return person.Person{}, err
	}
	phone, err := shared.NewPhone(in.Phone)
	if err != nil {
		return person.Person{}, err
	}
	email, err := shared.NewEmail(in.Email)
	if err != nil {
		return person.Person{}, err
	}
	address, err := shared.NewAddress(in.Address)
	if err != nil {
		return person.Person{}, err
	}
	subjects, err := parseSubjects(in.Subjects)
	if err != nil {
		return person.Person{}, err
	}

	params := person.Params{Name: name, Phone: phone, Email: email, Address: address, Subjects: subjects}
	switch role {
	case person.RoleTutor:
		return person.NewTutor(params), nil
	case person.RoleTutee:
		hours, err := shared.NewHours(in.Hours)
		if err != nil {
			return person.Person{}, err
		}
		return person.NewTutee(params, hours), nil
	default:
		return person.NewPerson(params), nil
	}
}

func parseSubjects(raw []string) ([]shared.Subject, error) {
	out := make([]shared.Subject, 0, len(raw))
	for _, r := range raw {
		s, err := shared.NewSubject(r)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

// ══════════════════════════════════════════════════════════════════════════════
// LESSON INPUT
// ══════════════════════════════════════════════════════════════════════════════

// LessonInput holds the raw fields of a lesson. Participants are names.
type LessonInput struct {
	Subject      string
	Day          string
	Start        string
	End          string
	Participants []string
}

// Build validates the lesson fields and resolves participant names to keys.
func (in LessonInput) Build() (lesson.Lesson, error) {
	subject, err := shared.NewSubject(in.Subject)
	if err != nil {
		return lesson.Lesson{}, err
	}
	day, err := lesson.NewDay(in.Day)
	if err != nil {
		return lesson.Lesson{}, err
	}
	start, err := lesson.NewClockTime("Start", in.Start)
	if err != nil {
		return lesson.Lesson{}, err
	}
	end, err := lesson.NewClockTime("End", in.End)
	if err != nil {
		return lesson.Lesson{}, err
	}
	slot, err := lesson.NewTimeSlot(start, end)
	if err != nil {
		return lesson.Lesson{}, err
	}

	keys := make([]person.Key, 0, len(in.Participants))
	for _, raw := range in.Participants {
		name, err := shared.NewName(raw)
		if err != nil {
			return lesson.Lesson{}, shared.NewValidationError("Participants", shared.NameConstraints)
		}
		keys = append(keys, person.KeyOf(name))
	}

	return lesson.NewLesson(lesson.Params{Subject: subject, Day: day, Slot: slot, Participants: keys})
}

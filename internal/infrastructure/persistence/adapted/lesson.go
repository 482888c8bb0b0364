package adapted

import (
	"github.com/tutorbook/tutorbook/internal/domain/lesson"
	"github.com/tutorbook/tutorbook/internal/domain/person"
	"github.com/tutorbook/tutorbook/internal/domain/shared"
)

// AdaptedLesson is the stored shape of a lesson. Participants are stored by
// name and resolved to identity keys on load.
type AdaptedLesson struct {
	Subject      *string  `json:"subject" yaml:"subject"`
	Day          *string  `json:"day" yaml:"day"`
	Start        *string  `json:"start" yaml:"start"`
	End          *string  `json:"end" yaml:"end"`
	Participants []string `json:"participants" yaml:"participants"`
}

const lessonEntity = "Lesson"

// AdaptLesson converts a lesson into its stored shape. names maps identity
// keys back to display names; unknown keys are written as-is.
func AdaptLesson(l lesson.Lesson, names map[person.Key]string) AdaptedLesson {
	keys := l.Participants()
	participants := make([]string, len(keys))
	for i, k := range keys {
		if n, ok := names[k]; ok {
			participants[i] = n
		} else {
			participants[i] = k.String()
		}
	}
	slot := l.Slot()
	return AdaptedLesson{
		Subject:      ptr(l.Subject().String()),
		Day:          ptr(l.Day().String()),
		Start:        ptr(slot.Start.String()),
		End:          ptr(slot.End.String()),
		Participants: participants,
	}
}

// ToModel validates the record and builds the lesson, checking presence of
// Subject, Day, Start, End and Participants before any format.
func (a AdaptedLesson) ToModel() (lesson.Lesson, error) {
	required := []requiredField{
		{"Subject", a.Subject},
		{"Day", a.Day},
		{"Start", a.Start},
		{"End", a.End},
	}
	for _, f := range required {
		if f.value == nil {
			return lesson.Lesson{}, shared.NewMissingFieldError(lessonEntity, f.name)
		}
	}
	if a.Participants == nil {
		return lesson.Lesson{}, shared.NewMissingFieldError(lessonEntity, "Participants")
	}

	subject, err := shared.NewSubject(*a.Subject)
	if err != nil {
		return lesson.Lesson{}, err
	}
	day, err := lesson.NewDay(*a.Day)
	if err != nil {
		return lesson.Lesson{}, err
	}
	start, err := lesson.NewClockTime("Start", *a.Start)
	if err != nil {
		return lesson.Lesson{}, err
	}
	end, err := lesson.NewClockTime("End", *a.End)
	if err != nil {
		return lesson.Lesson{}, err
	}
	slot, err := lesson.NewTimeSlot(start, end)
	if err != nil {
		return lesson.Lesson{}, err
	}

	keys := make([]person.Key, 0, len(a.Participants))
	for _, raw := range a.Participants {
		name, err := shared.NewName(raw)
		if err != nil {
			return lesson.Lesson{}, shared.NewValidationError("Participants", err.Error())
		}
		keys = append(keys, person.KeyOf(name))
	}

	return lesson.NewLesson(lesson.Params{
		Subject:      subject,
		Day:          day,
		Slot:         slot,
		Participants: keys,
	})
}

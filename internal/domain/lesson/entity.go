package lesson

import (
	"fmt"
	"sort"
	"strings"

	"github.com/tutorbook/tutorbook/internal/domain/person"
	"github.com/tutorbook/tutorbook/internal/domain/shared"
)

// ParticipantsConstraints is reported for an empty or repeating participant list.
const ParticipantsConstraints = "A lesson should have at least one participant, and no participant may appear twice"

// Lesson is an immutable recurring tutoring session. Participants are weak
// references by person.Key; the address book checks that they resolve.
type Lesson struct {
	subject      shared.Subject
	day          Day
	slot         TimeSlot
	participants []person.Key
}

// Params holds the fields of a new Lesson.
type Params struct {
	Subject      shared.Subject
	Day          Day
	Slot         TimeSlot
	Participants []person.Key
}

// NewLesson creates a lesson, rejecting empty or repeating participant lists.
func NewLesson(p Params) (Lesson, error) {
	if err := validateParticipants(p.Participants); err != nil {
		return Lesson{}, err
	}
	keys := make([]person.Key, len(p.Participants))
	copy(keys, p.Participants)
	return Lesson{
		subject:      p.Subject,
		day:          p.Day,
		slot:         p.Slot,
		participants: keys,
	}, nil
}

func validateParticipants(keys []person.Key) error {
	if len(keys) == 0 {
		return shared.NewValidationError("Participants", ParticipantsConstraints)
	}
	seen := make(map[person.Key]struct{}, len(keys))
	for _, k := range keys {
		if k == "" {
			return shared.NewValidationError("Participants", ParticipantsConstraints)
		}
		if _, dup := seen[k]; dup {
			return shared.NewValidationError("Participants", ParticipantsConstraints)
		}
		seen[k] = struct{}{}
	}
	return nil
}

// IsZero reports whether l is the zero Lesson.
func (l Lesson) IsZero() bool {
	return len(l.participants) == 0
}

func (l Lesson) Subject() shared.Subject { return l.subject }
func (l Lesson) Day() Day                { return l.day }
func (l Lesson) Slot() TimeSlot          { return l.slot }

// Participants returns a copy of the participant keys in lesson order.
func (l Lesson) Participants() []person.Key {
	out := make([]person.Key, len(l.participants))
	copy(out, l.participants)
	return out
}

// Involves reports whether key is a participant.
func (l Lesson) Involves(key person.Key) bool {
	for _, k := range l.participants {
		if k == key {
			return true
		}
	}
	return false
}

// IsSameLesson reports whether both lessons teach the same subject on the same
// day and slot to the same set of participants, regardless of order.
func (l Lesson) IsSameLesson(other Lesson) bool {
	if l.subject != other.subject || l.day != other.day || l.slot != other.slot {
		return false
	}
	return sameKeySet(l.participants, other.participants)
}

// Equal compares every field, including participant order.
func (l Lesson) Equal(other Lesson) bool {
	if l.subject != other.subject || l.day != other.day || l.slot != other.slot {
		return false
	}
	if len(l.participants) != len(other.participants) {
		return false
	}
	for i := range l.participants {
		if l.participants[i] != other.participants[i] {
			return false
		}
	}
	return true
}

// Clashes reports whether both lessons share a participant at overlapping times.
func (l Lesson) Clashes(other Lesson) bool {
	if l.day != other.day || !l.slot.Overlaps(other.slot) {
		return false
	}
	for _, k := range l.participants {
		if other.Involves(k) {
			return true
		}
	}
	return false
}

// WithoutParticipant returns a copy with key removed. ok is false when key was
// the only participant, in which case the lesson should be dropped instead.
func (l Lesson) WithoutParticipant(key person.Key) (edited Lesson, ok bool) {
	kept := make([]person.Key, 0, len(l.participants))
	for _, k := range l.participants {
		if k != key {
			kept = append(kept, k)
		}
	}
	if len(kept) == 0 {
		return Lesson{}, false
	}
	l.participants = kept
	return l, true
}

// ReplaceParticipant returns a copy with every occurrence of from re-pointed to to.
func (l Lesson) ReplaceParticipant(from, to person.Key) Lesson {
	keys := make([]person.Key, len(l.participants))
	for i, k := range l.participants {
		if k == from {
			k = to
		}
		keys[i] = k
	}
	l.participants = keys
	return l
}

// String returns a single-line description.
func (l Lesson) String() string {
	names := make([]string, len(l.participants))
	for i, k := range l.participants {
		names[i] = k.String()
	}
	return fmt.Sprintf("Lesson{subject=%s, day=%s, slot=%s, participants=[%s]}",
		l.subject, l.day, l.slot, strings.Join(names, ", "))
}

func sameKeySet(a, b []person.Key) bool {
	if len(a) != len(b) {
		return false
	}
	as := make([]string, len(a))
	bs := make([]string, len(b))
	for i := range a {
		as[i] = string(a[i])
		bs[i] = string(b[i])
	}
	sort.Strings(as)
	sort.Strings(bs)
	for i := range as {
		if as[i] != bs[i] {
			return false
		}
	}
	return true
}

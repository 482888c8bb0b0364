package lesson

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tutorbook/tutorbook/internal/domain/person"
	"github.com/tutorbook/tutorbook/internal/domain/shared"
)

func slot(t *testing.T, start, end string) TimeSlot {
	t.Helper()
	s, err := NewClockTime("Start", start)
	require.NoError(t, err)
	e, err := NewClockTime("End", end)
	require.NoError(t, err)
	ts, err := NewTimeSlot(s, e)
	require.NoError(t, err)
	return ts
}

func mustLesson(t *testing.T, day Day, ts TimeSlot, keys ...person.Key) Lesson {
	t.Helper()
	l, err := NewLesson(Params{Subject: shared.SubjectMath, Day: day, Slot: ts, Participants: keys})
	require.NoError(t, err)
	return l
}

func TestNewDay(t *testing.T) {
	for _, raw := range []string{"MON", "mon", "Monday", "MONDAY"} {
		d, err := NewDay(raw)
		require.NoError(t, err, raw)
		assert.Equal(t, Monday, d)
	}

	_, err := NewDay("Mo")
	assert.EqualError(t, err, DayConstraints)
	assert.False(t, Day("XYZ").IsValid())
}

func TestNewClockTime(t *testing.T) {
	c, err := NewClockTime("Start", "09:30")
	require.NoError(t, err)
	assert.Equal(t, ClockTime(570), c)
	assert.Equal(t, "09:30", c.String())

	for _, raw := range []string{"", "9:30", "24:00", "12:60", "1230", "+9:30", "09:3a", "9 :30", "09:30:00"} {
		_, err := NewClockTime("Start", raw)
		ve, ok := shared.AsValidation(err)
		require.True(t, ok, raw)
		assert.Equal(t, "Start", ve.Field)
		assert.Equal(t, TimeConstraints, ve.Message)
	}
}

func TestNewTimeSlot(t *testing.T) {
	start, _ := NewClockTime("Start", "10:00")
	end, _ := NewClockTime("End", "09:00")

	_, err := NewTimeSlot(start, end)
	assert.EqualError(t, err, SlotConstraints)

	_, err = NewTimeSlot(start, start)
	assert.Error(t, err)

	assert.True(t, slot(t, "10:00", "12:00").Overlaps(slot(t, "11:00", "13:00")))
	assert.False(t, slot(t, "10:00", "12:00").Overlaps(slot(t, "12:00", "13:00")))
	assert.Equal(t, "10:00-12:00", slot(t, "10:00", "12:00").String())
}

func TestNewLesson_Participants(t *testing.T) {
	ts := slot(t, "10:00", "11:00")
	tests := []struct {
		name string
		keys []person.Key
	}{
		{"empty", nil},
		{"blank key", []person.Key{"alice", ""}},
		{"duplicate", []person.Key{"alice", "alice"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewLesson(Params{Subject: shared.SubjectMath, Day: Monday, Slot: ts, Participants: tt.keys})
			assert.EqualError(t, err, ParticipantsConstraints)
		})
	}
}

func TestLesson_Identity(t *testing.T) {
	ts := slot(t, "10:00", "11:00")
	l := mustLesson(t, Monday, ts, "alice", "bob")

	assert.True(t, l.IsSameLesson(mustLesson(t, Monday, ts, "bob", "alice")))
	assert.False(t, l.Equal(mustLesson(t, Monday, ts, "bob", "alice")))
	assert.True(t, l.Equal(mustLesson(t, Monday, ts, "alice", "bob")))
	assert.False(t, l.IsSameLesson(mustLesson(t, Tuesday, ts, "alice", "bob")))
	assert.False(t, l.IsSameLesson(mustLesson(t, Monday, ts, "alice")))
	assert.True(t, Lesson{}.IsZero())
}

func TestLesson_Participants(t *testing.T) {
	l := mustLesson(t, Monday, slot(t, "10:00", "11:00"), "alice", "bob")

	keys := l.Participants()
	keys[0] = "mallory"
	assert.True(t, l.Involves("alice"))

	edited, ok := l.WithoutParticipant("alice")
	require.True(t, ok)
	assert.Equal(t, []person.Key{"bob"}, edited.Participants())
	assert.True(t, l.Involves("alice"))

	_, ok = edited.WithoutParticipant("bob")
	assert.False(t, ok)

	renamed := l.ReplaceParticipant("bob", "robert")
	assert.Equal(t, []person.Key{"alice", "robert"}, renamed.Participants())
}

func TestLesson_Clashes(t *testing.T) {
	a := mustLesson(t, Monday, slot(t, "10:00", "12:00"), "alice", "bob")

	assert.True(t, a.Clashes(mustLesson(t, Monday, slot(t, "11:00", "13:00"), "bob")))
	assert.False(t, a.Clashes(mustLesson(t, Monday, slot(t, "11:00", "13:00"), "carl")))
	assert.False(t, a.Clashes(mustLesson(t, Tuesday, slot(t, "11:00", "13:00"), "bob")))
}

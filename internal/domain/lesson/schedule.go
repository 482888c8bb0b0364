// Package lesson holds the Lesson entity and its schedule value objects.
package lesson

import (
	"fmt"
	"strings"
	"time"

	"github.com/tutorbook/tutorbook/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// DAY
// ══════════════════════════════════════════════════════════════════════════════

// Day is a day of the week on which a lesson recurs.
type Day string

const (
	Monday    Day = "MON"
	Tuesday   Day = "TUE"
	Wednesday Day = "WED"
	Thursday  Day = "THU"
	Friday    Day = "FRI"
	Saturday  Day = "SAT"
	Sunday    Day = "SUN"
)

// Week lists days in calendar order.
var Week = []Day{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

// DayConstraints is reported when a raw value is not a Day.
const DayConstraints = "Day should be one of: MON, TUE, WED, THU, FRI, SAT, SUN"

// IsValid checks if the day is known.
func (d Day) IsValid() bool {
	return d.index() >= 0
}

func (d Day) index() int {
	for i, w := range Week {
		if d == w {
			return i
		}
	}
	return -1
}

// String returns the string representation.
func (d Day) String() string {
	return string(d)
}

// NewDay parses a day from its abbreviation or full English name.
func NewDay(raw string) (Day, error) {
	s := strings.ToUpper(raw)
	for _, w := range Week {
		if s == string(w) || s == strings.ToUpper(fullDayNames[w]) {
			return w, nil
		}
	}
	return "", shared.NewValidationError("Day", DayConstraints)
}

var fullDayNames = map[Day]string{
	Monday:    "Monday",
	Tuesday:   "Tuesday",
	Wednesday: "Wednesday",
	Thursday:  "Thursday",
	Friday:    "Friday",
	Saturday:  "Saturday",
	Sunday:    "Sunday",
}

// ══════════════════════════════════════════════════════════════════════════════
// CLOCK TIME
// ══════════════════════════════════════════════════════════════════════════════

// ClockTime is a time of day in minutes since midnight.
type ClockTime int

// TimeConstraints is reported when a raw value is not a ClockTime.
const TimeConstraints = "Time should be in 24-hour HH:MM format"

// NewClockTime parses "HH:MM". Both parts need two digits.
func NewClockTime(field, raw string) (ClockTime, error) {
	if len(raw) != len("15:04") {
		return 0, shared.NewValidationError(field, TimeConstraints)
	}
	t, err := time.Parse("15:04", raw)
	if err != nil {
		return 0, shared.NewValidationError(field, TimeConstraints)
	}
	return ClockTime(t.Hour()*60 + t.Minute()), nil
}

// String returns the "HH:MM" form.
func (c ClockTime) String() string {
	return fmt.Sprintf("%02d:%02d", int(c)/60, int(c)%60)
}

// ══════════════════════════════════════════════════════════════════════════════
// TIME SLOT
// ══════════════════════════════════════════════════════════════════════════════

// TimeSlot is a half-open interval [Start, End) within a day.
type TimeSlot struct {
	Start ClockTime
	End   ClockTime
}

// SlotConstraints is reported when a slot does not start before it ends.
const SlotConstraints = "Lesson start time should be before its end time"

// NewTimeSlot creates a slot, requiring start < end.
func NewTimeSlot(start, end ClockTime) (TimeSlot, error) {
	if start >= end {
		return TimeSlot{}, shared.NewValidationError("End", SlotConstraints)
	}
	return TimeSlot{Start: start, End: end}, nil
}

// Overlaps reports whether two slots share any minute.
func (t TimeSlot) Overlaps(other TimeSlot) bool {
	return t.Start < other.End && other.Start < t.End
}

// String returns "HH:MM-HH:MM".
func (t TimeSlot) String() string {
	return t.Start.String() + "-" + t.End.String()
}

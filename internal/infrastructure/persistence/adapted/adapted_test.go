package adapted

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tutorbook/tutorbook/internal/domain/person"
	"github.com/tutorbook/tutorbook/internal/domain/shared"
	tu "github.com/tutorbook/tutorbook/internal/testutil"
)

const (
	invalidName    = "R@chel"
	invalidPhone   = "+651234"
	invalidAddress = " "
	invalidEmail   = "example.com"
	invalidHours   = "-69"
	invalidSubject = "wrong"
)

func validTutee() AdaptedPerson {
	return AdaptedPerson{
		Role:     ptr("tutee"),
		Name:     ptr("Daniel"),
		Phone:    ptr("94351253"),
		Email:    ptr("daniel@example.com"),
		Address:  ptr("10th street"),
		Hours:    ptr("69"),
		Subjects: []string{"MATH"},
	}
}

func TestAdaptedPerson_RoundTrip(t *testing.T) {
	for _, p := range tu.TypicalPersons() {
		t.Run(p.Name().String(), func(t *testing.T) {
			got, err := AdaptPerson(p).ToModel()
			require.NoError(t, err)
			assert.True(t, p.Equal(got), "got %s, want %s", got, p)
		})
	}
}

func TestAdaptedPerson_ValidTutee(t *testing.T) {
	got, err := validTutee().ToModel()
	require.NoError(t, err)
	assert.True(t, tu.Daniel.Equal(got))
}

func TestAdaptedPerson_ToModelErrors(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*AdaptedPerson)
		message string
		missing bool
	}{
		{"invalid name", func(a *AdaptedPerson) { a.Name = ptr(invalidName) }, shared.NameConstraints, false},
		{"null name", func(a *AdaptedPerson) { a.Name = nil }, "Tutee's Name field is missing!", true},
		{"invalid phone", func(a *AdaptedPerson) { a.Phone = ptr(invalidPhone) }, shared.PhoneConstraints, false},
		{"null phone", func(a *AdaptedPerson) { a.Phone = nil }, "Tutee's Phone field is missing!", true},
		{"invalid email", func(a *AdaptedPerson) { a.Email = ptr(invalidEmail) }, shared.EmailConstraints, false},
		{"null email", func(a *AdaptedPerson) { a.Email = nil }, "Tutee's Email field is missing!", true},
		{"invalid address", func(a *AdaptedPerson) { a.Address = ptr(invalidAddress) }, shared.AddressConstraints, false},
		{"null address", func(a *AdaptedPerson) { a.Address = nil }, "Tutee's Address field is missing!", true},
		{"invalid hours", func(a *AdaptedPerson) { a.Hours = ptr(invalidHours) }, shared.HoursConstraints, false},
		{"null hours", func(a *AdaptedPerson) { a.Hours = nil }, "Tutee's Hours field is missing!", true},
		{"invalid subject", func(a *AdaptedPerson) { a.Subjects = append(a.Subjects, invalidSubject) }, shared.SubjectConstraints, false},
		{"unknown role", func(a *AdaptedPerson) { a.Role = ptr("mentor") }, person.RoleConstraints, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := validTutee()
			tt.mutate(&a)

			_, err := a.ToModel()
			require.Error(t, err)
			assert.Equal(t, tt.message, err.Error())
			assert.Equal(t, tt.missing, shared.IsValidation(err) && isMissing(err))
		})
	}
}

func isMissing(err error) bool {
	ve, ok := shared.AsValidation(err)
	return ok && ve.Missing
}

func TestAdaptedPerson_FieldOrder(t *testing.T) {
	t.Run("first missing field wins", func(t *testing.T) {
		a := validTutee()
		a.Email = nil
		a.Phone = nil
		_, err := a.ToModel()
		assert.EqualError(t, err, "Tutee's Phone field is missing!")
	})

	t.Run("presence before format", func(t *testing.T) {
		a := validTutee()
		a.Name = ptr(invalidName)
		a.Address = nil
		_, err := a.ToModel()
		assert.EqualError(t, err, "Tutee's Address field is missing!")
	})

	t.Run("shared fields before hours", func(t *testing.T) {
		a := validTutee()
		a.Hours = ptr(invalidHours)
		a.Email = ptr(invalidEmail)
		_, err := a.ToModel()
		assert.EqualError(t, err, shared.EmailConstraints)
	})

	t.Run("hours before subjects", func(t *testing.T) {
		a := validTutee()
		a.Hours = ptr(invalidHours)
		a.Subjects = []string{invalidSubject}
		_, err := a.ToModel()
		assert.EqualError(t, err, shared.HoursConstraints)
	})
}

func TestAdaptedPerson_RoleDefaults(t *testing.T) {
	a := validTutee()
	a.Role = nil
	a.Hours = nil
	a.Name = nil

	_, err := a.ToModel()
	assert.EqualError(t, err, "Person's Name field is missing!")

	a = validTutee()
	a.Role = ptr("tutor")
	p, err := a.ToModel()
	require.NoError(t, err)
	assert.True(t, p.IsTutor())
	_, ok := p.Hours()
	assert.False(t, ok, "hours are ignored for tutors")

	a.Subjects = nil
	p, err = a.ToModel()
	require.NoError(t, err)
	assert.Empty(t, p.Subjects())
}

func TestAdaptedLesson_ToModel(t *testing.T) {
	valid := func() AdaptedLesson {
		return AdaptedLesson{
			Subject:      ptr("math"),
			Day:          ptr("MON"),
			Start:        ptr("10:00"),
			End:          ptr("12:00"),
			Participants: []string{"Alice Pauline", "Benson Meier", "Daniel"},
		}
	}

	l, err := valid().ToModel()
	require.NoError(t, err)
	assert.True(t, tu.MathLesson().Equal(l))

	tests := []struct {
		name    string
		mutate  func(*AdaptedLesson)
		message string
	}{
		{"null subject", func(a *AdaptedLesson) { a.Subject = nil }, "Lesson's Subject field is missing!"},
		{"null end before bad day", func(a *AdaptedLesson) { a.End = nil; a.Day = ptr("xyz") }, "Lesson's End field is missing!"},
		{"null participants", func(a *AdaptedLesson) { a.Participants = nil }, "Lesson's Participants field is missing!"},
		{"bad day", func(a *AdaptedLesson) { a.Day = ptr("xyz") }, "Day should be one of: MON, TUE, WED, THU, FRI, SAT, SUN"},
		{"bad start", func(a *AdaptedLesson) { a.Start = ptr("7pm") }, "Time should be in 24-hour HH:MM format"},
		{"inverted slot", func(a *AdaptedLesson) { a.Start = ptr("13:00") }, "Lesson start time should be before its end time"},
		{"bad participant", func(a *AdaptedLesson) { a.Participants = []string{invalidName} }, shared.NameConstraints},
		{"no participants", func(a *AdaptedLesson) { a.Participants = []string{} }, "A lesson should have at least one participant, and no participant may appear twice"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := valid()
			tt.mutate(&a)
			_, err := a.ToModel()
			assert.EqualError(t, err, tt.message)
		})
	}
}

func TestDocument_RoundTrip(t *testing.T) {
	book := tu.TypicalAddressBook()
	doc := FromModel(book)

	data, err := doc.Marshal()
	require.NoError(t, err)

	decoded, err := Unmarshal(data)
	require.NoError(t, err)

	got, err := decoded.ToModel()
	require.NoError(t, err)
	assert.True(t, book.Equal(got))
}

func TestDocument_ToModelReportsRecord(t *testing.T) {
	doc := FromModel(tu.TypicalAddressBook())
	doc.Persons[3].Hours = ptr(invalidHours)

	_, err := doc.ToModel()
	var rec *shared.RecordError
	require.ErrorAs(t, err, &rec)
	assert.Equal(t, "person", rec.Entity)
	assert.Equal(t, 3, rec.Index)
	assert.Equal(t, shared.HoursConstraints, rec.Err.Error())
}

func TestDocument_RejectsCorruptFiles(t *testing.T) {
	t.Run("duplicate person", func(t *testing.T) {
		doc := FromModel(tu.TypicalAddressBook())
		doc.Persons = append(doc.Persons, doc.Persons[0])
		_, err := doc.ToModel()
		assert.ErrorIs(t, err, shared.ErrDuplicatePerson)
	})

	t.Run("dangling participant", func(t *testing.T) {
		doc := FromModel(tu.TypicalAddressBook())
		doc.Persons = doc.Persons[1:]
		_, err := doc.ToModel()
		assert.ErrorIs(t, err, shared.ErrDanglingParticipant)
	})

	t.Run("unknown field", func(t *testing.T) {
		_, err := Unmarshal([]byte(`{"persons":[],"lessons":[],"extra":1}`))
		assert.Error(t, err)
	})

	t.Run("trailing content", func(t *testing.T) {
		_, err := Unmarshal([]byte(`{"persons":[],"lessons":[]} {}`))
		assert.Error(t, err)
	})
}

func TestDocument_Fingerprint(t *testing.T) {
	a, err := FromModel(tu.TypicalAddressBook()).Fingerprint()
	require.NoError(t, err)
	b, err := FromModel(tu.TypicalAddressBook()).Fingerprint()
	require.NoError(t, err)
	assert.Equal(t, a, b)
	assert.Len(t, a, 64)

	edited := tu.TypicalAddressBook()
	require.NoError(t, edited.DeletePerson(tu.Carl))
	c, err := FromModel(edited).Fingerprint()
	require.NoError(t, err)
	assert.NotEqual(t, a, c)

	empty, err := Document{}.Fingerprint()
	require.NoError(t, err)
	emptyLists, err := Document{Persons: []AdaptedPerson{}, Lessons: []AdaptedLesson{}}.Fingerprint()
	require.NoError(t, err)
	assert.Equal(t, empty, emptyLists, "nil and empty lists should hash alike")
}

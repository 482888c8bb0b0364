package shared

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewName(t *testing.T) {
	tests := []struct {
		raw   string
		valid bool
	}{
		{"peter jack", true},
		{"12345", true},
		{"peter the 2nd", true},
		{"Capital Tan", true},
		{"David Roger Jackson Ray Jr 2nd", true},
		{"", false},
		{" ", false},
		{"^", false},
		{"peter*", false},
		{" peter", false},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.valid, IsValidName(tt.raw))
			_, err := NewName(tt.raw)
			if tt.valid {
				assert.NoError(t, err)
				return
			}
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, "Name", verr.Field)
			assert.Equal(t, NameConstraints, verr.Error())
		})
	}
}

func TestName_Normalize(t *testing.T) {
	assert.Equal(t, "amy bee", Name("Amy   Bee").Normalize())
	assert.Equal(t, Name("AMY BEE").Normalize(), Name("amy bee").Normalize())
}

func TestNewPhone(t *testing.T) {
	tests := []struct {
		raw   string
		valid bool
	}{
		{"911", true},
		{"93121534", true},
		{"124293842033123", true},
		{"", false},
		{"91", false},
		{"phone", false},
		{"9011p041", false},
		{"9312 1534", false},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.valid, IsValidPhone(tt.raw))
		})
	}

	_, err := NewPhone("91")
	assert.EqualError(t, err, PhoneConstraints)
}

func TestNewEmail(t *testing.T) {
	tests := []struct {
		raw   string
		valid bool
	}{
		{"PeterJack_1190@example.com", true},
		{"a@bc", true},
		{"test@localhost", true},
		{"123@145", true},
		{"a1+be.d@example1.com", true},
		{"peter_jack@very-very-very-long-example.com", true},
		{"if.you.dream.it_you.can.do.it@example.com", true},
		{"e1234567@u.nus.edu", true},
		{"", false},
		{"@example.com", false},
		{"peterjack@", false},
		{"peterjackexample.com", false},
		{"peterjack@-", false},
		{"peter jack@example.com", false},
		{"peterjack@exam_ple.com", false},
		{"peter@jack@example.com", false},
		{"-peterjack@example.com", false},
		{"peterjack-@example.com", false},
		{"peterjack@example.c", false},
		{"peterjack@-example.com", false},
		{"peterjack@example.com-", false},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.valid, IsValidEmail(tt.raw))
		})
	}
}

func TestNewAddress(t *testing.T) {
	assert.True(t, IsValidAddress("Blk 456, Den Road, #01-355"))
	assert.True(t, IsValidAddress("-"))
	assert.False(t, IsValidAddress(""))
	assert.False(t, IsValidAddress(" starts with space"))
}

func TestNewHours(t *testing.T) {
	tests := []struct {
		raw   string
		want  Hours
		valid bool
	}{
		{"0", 0, true},
		{"69", 69, true},
		{"007", 0, false},
		{"+5", 0, false},
		{"99999999999999999999", 0, false},
		{"-69", 0, false},
		{"", 0, false},
		{" 3", 0, false},
		{"3.5", 0, false},
		{"ten", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := NewHours(tt.raw)
			if !tt.valid {
				require.Error(t, err)
				assert.Equal(t, HoursConstraints, err.Error())
				assert.True(t, errors.Is(err, ErrValidation))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewSubject(t *testing.T) {
	s, err := NewSubject("math")
	require.NoError(t, err)
	assert.Equal(t, SubjectMath, s)

	_, err = NewSubject("wrong")
	assert.EqualError(t, err, SubjectConstraints)
	assert.False(t, IsValidSubject(""))
}

func TestSubjectSet(t *testing.T) {
	set := NewSubjectSet(SubjectPhysics, SubjectMath, SubjectPhysics)

	assert.Equal(t, SubjectSet{SubjectMath, SubjectPhysics}, set)
	assert.True(t, set.Contains(SubjectMath))
	assert.False(t, set.Contains(SubjectEnglish))
	assert.True(t, set.Equal(NewSubjectSet(SubjectMath, SubjectPhysics)))
	assert.Equal(t, []string{"ENGLISH", "MATH", "PHYSICS"}, set.Union(NewSubjectSet(SubjectEnglish)).Strings())
	assert.Empty(t, NewSubjectSet())
}

package person

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tutorbook/tutorbook/internal/domain/shared"
)

func daniel() Person {
	return NewTutee(Params{
		Name:     "Daniel",
		Phone:    "94351253",
		Email:    "daniel@example.com",
		Address:  "10th street",
		Subjects: []shared.Subject{shared.SubjectMath},
	}, 69)
}

func TestPerson_Accessors(t *testing.T) {
	p := daniel()

	assert.False(t, p.IsZero())
	assert.True(t, Person{}.IsZero())
	assert.Equal(t, RoleTutee, p.Role())
	assert.True(t, p.IsTutee())
	assert.False(t, p.IsTutor())

	hours, ok := p.Hours()
	assert.True(t, ok)
	assert.Equal(t, shared.Hours(69), hours)

	_, ok = NewTutor(Params{Name: "Elle"}).Hours()
	assert.False(t, ok)
}

func TestPerson_SubjectsIsCopy(t *testing.T) {
	p := daniel()
	subjects := p.Subjects()
	subjects[0] = shared.SubjectEnglish

	assert.True(t, p.Subjects().Contains(shared.SubjectMath))
}

func TestPerson_IsSamePerson(t *testing.T) {
	p := daniel()

	tests := []struct {
		name  string
		other Person
		same  bool
	}{
		{"identical", daniel(), true},
		{"different role", NewTutor(Params{Name: "Daniel", Phone: "999"}), true},
		{"different case and spacing", p.WithName("  daniel  "), true},
		{"different name", p.WithName("Daniel Lee"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.same, p.IsSamePerson(tt.other))
		})
	}
}

func TestPerson_Equal(t *testing.T) {
	p := daniel()

	assert.True(t, p.Equal(daniel()))
	assert.True(t, p.Equal(p.WithSubjects(shared.SubjectMath, shared.SubjectMath)))
	assert.False(t, p.Equal(p.WithHours(3)))
	assert.False(t, p.Equal(p.WithPhone("911")))
	assert.False(t, p.Equal(p.WithEmail("dan@example.com")))
	assert.False(t, p.Equal(p.WithAddress("elsewhere")))
	assert.False(t, p.Equal(p.WithSubjects(shared.SubjectPhysics)))

	plain := NewPerson(Params{Name: "Daniel", Phone: "94351253", Email: "daniel@example.com", Address: "10th street"})
	assert.False(t, plain.Equal(daniel()))
}

func TestPerson_WithHoursIgnoresNonTutees(t *testing.T) {
	tutor := NewTutor(Params{Name: "Elle"})
	assert.True(t, tutor.Equal(tutor.WithHours(5)))
}

func TestPerson_String(t *testing.T) {
	assert.Equal(t,
		"Tutee{name=Daniel, phone=94351253, email=daniel@example.com, address=10th street, hours=69, subjects=[MATH]}",
		daniel().String())
}

func TestPredicates(t *testing.T) {
	p := daniel()
	tutor := NewTutor(Params{Name: "Elle Meyer", Subjects: []shared.Subject{shared.SubjectEnglish}})

	assert.True(t, ShowAll(p))
	assert.True(t, NameContainsKeywords("DANIEL")(p))
	assert.True(t, NameContainsKeywords("meyer", "bob")(tutor))
	assert.False(t, NameContainsKeywords("dan")(p))
	assert.False(t, NameContainsKeywords()(p))
	assert.True(t, HasSubject(shared.SubjectMath)(p))
	assert.False(t, HasSubject(shared.SubjectMath)(tutor))
	assert.True(t, HasRole(RoleTutor)(tutor))
	assert.True(t, And(HasRole(RoleTutee), HasSubject(shared.SubjectMath))(p))
	assert.False(t, And(HasRole(RoleTutee), HasSubject(shared.SubjectEnglish))(p))
}

// Package adapted converts between stored records and validated domain
// entities. Stored records are untrusted: every field is optional and is
// checked before an entity is built.
package adapted

import (
	"github.com/tutorbook/tutorbook/internal/domain/person"
	"github.com/tutorbook/tutorbook/internal/domain/shared"
)

// AdaptedPerson is the stored shape of a person.
type AdaptedPerson struct {
	Role     *string  `json:"role,omitempty" yaml:"role,omitempty"`
	Name     *string  `json:"name" yaml:"name"`
	Phone    *string  `json:"phone" yaml:"phone"`
	Email    *string  `json:"email" yaml:"email"`
	Address  *string  `json:"address" yaml:"address"`
	Hours    *string  `json:"hours,omitempty" yaml:"hours,omitempty"`
	Subjects []string `json:"subjects" yaml:"subjects"`
}

func ptr(s string) *string { return &s }

// AdaptPerson converts a person into its stored shape.
func AdaptPerson(p person.Person) AdaptedPerson {
	a := AdaptedPerson{
		Role:     ptr(string(p.Role())),
		Name:     ptr(p.Name().String()),
		Phone:    ptr(p.Phone().String()),
		Email:    ptr(p.Email().String()),
		Address:  ptr(p.Address().String()),
		Subjects: p.Subjects().Strings(),
	}
	if hours, ok := p.Hours(); ok {
		a.Hours = ptr(hours.String())
	}
	return a
}

// role resolves the variant tag. An absent tag means a plain person.
func (a AdaptedPerson) role() (person.Role, error) {
	if a.Role == nil || *a.Role == "" {
		return person.RolePerson, nil
	}
	r := person.Role(*a.Role)
	if !r.IsValid() {
		return "", shared.NewValidationError("Role", person.RoleConstraints)
	}
	return r, nil
}

type requiredField struct {
	name  string
	value *string
}

// ToModel validates the record and builds the person. Fields are checked in a
// fixed order and the first failure is returned: presence of every required
// field, then each field's format, then subjects.
func (a AdaptedPerson) ToModel() (person.Person, error) {
	role, err := a.role()
	if err != nil {
		return person.Person{}, err
	}
	entity := role.Label()

	required := []requiredField{
		{"Name", a.Name},
		{"Phone", a.Phone},
		{"Email", a.Email},
		{"Address", a.Address},
	}
	if role == person.RoleTutee {
		required = append(required, requiredField{"Hours", a.Hours})
	}
	for _, f := range required {
		if f.value == nil {
			return person.Person{}, shared.NewMissingFieldError(entity, f.name)
		}
	}

	name, err := shared.NewName(*a.Name)
	if err != nil {
		return person.Person{}, err
	}
	phone, err := shared.NewPhone(*a.Phone)
	if err != nil {
		return person.Person{}, err
	}
	email, err := shared.NewEmail(*a.Email)
	if err != nil {
		return person.Person{}, err
	}
	address, err := shared.NewAddress(*a.Address)
	if err != nil {
		return person.Person{}, err
	}

	var hours shared.Hours
	if role == person.RoleTutee {
		if hours, err = shared.NewHours(*a.Hours); err != nil {
			return person.Person{}, err
		}
	}

	subjects, err := toSubjects(a.Subjects)
	if err != nil {
		return person.Person{}, err
	}

	params := person.Params{
		Name:     name,
		Phone:    phone,
		Email:    email,
		Address:  address,
		Subjects: subjects,
	}
	switch role {
	case person.RoleTutor:
		return person.NewTutor(params), nil
	case person.RoleTutee:
		return person.NewTutee(params, hours), nil
	default:
		return person.NewPerson(params), nil
	}
}

func toSubjects(raw []string) ([]shared.Subject, error) {
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

// Package person holds the Person entity and its role variants.
package person

import (
	"fmt"
	"strings"

	"github.com/tutorbook/tutorbook/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// ROLE
// ══════════════════════════════════════════════════════════════════════════════

// Role tags which variant a Person is.
type Role string

const (
	// RolePerson is a plain contact.
	RolePerson Role = "person"
	// RoleTutor teaches lessons.
	RoleTutor Role = "tutor"
	// RoleTutee attends lessons and carries weekly Hours.
	RoleTutee Role = "tutee"
)

// RoleConstraints is reported for an unknown role tag.
const RoleConstraints = "Role should be one of: person, tutor, tutee"

// IsValid checks if the role is one of the known variants.
func (r Role) IsValid() bool {
	switch r {
	case RolePerson, RoleTutor, RoleTutee:
		return true
	default:
		return false
	}
}

// Label returns the entity label used in messages, e.g. "Tutee".
func (r Role) Label() string {
	switch r {
	case RoleTutor:
		return "Tutor"
	case RoleTutee:
		return "Tutee"
	default:
		return "Person"
	}
}

// ══════════════════════════════════════════════════════════════════════════════
// IDENTITY
// ══════════════════════════════════════════════════════════════════════════════

// Key is the identity of a person: the normalized name. Lessons refer to
// people by Key.
type Key string

// KeyOf returns the identity key for a name.
func KeyOf(name shared.Name) Key {
	return Key(name.Normalize())
}

// String returns the string representation.
func (k Key) String() string {
	return string(k)
}

// ══════════════════════════════════════════════════════════════════════════════
// ENTITY
// ══════════════════════════════════════════════════════════════════════════════

// Person is an immutable contact record. Edits produce a new Person through
// the With* methods.
type Person struct {
	name     shared.Name
	phone    shared.Phone
	email    shared.Email
	address  shared.Address
	subjects shared.SubjectSet
	role     Role

	// hours is meaningful only for RoleTutee.
	hours shared.Hours
}

// Params holds the fields shared by every role.
type Params struct {
	Name     shared.Name
	Phone    shared.Phone
	Email    shared.Email
	Address  shared.Address
	Subjects []shared.Subject
}

func newPerson(p Params, role Role) Person {
	return Person{
		name:     p.Name,
		phone:    p.Phone,
		email:    p.Email,
		address:  p.Address,
		subjects: shared.NewSubjectSet(p.Subjects...),
		role:     role,
	}
}

// NewPerson creates a plain contact.
func NewPerson(p Params) Person {
	return newPerson(p, RolePerson)
}

// NewTutor creates a tutor.
func NewTutor(p Params) Person {
	return newPerson(p, RoleTutor)
}

// NewTutee creates a tutee with the given weekly hours.
func NewTutee(p Params, hours shared.Hours) Person {
	t := newPerson(p, RoleTutee)
	t.hours = hours
	return t
}

// IsZero reports whether p is the zero Person (never constructed).
func (p Person) IsZero() bool {
	return p.name == "" && p.role == ""
}

func (p Person) Name() shared.Name       { return p.name }
func (p Person) Phone() shared.Phone     { return p.phone }
func (p Person) Email() shared.Email     { return p.email }
func (p Person) Address() shared.Address { return p.address }
func (p Person) Role() Role              { return p.role }

// Subjects returns a copy of the subject set.
func (p Person) Subjects() shared.SubjectSet {
	out := make(shared.SubjectSet, len(p.subjects))
	copy(out, p.subjects)
	return out
}

// Hours returns the tutee's weekly hours. ok is false for other roles.
func (p Person) Hours() (hours shared.Hours, ok bool) {
	if p.role != RoleTutee {
		return 0, false
	}
	return p.hours, true
}

// Key returns the identity key.
func (p Person) Key() Key {
	return KeyOf(p.name)
}

// IsTutor returns true for the tutor variant.
func (p Person) IsTutor() bool { return p.role == RoleTutor }

// IsTutee returns true for the tutee variant.
func (p Person) IsTutee() bool { return p.role == RoleTutee }

// IsSamePerson reports whether both refer to the same person, comparing
// normalized names only. Roles and other fields are ignored.
func (p Person) IsSamePerson(other Person) bool {
	return p.Key() == other.Key()
}

// Equal compares every field, including role and hours.
func (p Person) Equal(other Person) bool {
	if p.name != other.name ||
		p.phone != other.phone ||
		p.email != other.email ||
		p.address != other.address ||
		p.role != other.role {
		return false
	}
	if p.role == RoleTutee && p.hours != other.hours {
		return false
	}
	return p.subjects.Equal(other.subjects)
}

// WithName returns a copy with the name replaced.
func (p Person) WithName(name shared.Name) Person {
	p.name = name
	return p
}

// WithPhone returns a copy with the phone replaced.
func (p Person) WithPhone(phone shared.Phone) Person {
	p.phone = phone
	return p
}

// WithEmail returns a copy with the email replaced.
func (p Person) WithEmail(email shared.Email) Person {
	p.email = email
	return p
}

// WithAddress returns a copy with the address replaced.
func (p Person) WithAddress(address shared.Address) Person {
	p.address = address
	return p
}

// WithSubjects returns a copy with the subject set replaced.
func (p Person) WithSubjects(subjects ...shared.Subject) Person {
	p.subjects = shared.NewSubjectSet(subjects...)
	return p
}

// WithHours returns a copy with the weekly hours replaced. Only tutees carry
// hours; for other roles it returns p unchanged.
func (p Person) WithHours(hours shared.Hours) Person {
	if p.role != RoleTutee {
		return p
	}
	p.hours = hours
	return p
}

// String returns a single-line description.
func (p Person) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s{name=%s, phone=%s, email=%s, address=%s",
		p.role.Label(), p.name, p.phone, p.email, p.address)
	if p.role == RoleTutee {
		fmt.Fprintf(&b, ", hours=%d", p.hours)
	}
	fmt.Fprintf(&b, ", subjects=[%s]}", strings.Join(p.subjects.Strings(), ", "))
	return b.String()
}

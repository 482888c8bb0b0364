package shared

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// ═══════════════════════════════════════════════════════════════════════════
// Name Value Object
// ═══════════════════════════════════════════════════════════════════════════

// Name is a person's full name.
type Name string

// NameConstraints is reported when a raw value is not a valid Name.
const NameConstraints = "Names should only contain alphanumeric characters and spaces, and it should not be blank"

var nameRegex = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9 ]*$`)

// IsValidName reports whether raw is a valid name.
func IsValidName(raw string) bool {
	return nameRegex.MatchString(raw)
}

// NewName creates a new Name with validation.
func NewName(raw string) (Name, error) {
	if !IsValidName(raw) {
		return "", NewValidationError("Name", NameConstraints)
	}
	return Name(raw), nil
}

// String returns the string representation.
func (n Name) String() string {
	return string(n)
}

// Normalize returns the case-insensitive form used for identity checks:
// lower-cased with runs of spaces collapsed.
func (n Name) Normalize() string {
	return strings.ToLower(strings.Join(strings.Fields(string(n)), " "))
}

// ═══════════════════════════════════════════════════════════════════════════
// Phone Value Object
// ═══════════════════════════════════════════════════════════════════════════

// Phone is a numeric phone number.
type Phone string

// PhoneConstraints is reported when a raw value is not a valid Phone.
const PhoneConstraints = "Phone numbers should only contain numbers, and it should be at least 3 digits long"

var phoneRegex = regexp.MustCompile(`^[0-9]{3,}$`)

// IsValidPhone reports whether raw is a valid phone number.
func IsValidPhone(raw string) bool {
	return phoneRegex.MatchString(raw)
}

// NewPhone creates a new Phone with validation.
func NewPhone(raw string) (Phone, error) {
	if !IsValidPhone(raw) {
		return "", NewValidationError("Phone", PhoneConstraints)
	}
	return Phone(raw), nil
}

// String returns the string representation.
func (p Phone) String() string {
	return string(p)
}

// ═══════════════════════════════════════════════════════════════════════════
// Email Value Object
// ═══════════════════════════════════════════════════════════════════════════

// Email is an address of the form local-part@domain.
type Email string

// EmailConstraints is reported when a raw value is not a valid Email.
const EmailConstraints = "Emails should be of the format local-part@domain " +
	"and adhere to the following constraints:\n" +
	"1. The local-part should only contain alphanumeric characters and these special characters, excluding " +
	"the parentheses, (+_.-). The local-part may not start or end with any special characters.\n" +
	"2. This is followed by a '@' and then a domain name. The domain name is made up of domain labels " +
	"separated by periods.\n" +
	"The domain name must:\n" +
	"    - end with a domain label at least 2 characters long\n" +
	"    - have each domain label start and end with alphanumeric characters\n" +
	"    - have each domain label consist of alphanumeric characters, separated only by hyphens, if any."

const (
	emailAlnum      = `[^\W_]+`
	emailLocalPart  = `^` + emailAlnum + `([+_.-]` + emailAlnum + `)*`
	emailDomainPart = emailAlnum + `(-` + emailAlnum + `)*`
	emailDomainLast = `(` + emailDomainPart + `){2,}$`
	emailDomain     = `(` + emailDomainPart + `\.)*` + emailDomainLast
)

var emailRegex = regexp.MustCompile(emailLocalPart + `@` + emailDomain)

// IsValidEmail reports whether raw is a valid email address.
func IsValidEmail(raw string) bool {
	return emailRegex.MatchString(raw)
}

// NewEmail creates a new Email with validation.
func NewEmail(raw string) (Email, error) {
	if !IsValidEmail(raw) {
		return "", NewValidationError("Email", EmailConstraints)
	}
	return Email(raw), nil
}

// String returns the string representation.
func (e Email) String() string {
	return string(e)
}

// ═══════════════════════════════════════════════════════════════════════════
// Address Value Object
// ═══════════════════════════════════════════════════════════════════════════

// Address is a free-form postal address.
type Address string

// AddressConstraints is reported when a raw value is not a valid Address.
const AddressConstraints = "Addresses can take any values, and it should not be blank"

var addressRegex = regexp.MustCompile(`^[^\s].*$`)

// IsValidAddress reports whether raw is a valid address.
func IsValidAddress(raw string) bool {
	return addressRegex.MatchString(raw)
}

// NewAddress creates a new Address with validation.
func NewAddress(raw string) (Address, error) {
	if !IsValidAddress(raw) {
		return "", NewValidationError("Address", AddressConstraints)
	}
	return Address(raw), nil
}

// String returns the string representation.
func (a Address) String() string {
	return string(a)
}

// ═══════════════════════════════════════════════════════════════════════════
// Hours Value Object
// ═══════════════════════════════════════════════════════════════════════════

// Hours is the number of weekly tutoring hours a tutee needs.
type Hours int

// HoursConstraints is reported when a raw value is not valid Hours.
const HoursConstraints = "Hours should be a non-negative integer"

// IsValidHours reports whether raw is a non-negative base-10 integer without
// sign or leading zeros.
func IsValidHours(raw string) bool {
	_, ok := parseHours(raw)
	return ok
}

var hoursRegex = regexp.MustCompile(`^(0|[1-9][0-9]*)$`)

func parseHours(raw string) (int, bool) {
	if !hoursRegex.MatchString(raw) {
		return 0, false
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return n, true
}

// NewHours creates Hours from its raw string form.
func NewHours(raw string) (Hours, error) {
	n, ok := parseHours(raw)
	if !ok {
		return 0, NewValidationError("Hours", HoursConstraints)
	}
	return Hours(n), nil
}

// Int returns the underlying int value.
func (h Hours) Int() int {
	return int(h)
}

// String returns the string representation.
func (h Hours) String() string {
	return strconv.Itoa(int(h))
}

// ═══════════════════════════════════════════════════════════════════════════
// Subject Value Object
// ═══════════════════════════════════════════════════════════════════════════

// Subject is a tutoring subject from a closed set.
type Subject string

const (
	SubjectEnglish    Subject = "ENGLISH"
	SubjectMath       Subject = "MATH"
	SubjectPhysics    Subject = "PHYSICS"
	SubjectChemistry  Subject = "CHEMISTRY"
	SubjectBiology    Subject = "BIOLOGY"
	SubjectEconomics  Subject = "ECONOMICS"
	SubjectHistory    Subject = "HISTORY"
	SubjectGeography  Subject = "GEOGRAPHY"
	SubjectLiterature Subject = "LITERATURE"
	SubjectComputing  Subject = "COMPUTING"
)

// AllSubjects lists every accepted subject in display order.
var AllSubjects = []Subject{
	SubjectEnglish,
	SubjectMath,
	SubjectPhysics,
	SubjectChemistry,
	SubjectBiology,
	SubjectEconomics,
	SubjectHistory,
	SubjectGeography,
	SubjectLiterature,
	SubjectComputing,
}

// SubjectConstraints is reported when a raw value is not a known Subject.
const SubjectConstraints = "Subject should be one of: ENGLISH, MATH, PHYSICS, CHEMISTRY, BIOLOGY, " +
	"ECONOMICS, HISTORY, GEOGRAPHY, LITERATURE, COMPUTING"

// IsValid checks if the subject belongs to the closed set.
func (s Subject) IsValid() bool {
	for _, known := range AllSubjects {
		if s == known {
			return true
		}
	}
	return false
}

// String returns the string representation.
func (s Subject) String() string {
	return string(s)
}

// IsValidSubject reports whether raw names a known subject (case-insensitive).
func IsValidSubject(raw string) bool {
	return Subject(strings.ToUpper(raw)).IsValid()
}

// NewSubject creates a Subject from a case-insensitive raw name.
func NewSubject(raw string) (Subject, error) {
	s := Subject(strings.ToUpper(raw))
	if !s.IsValid() {
		return "", NewValidationError("Subject", SubjectConstraints)
	}
	return s, nil
}

// SubjectSet is a sorted, duplicate-free set of subjects.
type SubjectSet []Subject

// NewSubjectSet builds a canonical set from subjects.
func NewSubjectSet(subjects ...Subject) SubjectSet {
	if len(subjects) == 0 {
		return SubjectSet{}
	}
	seen := make(map[Subject]struct{}, len(subjects))
	out := make(SubjectSet, 0, len(subjects))
	for _, s := range subjects {
		if _, dup := seen[s]; dup {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Contains reports whether s is in the set.
func (ss SubjectSet) Contains(s Subject) bool {
	i := sort.Search(len(ss), func(i int) bool { return ss[i] >= s })
	return i < len(ss) && ss[i] == s
}

// Union returns a new set holding the subjects of both sets.
func (ss SubjectSet) Union(other SubjectSet) SubjectSet {
	merged := make([]Subject, 0, len(ss)+len(other))
	merged = append(merged, ss...)
	merged = append(merged, other...)
	return NewSubjectSet(merged...)
}

// Equal reports whether both sets hold the same subjects.
func (ss SubjectSet) Equal(other SubjectSet) bool {
	if len(ss) != len(other) {
		return false
	}
	for i := range ss {
		if ss[i] != other[i] {
			return false
		}
	}
	return true
}

// Strings returns the subject names in set order.
func (ss SubjectSet) Strings() []string {
	out := make([]string, len(ss))
	for i, s := range ss {
		out[i] = string(s)
	}
	return out
}

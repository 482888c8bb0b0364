package person

import (
	"strings"

	"github.com/tutorbook/tutorbook/internal/domain/shared"
)

// Predicate selects people for a filtered view.
type Predicate func(Person) bool

// ShowAll matches every person.
func ShowAll(Person) bool { return true }

// NameContainsKeywords matches people whose name contains any of the keywords
// as a whole word, ignoring case.
func NameContainsKeywords(keywords ...string) Predicate {
	wanted := make(map[string]struct{}, len(keywords))
	for _, k := range keywords {
		k = strings.ToLower(strings.TrimSpace(k))
		if k != "" {
			wanted[k] = struct{}{}
		}
	}
	return func(p Person) bool {
		for _, word := range strings.Fields(strings.ToLower(p.Name().String())) {
			if _, ok := wanted[word]; ok {
				return true
			}
		}
		return false
	}
}

// HasSubject matches people who list subject.
func HasSubject(subject shared.Subject) Predicate {
	return func(p Person) bool {
		return p.subjects.Contains(subject)
	}
}

// HasRole matches people of the given role.
func HasRole(role Role) Predicate {
	return func(p Person) bool {
		return p.role == role
	}
}

// And matches when every predicate matches.
func And(preds ...Predicate) Predicate {
	return func(p Person) bool {
		for _, pred := range preds {
			if !pred(p) {
				return false
			}
		}
		return true
	}
}

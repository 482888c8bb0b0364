package adapted

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/blake2b"

	"github.com/tutorbook/tutorbook/internal/domain/addressbook"
	"github.com/tutorbook/tutorbook/internal/domain/lesson"
	"github.com/tutorbook/tutorbook/internal/domain/person"
	"github.com/tutorbook/tutorbook/internal/domain/shared"
)

// Document is the stored shape of a whole address book.
type Document struct {
	Persons []AdaptedPerson `json:"persons"`
	Lessons []AdaptedLesson `json:"lessons"`
}

// FromModel converts an address book into its stored shape.
func FromModel(b *addressbook.AddressBook) Document {
	persons := b.Persons()
	lessons := b.Lessons()

	names := make(map[person.Key]string, len(persons))
	doc := Document{
		Persons: make([]AdaptedPerson, 0, len(persons)),
		Lessons: make([]AdaptedLesson, 0, len(lessons)),
	}
	for _, p := range persons {
		names[p.Key()] = p.Name().String()
		doc.Persons = append(doc.Persons, AdaptPerson(p))
	}
	for _, l := range lessons {
		doc.Lessons = append(doc.Lessons, AdaptLesson(l, names))
	}
	return doc
}

// ToModel validates every record and builds the address book. The first
// failing record is reported as a *shared.RecordError. Duplicates and lessons
// with unknown participants are rejected, never dropped.
func (d Document) ToModel() (*addressbook.AddressBook, error) {
	persons := make([]person.Person, 0, len(d.Persons))
	for i, raw := range d.Persons {
		p, err := raw.ToModel()
		if err != nil {
			return nil, &shared.RecordError{Entity: "person", Index: i, Err: err}
		}
		persons = append(persons, p)
	}

	lessons := make([]lesson.Lesson, 0, len(d.Lessons))
	for i, raw := range d.Lessons {
		l, err := raw.ToModel()
		if err != nil {
			return nil, &shared.RecordError{Entity: "lesson", Index: i, Err: err}
		}
		lessons = append(lessons, l)
	}

	return addressbook.FromData(persons, lessons)
}

// Marshal encodes the document as indented JSON with a trailing newline.
func (d Document) Marshal() ([]byte, error) {
	b, err := json.MarshalIndent(d.normalized(), "", "  ")
	if err != nil {
		return nil, err
	}
	return append(b, '\n'), nil
}

// Fingerprint returns the hex BLAKE2b-256 digest of the canonical encoding.
func (d Document) Fingerprint() (string, error) {
	b, err := json.Marshal(d.normalized())
	if err != nil {
		return "", err
	}
	sum := blake2b.Sum256(b)
	return hex.EncodeToString(sum[:]), nil
}

// normalized encodes empty lists as [] rather than null.
func (d Document) normalized() Document {
	if d.Persons == nil {
		d.Persons = []AdaptedPerson{}
	}
	if d.Lessons == nil {
		d.Lessons = []AdaptedLesson{}
	}
	return d
}

// Unmarshal decodes a document, rejecting unknown fields and trailing content.
func Unmarshal(data []byte) (Document, error) {
	var d Document
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&d); err != nil {
		return Document{}, fmt.Errorf("decode document: %w", err)
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return Document{}, errors.New("decode document: trailing content")
	}
	return d, nil
}

package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/tutorbook/tutorbook/internal/domain/addressbook"
	"github.com/tutorbook/tutorbook/internal/domain/shared"
	"github.com/tutorbook/tutorbook/internal/infrastructure/persistence/adapted"
	"github.com/tutorbook/tutorbook/pkg/logger"
)

const fingerprintKey = "fingerprint"

// Store keeps one row per record. Columns are nullable so that a damaged
// database surfaces as missing-field errors from the adapter layer.
type Store struct {
	db       *sql.DB
	location string
	log      *logger.Logger
}

// NewStore wraps an open database. location is used for logs only.
func NewStore(db *sql.DB, location string, log *logger.Logger) *Store {
	if log == nil {
		log = logger.Nop()
	}
	return &Store{
		db:       db,
		location: location,
		log:      log.With(logger.Component("sqlite"), logger.StoreLocation(location)),
	}
}

// Location returns the database path.
func (s *Store) Location() string {
	return s.location
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Load reads every row in position order and validates them.
func (s *Store) Load(ctx context.Context) (*addressbook.AddressBook, error) {
	if _, err := s.fingerprint(ctx); err != nil {
		return nil, err
	}

	doc, err := s.readDocument(ctx)
	if err != nil {
		return nil, err
	}
	book, err := doc.ToModel()
	if err != nil {
		s.log.Warn("stored address book is invalid", logger.Err(err))
		return nil, fmt.Errorf("sqlite: %w", err)
	}
	return book, nil
}

// fingerprint returns the saved fingerprint, or ErrStoreNotFound if the
// book was never saved.
func (s *Store) fingerprint(ctx context.Context) (string, error) {
	var fp string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM store_meta WHERE key = ?`, fingerprintKey).Scan(&fp)
	if errors.Is(err, sql.ErrNoRows) {
		return "", shared.ErrStoreNotFound
	}
	if err != nil {
		return "", fmt.Errorf("sqlite: read fingerprint: %w", err)
	}
	return fp, nil
}

func (s *Store) readDocument(ctx context.Context) (adapted.Document, error) {
	doc := adapted.Document{}

	rows, err := s.db.QueryContext(ctx,
		`SELECT role, name, phone, email, address, hours, subjects FROM persons ORDER BY position`)
	if err != nil {
		return doc, fmt.Errorf("sqlite: query persons: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var role, name, phone, email, address, hours, subjects sql.NullString
		if err := rows.Scan(&role, &name, &phone, &email, &address, &hours, &subjects); err != nil {
			return doc, fmt.Errorf("sqlite: scan person: %w", err)
		}
		list, err := decodeList(subjects)
		if err != nil {
			return doc, fmt.Errorf("sqlite: person subjects: %w", err)
		}
		doc.Persons = append(doc.Persons, adapted.AdaptedPerson{
			Role:     nullable(role),
			Name:     nullable(name),
			Phone:    nullable(phone),
			Email:    nullable(email),
			Address:  nullable(address),
			Hours:    nullable(hours),
			Subjects: list,
		})
	}
	if err := rows.Err(); err != nil {
		return doc, fmt.Errorf("sqlite: persons: %w", err)
	}

	lrows, err := s.db.QueryContext(ctx,
		`SELECT subject, day, start_time, end_time, participants FROM lessons ORDER BY position`)
	if err != nil {
		return doc, fmt.Errorf("sqlite: query lessons: %w", err)
	}
	defer lrows.Close()
	for lrows.Next() {
		var subject, day, start, end, participants sql.NullString
		if err := lrows.Scan(&subject, &day, &start, &end, &participants); err != nil {
			return doc, fmt.Errorf("sqlite: scan lesson: %w", err)
		}
		list, err := decodeList(participants)
		if err != nil {
			return doc, fmt.Errorf("sqlite: lesson participants: %w", err)
		}
		doc.Lessons = append(doc.Lessons, adapted.AdaptedLesson{
			Subject:      nullable(subject),
			Day:          nullable(day),
			Start:        nullable(start),
			End:          nullable(end),
			Participants: list,
		})
	}
	if err := lrows.Err(); err != nil {
		return doc, fmt.Errorf("sqlite: lessons: %w", err)
	}
	return doc, nil
}

// Save replaces every row in one transaction. Unchanged content is not rewritten.
func (s *Store) Save(ctx context.Context, book *addressbook.AddressBook) error {
	doc := adapted.FromModel(book)
	fp, err := doc.Fingerprint()
	if err != nil {
		return fmt.Errorf("sqlite: fingerprint: %w", err)
	}
	if current, err := s.fingerprint(ctx); err == nil && current == fp {
		s.log.Debug("address book unchanged, skipping write")
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("sqlite: begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := writeDocument(ctx, tx, doc, fp); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("sqlite: commit: %w", err)
	}

	s.log.Info("address book saved",
		logger.Int("persons", len(doc.Persons)),
		logger.Int("lessons", len(doc.Lessons)))
	return nil
}

func writeDocument(ctx context.Context, tx *sql.Tx, doc adapted.Document, fp string) error {
	for _, stmt := range []string{`DELETE FROM persons`, `DELETE FROM lessons`} {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("sqlite: clear: %w", err)
		}
	}

	for i, p := range doc.Persons {
		subjects, err := json.Marshal(p.Subjects)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO persons (position, role, name, phone, email, address, hours, subjects) VALUES (?,?,?,?,?,?,?,?)`,
			i, p.Role, p.Name, p.Phone, p.Email, p.Address, p.Hours, string(subjects)); err != nil {
			return fmt.Errorf("sqlite: insert person %d: %w", i, err)
		}
	}

	for i, l := range doc.Lessons {
		participants, err := json.Marshal(l.Participants)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO lessons (position, subject, day, start_time, end_time, participants) VALUES (?,?,?,?,?,?)`,
			i, l.Subject, l.Day, l.Start, l.End, string(participants)); err != nil {
			return fmt.Errorf("sqlite: insert lesson %d: %w", i, err)
		}
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO store_meta (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		fingerprintKey, fp); err != nil {
		return fmt.Errorf("sqlite: store fingerprint: %w", err)
	}
	return nil
}

func nullable(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	v := ns.String
	return &v
}

// decodeList parses a JSON array column. NULL is an absent list.
func decodeList(ns sql.NullString) ([]string, error) {
	if !ns.Valid {
		return nil, nil
	}
	var out []string
	if err := json.Unmarshal([]byte(ns.String), &out); err != nil {
		return nil, err
	}
	return out, nil
}

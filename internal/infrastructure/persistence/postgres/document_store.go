package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/tutorbook/tutorbook/internal/domain/addressbook"
	"github.com/tutorbook/tutorbook/internal/domain/shared"
	"github.com/tutorbook/tutorbook/internal/infrastructure/persistence/adapted"
	"github.com/tutorbook/tutorbook/pkg/logger"
)

// ══════════════════════════════════════════════════════════════════════════════
// DOCUMENT STORE
// ══════════════════════════════════════════════════════════════════════════════

const fingerprintKey = "fingerprint"

var (
	personColumns = []string{"position", "role", "name", "phone", "email", "address", "hours", "subjects"}
	lessonColumns = []string{"position", "subject", "day", "start_time", "end_time", "participants"}
)

// DocumentStore implements addressbook.Storage on top of a Connection.
type DocumentStore struct {
	conn     *Connection
	location string
	log      *logger.Logger
}

// NewDocumentStore creates a store. Migrations must already be applied.
func NewDocumentStore(conn *Connection, location string, log *logger.Logger) *DocumentStore {
	if log == nil {
		log = logger.Nop()
	}
	return &DocumentStore{
		conn:     conn,
		location: location,
		log:      log.With(logger.Component("postgres"), logger.StoreLocation(location)),
	}
}

// Location returns a redacted description of the database.
func (s *DocumentStore) Location() string {
	return s.location
}

// Close releases the connection pool.
func (s *DocumentStore) Close() error {
	s.conn.Close()
	return nil
}

// ─────────────────────────────────────────────────────────────────────────────
// Load
// ─────────────────────────────────────────────────────────────────────────────

// Load reads the stored book inside a repeatable-read snapshot.
func (s *DocumentStore) Load(ctx context.Context) (*addressbook.AddressBook, error) {
	var doc adapted.Document
	err := s.conn.WithTx(ctx, pgx.RepeatableRead, func(tx pgx.Tx) error {
		if _, err := readFingerprint(ctx, tx); err != nil {
			return err
		}
		var err error
		doc, err = readDocument(ctx, tx)
		return err
	})
	if err != nil {
		return nil, err
	}

	book, err := doc.ToModel()
	if err != nil {
		s.log.Warn("stored address book is invalid", logger.Err(err))
		return nil, fmt.Errorf("postgres: %w", err)
	}
	return book, nil
}

func readFingerprint(ctx context.Context, q Querier) (string, error) {
	var fp string
	err := q.QueryRow(ctx, `SELECT value FROM tutorbook_store_meta WHERE key = $1`, fingerprintKey).Scan(&fp)
	if IsNoRows(err) {
		return "", shared.ErrStoreNotFound
	}
	if err != nil {
		return "", fmt.Errorf("postgres: read fingerprint: %w", err)
	}
	return fp, nil
}

func readDocument(ctx context.Context, q Querier) (adapted.Document, error) {
	doc := adapted.Document{}

	rows, err := q.Query(ctx,
		`SELECT role, name, phone, email, address, hours, subjects FROM tutorbook_persons ORDER BY position`)
	if err != nil {
		return doc, fmt.Errorf("postgres: query persons: %w", err)
	}
	for rows.Next() {
		var p adapted.AdaptedPerson
		if err := rows.Scan(&p.Role, &p.Name, &p.Phone, &p.Email, &p.Address, &p.Hours, &p.Subjects); err != nil {
			rows.Close()
			return doc, fmt.Errorf("postgres: scan person: %w", err)
		}
		doc.Persons = append(doc.Persons, p)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return doc, fmt.Errorf("postgres: persons: %w", err)
	}

	rows, err = q.Query(ctx,
		`SELECT subject, day, start_time, end_time, participants FROM tutorbook_lessons ORDER BY position`)
	if err != nil {
		return doc, fmt.Errorf("postgres: query lessons: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var l adapted.AdaptedLesson
		if err := rows.Scan(&l.Subject, &l.Day, &l.Start, &l.End, &l.Participants); err != nil {
			return doc, fmt.Errorf("postgres: scan lesson: %w", err)
		}
		doc.Lessons = append(doc.Lessons, l)
	}
	if err := rows.Err(); err != nil {
		return doc, fmt.Errorf("postgres: lessons: %w", err)
	}
	return doc, nil
}

// ─────────────────────────────────────────────────────────────────────────────
// Save
// ─────────────────────────────────────────────────────────────────────────────

// Save replaces the stored book in one serializable transaction. Unchanged
// content is not rewritten.
func (s *DocumentStore) Save(ctx context.Context, book *addressbook.AddressBook) error {
	doc := adapted.FromModel(book)
	fp, err := doc.Fingerprint()
	if err != nil {
		return fmt.Errorf("postgres: fingerprint: %w", err)
	}

	written := false
	err = s.conn.WithTx(ctx, pgx.Serializable, func(tx pgx.Tx) error {
		if current, err := readFingerprint(ctx, tx); err == nil && current == fp {
			return nil
		}
		written = true
		return writeDocument(ctx, tx, doc, fp)
	})
	if err != nil {
		return err
	}

	if !written {
		s.log.Debug("address book unchanged, skipping write")
		return nil
	}
	s.log.Info("address book saved",
		logger.Int("persons", len(doc.Persons)),
		logger.Int("lessons", len(doc.Lessons)))
	return nil
}

func writeDocument(ctx context.Context, tx pgx.Tx, doc adapted.Document, fp string) error {
	if _, err := tx.Exec(ctx, `DELETE FROM tutorbook_persons`); err != nil {
		return fmt.Errorf("postgres: clear persons: %w", err)
	}
	if _, err := tx.Exec(ctx, `DELETE FROM tutorbook_lessons`); err != nil {
		return fmt.Errorf("postgres: clear lessons: %w", err)
	}

	_, err := tx.CopyFrom(ctx, pgx.Identifier{"tutorbook_persons"}, personColumns,
		pgx.CopyFromSlice(len(doc.Persons), func(i int) ([]any, error) {
			p := doc.Persons[i]
			return []any{i, p.Role, p.Name, p.Phone, p.Email, p.Address, p.Hours, p.Subjects}, nil
		}))
	if err != nil {
		return fmt.Errorf("postgres: copy persons: %w", err)
	}

	_, err = tx.CopyFrom(ctx, pgx.Identifier{"tutorbook_lessons"}, lessonColumns,
		pgx.CopyFromSlice(len(doc.Lessons), func(i int) ([]any, error) {
			l := doc.Lessons[i]
			return []any{i, l.Subject, l.Day, l.Start, l.End, l.Participants}, nil
		}))
	if err != nil {
		return fmt.Errorf("postgres: copy lessons: %w", err)
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO tutorbook_store_meta (key, value, updated_at) VALUES ($1, $2, NOW())
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at
	`, fingerprintKey, fp)
	if err != nil {
		return fmt.Errorf("postgres: store fingerprint: %w", err)
	}
	return nil
}

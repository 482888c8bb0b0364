package model

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/tutorbook/tutorbook/config"
	"github.com/tutorbook/tutorbook/internal/domain/addressbook"
	"github.com/tutorbook/tutorbook/internal/domain/lesson"
	"github.com/tutorbook/tutorbook/internal/domain/person"
	"github.com/tutorbook/tutorbook/internal/domain/shared"
	"github.com/tutorbook/tutorbook/pkg/logger"
)

// ══════════════════════════════════════════════════════════════════════════════
// MANAGER
// ══════════════════════════════════════════════════════════════════════════════

// Manager implements Model. A single writer is assumed; the lock lets a
// display goroutine read derived views while a command runs.
type Manager struct {
	mu sync.RWMutex

	book     *addressbook.VersionedAddressBook
	filtered *FilteredPersons
	prefs    config.UserPrefs
	log      *logger.Logger
}

var _ Model = (*Manager)(nil)

// Option configures a Manager.
type Option func(*managerOptions)

type managerOptions struct {
	history []addressbook.HistoryOption
	prefs   config.UserPrefs
	log     *logger.Logger
}

// WithHistoryCapacity bounds the undo history.
func WithHistoryCapacity(n int) Option {
	return func(o *managerOptions) {
		o.history = append(o.history, addressbook.WithCapacity(n))
	}
}

// WithHistoryOptions passes options through to the versioned book.
func WithHistoryOptions(opts ...addressbook.HistoryOption) Option {
	return func(o *managerOptions) {
		o.history = append(o.history, opts...)
	}
}

// WithUserPrefs sets the initial preferences.
func WithUserPrefs(prefs config.UserPrefs) Option {
	return func(o *managerOptions) {
		o.prefs = prefs
	}
}

// WithLogger sets the logger.
func WithLogger(log *logger.Logger) Option {
	return func(o *managerOptions) {
		if log != nil {
			o.log = log
		}
	}
}

// NewManager creates a Manager around a copy of initial. A nil book starts empty.
func NewManager(initial *addressbook.AddressBook, opts ...Option) *Manager {
	o := managerOptions{
		prefs: config.DefaultUserPrefs(),
		log:   logger.Nop(),
	}
	for _, opt := range opts {
		opt(&o)
	}

	book := addressbook.NewVersioned(initial, o.history...)
	return &Manager{
		book:     book,
		filtered: NewFilteredPersons(book.AddressBook),
		prefs:    o.prefs,
		log:      o.log.With(logger.Component("model")),
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Preferences
// ─────────────────────────────────────────────────────────────────────────────

// UserPrefs returns the current preferences.
func (m *Manager) UserPrefs() config.UserPrefs {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.prefs
}

// SetUserPrefs replaces the preferences.
func (m *Manager) SetUserPrefs(prefs config.UserPrefs) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.prefs = prefs
}

// ─────────────────────────────────────────────────────────────────────────────
// Address book
// ─────────────────────────────────────────────────────────────────────────────

// AddressBook returns a copy of the live book.
func (m *Manager) AddressBook() *addressbook.AddressBook {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.book.AddressBook.Copy()
}

// SetAddressBook replaces the live contents with a copy of book and commits.
func (m *Manager) SetAddressBook(book *addressbook.AddressBook) {
	if book == nil {
		panic("model: SetAddressBook called with nil book")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.book.ResetData(book)
	m.commitLocked()
}

// mutate runs fn under the write lock and commits only if it succeeds.
func (m *Manager) mutate(op string, fn func(b *addressbook.AddressBook) error, fields ...logger.Field) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := fn(m.book.AddressBook); err != nil {
		m.log.Debug("mutation rejected", append(fields, logger.Operation(op), logger.Err(err))...)
		return err
	}
	m.commitLocked()
	m.log.Debug("mutation committed", append(fields, logger.Operation(op),
		logger.Int("history_index", m.book.Index()))...)
	return nil
}

func (m *Manager) commitLocked() {
	m.book.Commit()
	m.filtered.Refresh(m.book.AddressBook)
}

// HasPerson reports whether the same person is in the book.
func (m *Manager) HasPerson(p person.Person) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.book.HasPerson(p)
}

// FindPerson looks a person up by identity key.
func (m *Manager) FindPerson(key person.Key) (person.Person, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.book.FindPerson(key)
}

// AddPerson appends p.
func (m *Manager) AddPerson(p person.Person) error {
	return m.mutate("add_person", func(b *addressbook.AddressBook) error {
		return b.AddPerson(p)
	}, logger.PersonName(p.Name().String()))
}

// SetPerson replaces target with edited.
func (m *Manager) SetPerson(target, edited person.Person) error {
	return m.mutate("set_person", func(b *addressbook.AddressBook) error {
		return b.SetPerson(target, edited)
	}, logger.PersonName(target.Name().String()))
}

// DeletePerson removes p and cascades to its lessons.
func (m *Manager) DeletePerson(p person.Person) error {
	return m.mutate("delete_person", func(b *addressbook.AddressBook) error {
		return b.DeletePerson(p)
	}, logger.PersonName(p.Name().String()))
}

// HasLesson reports whether the same lesson is in the book.
func (m *Manager) HasLesson(l lesson.Lesson) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.book.HasLesson(l)
}

// AddLesson appends l.
func (m *Manager) AddLesson(l lesson.Lesson) error {
	return m.mutate("add_lesson", func(b *addressbook.AddressBook) error {
		return b.AddLesson(l)
	}, logger.LessonSubject(l.Subject().String()))
}

// SetLesson replaces target with edited.
func (m *Manager) SetLesson(target, edited lesson.Lesson) error {
	return m.mutate("set_lesson", func(b *addressbook.AddressBook) error {
		return b.SetLesson(target, edited)
	}, logger.LessonSubject(target.Subject().String()))
}

// DeleteLesson removes l.
func (m *Manager) DeleteLesson(l lesson.Lesson) error {
	return m.mutate("delete_lesson", func(b *addressbook.AddressBook) error {
		return b.DeleteLesson(l)
	}, logger.LessonSubject(l.Subject().String()))
}

// AssociatedPeople returns everyone sharing a lesson with p.
func (m *Manager) AssociatedPeople(p person.Person) []person.Person {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.book.AssociatedPeople(p)
}

// AssociatedLessons returns p's lessons.
func (m *Manager) AssociatedLessons(p person.Person) []lesson.Lesson {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.book.AssociatedLessons(p)
}

// UniqueSubjectsInLessons returns the subjects across p's lessons.
func (m *Manager) UniqueSubjectsInLessons(p person.Person) shared.SubjectSet {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.book.UniqueSubjectsInLessons(p)
}

// ─────────────────────────────────────────────────────────────────────────────
// Filtered view
// ─────────────────────────────────────────────────────────────────────────────

// FilteredPersonList returns the people matching the current predicate.
func (m *Manager) FilteredPersonList() []person.Person {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.filtered.Items()
}

// UpdateFilteredPersonList replaces the predicate. A nil predicate panics.
func (m *Manager) UpdateFilteredPersonList(pred person.Predicate) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.filtered.SetPredicate(pred, m.book.AddressBook)
}

// ─────────────────────────────────────────────────────────────────────────────
// History
// ─────────────────────────────────────────────────────────────────────────────

// CanUndoAddressBook reports whether an undo would succeed.
func (m *Manager) CanUndoAddressBook() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.book.CanUndo()
}

// CanRedoAddressBook reports whether a redo would succeed.
func (m *Manager) CanRedoAddressBook() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.book.CanRedo()
}

// UndoAddressBook restores the previous snapshot.
func (m *Manager) UndoAddressBook() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.book.Undo(); err != nil {
		return err
	}
	m.filtered.Refresh(m.book.AddressBook)
	return nil
}

// RedoAddressBook restores the snapshot last undone.
func (m *Manager) RedoAddressBook() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.book.Redo(); err != nil {
		return err
	}
	m.filtered.Refresh(m.book.AddressBook)
	return nil
}

// CommitAddressBook records the live state as a new snapshot.
func (m *Manager) CommitAddressBook() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.commitLocked()
}

// HistoryLen returns the number of snapshots held.
func (m *Manager) HistoryLen() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.book.Len()
}

// HistoryIndex returns the current snapshot position.
func (m *Manager) HistoryIndex() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.book.Index()
}

// ══════════════════════════════════════════════════════════════════════════════
// PERSISTENCE
// ══════════════════════════════════════════════════════════════════════════════

// Load reads the book from store and builds a Manager around it. A store that
// was never written yields an empty book; any other failure is returned so the
// caller does not overwrite data it could not read.
func Load(ctx context.Context, store addressbook.Storage, opts ...Option) (*Manager, error) {
	book, err := store.Load(ctx)
	switch {
	case errors.Is(err, shared.ErrStoreNotFound):
		book = addressbook.New()
	case err != nil:
		return nil, fmt.Errorf("load address book from %s: %w", store.Location(), err)
	}
	return NewManager(book, opts...), nil
}

// Save writes the live book to store.
func (m *Manager) Save(ctx context.Context, store addressbook.Storage) error {
	if err := store.Save(ctx, m.AddressBook()); err != nil {
		return fmt.Errorf("save address book to %s: %w", store.Location(), err)
	}
	return nil
}

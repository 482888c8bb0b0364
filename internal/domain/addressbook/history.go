package addressbook

import (
	"time"

	"github.com/google/uuid"

	"github.com/tutorbook/tutorbook/internal/domain/shared"
)

// DefaultHistoryCapacity is the number of snapshots kept when no capacity is given.
const DefaultHistoryCapacity = 100

// ══════════════════════════════════════════════════════════════════════════════
// SNAPSHOT
// ══════════════════════════════════════════════════════════════════════════════

// Snapshot is an immutable copy of an AddressBook taken at commit time.
type Snapshot struct {
	ID          uuid.UUID
	CommittedAt time.Time

	book *AddressBook
}

func newSnapshot(b *AddressBook, now time.Time) Snapshot {
	return Snapshot{
		ID:          uuid.New(),
		CommittedAt: now,
		book:        b.Copy(),
	}
}

// Book returns a copy of the captured address book.
func (s Snapshot) Book() *AddressBook {
	return s.book.Copy()
}

// ══════════════════════════════════════════════════════════════════════════════
// VERSIONED ADDRESS BOOK
// ══════════════════════════════════════════════════════════════════════════════

// VersionedAddressBook is an AddressBook with a linear undo/redo history.
//
// states[0..current] are the past and present; states[current+1..] are the
// redoable future. A commit drops the future. Once the history is full the
// oldest snapshot is evicted.
type VersionedAddressBook struct {
	*AddressBook

	states   []Snapshot
	current  int
	capacity int
	now      func() time.Time
}

// HistoryOption configures a VersionedAddressBook.
type HistoryOption func(*VersionedAddressBook)

// WithCapacity bounds the number of kept snapshots. Values below 1 are ignored.
func WithCapacity(n int) HistoryOption {
	return func(v *VersionedAddressBook) {
		if n >= 1 {
			v.capacity = n
		}
	}
}

// WithClock overrides the clock used to stamp snapshots.
func WithClock(now func() time.Time) HistoryOption {
	return func(v *VersionedAddressBook) {
		if now != nil {
			v.now = now
		}
	}
}

// NewVersioned wraps a copy of initial with a history holding a single snapshot.
func NewVersioned(initial *AddressBook, opts ...HistoryOption) *VersionedAddressBook {
	if initial == nil {
		initial = New()
	}
	v := &VersionedAddressBook{
		AddressBook: initial.Copy(),
		capacity:    DefaultHistoryCapacity,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(v)
	}
	v.states = []Snapshot{newSnapshot(v.AddressBook, v.now())}
	v.current = 0
	return v
}

// Commit saves the live state as the newest snapshot and drops the redoable future.
func (v *VersionedAddressBook) Commit() {
	v.states = append(v.states[:v.current+1], newSnapshot(v.AddressBook, v.now()))
	if len(v.states) > v.capacity {
		drop := len(v.states) - v.capacity
		kept := make([]Snapshot, v.capacity)
		copy(kept, v.states[drop:])
		v.states = kept
	}
	v.current = len(v.states) - 1
}

// CanUndo reports whether an earlier snapshot exists.
func (v *VersionedAddressBook) CanUndo() bool {
	return v.current > 0
}

// CanRedo reports whether an undone snapshot can be restored.
func (v *VersionedAddressBook) CanRedo() bool {
	return v.current < len(v.states)-1
}

// Undo restores the previous snapshot.
func (v *VersionedAddressBook) Undo() error {
	if !v.CanUndo() {
		return shared.ErrNoUndoableState
	}
	v.current--
	v.AddressBook.ResetData(v.states[v.current].book)
	return nil
}

// Redo restores the snapshot that was last undone.
func (v *VersionedAddressBook) Redo() error {
	if !v.CanRedo() {
		return shared.ErrNoRedoableState
	}
	v.current++
	v.AddressBook.ResetData(v.states[v.current].book)
	return nil
}

// Current returns the snapshot the live state was last committed or restored from.
func (v *VersionedAddressBook) Current() Snapshot {
	return v.states[v.current]
}

// Len returns the number of snapshots held.
func (v *VersionedAddressBook) Len() int {
	return len(v.states)
}

// Index returns the position of the current snapshot.
func (v *VersionedAddressBook) Index() int {
	return v.current
}

// Capacity returns the snapshot bound.
func (v *VersionedAddressBook) Capacity() int {
	return v.capacity
}

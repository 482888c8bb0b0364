package jsonfile

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tutorbook/tutorbook/internal/domain/addressbook"
	"github.com/tutorbook/tutorbook/internal/domain/shared"
	tu "github.com/tutorbook/tutorbook/internal/testutil"
)

func TestStore_LoadMissing(t *testing.T) {
	s := NewStore(filepath.Join(t.TempDir(), "none.json"), nil)

	_, err := s.Load(context.Background())
	assert.ErrorIs(t, err, shared.ErrStoreNotFound)
}

func TestStore_SaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "addressbook.json")
	s := NewStore(path, nil)
	book := tu.TypicalAddressBook()

	require.NoError(t, s.Save(context.Background(), book))
	assert.Equal(t, path, s.Location())

	got, err := NewStore(path, nil).Load(context.Background())
	require.NoError(t, err)
	assert.True(t, book.Equal(got))

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp files must not be left behind")
}

func TestStore_SaveOverwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "addressbook.json")
	s := NewStore(path, nil)
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, tu.TypicalAddressBook()))
	require.NoError(t, s.Save(ctx, addressbook.New()))

	got, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Zero(t, got.PersonCount())
}

func TestStore_SkipsUnchangedWrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "addressbook.json")
	s := NewStore(path, nil)
	ctx := context.Background()
	book := tu.TypicalAddressBook()

	require.NoError(t, s.Save(ctx, book))
	before, err := os.Stat(path)
	require.NoError(t, err)

	require.NoError(t, s.Save(ctx, book))
	after, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, before.ModTime(), after.ModTime())

	require.NoError(t, os.Remove(path))
	require.NoError(t, s.Save(ctx, book), "a removed file is rewritten")
	_, err = os.Stat(path)
	assert.NoError(t, err)
}

func TestStore_LoadCorrupt(t *testing.T) {
	tests := []struct {
		name    string
		content string
		check   func(t *testing.T, err error)
	}{
		{
			name:    "not json",
			content: "{",
			check:   func(t *testing.T, err error) { assert.Error(t, err) },
		},
		{
			name:    "missing name",
			content: `{"persons":[{"role":"tutee","phone":"94351253","email":"daniel@example.com","address":"10th street","hours":"69","subjects":["MATH"]}],"lessons":[]}`,
			check: func(t *testing.T, err error) {
				var rec *shared.RecordError
				require.ErrorAs(t, err, &rec)
				assert.Equal(t, 0, rec.Index)
				assert.Equal(t, "Tutee's Name field is missing!", rec.Err.Error())
			},
		},
		{
			name:    "dangling participant",
			content: `{"persons":[],"lessons":[{"subject":"MATH","day":"MON","start":"10:00","end":"11:00","participants":["Ghost"]}]}`,
			check: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, shared.ErrDanglingParticipant)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "addressbook.json")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0o644))

			_, err := NewStore(path, nil).Load(context.Background())
			tt.check(t, err)
		})
	}
}

func TestStore_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	s := NewStore(filepath.Join(t.TempDir(), "addressbook.json"), nil)

	assert.ErrorIs(t, s.Save(ctx, addressbook.New()), context.Canceled)
	_, err := s.Load(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

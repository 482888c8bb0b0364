package main

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupEnv(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("TUTORBOOK_STORAGE_BACKEND", "json")
	t.Setenv("TUTORBOOK_STORAGE_DATA_PATH", filepath.Join(dir, "addressbook.json"))
	t.Setenv("TUTORBOOK_STORAGE_PREFS_PATH", filepath.Join(dir, "preferences.yaml"))
	t.Setenv("TUTORBOOK_LOG_LEVEL", "error")
	return dir
}

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	a := &app{}
	root := newRootCmd(a)
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(args)

	err := root.ExecuteContext(context.Background())
	require.NoError(t, a.close())
	return out.String(), err
}

func seed(t *testing.T) {
	t.Helper()
	_, err := run(t, "", "add-tutor", "--name", "Alice Pauline", "--phone", "94351253",
		"--email", "alice@example.com", "--address", "123, Jurong West Ave 6", "--subject", "math")
	require.NoError(t, err)
	_, err = run(t, "", "add-tutee", "--name", "Daniel", "--phone", "94351253",
		"--email", "daniel@example.com", "--address", "10th street", "--hours", "69", "-s", "MATH")
	require.NoError(t, err)
	_, err = run(t, "", "add-lesson", "--subject", "math", "--day", "mon", "--start", "10:00",
		"--end", "12:00", "--with", "Alice Pauline", "--with", "Daniel")
	require.NoError(t, err)
}

func TestCLI_AddListShow(t *testing.T) {
	setupEnv(t)
	seed(t)

	out, err := run(t, "", "check")
	require.NoError(t, err)
	assert.Contains(t, out, "ok: 2 persons, 1 lessons")

	out, err = run(t, "", "list", "--role", "tutee")
	require.NoError(t, err)
	assert.Contains(t, out, "Daniel")
	assert.NotContains(t, out, "Alice Pauline")
	assert.Contains(t, out, "1 of 2 persons listed")

	out, err = run(t, "", "show", "daniel")
	require.NoError(t, err)
	assert.Contains(t, out, "Daniel (Tutee)")
	assert.Contains(t, out, "Alice Pauline (Tutor)")
	assert.Contains(t, out, "hours:    69")
}

func TestCLI_ValidationErrors(t *testing.T) {
	setupEnv(t)

	_, err := run(t, "", "add-tutee", "--name", "Daniel", "--phone", "94351253",
		"--email", "daniel@example.com", "--address", "10th street", "--hours=-69")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Hours should be a non-negative integer")

	_, err = run(t, "", "add-lesson", "--subject", "math", "--day", "mon", "--start", "10:00",
		"--end", "12:00", "--with", "Ghost")
	assert.Error(t, err)
}

func TestCLI_DeleteCascadesAndPersists(t *testing.T) {
	setupEnv(t)
	seed(t)

	out, err := run(t, "", "delete", "Alice Pauline")
	require.NoError(t, err)
	assert.Contains(t, out, "0 lessons removed, 1 updated")

	out, err = run(t, "", "delete", "Daniel")
	require.NoError(t, err)
	assert.Contains(t, out, "1 lessons removed, 0 updated")

	out, err = run(t, "", "check")
	require.NoError(t, err)
	assert.Contains(t, out, "ok: 0 persons, 0 lessons")
}

func TestCLI_ShellUndoRedo(t *testing.T) {
	setupEnv(t)
	seed(t)

	script := strings.Join([]string{
		`delete "Alice Pauline"`,
		`undo`,
		`undo`,
		`redo`,
		`list`,
		`exit`,
	}, "\n")
	out, err := run(t, script, "shell")
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(out, "Undo success!"))
	assert.Contains(t, out, "Redo success!")
	assert.Contains(t, out, "no undoable address book state")
	assert.Contains(t, out, "1 of 1 persons listed")

	out, err = run(t, "", "check")
	require.NoError(t, err)
	assert.Contains(t, out, "ok: 1 persons")
}

func TestCLI_Export(t *testing.T) {
	dir := setupEnv(t)
	seed(t)

	for _, name := range []string{"copy.json", "copy.db"} {
		dest := filepath.Join(dir, name)
		out, err := run(t, "", "export", "--to", dest)
		require.NoError(t, err)
		assert.Contains(t, out, "exported to "+dest)
	}

	out, err := run(t, "", "--backend", "sqlite", "--data", filepath.Join(dir, "copy.db"), "check")
	require.NoError(t, err)
	assert.Contains(t, out, "ok: 2 persons, 1 lessons")
}

func TestCLI_WatchNeedsAnnouncingBackend(t *testing.T) {
	setupEnv(t)

	_, err := run(t, "", "watch")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `backend "json" does not announce changes`)

	out, err := run(t, "watch\nexit\n", "shell")
	require.NoError(t, err)
	assert.Contains(t, out, "watch is not available in the shell")
}

func TestSplitArgs(t *testing.T) {
	tests := []struct {
		line string
		want []string
	}{
		{"", nil},
		{"list", []string{"list"}},
		{`  show   "Alice Pauline" `, []string{"show", "Alice Pauline"}},
		{`edit 'Daniel' --address "10th  street"`, []string{"edit", "Daniel", "--address", "10th  street"}},
		{`add --name ""`, []string{"add", "--name", ""}},
	}
	for _, tt := range tests {
		got, err := splitArgs(tt.line)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, tt.line)
	}

	_, err := splitArgs(`show "Alice`)
	assert.ErrorIs(t, err, errUnterminatedQuote)
}

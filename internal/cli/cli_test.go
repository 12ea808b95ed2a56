package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Makepad-fr/contactbook/internal/auth"
	"github.com/Makepad-fr/contactbook/internal/route"
	"github.com/Makepad-fr/contactbook/internal/validation"
)

type result struct {
	code           int
	stdout, stderr string
}

// run executes the command line against a private data directory.
func run(t *testing.T, dataDir string, args ...string) result {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	var out, errOut bytes.Buffer
	full := append([]string{"--data-dir", dataDir, "--env-file", "", "--theme", "mono"}, args...)
	code := Execute(context.Background(), full, &out, &errOut)
	return result{code: code, stdout: out.String(), stderr: errOut.String()}
}

func TestContactsLifecycle(t *testing.T) {
	for _, backend := range []string{"json", "sqlite"} {
		t.Run(backend, func(t *testing.T) {
			dir := t.TempDir()

			res := run(t, dir, "--store", backend, "contacts", "add", "Jane Doe", "555-123-4567", "jane@example.com")
			require.Equal(t, ExitOK, res.code, res.stderr)
			assert.Contains(t, res.stdout, "added J")

			res = run(t, dir, "--store", backend, "contacts", "ls")
			require.Equal(t, ExitOK, res.code, res.stderr)
			assert.Contains(t, res.stdout, "Jane Doe")
			assert.Contains(t, res.stdout, "Total 1")

			res = run(t, dir, "--store", backend, "contacts", "rm", "2")
			assert.Equal(t, ExitUsage, res.code)
			assert.Contains(t, res.stderr, "index out of range")

			res = run(t, dir, "--store", backend, "contacts", "rm", "1")
			require.Equal(t, ExitOK, res.code, res.stderr)

			res = run(t, dir, "--store", backend, "contacts", "ls")
			assert.Contains(t, res.stdout, "no contacts")
		})
	}
}

func TestContactsStoredAsCSVInJSONScope(t *testing.T) {
	dir := t.TempDir()
	res := run(t, dir, "contacts", "add", "Jane Doe", "555-123-4567", "jane@example.com")
	require.Equal(t, ExitOK, res.code, res.stderr)

	b, err := os.ReadFile(filepath.Join(dir, ScopeContacts+".json"))
	require.NoError(t, err)
	assert.Contains(t, string(b), `"Jane Doe,555-123-4567,jane@example.com"`)
}

func TestContactsRemoveByKey(t *testing.T) {
	dir := t.TempDir()
	res := run(t, dir, "contacts", "add", "Jane Doe", "555-123-4567", "jane@example.com")
	require.Equal(t, ExitOK, res.code, res.stderr)
	key := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(res.stdout), "✔ added"))

	res = run(t, dir, "contacts", "rm", key)
	require.Equal(t, ExitOK, res.code, res.stderr)
	assert.Contains(t, res.stdout, "removed "+key)
}

func TestContactsAddRejectsInvalid(t *testing.T) {
	dir := t.TempDir()
	res := run(t, dir, "contacts", "add", "jane", "555-123-4567", "jane@example.com")
	assert.Equal(t, ExitUsage, res.code)
	assert.Contains(t, res.stderr, validation.MsgFullName)

	res = run(t, dir, "contacts", "add", "Jane Doe")
	assert.Equal(t, ExitUsage, res.code)
	assert.Contains(t, res.stderr, "usage:")
}

func TestTasksLifecycle(t *testing.T) {
	dir := t.TempDir()
	require.Equal(t, ExitOK, run(t, dir, "tasks", "add", "Buy", "milk").code)
	require.Equal(t, ExitOK, run(t, dir, "tasks", "add", "Call Jane").code)

	res := run(t, dir, "tasks", "done", "1")
	require.Equal(t, ExitOK, res.code, res.stderr)

	res = run(t, dir, "tasks", "ls")
	require.Equal(t, ExitOK, res.code, res.stderr)
	assert.Contains(t, res.stdout, "[x] Buy milk")
	assert.Contains(t, res.stdout, "[ ] Call Jane")
	assert.Contains(t, res.stdout, "50%")

	res = run(t, dir, "tasks", "ls", "--group")
	assert.Contains(t, res.stdout, "Pending")
	assert.Contains(t, res.stdout, "Done")

	res = run(t, dir, "tasks", "rm", "x")
	assert.Equal(t, ExitUsage, res.code)
	assert.Contains(t, res.stderr, "not a number")

	require.Equal(t, ExitOK, run(t, dir, "tasks", "rm", "1").code)
	res = run(t, dir, "tasks", "ls")
	assert.NotContains(t, res.stdout, "Buy milk")
}

func TestTasksAddRejectsLeadingSpace(t *testing.T) {
	res := run(t, t.TempDir(), "tasks", "add", " indented")
	assert.Equal(t, ExitUsage, res.code)
	assert.Contains(t, res.stderr, validation.MsgTask)
}

func TestUsersHash(t *testing.T) {
	res := run(t, t.TempDir(), "users", "hash", "s3cret")
	require.Equal(t, ExitOK, res.code, res.stderr)
	assert.True(t, auth.IsHashed(strings.TrimSpace(res.stdout)))
}

func TestUsersHashFromStdin(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	e := &env{}
	defer e.close()
	root := newRootCmd(e)
	var out bytes.Buffer
	root.SetArgs([]string{"--data-dir", t.TempDir(), "--env-file", "", "users", "hash"})
	root.SetIn(strings.NewReader("s3cret\n"))
	root.SetOut(&out)
	require.NoError(t, root.Execute())
	assert.True(t, auth.IsHashed(strings.TrimSpace(out.String())))
}

func TestUsersListFlagsPlaintext(t *testing.T) {
	res := run(t, t.TempDir(), "users", "ls")
	require.Equal(t, ExitOK, res.code, res.stderr)
	assert.Contains(t, res.stdout, "jane")
	assert.Contains(t, res.stdout, "plaintext")
	assert.Contains(t, res.stdout, "contactbook users hash")
}

func TestRoutes(t *testing.T) {
	res := run(t, t.TempDir(), "routes")
	require.Equal(t, ExitOK, res.code, res.stderr)
	for _, r := range route.All() {
		assert.Contains(t, res.stdout, r.Path())
	}
	assert.Contains(t, res.stdout, "login")
}

func TestConfigShowAndInit(t *testing.T) {
	dir := t.TempDir()
	res := run(t, dir, "--store", "sqlite", "config", "show")
	require.Equal(t, ExitOK, res.code, res.stderr)
	assert.Contains(t, res.stdout, "store: sqlite")
	assert.Contains(t, res.stdout, "data_dir: "+dir)

	path := filepath.Join(dir, "custom.yaml")
	res = run(t, dir, "--config", path, "config", "init")
	require.Equal(t, ExitOK, res.code, res.stderr)
	assert.FileExists(t, path)

	res = run(t, dir, "--config", path, "config", "init")
	assert.Equal(t, ExitUsage, res.code)
	assert.Contains(t, res.stderr, "--force")
}

func TestUsageErrors(t *testing.T) {
	dir := t.TempDir()
	assert.Equal(t, ExitUsage, run(t, dir, "frobnicate").code)
	assert.Equal(t, ExitUsage, run(t, dir, "--no-such-flag").code)
	assert.Equal(t, ExitUsage, run(t, dir, "--store", "redis", "routes").code)
}

func TestBuildApp(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	e := &env{}
	defer e.close()
	root := newRootCmd(e)
	root.SetArgs([]string{"--data-dir", t.TempDir(), "--env-file", "", "--store", "memory", "routes"})
	root.SetOut(&bytes.Buffer{})
	require.NoError(t, root.Execute())

	m, err := e.buildApp(nil)
	require.NoError(t, err)
	assert.NotNil(t, m)
	assert.Len(t, m.Links(), 5)
}

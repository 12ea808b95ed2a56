package content

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

// next waits for one locator or fails after a generous bound.
func next(t *testing.T, ch <-chan string) string {
	t.Helper()
	select {
	case l, ok := <-ch:
		require.True(t, ok, "changes closed")
		return l
	case <-time.After(5 * time.Second):
		t.Fatal("no change reported")
		return ""
	}
}

func startWatcher(t *testing.T, dir string) *Watcher {
	t.Helper()
	w, err := NewWatcher(dir, 20*time.Millisecond, zaptest.NewLogger(t))
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	go w.Run(ctx)
	t.Cleanup(func() {
		cancel()
		for range w.Changes() {
		}
	})
	return w
}

func TestWatcherReportsTemplateEdits(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "content"), 0o755))
	w := startWatcher(t, dir)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "content", "about.md"), []byte("# New"), 0o644))
	assert.Equal(t, Locator("about"), next(t, w.Changes()))

	require.NoError(t, os.WriteFile(filepath.Join(dir, "content", "home.html"), []byte("<h1>Hi</h1>"), 0o644))
	assert.Equal(t, Locator("home"), next(t, w.Changes()))
}

func TestWatcherPicksUpNewComponentsDir(t *testing.T) {
	dir := t.TempDir()
	w := startWatcher(t, dir)

	require.NoError(t, os.Mkdir(filepath.Join(dir, "components"), 0o755))
	// the new directory is added asynchronously; keep writing until seen
	deadline := time.After(5 * time.Second)
	for {
		require.NoError(t, os.WriteFile(filepath.Join(dir, "components", "footer.md"), []byte("x"), 0o644))
		select {
		case l := <-w.Changes():
			assert.Equal(t, Component("footer"), l)
			return
		case <-time.After(100 * time.Millisecond):
		case <-deadline:
			t.Fatal("footer change not reported")
		}
	}
}

func TestWatcherIgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "content"), 0o755))
	w := startWatcher(t, dir)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "content", "notes.txt"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "about.md"), []byte("x"), 0o644))
	select {
	case l := <-w.Changes():
		t.Fatalf("unexpected change %s", l)
	case <-time.After(200 * time.Millisecond):
	}
}

func TestWatcherClosesOnCancel(t *testing.T) {
	w, err := NewWatcher(t.TempDir(), 0, nil)
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		w.Run(ctx)
		close(done)
	}()
	cancel()
	<-done
	_, ok := <-w.Changes()
	assert.False(t, ok)
}

func TestNewWatcherMissingDir(t *testing.T) {
	_, err := NewWatcher(filepath.Join(t.TempDir(), "missing"), 0, nil)
	assert.Error(t, err)
}

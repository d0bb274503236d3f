package watch

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRelevant(t *testing.T) {
	t.Parallel()

	w := New(Options{Extensions: []string{".md"}})

	tests := []struct {
		name  string
		event fsnotify.Event
		want  bool
	}{
		{name: "write markdown", event: fsnotify.Event{Name: "docs/a.md", Op: fsnotify.Write}, want: true},
		{name: "create upper case", event: fsnotify.Event{Name: "docs/A.MD", Op: fsnotify.Create}, want: true},
		{name: "remove", event: fsnotify.Event{Name: "a.md", Op: fsnotify.Remove}, want: true},
		{name: "chmod only", event: fsnotify.Event{Name: "a.md", Op: fsnotify.Chmod}, want: false},
		{name: "other extension", event: fsnotify.Event{Name: "a.txt", Op: fsnotify.Write}, want: false},
		{name: "hidden file", event: fsnotify.Event{Name: "docs/.a.md", Op: fsnotify.Write}, want: false},
		{name: "atomic temp file", event: fsnotify.Event{Name: "a.md.tmp.123", Op: fsnotify.Create}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, w.Relevant(tt.event))
		})
	}
}

func TestRelevant_NoExtensions(t *testing.T) {
	t.Parallel()

	w := New(Options{})
	assert.True(t, w.Relevant(fsnotify.Event{Name: "notes.txt", Op: fsnotify.Write}))
}

func TestNew_DefaultDebounce(t *testing.T) {
	t.Parallel()

	assert.Equal(t, DefaultDebounce, New(Options{}).opts.Debounce)
}

func TestRun_NoDirectories(t *testing.T) {
	t.Parallel()

	err := New(Options{}).Run(context.Background(), func(context.Context) error { return nil })
	require.ErrorIs(t, err, ErrNoDirectories)
}

func TestRun_MissingDirectory(t *testing.T) {
	t.Parallel()

	w := New(Options{Dirs: []string{filepath.Join(t.TempDir(), "missing")}})
	err := w.Run(context.Background(), func(context.Context) error { return nil })
	require.Error(t, err)
}

func TestRun_StopsOnCancel(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	w := New(Options{Dirs: []string{t.TempDir()}})
	assert.NoError(t, w.Run(ctx, func(context.Context) error { return nil }))
}

func TestRun_CallsOnChange(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var calls atomic.Int32
	w := New(Options{Dirs: []string{dir}, Extensions: []string{".md"}, Debounce: 10 * time.Millisecond})

	done := make(chan error, 1)
	go func() {
		done <- w.Run(ctx, func(context.Context) error {
			calls.Add(1)
			return nil
		})
	}()

	// Keep writing until the watcher has registered the directory.
	require.Eventually(t, func() bool {
		_ = os.WriteFile(filepath.Join(dir, "a.md"), []byte("# a\n"), 0o644)
		return calls.Load() > 0
	}, 5*time.Second, 50*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not stop")
	}
}

func TestRun_CallbackErrorStops(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	sentinel := assert.AnError
	w := New(Options{Dirs: []string{dir}, Recursive: true, Debounce: 10 * time.Millisecond})

	done := make(chan error, 1)
	go func() {
		done <- w.Run(context.Background(), func(context.Context) error { return sentinel })
	}()

	var got error
	require.Eventually(t, func() bool {
		_ = os.WriteFile(filepath.Join(dir, "b.md"), []byte("x\n"), 0o644)
		select {
		case got = <-done:
			return true
		default:
			return false
		}
	}, 5*time.Second, 50*time.Millisecond)

	assert.ErrorIs(t, got, sentinel)
}

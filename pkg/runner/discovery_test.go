package runner_test

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/yaklabco/docscan/pkg/runner"
)

func writeTree(t *testing.T, dir string, files ...string) {
	t.Helper()

	for _, f := range files {
		path := filepath.Join(dir, f)
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatalf("setup mkdir: %v", err)
		}
		if err := os.WriteFile(path, []byte("content\n"), 0644); err != nil {
			t.Fatalf("setup write: %v", err)
		}
	}
}

func abs(dir string, rel ...string) []string {
	out := make([]string, 0, len(rel))
	for _, r := range rel {
		out = append(out, filepath.Join(dir, r))
	}
	return out
}

func TestDiscover(t *testing.T) {
	t.Parallel()

	tree := []string{
		"src/b.md",
		"src/a.md",
		"src/notes.txt",
		"src/.hidden.md",
		"src/nested/deep.md",
		"src/.git/HEAD.md",
		"src/drafts/wip.md",
		"src/a.md.docscan.bak",
		"top.md",
	}

	tests := []struct {
		name string
		opts runner.Options
		want []string
	}{
		{
			name: "default dir is single level and sorted",
			opts: runner.Options{Dir: "src"},
			want: []string{"src/a.md", "src/b.md"},
		},
		{
			name: "recursive",
			opts: runner.Options{Dir: "src", Recursive: true},
			want: []string{"src/a.md", "src/b.md", "src/drafts/wip.md", "src/nested/deep.md"},
		},
		{
			name: "recursive with directory exclude",
			opts: runner.Options{Dir: "src", Recursive: true, ExcludeGlobs: []string{"src/drafts/**"}},
			want: []string{"src/a.md", "src/b.md", "src/nested/deep.md"},
		},
		{
			name: "file name exclude",
			opts: runner.Options{Dir: "src", ExcludeGlobs: []string{"b.md"}},
			want: []string{"src/a.md"},
		},
		{
			name: "explicit paths override dir and are de-duplicated",
			opts: runner.Options{Dir: "src", Paths: []string{"top.md", "src/a.md", "top.md"}},
			want: []string{"src/a.md", "top.md"},
		},
		{
			name: "explicit file with other extension is skipped",
			opts: runner.Options{Paths: []string{"src/notes.txt"}},
			want: nil,
		},
		{
			name: "custom extensions",
			opts: runner.Options{Dir: "src", Extensions: []string{".txt"}},
			want: []string{"src/notes.txt"},
		},
		{
			name: "missing default dir yields nothing",
			opts: runner.Options{Dir: "absent"},
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			dir := t.TempDir()
			writeTree(t, dir, tree...)

			opts := tt.opts
			opts.WorkingDir = dir

			got, err := runner.Discover(context.Background(), opts)
			if err != nil {
				t.Fatalf("Discover() error = %v", err)
			}

			want := abs(dir, tt.want...)
			if len(want) == 0 {
				want = nil
			}
			if !reflect.DeepEqual(got, want) {
				t.Errorf("Discover() = %v, want %v", got, want)
			}
		})
	}
}

func TestDiscover_MissingExplicitPath(t *testing.T) {
	t.Parallel()

	opts := runner.Options{
		Paths:      []string{"missing.md"},
		WorkingDir: t.TempDir(),
	}

	if _, err := runner.Discover(context.Background(), opts); err == nil {
		t.Fatal("expected error for missing explicit path")
	}
}

func TestDiscover_Cancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := runner.Discover(ctx, runner.Options{WorkingDir: t.TempDir()}); err == nil {
		t.Fatal("expected cancellation error")
	}
}

func TestDefaultExtensions(t *testing.T) {
	t.Parallel()

	if got := runner.DefaultExtensions(); !reflect.DeepEqual(got, []string{".md"}) {
		t.Errorf("DefaultExtensions() = %v", got)
	}
}

package fsutil

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// DefaultFileMode is the default permission mode for newly created files.
const DefaultFileMode os.FileMode = 0644

// AtomicFileWriter replaces a file's content so that readers see either the
// old or the new content, never a partial write.
type AtomicFileWriter interface {
	WriteAll(ctx context.Context, path string, content []byte) error
}

// OSWriter implements AtomicFileWriter with a temp file and rename.
type OSWriter struct {
	// Mode is used when the target does not exist yet. 0 means DefaultFileMode.
	Mode os.FileMode
}

// Compile-time interface check.
var _ AtomicFileWriter = OSWriter{}

// WriteAll implements AtomicFileWriter. An existing target keeps its mode.
func (w OSWriter) WriteAll(ctx context.Context, path string, content []byte) error {
	mode := w.Mode
	if stat, err := os.Stat(path); err == nil {
		mode = stat.Mode().Perm()
	}
	return WriteAtomic(ctx, path, content, mode)
}

// WriteAtomic writes content to path through a temp file in the same
// directory, synced and renamed over the target. If mode is 0,
// DefaultFileMode is used.
//
// On error the temp file is removed and the original file is untouched.
func WriteAtomic(ctx context.Context, path string, content []byte, mode os.FileMode) error {
	select {
	case <-ctx.Done():
		return fmt.Errorf("write atomic: %w", ctx.Err())
	default:
	}

	if mode == 0 {
		mode = DefaultFileMode
	}

	// Same directory, so the rename never crosses filesystems.
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp.*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	success := false
	defer func() {
		if !success {
			_ = tmp.Close()
			_ = os.Remove(tmpPath)
		}
	}()

	if _, err := tmp.Write(content); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}

	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("sync temp file: %w", err)
	}

	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}

	if err := os.Chmod(tmpPath, mode); err != nil {
		return fmt.Errorf("chmod temp file: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("rename temp file: %w", err)
	}

	success = true
	return nil
}

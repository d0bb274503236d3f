// Package runner discovers markdown files and drives check and fix passes
// over them.
package runner

import "github.com/yaklabco/docscan/pkg/fsutil"

// Options controls file discovery.
type Options struct {
	// Paths are the user-specified paths (files or directories) to process.
	// If empty, Dir is scanned.
	Paths []string

	// Dir is the directory scanned when Paths is empty. A missing Dir yields
	// no files rather than an error. Defaults to ".".
	Dir string

	// WorkingDir is the base directory used to resolve relative paths.
	// If empty, the current process working directory is used.
	WorkingDir string

	// Extensions is the set of file extensions considered markdown.
	// Defaults to [".md"] via DefaultExtensions().
	Extensions []string

	// Recursive descends into subdirectories. When false only the direct
	// children of each directory are considered.
	Recursive bool

	// ExcludeGlobs are glob patterns used to skip files or directories.
	ExcludeGlobs []string
}

// FixOptions controls how a fix pass writes results back.
type FixOptions struct {
	// DryRun computes fixes without writing anything.
	DryRun bool

	// Backups writes a sidecar copy of each file before its first rewrite.
	Backups bool

	// Writer replaces file content. Defaults to fsutil.OSWriter.
	Writer fsutil.AtomicFileWriter
}

// DefaultExtensions returns the default set of markdown file extensions.
func DefaultExtensions() []string {
	return []string{".md"}
}

func (o Options) effectiveExtensions() []string {
	if len(o.Extensions) == 0 {
		return DefaultExtensions()
	}
	return o.Extensions
}

func (o Options) effectiveDir() string {
	if o.Dir == "" {
		return "."
	}
	return o.Dir
}

func (o FixOptions) writer() fsutil.AtomicFileWriter {
	if o.Writer == nil {
		return fsutil.OSWriter{}
	}
	return o.Writer
}

package logging

// Field name constants for structured logging.
// Using constants prevents typos and enables IDE autocomplete.
const (
	// Common fields.
	FieldError      = "error"
	FieldFile       = "file"
	FieldPaths      = "paths"
	FieldDir        = "dir"
	FieldOutput     = "output"
	FieldWorkingDir = "working_dir"
	FieldConfig     = "config"
	FieldLayers     = "layers"
	FieldPath       = "path"
	FieldFormat     = "format"

	// Violation fields.
	FieldRule  = "rule"
	FieldCount = "count"
	FieldLine  = "line"
	FieldText  = "text"
	FieldWidth = "width"

	// Rule listing fields.
	FieldDescription = "description"
	FieldCommand     = "command"

	// Fix fields.
	FieldDryRun = "dry_run"
	FieldBackup = "backup"
	FieldDiff   = "diff"

	// Watch fields.
	FieldOperation = "operation"

	// Statistics fields.
	FieldFilesDiscovered = "files_discovered"
	FieldFilesProcessed  = "files_processed"
	FieldFilesWithIssues = "files_with_issues"
	FieldViolations      = "violations"
	FieldFilesModified   = "files_modified"
	FieldFilesFailed     = "files_failed"

	// Version fields.
	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"
)

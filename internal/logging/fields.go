package logging

// Field name constants for structured logging.
// Using constants prevents typos and enables IDE autocomplete.
const (
	// Common fields.
	FieldError      = "error"
	FieldPath       = "path"
	FieldPaths      = "paths"
	FieldWorkingDir = "working_dir"
	FieldConfig     = "config"
	FieldSource     = "source"

	// Engine fields.
	FieldProvider  = "provider"
	FieldProviders = "providers"
	FieldRule      = "rule"
	FieldRules     = "rules"
	FieldVersion   = "version"
	FieldJobs      = "jobs"

	// Statistics fields.
	FieldFilesDiscovered = "files_discovered"
	FieldFilesProcessed  = "files_processed"
	FieldFilesFailed     = "files_failed"
	FieldViolations      = "violations"
	FieldDuplicates      = "duplicates_removed"

	// Build fields.
	FieldCommit = "commit"
	FieldBuilt  = "built"
)

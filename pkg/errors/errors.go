package errors

// Error message constants for the pim application
const (
	// File processing errors
	ErrMsgFailedToReadFile     = "failed to read file"
	ErrMsgFailedToParseFile    = "failed to parse file"
	ErrMsgFailedToFormatFile   = "failed to format file"
	ErrMsgFailedToWriteFile    = "failed to write file"
	ErrMsgFailedToLoadConfig   = "failed to load configuration"
	ErrMsgFailedToEncodeReport = "failed to encode report"

	// Directory processing errors
	ErrMsgFailedToCheckPath        = "failed to check path"
	ErrMsgFailedToFindSourceFiles  = "failed to find source files in directory"
	ErrMsgFilesFailedToProcess     = "%d files failed to process"
	ErrMsgFilesWithErrorViolations = "%d files have import violations of error severity"

	// Command line errors
	ErrMsgUnknownFormat = "unknown output format %q"
	ErrMsgUnknownURI    = "unsupported document uri %q"

	// Info/warning messages
	WarnMsgProcessingDirWithoutInPlace = "Warning: Processing directory without --in-place flag. No files will be modified."
	InfoMsgUseInPlaceFlag              = "Use --in-place flag to modify files or specify a single file for stdout output."
	InfoMsgNoSourceFilesFound          = "No source files found in directory: %s"
	InfoMsgFoundSourceFiles            = "Found %d source files in directory: %s"
	InfoMsgProjectRoot                 = "Project root: %s"
	InfoMsgProcessedFiles              = "Processed: %s"
	InfoMsgErrorProcessing             = "Error processing %s: %v"
	InfoMsgProcessedCount              = "\nProcessed %d files successfully"
	InfoMsgErrorCount                  = ", %d files had errors"
	InfoMsgViolationCount              = ", %d violations found"
	InfoMsgViolation                   = "%s:%d:%d: %s %s [%s]"
)

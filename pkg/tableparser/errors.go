package tableparser

import "fmt"

// FileLoadError marks an unreadable or corrupt source. Fatal for the file;
// no retry happens inside this package.
type FileLoadError struct {
	Path string
	Err  error
}

func (e *FileLoadError) Error() string {
	return fmt.Sprintf("failed to load %q: %v", e.Path, e.Err)
}

func (e *FileLoadError) Unwrap() error { return e.Err }

// UnsupportedFileTypeError marks input whose signature or extension is not
// recognized.
type UnsupportedFileTypeError struct {
	Path   string
	Detail string
}

func (e *UnsupportedFileTypeError) Error() string {
	return fmt.Sprintf("unsupported file type %q: %s", e.Path, e.Detail)
}

// ComplexityAnalysisError marks a scoring failure on malformed sheet
// geometry. Zero-area sheets never trigger this; they simply score 0.
type ComplexityAnalysisError struct {
	Err error
}

func (e *ComplexityAnalysisError) Error() string {
	return fmt.Sprintf("complexity analysis failed: %v", e.Err)
}

func (e *ComplexityAnalysisError) Unwrap() error { return e.Err }

// ConversionError marks a rendering failure.
type ConversionError struct {
	Format string
	Err    error
}

func (e *ConversionError) Error() string {
	return fmt.Sprintf("%s conversion failed: %v", e.Format, e.Err)
}

func (e *ConversionError) Unwrap() error { return e.Err }

// ValidationError marks an invalid caller-supplied option value.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

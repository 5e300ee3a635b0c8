package core

import (
	"errors"
	"fmt"
	"strings"
)

// ErrEmptySource is wrapped by a DataSourceError when the input has no header row.
var ErrEmptySource = errors.New("empty file")

// DataSourceError reports that a CSV file could not be opened, read, parsed or
// written. It is always fatal: no output is produced.
type DataSourceError struct {
	Path string // File the operation was applied to
	Op   string // "open", "read", "parse", "write"
	Err  error  // Underlying cause
}

func (e *DataSourceError) Error() string {
	return fmt.Sprintf("data source %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *DataSourceError) Unwrap() error {
	return e.Err
}

// SchemaError reports required columns absent from the input header.
// It is raised before any transform runs.
type SchemaError struct {
	Path    string
	Missing []string
}

func (e *SchemaError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("missing required columns: %s", strings.Join(e.Missing, ", "))
	}
	return fmt.Sprintf("%s: missing required columns: %s", e.Path, strings.Join(e.Missing, ", "))
}

// IsDataSourceError reports whether err wraps a *DataSourceError.
func IsDataSourceError(err error) bool {
	var dse *DataSourceError
	return errors.As(err, &dse)
}

// IsSchemaError reports whether err wraps a *SchemaError.
func IsSchemaError(err error) bool {
	var se *SchemaError
	return errors.As(err, &se)
}

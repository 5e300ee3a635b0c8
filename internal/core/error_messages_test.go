package core

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"testing"
)

func TestMapError(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantCode    string
		wantMessage string
	}{
		{
			name:        "nil error returns empty",
			err:         nil,
			wantCode:    "",
			wantMessage: "",
		},
		{
			name:        "missing file",
			err:         &DataSourceError{Path: "in.csv", Op: "open", Err: fs.ErrNotExist},
			wantCode:    "FILE001",
			wantMessage: "Input file does not exist",
		},
		{
			name:        "parse failure",
			err:         &DataSourceError{Path: "in.csv", Op: "parse", Err: errors.New("bare quote")},
			wantCode:    "FILE002",
			wantMessage: "File could not be parsed as CSV",
		},
		{
			name:        "permission denied",
			err:         &DataSourceError{Path: "in.csv", Op: "open", Err: fs.ErrPermission},
			wantCode:    "FILE003",
			wantMessage: "File could not be opened or read",
		},
		{
			name:        "write failure",
			err:         &DataSourceError{Path: "out.csv", Op: "write", Err: errors.New("disk full")},
			wantCode:    "FILE004",
			wantMessage: "Cleaned output could not be written",
		},
		{
			name:        "empty file",
			err:         &DataSourceError{Path: "in.csv", Op: "read", Err: ErrEmptySource},
			wantCode:    "FILE005",
			wantMessage: "The input file has no header row",
		},
		{
			name:        "schema error",
			err:         &SchemaError{Missing: []string{"age"}},
			wantCode:    "VAL004",
			wantMessage: "Required column is missing from CSV",
		},
		{
			name:        "wrapped schema error",
			err:         fmt.Errorf("run: %w", &SchemaError{Missing: []string{"age"}}),
			wantCode:    "VAL004",
			wantMessage: "Required column is missing from CSV",
		},
		{
			name:        "config pattern",
			err:         errors.New("config validation: LOG_LEVEL bad"),
			wantCode:    "CFG001",
			wantMessage: "Invalid configuration",
		},
		{
			name:        "unknown error falls back",
			err:         errors.New("something odd"),
			wantCode:    "ERR000",
			wantMessage: "An unexpected error occurred",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MapError(tt.err)
			if got.Code != tt.wantCode {
				t.Errorf("MapError() code = %q, want %q", got.Code, tt.wantCode)
			}
			if got.Message != tt.wantMessage {
				t.Errorf("MapError() message = %q, want %q", got.Message, tt.wantMessage)
			}
		})
	}
}

func TestFormatUserError(t *testing.T) {
	err := &SchemaError{Missing: []string{"age", "email"}}
	got := FormatUserError(err)

	want := "Required column is missing from CSV (Code: VAL004). Check that all required columns are present in your file"
	if got != want {
		t.Errorf("FormatUserError() = %q, want %q", got, want)
	}

	if FormatUserError(nil) != "" {
		t.Error("FormatUserError(nil) should be empty")
	}
}

func TestErrorTypes(t *testing.T) {
	cause := fs.ErrNotExist
	dse := &DataSourceError{Path: "in.csv", Op: "open", Err: cause}

	if !errors.Is(dse, fs.ErrNotExist) {
		t.Error("DataSourceError should unwrap to its cause")
	}
	if !IsDataSourceError(fmt.Errorf("wrapped: %w", dse)) {
		t.Error("IsDataSourceError should see through wrapping")
	}
	if IsSchemaError(dse) {
		t.Error("DataSourceError is not a SchemaError")
	}

	se := &SchemaError{Path: "in.csv", Missing: []string{"age", "email"}}
	if !strings.Contains(se.Error(), "age, email") {
		t.Errorf("SchemaError.Error() = %q, want missing columns listed", se.Error())
	}
	if !IsSchemaError(se) {
		t.Error("IsSchemaError should match")
	}
}

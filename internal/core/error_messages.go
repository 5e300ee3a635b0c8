// Package core provides the cell-level building blocks for cleaning CSV data.
//
// # Error Codes Reference
//
// This file defines user-facing messages with codes for fatal cleaner errors.
// Data-quality problems inside cells are never errors; only structural
// failures reach this table.
//
// # File Errors (FILE001-FILE099)
//
//	FILE001 - Not found: Input file does not exist
//	          Action: Check CLEANER_INPUT_PATH
//	          Match: DataSourceError wrapping fs.ErrNotExist
//
//	FILE002 - Invalid CSV: File could not be parsed as CSV
//	          Action: Ensure file is comma-separated with consistent columns
//	          Match: DataSourceError with Op "parse"
//
//	FILE003 - Unreadable: File could not be opened or read
//	          Action: Check file permissions
//	          Match: DataSourceError with Op "open" or "read"
//
//	FILE004 - Write failed: Cleaned output could not be written
//	          Action: Check that the output directory exists and is writable
//	          Match: DataSourceError with Op "write"
//
//	FILE005 - Empty file: The input file has no header row
//	          Action: Provide a CSV file with a header and data rows
//	          Match: ErrEmptySource
//
// # Validation Errors (VAL001-VAL099)
//
//	VAL004 - Missing column: Required column is missing from CSV
//	         Action: Check that all required columns are present in your file
//	         Match: SchemaError, or "missing required column"
//
// # Configuration Errors (CFG001-CFG099)
//
//	CFG001 - Invalid configuration
//	         Action: Review CLEANER_* and LOG_* environment variables
//	         Patterns: "config load", "config validation"
//
// # Fallback
//
//	ERR000 - Unexpected error
package core

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
)

// UserMessage contains a user-friendly error message with an action and a code.
type UserMessage struct {
	Message string // What happened (user-friendly)
	Action  string // What to do about it
	Code    string // Error code for support reference
}

var (
	msgNotFound = UserMessage{
		Message: "Input file does not exist",
		Action:  "Check CLEANER_INPUT_PATH",
		Code:    "FILE001",
	}
	msgInvalidCSV = UserMessage{
		Message: "File could not be parsed as CSV",
		Action:  "Ensure file is comma-separated with consistent columns",
		Code:    "FILE002",
	}
	msgUnreadable = UserMessage{
		Message: "File could not be opened or read",
		Action:  "Check file permissions",
		Code:    "FILE003",
	}
	msgWriteFailed = UserMessage{
		Message: "Cleaned output could not be written",
		Action:  "Check that the output directory exists and is writable",
		Code:    "FILE004",
	}
	msgEmptyFile = UserMessage{
		Message: "The input file has no header row",
		Action:  "Provide a CSV file with a header and data rows",
		Code:    "FILE005",
	}
	msgMissingColumn = UserMessage{
		Message: "Required column is missing from CSV",
		Action:  "Check that all required columns are present in your file",
		Code:    "VAL004",
	}
	msgConfig = UserMessage{
		Message: "Invalid configuration",
		Action:  "Review CLEANER_* and LOG_* environment variables",
		Code:    "CFG001",
	}
	defaultMessage = UserMessage{
		Message: "An unexpected error occurred",
		Action:  "Check the log output for details",
		Code:    "ERR000",
	}
)

type errorPattern struct {
	pattern string
	msg     UserMessage
}

// errorPatterns is consulted when err carries no typed cause.
var errorPatterns = []errorPattern{
	{pattern: "missing required column", msg: msgMissingColumn},
	{pattern: "empty file", msg: msgEmptyFile},
	{pattern: "config load", msg: msgConfig},
	{pattern: "config validation", msg: msgConfig},
}

// MapError converts an error into a user-friendly message.
// Typed errors are matched first, then message patterns.
func MapError(err error) UserMessage {
	if err == nil {
		return UserMessage{}
	}

	var se *SchemaError
	if errors.As(err, &se) {
		return msgMissingColumn
	}

	if errors.Is(err, ErrEmptySource) {
		return msgEmptyFile
	}

	var dse *DataSourceError
	if errors.As(err, &dse) {
		switch {
		case errors.Is(dse.Err, fs.ErrNotExist):
			return msgNotFound
		case dse.Op == "parse":
			return msgInvalidCSV
		case dse.Op == "write":
			return msgWriteFailed
		default:
			return msgUnreadable
		}
	}

	errStr := strings.ToLower(err.Error())
	for _, ep := range errorPatterns {
		if strings.Contains(errStr, ep.pattern) {
			return ep.msg
		}
	}

	return defaultMessage
}

// FormatUserError creates a formatted error string for display.
// The format is: "Message (Code: XXX). Action"
func FormatUserError(err error) string {
	msg := MapError(err)
	if msg.Message == "" {
		return ""
	}
	return fmt.Sprintf("%s (Code: %s). %s", msg.Message, msg.Code, msg.Action)
}

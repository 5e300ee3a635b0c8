package cleaner

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/JonMunkholm/policy-cleaner/internal/core"
	"github.com/JonMunkholm/policy-cleaner/internal/logging"
	"github.com/JonMunkholm/policy-cleaner/internal/schema"
)

// Load reads every record of the CSV file at path.
//
// A missing, unreadable, empty or malformed file yields a *core.DataSourceError.
// A header lacking a policy column yields a *core.SchemaError. The file handle
// is closed before Load returns.
func Load(ctx context.Context, path string) (*RecordSet, int64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, &core.DataSourceError{Path: path, Op: "open", Err: err}
	}
	defer f.Close()

	src := core.NewSourceReader(f)
	set, err := parse(ctx, path, src)
	if err != nil {
		return nil, src.BytesRead(), err
	}
	return set, src.BytesRead(), nil
}

// parse reads a header and data rows from r.
func parse(ctx context.Context, path string, r io.Reader) (*RecordSet, error) {
	logger := logging.WithFields(ctx, "step", "load", "path", path)

	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, &core.DataSourceError{Path: path, Op: "read", Err: core.ErrEmptySource}
	}
	if err != nil {
		return nil, sourceErr(path, err)
	}

	idx, err := core.ValidateHeaders(header, schema.PolicyFieldSpecs)
	if err != nil {
		var se *core.SchemaError
		if errors.As(err, &se) {
			se.Path = path
		}
		return nil, err
	}

	if unknown := core.UnknownHeaders(header, schema.PolicyFieldSpecs); len(unknown) > 0 {
		logger.Warn("ignoring columns outside the policy schema", "columns", unknown)
	}

	set := &RecordSet{
		Source:  path,
		Columns: outputColumns(header),
	}

	for {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("load cancelled: %w", err)
		}

		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, sourceErr(path, err)
		}

		line, _ := cr.FieldPos(0)
		if len(row) > len(header) {
			return nil, &core.DataSourceError{
				Path: path,
				Op:   "parse",
				Err:  fmt.Errorf("line %d: expected %d fields, saw %d", line, len(header), len(row)),
			}
		}

		if isBlankRow(row) {
			continue
		}

		set.Records = append(set.Records, newRecord(line, row, idx))
	}

	return set, nil
}

func sourceErr(path string, err error) error {
	var pe *csv.ParseError
	if errors.As(err, &pe) {
		return &core.DataSourceError{Path: path, Op: "parse", Err: err}
	}
	return &core.DataSourceError{Path: path, Op: "read", Err: err}
}

// outputColumns returns the policy columns in the order the header lists them.
func outputColumns(header []string) []string {
	idx := core.MakeHeaderIndex(header)
	cols := schema.PolicyColumns()
	pos := make(map[string]int, len(cols))
	for _, c := range cols {
		pos[c] = idx[c]
	}

	ordered := make([]string, 0, len(cols))
	for i := range header {
		for _, c := range cols {
			if pos[c] == i {
				ordered = append(ordered, c)
			}
		}
	}
	return ordered
}

// isBlankRow reports whether every cell is empty. The CSV reader already skips
// wholly empty lines; this catches lines made only of delimiters.
func isBlankRow(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

package cleaner

import (
	"sort"
	"time"
)

// Operation names the kind of change a step applied to a cell.
type Operation string

const (
	OpPlaceholder  Operation = "imputed_placeholder" // null text replaced by a fixed default
	OpUnknownToken Operation = "unknown_token"       // literal "unknown" treated as missing
	OpModeFill     Operation = "imputed_mode"        // null replaced by the column mode
	OpCoercedNull  Operation = "coerced_null"        // value failed to parse and became null
	OpNormalized   Operation = "normalized"          // value rewritten to canonical format
)

// Change identifies a column and the operation applied to it.
type Change struct {
	Column    string
	Operation Operation
}

// InvalidRow is a record removed by the validation filter.
type InvalidRow struct {
	Line    int
	Reasons []string
	Cells   []string
}

// Report accumulates what a run observed and changed.
type Report struct {
	RunID      string
	InputPath  string
	OutputPath string
	StartedAt  time.Time
	Duration   time.Duration

	BytesRead  int64
	Loaded     int
	Columns    int
	NullCounts map[string]int // per column, at load

	DroppedIncomplete int
	Changes           map[Change]int
	Modes             map[string]string // column -> last mode used to fill nulls
	DuplicatesRemoved int
	Invalid           []InvalidRow
	Written           int
}

// NewReport returns an empty report for one run.
func NewReport(runID string) *Report {
	return &Report{
		RunID:      runID,
		StartedAt:  time.Now(),
		NullCounts: make(map[string]int),
		Changes:    make(map[Change]int),
		Modes:      make(map[string]string),
	}
}

func (r *Report) count(col string, op Operation, n int) {
	if n == 0 {
		return
	}
	r.Changes[Change{Column: col, Operation: op}] += n
}

// ChangeCount returns how many cells of col were changed by op.
func (r *Report) ChangeCount(col string, op Operation) int {
	return r.Changes[Change{Column: col, Operation: op}]
}

// SortedChanges returns changes ordered by column then operation.
func (r *Report) SortedChanges() []Change {
	out := make([]Change, 0, len(r.Changes))
	for c := range r.Changes {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Column != out[j].Column {
			return out[i].Column < out[j].Column
		}
		return out[i].Operation < out[j].Operation
	})
	return out
}

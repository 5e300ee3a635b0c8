package cleaner

import (
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/JonMunkholm/policy-cleaner/internal/core"
	"github.com/JonMunkholm/policy-cleaner/internal/schema"
)

// Record is one policy holder entry. A field with Valid=false is null.
type Record struct {
	Line int // CSV line the record started on

	PolicyHolderName pgtype.Text
	LastName         pgtype.Text
	Age              pgtype.Int8
	Email            pgtype.Text
	Phone            pgtype.Text
	Address          pgtype.Text
	PolicyAmount     pgtype.Numeric
	PolicyTerm       pgtype.Int8
	PolicyStatus     pgtype.Text
	BeneficiaryName  pgtype.Text
	DateOfBirth      pgtype.Date
	PolicyStartDate  pgtype.Date

	// raw holds the source text of the typed columns until coerceTypes runs.
	raw     map[string]*pgtype.Text
	coerced bool
}

// RecordSet is the full in-memory collection of records.
type RecordSet struct {
	Source  string   // Path the set was loaded from
	Columns []string // Output column order
	Records []Record
}

// typedColumns are held as raw text until coercion.
var typedColumns = []string{
	schema.Age, schema.PolicyAmount, schema.PolicyTerm,
	schema.DateOfBirth, schema.PolicyStartDate,
}

func isTypedColumn(col string) bool {
	for _, c := range typedColumns {
		if c == col {
			return true
		}
	}
	return false
}

// newRecord builds a record from a CSV row. Cells past the end of row are null.
func newRecord(line int, row []string, idx core.HeaderIndex) Record {
	cell := func(col string) string {
		pos, ok := idx[col]
		if !ok || pos >= len(row) {
			return ""
		}
		return row[pos]
	}

	r := Record{
		Line:             line,
		PolicyHolderName: core.ToPgText(cell(schema.PolicyHolderName)),
		LastName:         core.ToPgText(cell(schema.LastName)),
		Email:            core.ToPgText(cell(schema.Email)),
		Phone:            core.ToPgText(cell(schema.Phone)),
		Address:          core.ToPgText(cell(schema.Address)),
		PolicyStatus:     core.ToPgText(cell(schema.PolicyStatus)),
		BeneficiaryName:  core.ToPgText(cell(schema.BeneficiaryName)),
		raw:              make(map[string]*pgtype.Text, len(typedColumns)),
	}
	for _, col := range typedColumns {
		v := core.ToPgText(cell(col))
		r.raw[col] = &v
	}
	return r
}

// text returns the text field for col, or nil if col is not a text column.
func (r *Record) text(col string) *pgtype.Text {
	switch col {
	case schema.PolicyHolderName:
		return &r.PolicyHolderName
	case schema.LastName:
		return &r.LastName
	case schema.Email:
		return &r.Email
	case schema.Phone:
		return &r.Phone
	case schema.Address:
		return &r.Address
	case schema.PolicyStatus:
		return &r.PolicyStatus
	case schema.BeneficiaryName:
		return &r.BeneficiaryName
	}
	return nil
}

// rawText returns the uncoerced source text of a typed column.
func (r *Record) rawText(col string) *pgtype.Text {
	if r.raw == nil {
		r.raw = make(map[string]*pgtype.Text, len(typedColumns))
	}
	v, ok := r.raw[col]
	if !ok {
		v = &pgtype.Text{}
		r.raw[col] = v
	}
	return v
}

// Value returns the cell for col as it would be written.
// Before coercion, typed columns report their raw source text.
func (r *Record) Value(col string) string {
	if t := r.text(col); t != nil {
		return core.FormatText(*t)
	}

	if !r.coerced && isTypedColumn(col) {
		return core.FormatText(*r.rawText(col))
	}

	switch col {
	case schema.Age:
		return core.FormatInt8(r.Age)
	case schema.PolicyAmount:
		return core.FormatNumeric(r.PolicyAmount)
	case schema.PolicyTerm:
		return core.FormatInt8(r.PolicyTerm)
	case schema.DateOfBirth:
		return core.FormatDate(r.DateOfBirth)
	case schema.PolicyStartDate:
		return core.FormatDate(r.PolicyStartDate)
	}
	return ""
}

// IsNull reports whether the cell for col is null.
func (r *Record) IsNull(col string) bool {
	return r.Value(col) == ""
}

// Cells returns the formatted row in column order.
func (r *Record) Cells(columns []string) []string {
	out := make([]string, len(columns))
	for i, col := range columns {
		out[i] = r.Value(col)
	}
	return out
}

// NullCounts returns the number of null cells per column.
func (s *RecordSet) NullCounts() map[string]int {
	counts := make(map[string]int, len(s.Columns))
	for _, col := range s.Columns {
		counts[col] = 0
	}
	for i := range s.Records {
		for _, col := range s.Columns {
			if s.Records[i].IsNull(col) {
				counts[col]++
			}
		}
	}
	return counts
}

// Len returns the number of records.
func (s *RecordSet) Len() int {
	return len(s.Records)
}

func (s *RecordSet) filter(keep func(*Record) bool) *RecordSet {
	kept := s.Records[:0]
	for i := range s.Records {
		if keep(&s.Records[i]) {
			kept = append(kept, s.Records[i])
		}
	}
	s.Records = kept
	return s
}

package cleaner

import (
	"context"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5/pgtype"

	"github.com/JonMunkholm/policy-cleaner/internal/core"
	"github.com/JonMunkholm/policy-cleaner/internal/logging"
	"github.com/JonMunkholm/policy-cleaner/internal/schema"
)

// Placeholder values substituted for missing text fields.
const (
	PlaceholderEmail       = "unknown@example.com"
	PlaceholderPhone       = "000-000-0000"
	PlaceholderAddress     = "Unknown Address"
	PlaceholderStatus      = "unknown"
	PlaceholderBeneficiary = "Unknown"
)

// UnknownToken is the literal treated as missing in numeric columns.
const UnknownToken = "unknown"

// textPlaceholders lists the imputed text columns in fill order.
var textPlaceholders = []struct {
	column string
	value  string
}{
	{schema.Email, PlaceholderEmail},
	{schema.Phone, PlaceholderPhone},
	{schema.Address, PlaceholderAddress},
	{schema.PolicyStatus, PlaceholderStatus},
	{schema.BeneficiaryName, PlaceholderBeneficiary},
}

// modeColumns are numeric columns whose nulls are filled with the column mode.
var modeColumns = []string{schema.Age, schema.PolicyAmount, schema.PolicyTerm}

// Inspect records the dataset shape and per-column null counts.
// It never changes the set.
func Inspect(ctx context.Context, set *RecordSet, rep *Report) (*RecordSet, error) {
	logger := logging.WithFields(ctx, "step", "inspect")

	rep.Loaded = set.Len()
	rep.Columns = len(set.Columns)
	rep.NullCounts = set.NullCounts()

	logger.Info("dataset shape", "rows", rep.Loaded, "columns", rep.Columns, "bytes", rep.BytesRead)
	for _, col := range set.Columns {
		logger.Info("null count", "column", col, "nulls", rep.NullCounts[col])
	}
	return set, nil
}

// DropIncompleteIdentity removes records missing policy_holder_name or last_name.
// These fields cannot be imputed.
func DropIncompleteIdentity(ctx context.Context, set *RecordSet, rep *Report) (*RecordSet, error) {
	before := set.Len()
	set.filter(func(r *Record) bool {
		return r.PolicyHolderName.Valid && r.LastName.Valid
	})
	rep.DroppedIncomplete += before - set.Len()
	return set, nil
}

// ImputeText fills null text fields with their fixed placeholder.
func ImputeText(ctx context.Context, set *RecordSet, rep *Report) (*RecordSet, error) {
	for _, p := range textPlaceholders {
		filled := 0
		for i := range set.Records {
			field := set.Records[i].text(p.column)
			if !field.Valid {
				*field = pgtype.Text{String: p.value, Valid: true}
				filled++
			}
		}
		rep.count(p.column, OpPlaceholder, filled)
	}
	return set, nil
}

// ImputeNumeric treats the literal "unknown" as missing in age, policy_amount
// and policy_term, then fills their nulls with the mode of the values that
// parse as that column's number type. It works on the raw source text.
func ImputeNumeric(ctx context.Context, set *RecordSet, rep *Report) (*RecordSet, error) {
	logger := logging.WithFields(ctx, "step", "impute_numeric")

	for _, col := range modeColumns {
		unknown := 0
		for i := range set.Records {
			raw := set.Records[i].rawText(col)
			if raw.Valid && strings.EqualFold(strings.TrimSpace(raw.String), UnknownToken) {
				*raw = pgtype.Text{}
				unknown++
			}
		}
		rep.count(col, OpUnknownToken, unknown)

		mode, ok := rawMode(set, col)
		if !ok {
			logger.Warn("no valid values to impute from", "column", col)
			continue
		}

		filled := 0
		for i := range set.Records {
			raw := set.Records[i].rawText(col)
			if !raw.Valid {
				*raw = pgtype.Text{String: mode, Valid: true}
				filled++
			}
		}
		rep.count(col, OpModeFill, filled)
		rep.Modes[col] = mode
	}
	return set, nil
}

// rawMode computes the mode of a numeric column over raw text that parses.
// The mode is returned in canonical text form.
func rawMode(set *RecordSet, col string) (string, bool) {
	if col == schema.PolicyAmount {
		values := make([]pgtype.Numeric, 0, set.Len())
		for i := range set.Records {
			if raw := set.Records[i].rawText(col); raw.Valid {
				values = append(values, core.ToPgNumeric(raw.String))
			}
		}
		mode, ok := numericMode(values)
		return core.FormatNumeric(mode), ok
	}

	values := make([]pgtype.Int8, 0, set.Len())
	for i := range set.Records {
		if raw := set.Records[i].rawText(col); raw.Valid {
			values = append(values, core.ToPgInt8(raw.String))
		}
	}
	mode, ok := int8Mode(values)
	return core.FormatInt8(mode), ok
}

// CoerceTypes parses the raw text of the typed columns. Values that fail to
// parse become null; nulls in age, policy_amount and policy_term are then
// refilled with the mode of the coerced values. Dates are not refilled.
func CoerceTypes(ctx context.Context, set *RecordSet, rep *Report) (*RecordSet, error) {
	failed := make(map[string]int, len(typedColumns))

	for i := range set.Records {
		r := &set.Records[i]
		if r.coerced {
			continue
		}

		for _, col := range typedColumns {
			raw := r.rawText(col)
			var ok bool
			switch col {
			case schema.Age:
				r.Age = toInt8(*raw)
				ok = r.Age.Valid
			case schema.PolicyTerm:
				r.PolicyTerm = toInt8(*raw)
				ok = r.PolicyTerm.Valid
			case schema.PolicyAmount:
				r.PolicyAmount = toNumeric(*raw)
				ok = r.PolicyAmount.Valid
			case schema.DateOfBirth:
				r.DateOfBirth = toDate(*raw)
				ok = r.DateOfBirth.Valid
			case schema.PolicyStartDate:
				r.PolicyStartDate = toDate(*raw)
				ok = r.PolicyStartDate.Valid
			}
			if raw.Valid && !ok {
				failed[col]++
			}
		}

		r.raw = nil
		r.coerced = true
	}

	for _, col := range typedColumns {
		rep.count(col, OpCoercedNull, failed[col])
	}

	fillInt8Mode(ctx, set, rep, schema.Age, func(r *Record) *pgtype.Int8 { return &r.Age })
	fillInt8Mode(ctx, set, rep, schema.PolicyTerm, func(r *Record) *pgtype.Int8 { return &r.PolicyTerm })
	fillNumericMode(ctx, set, rep)

	return set, nil
}

func toInt8(t pgtype.Text) pgtype.Int8 {
	if !t.Valid {
		return pgtype.Int8{}
	}
	return core.ToPgInt8(t.String)
}

func toNumeric(t pgtype.Text) pgtype.Numeric {
	if !t.Valid {
		return pgtype.Numeric{}
	}
	return core.ToPgNumeric(t.String)
}

func toDate(t pgtype.Text) pgtype.Date {
	if !t.Valid {
		return pgtype.Date{}
	}
	return core.ToPgDate(t.String)
}

func fillInt8Mode(ctx context.Context, set *RecordSet, rep *Report, col string, field func(*Record) *pgtype.Int8) {
	values := make([]pgtype.Int8, set.Len())
	for i := range set.Records {
		values[i] = *field(&set.Records[i])
	}

	mode, ok := int8Mode(values)
	if !ok {
		logging.WithFields(ctx, "step", "coerce_types").Warn("no valid values to impute from", "column", col)
		return
	}

	filled := 0
	for i := range set.Records {
		if f := field(&set.Records[i]); !f.Valid {
			*f = mode
			filled++
		}
	}
	rep.count(col, OpModeFill, filled)
	rep.Modes[col] = core.FormatInt8(mode)
}

func fillNumericMode(ctx context.Context, set *RecordSet, rep *Report) {
	values := make([]pgtype.Numeric, set.Len())
	for i := range set.Records {
		values[i] = set.Records[i].PolicyAmount
	}

	mode, ok := numericMode(values)
	if !ok {
		logging.WithFields(ctx, "step", "coerce_types").Warn("no valid values to impute from", "column", schema.PolicyAmount)
		return
	}

	filled := 0
	for i := range set.Records {
		if !set.Records[i].PolicyAmount.Valid {
			set.Records[i].PolicyAmount = mode
			filled++
		}
	}
	rep.count(schema.PolicyAmount, OpModeFill, filled)
	rep.Modes[schema.PolicyAmount] = core.FormatNumeric(mode)
}

// NormalizeFormats strips every non-digit from phone and regroups it as
// XXX-XXX-rest, then lower-cases email. Phone length is not checked.
func NormalizeFormats(ctx context.Context, set *RecordSet, rep *Report) (*RecordSet, error) {
	phones, emails := 0, 0
	for i := range set.Records {
		r := &set.Records[i]

		if r.Phone.Valid {
			formatted := FormatPhone(r.Phone.String)
			if formatted != r.Phone.String {
				r.Phone.String = formatted
				phones++
			}
		}

		if r.Email.Valid {
			lower := strings.ToLower(r.Email.String)
			if lower != r.Email.String {
				r.Email.String = lower
				emails++
			}
		}
	}
	rep.count(schema.Phone, OpNormalized, phones)
	rep.count(schema.Email, OpNormalized, emails)
	return set, nil
}

// FormatPhone keeps the ASCII digits of s and joins them as
// digits[0:3]-digits[3:6]-digits[6:]. Short inputs yield short or empty groups.
func FormatPhone(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if c := s[i]; c >= '0' && c <= '9' {
			b.WriteByte(c)
		}
	}
	d := b.String()

	group := func(from, to int) string {
		if from > len(d) {
			from = len(d)
		}
		if to < 0 || to > len(d) {
			to = len(d)
		}
		return d[from:to]
	}
	return group(0, 3) + "-" + group(3, 6) + "-" + group(6, -1)
}

// Deduplicate removes exact full-row duplicates, keeping the first occurrence.
// Rows are compared as they would be written.
func Deduplicate(ctx context.Context, set *RecordSet, rep *Report) (*RecordSet, error) {
	before := set.Len()
	seen := make(map[string]struct{}, before)
	set.filter(func(r *Record) bool {
		key := rowKey(r.Cells(set.Columns))
		if _, dup := seen[key]; dup {
			return false
		}
		seen[key] = struct{}{}
		return true
	})
	rep.DuplicatesRemoved += before - set.Len()
	return set, nil
}

// rowKey encodes cells with a length prefix per cell so that distinct rows
// never share a key, whatever bytes the cells hold.
func rowKey(cells []string) string {
	var b strings.Builder
	for _, c := range cells {
		b.WriteString(strconv.Itoa(len(c)))
		b.WriteByte(':')
		b.WriteString(c)
	}
	return b.String()
}

// Validate reports and removes records with a negative or missing age or
// policy_amount. A value is only missing here when its column had no valid
// value to impute from.
func Validate(ctx context.Context, set *RecordSet, rep *Report) (*RecordSet, error) {
	logger := logging.WithFields(ctx, "step", "validate")

	set.filter(func(r *Record) bool {
		reasons := invalidReasons(r)
		if len(reasons) == 0 {
			return true
		}

		row := InvalidRow{Line: r.Line, Reasons: reasons, Cells: r.Cells(set.Columns)}
		rep.Invalid = append(rep.Invalid, row)
		logger.Warn("invalid row",
			"line", row.Line,
			"reasons", strings.Join(reasons, "; "),
			"age", r.Value(schema.Age),
			"policy_amount", r.Value(schema.PolicyAmount),
		)
		return false
	})

	logger.Info("validation summary", "invalid_rows", len(rep.Invalid))
	return set, nil
}

func invalidReasons(r *Record) []string {
	var reasons []string

	switch {
	case !r.Age.Valid:
		reasons = append(reasons, "age is missing")
	case r.Age.Int64 < 0:
		reasons = append(reasons, "age is negative")
	}

	switch {
	case !r.PolicyAmount.Valid:
		reasons = append(reasons, "policy_amount is missing")
	case r.PolicyAmount.Int.Sign() < 0:
		reasons = append(reasons, "policy_amount is negative")
	}

	return reasons
}

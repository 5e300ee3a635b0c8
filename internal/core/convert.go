package core

// convert.go provides type conversion functions from raw CSV cells to nullable
// pgtype values, and the canonical text form each value is written back as.
//
// These functions handle the messy reality of exported spreadsheet data:
//   - Missing-value tokens (NA, N/A, null, NaN, ...) next to empty cells
//   - Multiple date formats (US, EU, ISO, etc.)
//   - Currency symbols and thousand separators in numbers
//   - Excel formula prefixes (="value")
//
// All ToPg* functions return values with Valid=false for empty/invalid input.
// All Format* functions return "" for Valid=false, so a written null reads
// back as null.

import (
	"math/big"
	"regexp"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
)

// numericRegex validates that a string is a plain decimal after cleanup.
// Scientific notation is rejected.
var numericRegex = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)$`)

// TwoDigitYearPivot defines how 2-digit years are interpreted.
// Years that would result in dates more than this many years in the future
// are assumed to be in the previous century.
var TwoDigitYearPivot = 20

// DateLayout is the layout dates are written with.
const DateLayout = "2006-01-02"

// Date layouts split by year format for proper 2-digit year handling
var (
	twoDigitYearLayouts = []string{
		"1/2/06", "01/02/06", "1-2-06", "1.2.06", "01.02.06",
	}
	fourDigitYearLayouts = []string{
		DateLayout, "2006/01/02", "2006.01.02",
		time.RFC3339, "2006-01-02T15:04:05", "2006-01-02 15:04:05",
		"1/2/2006", "01/02/2006", "1-2-2006", "01-02-2006", "1.2.2006", "01.02.2006",
		"Jan 2, 2006", "January 2, 2006", "2 Jan 2006",
		"20060102",
	}
)

// missingTokens are cell values read as null in addition to the empty string.
// The set mirrors the default NA markers of common dataframe CSV readers.
var missingTokens = map[string]struct{}{
	"#N/A": {}, "#N/A N/A": {}, "#NA": {}, "-1.#IND": {}, "-1.#QNAN": {},
	"-NaN": {}, "-nan": {}, "1.#IND": {}, "1.#QNAN": {}, "<NA>": {},
	"N/A": {}, "NA": {}, "NULL": {}, "NaN": {}, "None": {},
	"n/a": {}, "nan": {}, "null": {},
}

// IsMissing reports whether a raw cell denotes a missing value.
func IsMissing(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return true
	}
	_, ok := missingTokens[s]
	return ok
}

// ToPgText converts a cell to pgtype.Text.
// Returns invalid if the cell is empty, only whitespace, or a missing token.
// Apart from trimming whitespace the value is kept verbatim, so a written
// value reads back unchanged.
func ToPgText(s string) pgtype.Text {
	s = strings.TrimSpace(s)
	if IsMissing(s) {
		return pgtype.Text{Valid: false}
	}
	return pgtype.Text{String: s, Valid: true}
}

// ToPgDate converts a string to pgtype.Date.
// Supports multiple date formats and handles 2-digit years with pivot.
func ToPgDate(s string) pgtype.Date {
	s = CleanCell(s)
	if IsMissing(s) {
		return pgtype.Date{Valid: false}
	}

	// Try 4-digit year layouts first (unambiguous)
	for _, layout := range fourDigitYearLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return pgtype.Date{Time: truncateDay(t), Valid: true}
		}
	}

	// Try 2-digit year layouts with pivot year adjustment
	currentYear := time.Now().Year()
	pivotYear := currentYear + TwoDigitYearPivot

	for _, layout := range twoDigitYearLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			if t.Year() > pivotYear {
				t = t.AddDate(-100, 0, 0)
			}
			return pgtype.Date{Time: t, Valid: true}
		}
	}

	return pgtype.Date{Valid: false}
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// ToPgNumeric converts a string to pgtype.Numeric.
// Handles currency symbols, thousands separators, and accounting format (parentheses for negative).
// The result is normalized so equal amounts have equal representations.
func ToPgNumeric(s string) pgtype.Numeric {
	s = CleanCell(s)
	if IsMissing(s) {
		return pgtype.Numeric{Valid: false}
	}

	// Detect negative accounting format "(123.45)"
	isNegative := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		isNegative = true
		s = strings.TrimSpace(s[1 : len(s)-1])
	}

	// Remove common currency symbols and thousands separators
	s = strings.ReplaceAll(s, "$", "")
	s = strings.ReplaceAll(s, "€", "") // Euro
	s = strings.ReplaceAll(s, "£", "") // Pound
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimSpace(s)

	if isNegative {
		s = "-" + s
	}

	if !numericRegex.MatchString(s) {
		return pgtype.Numeric{Valid: false}
	}

	neg := false
	switch s[0] {
	case '-':
		neg = true
		s = s[1:]
	case '+':
		s = s[1:]
	}

	whole, frac, _ := strings.Cut(s, ".")
	digits := whole + frac
	if digits == "" {
		return pgtype.Numeric{Valid: false}
	}

	n, ok := new(big.Int).SetString(digits, 10)
	if !ok {
		return pgtype.Numeric{Valid: false}
	}
	if neg {
		n.Neg(n)
	}

	return NormalizeNumeric(pgtype.Numeric{Int: n, Exp: -int32(len(frac)), Valid: true})
}

// NormalizeNumeric strips trailing zeros from the coefficient so that
// 1500, 1500.0 and 1500.00 share one representation.
func NormalizeNumeric(n pgtype.Numeric) pgtype.Numeric {
	if !n.Valid || n.Int == nil || n.NaN || n.InfinityModifier != pgtype.Finite {
		return n
	}

	i := new(big.Int).Set(n.Int)
	exp := n.Exp
	if i.Sign() == 0 {
		return pgtype.Numeric{Int: i, Exp: 0, Valid: true}
	}

	ten := big.NewInt(10)
	q, r := new(big.Int), new(big.Int)
	for {
		q.QuoRem(i, ten, r)
		if r.Sign() != 0 {
			break
		}
		i.Set(q)
		exp++
	}

	return pgtype.Numeric{Int: i, Exp: exp, Valid: true}
}

// ToPgInt8 converts a string to pgtype.Int8.
// Integral decimals such as "30.0" are accepted; fractional values are not.
func ToPgInt8(s string) pgtype.Int8 {
	n := ToPgNumeric(s)
	if !n.Valid || n.Exp < 0 {
		return pgtype.Int8{Valid: false}
	}

	i := new(big.Int).Set(n.Int)
	if n.Exp > 0 {
		i.Mul(i, new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(n.Exp)), nil))
	}
	if !i.IsInt64() {
		return pgtype.Int8{Valid: false}
	}

	return pgtype.Int8{Int64: i.Int64(), Valid: true}
}

// CompareNumeric orders two valid numerics. Both must be finite.
func CompareNumeric(a, b pgtype.Numeric) int {
	return numericRat(a).Cmp(numericRat(b))
}

func numericRat(n pgtype.Numeric) *big.Rat {
	r := new(big.Rat).SetInt(n.Int)
	if n.Exp == 0 {
		return r
	}

	scale := new(big.Rat).SetInt(new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(abs32(n.Exp))), nil))
	if n.Exp > 0 {
		return r.Mul(r, scale)
	}
	return r.Quo(r, scale)
}

func abs32(v int32) int32 {
	if v < 0 {
		return -v
	}
	return v
}

// FormatText returns the text value, or "" when null.
func FormatText(t pgtype.Text) string {
	if !t.Valid {
		return ""
	}
	return t.String
}

// FormatInt8 returns the base-10 value, or "" when null.
func FormatInt8(i pgtype.Int8) string {
	if !i.Valid {
		return ""
	}
	return big.NewInt(i.Int64).String()
}

// FormatDate returns the date as YYYY-MM-DD, or "" when null.
func FormatDate(d pgtype.Date) string {
	if !d.Valid || d.InfinityModifier != pgtype.Finite {
		return ""
	}
	return d.Time.Format(DateLayout)
}

// FormatNumeric returns the minimal plain decimal form, or "" when null.
// Examples: 1500, 1500.5, -0.25.
func FormatNumeric(n pgtype.Numeric) string {
	if !n.Valid || n.Int == nil || n.NaN || n.InfinityModifier != pgtype.Finite {
		return ""
	}

	n = NormalizeNumeric(n)
	neg := n.Int.Sign() < 0
	digits := new(big.Int).Abs(n.Int).String()

	var out string
	switch {
	case n.Exp >= 0:
		out = digits + strings.Repeat("0", int(n.Exp))
		if digits == "0" {
			out = "0"
		}
	default:
		scale := int(-n.Exp)
		if len(digits) <= scale {
			digits = strings.Repeat("0", scale-len(digits)+1) + digits
		}
		point := len(digits) - scale
		out = digits[:point] + "." + digits[point:]
	}

	if neg {
		return "-" + out
	}
	return out
}

// MakeHeaderIndex creates a HeaderIndex from a CSV header row.
// Keys are lowercased for case-insensitive matching. The first occurrence of a
// duplicated header wins.
func MakeHeaderIndex(header []string) HeaderIndex {
	idx := make(HeaderIndex, len(header))
	for i, h := range header {
		key := strings.ToLower(CleanCell(h))
		if _, seen := idx[key]; seen {
			continue
		}
		idx[key] = i
	}
	return idx
}

// CleanCell removes common CSV artifacts from a cell value:
// - Trims whitespace
// - Removes Excel formula prefix (="...")
// - Removes surrounding quotes
func CleanCell(s string) string {
	s = strings.TrimSpace(s)

	if strings.HasPrefix(s, "=\"") && strings.HasSuffix(s, "\"") {
		s = s[2 : len(s)-1]
	} else if strings.HasPrefix(s, "=") {
		s = s[1:]
	}

	s = strings.Trim(s, `"'`)

	return strings.TrimSpace(s)
}

package cleaner

import (
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/JonMunkholm/policy-cleaner/internal/core"
)

// modeOf returns the most frequent value. key identifies equal values and
// less breaks ties: among equally frequent values the lowest wins.
// ok is false when values is empty.
func modeOf[T any](values []T, key func(T) string, less func(a, b T) bool) (mode T, ok bool) {
	counts := make(map[string]int, len(values))
	first := make(map[string]T, len(values))
	for _, v := range values {
		k := key(v)
		if _, seen := first[k]; !seen {
			first[k] = v
		}
		counts[k]++
	}

	best := -1
	for k, n := range counts {
		v := first[k]
		if n > best || (n == best && less(v, mode)) {
			mode, best, ok = v, n, true
		}
	}
	return mode, ok
}

// int8Mode returns the modal value among the valid entries of values.
func int8Mode(values []pgtype.Int8) (pgtype.Int8, bool) {
	valid := make([]pgtype.Int8, 0, len(values))
	for _, v := range values {
		if v.Valid {
			valid = append(valid, v)
		}
	}
	return modeOf(valid,
		core.FormatInt8,
		func(a, b pgtype.Int8) bool { return a.Int64 < b.Int64 },
	)
}

// numericMode returns the modal value among the valid entries of values.
func numericMode(values []pgtype.Numeric) (pgtype.Numeric, bool) {
	valid := make([]pgtype.Numeric, 0, len(values))
	for _, v := range values {
		if v.Valid {
			valid = append(valid, core.NormalizeNumeric(v))
		}
	}
	return modeOf(valid,
		core.FormatNumeric,
		func(a, b pgtype.Numeric) bool { return core.CompareNumeric(a, b) < 0 },
	)
}

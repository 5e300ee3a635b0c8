package core

// validation.go checks a CSV header against the expected field specifications.
// Cell values are never validated here: bad cells are coerced to null by the
// ToPg* converters and handled by the cleaner's imputation rules.

import (
	"strings"
)

// ValidateHeaders validates that all required columns exist in the CSV headers.
// Returns a mapping from column name to index, or a *SchemaError listing
// every missing column in field order.
func ValidateHeaders(headers []string, specs []FieldSpec) (HeaderIndex, error) {
	idx := MakeHeaderIndex(headers)
	var missing []string

	for _, spec := range specs {
		if spec.Required {
			key := strings.ToLower(spec.Name)
			if _, ok := idx[key]; !ok {
				missing = append(missing, spec.Name)
			}
		}
	}

	if len(missing) > 0 {
		return nil, &SchemaError{Missing: missing}
	}

	return idx, nil
}

// UnknownHeaders returns header names that match no field, in file order.
func UnknownHeaders(headers []string, specs []FieldSpec) []string {
	known := make(map[string]bool, len(specs))
	for _, spec := range specs {
		known[strings.ToLower(spec.Name)] = true
	}

	var unknown []string
	for _, h := range headers {
		key := strings.ToLower(CleanCell(h))
		if !known[key] {
			unknown = append(unknown, h)
		}
	}
	return unknown
}

// fieldTypeName returns a human-readable name for a field type.
func fieldTypeName(ft FieldType) string {
	switch ft {
	case FieldText:
		return "text"
	case FieldInteger:
		return "integer"
	case FieldNumeric:
		return "numeric"
	case FieldDate:
		return "date"
	default:
		return "value"
	}
}

// String implements fmt.Stringer.
func (ft FieldType) String() string {
	return fieldTypeName(ft)
}

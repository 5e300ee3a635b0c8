package core

// FieldType represents the expected data type for a CSV field.
type FieldType int

const (
	FieldText FieldType = iota
	FieldInteger
	FieldNumeric
	FieldDate
)

// FieldSpec defines the header and type rules for a single CSV column.
type FieldSpec struct {
	Name     string    // Column header name (lower-case, underscores)
	Type     FieldType // Expected data type after coercion
	Required bool      // Column must exist in CSV header
}

// HeaderIndex maps column names (lowercase) to their position in the CSV row.
type HeaderIndex map[string]int

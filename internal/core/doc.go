// Package core provides the cell-level building blocks for cleaning CSV data.
//
// This package has no knowledge of the policy record layout. The cleaner
// package composes it into the record pipeline.
//
// # Cells
//
// Every raw cell is converted into a nullable pgtype value with one of the
// ToPg* functions and written back with the matching Format* function:
//
//	age := core.ToPgInt8(" 30.0 ")   // {Int64: 30, Valid: true}
//	core.FormatInt8(age)             // "30"
//	core.FormatNumeric(core.ToPgNumeric("$1,500.50")) // "1500.5"
//
// Empty cells and missing-value tokens (NA, N/A, null, NaN, ...) all become
// Valid=false. Formatting a null yields "", so written output reads back as
// the same value.
//
// # Input
//
// [SourceReader] strips a UTF-8 BOM and replaces invalid UTF-8 before the
// CSV parser sees the bytes, and counts bytes for the load report.
//
// # Error Handling
//
// Only structural failures are errors: [DataSourceError] for files that
// cannot be opened, read, parsed or written, and [SchemaError] for missing
// header columns. [MapError] turns either into a coded user message.
package core

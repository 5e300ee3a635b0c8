package cleaner

import (
	"strconv"
	"testing"

	"github.com/jackc/pgx/v5/pgtype"

	"github.com/JonMunkholm/policy-cleaner/internal/core"
)

func TestModeOf(t *testing.T) {
	less := func(a, b int) bool { return a < b }

	tests := []struct {
		name   string
		values []int
		want   int
		wantOK bool
	}{
		{name: "single mode", values: []int{30, 30, 45}, want: 30, wantOK: true},
		{name: "tie takes lowest", values: []int{45, 30, 45, 30}, want: 30, wantOK: true},
		{name: "all distinct", values: []int{9, 4, 7}, want: 4, wantOK: true},
		{name: "negative lowest", values: []int{5, -5}, want: -5, wantOK: true},
		{name: "empty", values: nil, want: 0, wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := modeOf(tt.values, strconv.Itoa, less)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if got != tt.want {
				t.Errorf("modeOf() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestInt8Mode_IgnoresNull(t *testing.T) {
	values := []pgtype.Int8{
		{},
		{Int64: 10, Valid: true},
		{},
		{},
		{Int64: 20, Valid: true},
		{Int64: 20, Valid: true},
	}

	got, ok := int8Mode(values)
	if !ok || got.Int64 != 20 {
		t.Errorf("int8Mode() = %v, %v; want 20, true", got, ok)
	}

	if _, ok := int8Mode([]pgtype.Int8{{}, {}}); ok {
		t.Error("int8Mode() of nulls should report no mode")
	}
}

func TestNumericMode_EqualAmountsShareACount(t *testing.T) {
	values := []pgtype.Numeric{
		core.ToPgNumeric("1500"),
		core.ToPgNumeric("1500.00"),
		core.ToPgNumeric("$1,500.0"),
		core.ToPgNumeric("200"),
		core.ToPgNumeric("200"),
		core.ToPgNumeric("bogus"),
	}

	got, ok := numericMode(values)
	if !ok {
		t.Fatal("numericMode() found no mode")
	}
	if s := core.FormatNumeric(got); s != "1500" {
		t.Errorf("numericMode() = %s, want 1500", s)
	}
}

func TestNumericMode_TieTakesLowest(t *testing.T) {
	values := []pgtype.Numeric{
		core.ToPgNumeric("99.5"),
		core.ToPgNumeric("100"),
		core.ToPgNumeric("99.50"),
		core.ToPgNumeric("100.0"),
	}

	got, _ := numericMode(values)
	if s := core.FormatNumeric(got); s != "99.5" {
		t.Errorf("numericMode() = %s, want 99.5", s)
	}
}

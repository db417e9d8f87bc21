package normalize_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"telextract/internal/domain"
	"telextract/internal/normalize"
)

func TestFormatDate_TwoDigitYear(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"31.12.99", "1999-12-31"}, // >50 maps to 1900s
		{"01.01.25", "2025-01-01"}, // <=50 maps to 2000s
		{"15.03.24", "2024-03-15"},
		{"01.06.50", "2050-06-01"}, // pivot year itself stays in the 2000s
		{"01.06.51", "1951-06-01"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, normalize.FormatDate(tt.in), "input %q", tt.in)
	}
}

func TestFormatDate_FourDigitYear(t *testing.T) {
	assert.Equal(t, "2024-03-15", normalize.FormatDate("15.03.2024"))
	assert.Equal(t, "1998-01-31", normalize.FormatDate("31.01.1998"))
}

func TestFormatDate_PassThrough(t *testing.T) {
	for _, in := range []string{"", "2024-03-15", "March 15, 2024", "15/03/2024", "n/a"} {
		assert.Equal(t, in, normalize.FormatDate(in), "input %q", in)
	}
}

func TestFormatDate_Idempotent(t *testing.T) {
	for _, in := range []string{"31.12.99", "15.03.2024", "2024-03-15", "garbage"} {
		once := normalize.FormatDate(in)
		assert.Equal(t, once, normalize.FormatDate(once), "input %q", in)
	}
}

func TestParseNumeric(t *testing.T) {
	v, ok := normalize.ParseNumeric("45,678.50")
	assert.True(t, ok)
	assert.Equal(t, 45678.50, v)

	v, ok = normalize.ParseNumeric("1,23,456.78") // Indian digit grouping
	assert.True(t, ok)
	assert.Equal(t, 123456.78, v)

	v, ok = normalize.ParseNumeric(" 100 ")
	assert.True(t, ok)
	assert.Equal(t, 100.0, v)

	_, ok = normalize.ParseNumeric("")
	assert.False(t, ok)

	_, ok = normalize.ParseNumeric("N/A")
	assert.False(t, ok)
}

func TestApply_DoesNotMutateInput(t *testing.T) {
	in := domain.FieldMap{
		"billDate":     "15.03.24",
		"totalPayable": "45,678.50",
	}

	out := normalize.Apply(in, []string{"billDate"}, []string{"totalPayable"})

	assert.Equal(t, "15.03.24", in["billDate"])
	assert.Equal(t, "45,678.50", in["totalPayable"])
	assert.Equal(t, "2024-03-15", out["billDate"])
	assert.Equal(t, 45678.50, out["totalPayable"])
}

func TestApply_UnparseableNumericBecomesNil(t *testing.T) {
	out := normalize.Apply(domain.FieldMap{"tax": "eighteen"}, nil, []string{"tax"})
	v, present := out["tax"]
	assert.True(t, present)
	assert.Nil(t, v)
}

func TestApply_Idempotent(t *testing.T) {
	in := domain.FieldMap{
		"billDate":     "31.12.99",
		"totalPayable": "1,000.00",
		"bandwidth":    nil,
	}
	dates := []string{"billDate"}
	nums := []string{"totalPayable", "bandwidth"}

	once := normalize.Apply(in, dates, nums)
	twice := normalize.Apply(once, dates, nums)

	assert.Equal(t, once, twice)
}

package parse_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hoppa1231/Handbook/pkg/parse"
	domain "github.com/hoppa1231/Handbook/pkg/types"
)

func TestPartNumber(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		raw  string
		want string
	}{
		{name: "plain", raw: "A-100", want: "A-100"},
		{name: "surrounding whitespace", raw: "  A-100 ", want: "A-100"},
		{name: "empty", raw: "", want: ""},
		{name: "whitespace only", raw: "   ", want: ""},
		{name: "inner spaces kept", raw: "AB 100", want: "AB 100"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, parse.PartNumber(tt.raw))
		})
	}
}

func TestPrice(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		raw    string
		want   float64
		wantOK bool
	}{
		{name: "plain integer", raw: "100", want: 100, wantOK: true},
		{name: "decimal dot", raw: "1234.5", want: 1234.5, wantOK: true},
		{name: "decimal comma", raw: "1234,50", want: 1234.5, wantOK: true},
		{name: "thousands space and comma", raw: "1 234,50", want: 1234.5, wantOK: true},
		{name: "non-breaking space", raw: "12 500", want: 12500, wantOK: true},
		{name: "surrounding whitespace", raw: "  99.90  ", want: 99.9, wantOK: true},
		{name: "blank", raw: "", wantOK: false},
		{name: "whitespace only", raw: "   ", wantOK: false},
		{name: "text", raw: "по запросу", wantOK: false},
		{name: "mixed text and number", raw: "100 usd", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, ok := parse.Price(tt.raw)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.InDelta(t, tt.want, got, 1e-9)
			}
		})
	}
}

func TestLeadTime(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		raw    string
		want   domain.LeadTime
		wantOK bool
	}{
		{name: "days", raw: "5 days", want: domain.LeadTime{Value: 5, Unit: domain.LeadDays}, wantOK: true},
		{name: "bare number", raw: "7", want: domain.LeadTime{Value: 7, Unit: domain.LeadDays}, wantOK: true},
		{name: "weeks", raw: "2 weeks", want: domain.LeadTime{Value: 2, Unit: domain.LeadWeeks}, wantOK: true},
		{name: "single week", raw: "1 week", want: domain.LeadTime{Value: 1, Unit: domain.LeadWeeks}, wantOK: true},
		{name: "uppercase", raw: "3 DAYS", want: domain.LeadTime{Value: 3, Unit: domain.LeadDays}, wantOK: true},
		{name: "range takes last run", raw: "3-5 days", want: domain.LeadTime{Value: 5, Unit: domain.LeadDays}, wantOK: true},
		{name: "typo cays", raw: "10 cays", want: domain.LeadTime{Value: 10, Unit: domain.LeadDays}, wantOK: true},
		{name: "blank", raw: "", wantOK: false},
		{name: "no digits", raw: "on request", wantOK: false},
		{name: "whitespace only", raw: "  ", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, ok := parse.LeadTime(tt.raw)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestLeadTimeDays(t *testing.T) {
	t.Parallel()

	assert.InDelta(t, 5, domain.LeadTime{Value: 5, Unit: domain.LeadDays}.Days(), 1e-9)
	assert.InDelta(t, 14, domain.LeadTime{Value: 2, Unit: domain.LeadWeeks}.Days(), 1e-9)
	assert.Equal(t, "5 days", domain.LeadTime{Value: 5, Unit: domain.LeadDays}.String())
	assert.Equal(t, "2 weeks", domain.LeadTime{Value: 2, Unit: domain.LeadWeeks}.String())
}

func TestSerialNumber(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		raw    string
		want   int
		wantOK bool
	}{
		{name: "integer", raw: "1023", want: 1023, wantOK: true},
		{name: "float formatted", raw: "1023.0", want: 1023, wantOK: true},
		{name: "truncates fraction", raw: "12.7", want: 12, wantOK: true},
		{name: "blank", raw: "", wantOK: false},
		{name: "text", raw: "n/a", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, ok := parse.SerialNumber(tt.raw)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

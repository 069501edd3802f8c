// Package parse provides best-effort normalizers for raw spreadsheet cell
// values. Human-edited sheets are noisy, so every function here degrades to
// "absent" instead of returning an error: an unparsable cell never fails a
// row, it just contributes nothing.
package parse

import (
	"regexp"
	"strconv"
	"strings"

	domain "github.com/hoppa1231/Handbook/pkg/types"
)

var digitRuns = regexp.MustCompile(`\d+`)

// PartNumber trims a raw part number cell. An empty result means the cell
// holds no usable part number.
func PartNumber(raw string) string {
	return strings.TrimSpace(raw)
}

// Price parses a price cell. Thousands separators (regular or non-breaking
// spaces) are stripped and decimal commas become dots, so "1 234,50" parses
// as 1234.50. Returns false for blank or unparsable cells.
func Price(raw string) (float64, bool) {
	text := strings.TrimSpace(raw)
	if text == "" {
		return 0, false
	}

	text = strings.ReplaceAll(text, " ", "")
	text = strings.ReplaceAll(text, " ", "")
	text = strings.ReplaceAll(text, ",", ".")

	v, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// LeadTime parses a lead time cell. It takes the last run of digits in the
// text and interprets it as weeks when a week token is present, days
// otherwise, so "3-5 days" yields 5 days and "2 weeks" yields 2 weeks.
// Text without digits returns false.
func LeadTime(raw string) (domain.LeadTime, bool) {
	text := strings.ToLower(strings.TrimSpace(raw))
	if text == "" {
		return domain.LeadTime{}, false
	}

	runs := digitRuns.FindAllString(text, -1)
	if len(runs) == 0 {
		return domain.LeadTime{}, false
	}

	n, err := strconv.Atoi(runs[len(runs)-1])
	if err != nil {
		return domain.LeadTime{}, false
	}

	unit := domain.LeadDays
	if strings.Contains(text, "week") {
		unit = domain.LeadWeeks
	}
	return domain.LeadTime{Value: n, Unit: unit}, true
}

// SerialNumber parses a serial number cell. Sheets frequently hold serials
// as floats ("1023.0"), so the value goes through a float parse before
// truncating to an integer. Non-numeric text returns false.
func SerialNumber(raw string) (int, bool) {
	text := strings.TrimSpace(raw)
	if text == "" {
		return 0, false
	}

	f, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return 0, false
	}
	return int(f), true
}

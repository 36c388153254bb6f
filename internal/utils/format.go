package utils

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// FormatCurrency renders n as a Colombian peso amount with no decimal
// places: FormatCurrency(1000) == "$1.000", FormatCurrency(-500) == "-$500".
// Fractional input is rounded to the nearest whole unit.
func FormatCurrency(n float64) string {
	rounded := int64(math.Round(n))

	negative := rounded < 0
	if negative {
		rounded = -rounded
	}

	digits := strconv.FormatInt(rounded, 10)

	var b strings.Builder
	if negative {
		b.WriteByte('-')
	}
	b.WriteByte('$')

	lead := len(digits) % 3
	if lead == 0 {
		lead = 3
	}
	b.WriteString(digits[:lead])
	for i := lead; i < len(digits); i += 3 {
		b.WriteByte('.')
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}

// FormatDate renders t as DD/MM/YYYY.
func FormatDate(t time.Time) string {
	return t.Format("02/01/2006")
}

// FormatDateString parses an ISO-like date string and renders it as
// DD/MM/YYYY. Unparseable input is returned unchanged.
func FormatDateString(s string) string {
	t, err := ParseDate(s)
	if err != nil {
		return s
	}
	return FormatDate(t)
}

// ParseDate accepts RFC 3339 timestamps or plain YYYY-MM-DD dates.
func ParseDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", s)
}

// GenerateCSV builds a CSV document from rows keyed by header name. The
// header line comes first, then one line per row with fields in header
// order. A field value containing a comma is wrapped in double quotes;
// embedded quotes are not escaped. With no rows only the header line is
// returned, without a trailing newline.
func GenerateCSV(rows []map[string]string, headers []string) string {
	lines := make([]string, 0, len(rows)+1)
	lines = append(lines, strings.Join(headers, ","))

	for _, row := range rows {
		fields := make([]string, 0, len(headers))
		for _, header := range headers {
			value := row[header]
			if strings.Contains(value, ",") {
				value = `"` + value + `"`
			}
			fields = append(fields, value)
		}
		lines = append(lines, strings.Join(fields, ","))
	}
	return strings.Join(lines, "\n")
}

package inflation

import (
	"strings"
	"time"
	"unicode"
	"unicode/utf8"
)

// monthSynonyms maps the capitalized spellings found in published CPI tables
// to canonical English month names.
var monthSynonyms = map[string]string{
	"Jan":    "January",
	"Feb":    "February",
	"Mar":    "March",
	"Marcrh": "March",
	"Apr":    "April",
	"May":    "May",
	"Jun":    "June",
	"Jul":    "July",
	"Aug":    "August",
	"Sep":    "September",
	"Sept":   "September",
	"Oct":    "October",
	"Nov":    "November",
	"Dec":    "December",
}

func init() {
	// canonical names map to themselves, whatever their original case.
	for m := time.January; m <= time.December; m++ {
		monthSynonyms[m.String()] = m.String()
	}
}

// NormalizeMonth trims and capitalizes s and maps it through the synonym
// table. Values that are not in the table are returned trimmed and
// capitalized, but otherwise unchanged.
func NormalizeMonth(s string) string {
	s = capitalize(strings.TrimSpace(s))
	if m, ok := monthSynonyms[s]; ok {
		return m
	}
	return s
}

// MonthSynonyms returns a copy of the synonym table.
func MonthSynonyms() map[string]string {
	m := make(map[string]string, len(monthSynonyms))
	for k, v := range monthSynonyms {
		m[k] = v
	}
	return m
}

// capitalize upper-cases the first letter and lower-cases the rest.
func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + strings.ToLower(s[size:])
}

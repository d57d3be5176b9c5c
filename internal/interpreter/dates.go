package interpreter

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	isoDatePattern  = regexp.MustCompile(`\b(\d{4}-\d{2}-\d{2})\b`)
	longDatePattern = regexp.MustCompile(`\b(Monday|Tuesday|Wednesday|Thursday|Friday|Saturday|Sunday),?\s+([A-Z][a-z]+)\s+(\d{1,2}),\s+(\d{4})\b`)
)

var monthNames = []string{
	"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}

// ExtractFirstDateISO returns the first date mentioned in text as YYYY-MM-DD.
//
// A literal ISO date wins. Otherwise a "Saturday, Aug 16, 2025" style mention is
// resolved; the month is matched by prefix against full month names and the first
// month that matches is used ("Ma" resolves to March).
func ExtractFirstDateISO(text string) (string, bool) {
	if m := isoDatePattern.FindStringSubmatch(text); m != nil {
		return m[1], true
	}

	m := longDatePattern.FindStringSubmatch(text)
	if m == nil {
		return "", false
	}

	month := monthFromPrefix(m[2])
	if month == 0 {
		return "", false
	}
	day, _ := strconv.Atoi(m[3])
	year, _ := strconv.Atoi(m[4])

	// time.Date normalises overflow (Feb 30 -> Mar 2); treat that as invalid.
	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	if t.Month() != month || t.Day() != day {
		return "", false
	}
	return fmt.Sprintf("%04d-%02d-%02d", t.Year(), int(t.Month()), t.Day()), true
}

func monthFromPrefix(prefix string) time.Month {
	for i, name := range monthNames {
		if strings.HasPrefix(name, prefix) {
			return time.Month(i + 1)
		}
	}
	return 0
}

package interpreter

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

var (
	// "7:30 PM", "12:05am"
	twelveHourPattern = regexp.MustCompile(`(?i)\b(\d{1,2}):(\d{2})\s*(AM|PM)\b`)
	// "19:30", "19:30:00", "7:30"
	bareTimePattern = regexp.MustCompile(`\b(\d{1,2}):(\d{2})(?::(\d{2}))?\b`)
)

// ExtractTimes returns every time mentioned in reply as a sorted, de-duplicated
// list of HH:MM:SS strings. 12-hour mentions are converted to 24-hour time.
func ExtractTimes(reply string) []string {
	seen := make(map[string]struct{})

	var spans [][]int
	for _, m := range twelveHourPattern.FindAllStringSubmatchIndex(reply, -1) {
		spans = append(spans, m[:2])
		hour, _ := strconv.Atoi(reply[m[2]:m[3]])
		minute, _ := strconv.Atoi(reply[m[4]:m[5]])
		seen[to24Hour(hour, minute, reply[m[6]:m[7]])] = struct{}{}
	}

	for _, m := range bareTimePattern.FindAllStringSubmatchIndex(reply, -1) {
		// The digits of a 12-hour mention also match the bare pattern.
		if insideAny(m[0], spans) {
			continue
		}
		hour, _ := strconv.Atoi(reply[m[2]:m[3]])
		minutes := reply[m[4]:m[5]]
		seconds := "00"
		if m[6] >= 0 {
			seconds = reply[m[6]:m[7]]
		}
		seen[fmt.Sprintf("%02d:%s:%s", hour, minutes, seconds)] = struct{}{}
	}

	out := make([]string, 0, len(seen))
	for t := range seen {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

func to24Hour(hour, minute int, meridiem string) string {
	switch strings.ToUpper(meridiem) {
	case "PM":
		if hour != 12 {
			hour += 12
		}
	case "AM":
		if hour == 12 {
			hour = 0
		}
	}
	return fmt.Sprintf("%02d:%02d:00", hour, minute)
}

func insideAny(pos int, spans [][]int) bool {
	for _, s := range spans {
		if pos >= s[0] && pos < s[1] {
			return true
		}
	}
	return false
}

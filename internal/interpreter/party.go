package interpreter

import (
	"regexp"
	"strconv"
)

var (
	partyLeadingPattern  = regexp.MustCompile(`(?i)\b(?:for|party of)\s*(\d{1,2})\b`)
	partyTrailingPattern = regexp.MustCompile(`(?i)\b(\d{1,2})\s*(?:people|persons?|guests?)\b`)
)

// ExtractPartySize infers a party size from "for 4" / "party of 6", falling back
// to "4 people" / "6 guests".
func ExtractPartySize(text string) (int, bool) {
	m := partyLeadingPattern.FindStringSubmatch(text)
	if m == nil {
		m = partyTrailingPattern.FindStringSubmatch(text)
	}
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return n, true
}

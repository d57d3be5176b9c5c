package interpreter

import (
	"time"

	"github.com/julianstephens/tablebot/internal/constants"
)

// HumanTime renders an HH:MM[:SS] time as "7:30 PM". Unparseable input is returned unchanged.
func HumanTime(t string) string {
	for _, layout := range []string{constants.TimeFormat, constants.ShortTimeFormat} {
		if parsed, err := time.Parse(layout, t); err == nil {
			return parsed.Format("3:04 PM")
		}
	}
	return t
}

// PrettyDate renders an ISO date as "Saturday Aug 16, 2025". Unparseable input is returned unchanged.
func PrettyDate(iso string) string {
	d, err := time.Parse(constants.DateFormat, iso)
	if err != nil {
		return iso
	}
	return d.Format("Monday Jan 02, 2006")
}

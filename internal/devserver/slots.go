package devserver

import (
	"time"

	"github.com/julianstephens/tablebot/internal/constants"
)

// Slots lists the bookable times of a day as HH:MM:SS
func Slots() []string {
	first, _ := time.Parse(constants.ShortTimeFormat, constants.DevFirstSlot)
	last, _ := time.Parse(constants.ShortTimeFormat, constants.DevLastSlot)
	step := time.Duration(constants.DevSlotIntervalMin) * time.Minute

	var out []string
	for t := first; !t.After(last); t = t.Add(step) {
		out = append(out, t.Format(constants.TimeFormat))
	}
	return out
}

// Available returns the slots on date with room for party more covers.
// excludeRef lets an update ignore the booking being moved.
func (s *Store) Available(date string, party int, excludeRef string) ([]string, error) {
	var out []string
	for _, slot := range Slots() {
		booked, err := s.CoversBooked(date, slot, excludeRef)
		if err != nil {
			return nil, err
		}
		if booked+party <= constants.DevCoversPerSlot {
			out = append(out, slot)
		}
	}
	return out, nil
}

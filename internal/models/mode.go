package models

import "fmt"

// Mode is the active conversational sub-flow; it decides which input panel is shown
type Mode int

const (
	ModeOptions Mode = iota
	ModeChat
	ModeAvailability
	ModeCreate
	ModeCreateCustomer
	ModeGet
	ModeUpdate
	ModeCancel
)

var modeNames = map[Mode]string{
	ModeOptions:        "options",
	ModeChat:           "chat",
	ModeAvailability:   "availability",
	ModeCreate:         "create",
	ModeCreateCustomer: "createCustomer",
	ModeGet:            "get",
	ModeUpdate:         "update",
	ModeCancel:         "cancel",
}

// Option button labels. Internal modes have none.
var modeLabels = map[Mode]string{
	ModeAvailability: "Check Availability",
	ModeCreate:       "Book a Table",
	ModeGet:          "View Your Booking",
	ModeUpdate:       "Edit Your Booking",
	ModeCancel:       "Cancel Booking",
}

var modePrompts = map[Mode]string{
	ModeAvailability: "Absolutely! When would you like to check availability? Pick a date and party size.",
	ModeCreate:       "Great! Let’s book a table for you. First, pick date, time, and party size.",
	ModeGet:          "Okay! What’s your booking reference number?",
	ModeUpdate:       "Let’s update your reservation. Please provide your booking reference.",
	ModeCancel:       "To cancel, I’ll need your booking reference.",
}

// OptionModes lists the user-selectable modes in the order the option panel shows them
var OptionModes = []Mode{ModeAvailability, ModeCreate, ModeGet, ModeUpdate, ModeCancel}

func (m Mode) String() string {
	if name, ok := modeNames[m]; ok {
		return name
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// Label returns the option-button label echoed as a user message, or "" for internal modes
func (m Mode) Label() string {
	return modeLabels[m]
}

// Prompt returns the fixed agent prompt for the mode, or "" when none is defined
func (m Mode) Prompt() string {
	return modePrompts[m]
}

// ParseMode resolves a mode from its string name
func ParseMode(s string) (Mode, error) {
	for mode, name := range modeNames {
		if name == s {
			return mode, nil
		}
	}
	return ModeOptions, fmt.Errorf("unknown mode: %q", s)
}

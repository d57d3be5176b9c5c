// Package commands builds and parses the machine-formatted messages sent to the chat backend.
//
// Commands are comma-separated "Key: value" tokens. The backend parses them by
// key, so the exact text matters.
package commands

import (
	"fmt"
	"strings"

	"github.com/julianstephens/tablebot/internal/constants"
	"github.com/julianstephens/tablebot/internal/models"
)

const (
	KeyVisitDate            = "VisitDate"
	KeyVisitTime            = "VisitTime"
	KeyPartySize            = "PartySize"
	KeyChannelCode          = "ChannelCode"
	KeyFirstName            = "Customer[FirstName]"
	KeySurname              = "Customer[Surname]"
	KeyBookingReference     = "Booking_Reference"
	KeyCancellationReasonID = "CancellationReasonId"
)

func join(pairs ...string) string {
	parts := make([]string, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		parts = append(parts, pairs[i]+": "+pairs[i+1])
	}
	return strings.Join(parts, ", ")
}

// Availability formats an availability query for a date and party size.
func Availability(date string, partySize int) string {
	return join(
		KeyVisitDate, date,
		KeyPartySize, fmt.Sprint(partySize),
		KeyChannelCode, constants.ChannelCode,
	)
}

// Create formats a booking-creation command from a draft and the customer's name.
func Create(draft models.PendingBooking, firstName, surname string) string {
	return join(
		KeyVisitDate, draft.Date,
		KeyVisitTime, draft.Time,
		KeyPartySize, fmt.Sprint(draft.PartySize),
		KeyChannelCode, constants.ChannelCode,
		KeyFirstName, firstName,
		KeySurname, surname,
	)
}

// Lookup formats a booking reference lookup.
func Lookup(reference string) string {
	return join(KeyBookingReference, reference)
}

// Update formats an update of an existing booking to a new date, time and party size.
func Update(reference, date, visitTime string, partySize int) string {
	return join(
		KeyBookingReference, reference,
		KeyVisitDate, date,
		KeyVisitTime, visitTime,
		KeyPartySize, fmt.Sprint(partySize),
	)
}

// Cancel formats a cancellation with the fixed reason code.
func Cancel(reference string) string {
	return join(
		KeyBookingReference, reference,
		KeyCancellationReasonID, fmt.Sprint(constants.CancellationReasonID),
	)
}

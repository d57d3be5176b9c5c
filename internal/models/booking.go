package models

// ChipOffer is a set of selectable time slots inferred from the latest agent reply,
// scoped to one date and party size.
type ChipOffer struct {
	Date      string   `json:"date" yaml:"date"`            // YYYY-MM-DD
	PartySize int      `json:"partySize" yaml:"party_size"` // >= 1
	Times     []string `json:"times" yaml:"times"`          // HH:MM:SS, ascending
}

// Clone returns a deep copy of the offer (nil-safe)
func (o *ChipOffer) Clone() *ChipOffer {
	if o == nil {
		return nil
	}
	c := *o
	c.Times = append([]string(nil), o.Times...)
	return &c
}

// PendingBooking is a draft awaiting customer details
type PendingBooking struct {
	Date      string `json:"date"`
	Time      string `json:"time"`
	PartySize int    `json:"partySize"`
}

// Booking is a server-confirmed reservation as returned by the booking retrieval endpoint
type Booking struct {
	BookingReference string `json:"booking_reference"`
	VisitDate        string `json:"visit_date"`
	VisitTime        string `json:"visit_time"`
	PartySize        int    `json:"party_size"`
}

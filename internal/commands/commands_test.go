package commands

import (
	"testing"

	"github.com/julianstephens/tablebot/internal/models"
)

func TestFormatters(t *testing.T) {
	draft := models.PendingBooking{Date: "2025-08-16", Time: "19:30:00", PartySize: 2}

	tests := []struct {
		name string
		got  string
		want string
	}{
		{
			name: "availability",
			got:  Availability("2025-08-16", 2),
			want: "VisitDate: 2025-08-16, PartySize: 2, ChannelCode: ONLINE",
		},
		{
			name: "create",
			got:  Create(draft, "Ada", "Lovelace"),
			want: "VisitDate: 2025-08-16, VisitTime: 19:30:00, PartySize: 2, ChannelCode: ONLINE, Customer[FirstName]: Ada, Customer[Surname]: Lovelace",
		},
		{
			name: "lookup",
			got:  Lookup("ABC1234"),
			want: "Booking_Reference: ABC1234",
		},
		{
			name: "update",
			got:  Update("ABC1234", "2025-08-17", "20:00:00", 4),
			want: "Booking_Reference: ABC1234, VisitDate: 2025-08-17, VisitTime: 20:00:00, PartySize: 4",
		},
		{
			name: "cancel",
			got:  Cancel("ABC1234"),
			want: "Booking_Reference: ABC1234, CancellationReasonId: 1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("got %q, want %q", tt.got, tt.want)
			}
		})
	}
}

func TestParse(t *testing.T) {
	f := Parse("VisitDate: 2025-08-16, VisitTime: 19:30:00, PartySize: 2, Customer[FirstName]: Ada, junk")

	if v, _ := f.Get("visitdate"); v != "2025-08-16" {
		t.Errorf("visitdate = %q", v)
	}
	if v, _ := f.Get("VisitTime"); v != "19:30:00" {
		t.Errorf("visittime = %q, want value split on the first colon only", v)
	}
	if n, ok := f.Int("PartySize"); !ok || n != 2 {
		t.Errorf("partysize = %d, %v", n, ok)
	}
	if v, _ := f.Get(KeyFirstName); v != "Ada" {
		t.Errorf("first name = %q", v)
	}
	if _, ok := f.Get("junk"); ok {
		t.Error("part without a colon should be ignored")
	}
	if !f.Has(KeyVisitDate, KeyPartySize) {
		t.Error("Has() = false for present keys")
	}
	if f.Has(KeySurname) {
		t.Error("Has() = true for a missing key")
	}
}

func TestParseFreeText(t *testing.T) {
	f := Parse("hello there")
	if len(f) != 0 {
		t.Errorf("Parse(free text) = %v, want empty", f)
	}
	if _, ok := f.Int("partysize"); ok {
		t.Error("Int() on missing key should fail")
	}
}

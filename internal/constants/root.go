package constants

import "time"

const (
	AppName            = "tablebot"
	DefaultKeyringUser = "api-token"
	DefaultConfigDir   = "~/.config/tablebot"
	DefaultConfigFile  = "config.yaml"
	Version            = "v0.2.0"

	// DateFormat is the ISO date format sent to the backend (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// TimeFormat is the wire time format used by the backend (HH:MM:SS)
	TimeFormat = "15:04:05"

	// ShortTimeFormat is the time format accepted from form input (HH:MM)
	ShortTimeFormat = "15:04"

	// Backend defaults
	DefaultBaseURL    = "http://localhost:8000"
	DefaultRestaurant = "TheHungryUnicorn"
	DefaultTimeout    = 30 * time.Second

	// Booking command constants
	ChannelCode          = "ONLINE"
	CancellationReasonID = 1

	// Party size bounds enforced by the booking forms
	MinPartySize     = 1
	MaxPartySize     = 20
	DefaultPartySize = 2

	// RecentMessageWindow is how many prior messages feed party-size inference
	RecentMessageWindow = 3

	// Dev server defaults
	DefaultDevAddr        = ":8000"
	DefaultDevDatabase    = ":memory:"
	DevRequestsPerMinute  = 120
	DevRequestBurst       = 20
	DevFirstSlot          = "12:00"
	DevLastSlot           = "21:30"
	DevSlotIntervalMin    = 30
	DevCoversPerSlot      = 20
	DevReferenceLength    = 7
	DevRateLimiterIdleTTL = 10 * time.Minute
)

package devserver

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/julianstephens/tablebot/internal/commands"
	"github.com/julianstephens/tablebot/internal/constants"
	"github.com/julianstephens/tablebot/internal/interpreter"
	"github.com/julianstephens/tablebot/internal/logger"
	"github.com/julianstephens/tablebot/internal/validation"
)

const (
	replyGuidance     = "I can check availability, book a table, or view, change or cancel a booking. Tell me a date and party size, or pick one of the options."
	replyAskParty     = "Please specify for how many people you want to check availability for?."
	replyAskDate      = "Any specific date you'd like to check availability for?."
	replyPastDate     = "That date looks like it's in the past. Please choose a future date."
	replyAskReference = "What's your booking reference number?"
	replyNoChanges    = "No changes specified. You can update date, time or party size."
	replyInternal     = "Oops, something went wrong. Please try again later."
	replyPartySize    = "How many people is the booking for?"
)

var numberWords = map[string]int{
	"one": 1, "two": 2, "three": 3, "four": 4, "five": 5, "six": 6, "seven": 7,
	"eight": 8, "nine": 9, "ten": 10, "eleven": 11, "twelve": 12, "thirteen": 13,
	"fourteen": 14, "fifteen": 15, "sixteen": 16, "seventeen": 17, "eighteen": 18,
	"nineteen": 19, "twenty": 20,
}

// partyWordPattern matches spelled-out sizes such as "for two" or "party of five"
var partyWordPattern = regexp.MustCompile(
	`(?i)\b(?:party\s*(?:size)?\s*of|table\s*for|for)\s*(one|two|three|four|five|six|seven|eight|nine|ten|eleven|twelve|thirteen|fourteen|fifteen|sixteen|seventeen|eighteen|nineteen|twenty)\b`)

// Agent answers chat messages the way the hosted booking assistant does:
// structured commands are executed against the store, free text gets a best effort.
type Agent struct {
	store *Store
	now   func() time.Time
}

func NewAgent(store *Store, now func() time.Time) *Agent {
	if now == nil {
		now = time.Now
	}
	return &Agent{store: store, now: now}
}

// Reply handles one chat message
func (a *Agent) Reply(message string) string {
	f := commands.Parse(message)

	switch {
	case f.Has(commands.KeyBookingReference) && f.Has(commands.KeyCancellationReasonID):
		return a.cancel(f)
	case f.Has(commands.KeyBookingReference) && hasAny(f, commands.KeyVisitDate, commands.KeyVisitTime, commands.KeyPartySize):
		return a.update(f)
	case f.Has(commands.KeyBookingReference):
		return a.get(f)
	case hasAny(f, commands.KeyVisitTime, commands.KeyFirstName):
		return a.create(f)
	case f.Has(commands.KeyVisitDate):
		return a.availability(f)
	}
	return a.freeText(message)
}

func hasAny(f commands.Fields, keys ...string) bool {
	for _, k := range keys {
		if f.Has(k) {
			return true
		}
	}
	return false
}

func (a *Agent) availability(f commands.Fields) string {
	raw, _ := f.Get(commands.KeyVisitDate)
	date, err := validation.Date(raw)
	if err != nil {
		return replyAskDate
	}
	party, ok := partyField(f)
	if !ok || !f.Has(commands.KeyChannelCode) {
		return replyAskParty
	}
	return a.describeAvailability(date, party)
}

func (a *Agent) describeAvailability(date string, party int) string {
	if a.isPast(date) {
		return replyPastDate
	}
	times, err := a.store.Available(date, party, "")
	if err != nil {
		logger.Error("Availability query failed", "date", date, "error", err)
		return "Sorry, I couldn't retrieve availability right now. Please try again later."
	}
	if len(times) == 0 {
		return fmt.Sprintf("Sorry, %s has no available times for %d people.", interpreter.PrettyDate(date), party)
	}
	return fmt.Sprintf("Available times on %s: %s. Would you like to book this slot?",
		interpreter.PrettyDate(date), humanTimes(times))
}

func (a *Agent) create(f commands.Fields) string {
	party, ok := partyField(f)
	if !ok {
		return replyPartySize
	}
	rawDate, _ := f.Get(commands.KeyVisitDate)
	date, err := validation.Date(rawDate)
	if err != nil {
		return "I couldn’t find a valid date. Try “2025-08-15”."
	}
	rawTime, _ := f.Get(commands.KeyVisitTime)
	visitTime, err := validation.Time(rawTime)
	if err != nil {
		return "I couldn’t find a valid time. Try “19:00”."
	}
	if a.isPast(date) {
		return replyPastDate
	}

	if reply, ok := a.checkSlot(date, visitTime, party, ""); !ok {
		return reply
	}

	channel, _ := f.Get(commands.KeyChannelCode)
	if channel == "" {
		channel = constants.ChannelCode
	}
	first, _ := f.Get(commands.KeyFirstName)
	surname, _ := f.Get(commands.KeySurname)

	b, err := a.store.Create(NewBooking{
		VisitDate: date,
		VisitTime: visitTime,
		PartySize: party,
		FirstName: first,
		Surname:   surname,
		Channel:   channel,
	})
	if err != nil {
		logger.Error("Create booking failed", "error", err)
		return "Sorry, I couldn't create the booking. Please check your details and try again."
	}
	logger.Info("Booking created", "reference", b.BookingReference, "date", date, "time", visitTime, "party", party)

	return fmt.Sprintf("Your booking for %s at %s for a party of %d is confirmed! Reference: %s. Looking forward to seeing you at The Hungry Unicorn.",
		interpreter.PrettyDate(b.VisitDate), interpreter.HumanTime(b.VisitTime), party, b.BookingReference)
}

// checkSlot reports whether party fits at date/visitTime; otherwise it returns the reply to send
func (a *Agent) checkSlot(date, visitTime string, party int, excludeRef string) (string, bool) {
	times, err := a.store.Available(date, party, excludeRef)
	if err != nil {
		logger.Error("Availability pre-check failed", "date", date, "error", err)
		return "Sorry, I couldn't check availability for your booking. Please try again later.", false
	}
	for _, t := range times {
		if t == visitTime {
			return "", true
		}
	}
	if len(times) == 0 {
		return fmt.Sprintf("Sorry, %s has no available times for %d people.", interpreter.PrettyDate(date), party), false
	}
	return fmt.Sprintf("That exact time isn’t available. On %s we have: %s. Which time would you like?",
		interpreter.PrettyDate(date), humanTimes(times)), false
}

func (a *Agent) get(f commands.Fields) string {
	ref, _ := f.Get(commands.KeyBookingReference)
	if ref == "" {
		return "Please provide your booking reference so I can look it up."
	}
	b, err := a.store.Get(ref)
	if errors.Is(err, ErrBookingNotFound) {
		return fmt.Sprintf("No booking found with reference %s. Please check your reference number and try again.", ref)
	}
	if err != nil {
		logger.Error("Get booking failed", "reference", ref, "error", err)
		return "Sorry, I couldn't retrieve your booking right now. Please try again later."
	}
	return fmt.Sprintf("Your reservation %s is on %s at %s for %d people.", ref, b.VisitDate, b.VisitTime, b.PartySize)
}

func (a *Agent) update(f commands.Fields) string {
	ref, _ := f.Get(commands.KeyBookingReference)
	if ref == "" {
		return replyAskReference
	}

	var ch BookingChanges
	if raw, ok := f.Get(commands.KeyVisitDate); ok {
		d, err := validation.Date(raw)
		if err != nil {
			return "I couldn’t find a valid date. Try “2025-08-15”."
		}
		ch.VisitDate = &d
	}
	if raw, ok := f.Get(commands.KeyVisitTime); ok {
		t, err := validation.Time(raw)
		if err != nil {
			return "I couldn’t find a valid time. Try “19:00”."
		}
		ch.VisitTime = &t
	}
	if f.Has(commands.KeyPartySize) {
		n, ok := partyField(f)
		if !ok {
			return replyPartySize
		}
		ch.PartySize = &n
	}
	if ch.VisitDate == nil && ch.VisitTime == nil && ch.PartySize == nil {
		return replyNoChanges
	}

	current, err := a.store.Get(ref)
	if err != nil {
		return "Sorry, I couldn't update your booking. Please try again."
	}
	date, visitTime, party := current.VisitDate, current.VisitTime, current.PartySize
	if ch.VisitDate != nil {
		date = *ch.VisitDate
	}
	if ch.VisitTime != nil {
		visitTime = *ch.VisitTime
	}
	if ch.PartySize != nil {
		party = *ch.PartySize
	}
	if a.isPast(date) {
		return replyPastDate
	}
	if reply, ok := a.checkSlot(date, visitTime, party, ref); !ok {
		return reply
	}

	if _, err := a.store.Update(ref, ch); err != nil {
		logger.Error("Update booking failed", "reference", ref, "error", err)
		return "Sorry, I couldn't update your booking. Please try again."
	}
	return fmt.Sprintf("Your booking %s has been updated successfully!", ref)
}

func (a *Agent) cancel(f commands.Fields) string {
	ref, _ := f.Get(commands.KeyBookingReference)
	if _, ok := f.Int(commands.KeyCancellationReasonID); !ok || ref == "" {
		return replyAskReference
	}
	if err := a.store.Cancel(ref); err != nil {
		if !errors.Is(err, ErrBookingNotFound) {
			logger.Error("Cancel booking failed", "reference", ref, "error", err)
		}
		return "Sorry, I couldn't cancel your booking. Please verify your reference and try again."
	}
	return fmt.Sprintf("Your booking %s has been cancelled.", ref)
}

// freeText answers availability questions that carry a date and party size
func (a *Agent) freeText(message string) string {
	date, ok := interpreter.ExtractFirstDateISO(message)
	if !ok {
		return replyGuidance
	}
	party, ok := freeTextParty(message)
	if !ok {
		return replyAskParty
	}
	return a.describeAvailability(date, party)
}

// partyField reads PartySize and holds it to the bookable range
func partyField(f commands.Fields) (int, bool) {
	raw, ok := f.Get(commands.KeyPartySize)
	if !ok {
		return 0, false
	}
	n, err := validation.PartySize(raw)
	return n, err == nil
}

// freeTextParty accepts digits ("for 4") as well as words ("party of five")
func freeTextParty(message string) (int, bool) {
	if n, ok := interpreter.ExtractPartySize(message); ok {
		return n, n >= constants.MinPartySize && n <= constants.MaxPartySize
	}
	m := partyWordPattern.FindStringSubmatch(message)
	if m == nil {
		return 0, false
	}
	return numberWords[strings.ToLower(m[1])], true
}

func (a *Agent) isPast(date string) bool {
	return date < a.now().Format(constants.DateFormat)
}

func humanTimes(times []string) string {
	out := make([]string, len(times))
	for i, t := range times {
		out[i] = interpreter.HumanTime(t)
	}
	return strings.Join(out, ", ")
}

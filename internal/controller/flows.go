package controller

import (
	"context"
	"fmt"

	"github.com/julianstephens/tablebot/internal/commands"
	"github.com/julianstephens/tablebot/internal/constants"
	"github.com/julianstephens/tablebot/internal/interpreter"
	"github.com/julianstephens/tablebot/internal/logger"
	"github.com/julianstephens/tablebot/internal/models"
	"github.com/julianstephens/tablebot/internal/validation"
)

// SubmitAvailability asks the backend which times are free on date for party people
func (c *Controller) SubmitAvailability(ctx context.Context, date string, party int) error {
	ex, err := c.BeginAvailability(date, party)
	if err != nil {
		return err
	}
	return c.complete(ctx, ex)
}

// BeginAvailability seeds an empty chip offer for date and party and starts the query
func (c *Controller) BeginAvailability(date string, party int) (*Exchange, error) {
	date, err := validation.Date(date)
	if err != nil {
		return nil, err
	}
	if _, err := validation.PartySize(fmt.Sprint(party)); err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state.InFlight {
		return nil, ErrBusy
	}

	c.state.ChipOffer = &models.ChipOffer{Date: date, PartySize: party, Times: []string{}}
	c.state.Messages = append(c.state.Messages,
		models.UserMessage(fmt.Sprintf(constants.AvailabilityEcho, party, date)))
	return c.beginLocked(commands.Availability(date, party), true)
}

// SelectTime turns a chip into a pending booking. It reports false and changes
// nothing when no chip offer is active.
func (c *Controller) SelectTime(t string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	offer := c.state.ChipOffer
	if offer == nil || c.state.InFlight {
		return false
	}

	c.state.Pending = &models.PendingBooking{Date: offer.Date, Time: t, PartySize: offer.PartySize}
	c.state.Messages = append(c.state.Messages,
		models.UserMessage(fmt.Sprintf(constants.TimeChipEcho, interpreter.HumanTime(t), offer.Date)))
	c.state.Mode = models.ModeCreateCustomer
	c.state.ShowOptions = false
	return true
}

// SubmitCreate records a draft from the create form and moves on to customer details
func (c *Controller) SubmitCreate(date, t string, party int) error {
	date, err := validation.Date(date)
	if err != nil {
		return err
	}
	if t, err = validation.Time(t); err != nil {
		return err
	}
	if _, err := validation.PartySize(fmt.Sprint(party)); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state.InFlight {
		return ErrBusy
	}

	c.state.Pending = &models.PendingBooking{Date: date, Time: t, PartySize: party}
	c.state.Messages = append(c.state.Messages,
		models.UserMessage(fmt.Sprintf(constants.CreateEcho, party, date, t)))
	c.state.Mode = models.ModeCreateCustomer
	c.state.ShowOptions = false
	return nil
}

// SubmitCustomer completes the pending booking with the customer's name
func (c *Controller) SubmitCustomer(ctx context.Context, firstName, surname string) error {
	ex, err := c.BeginCustomer(firstName, surname)
	if err != nil {
		return err
	}
	return c.complete(ctx, ex)
}

// BeginCustomer validates the names and starts the booking-creation request.
// A validation failure leaves the state untouched.
func (c *Controller) BeginCustomer(firstName, surname string) (*Exchange, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state.Pending == nil {
		return nil, ErrNoPendingBooking
	}
	firstName, surname, err := validation.Customer(firstName, surname)
	if err != nil {
		return nil, err
	}
	if c.state.InFlight {
		return nil, ErrBusy
	}

	draft := *c.state.Pending
	c.state.Messages = append(c.state.Messages,
		models.UserMessage(fmt.Sprintf(constants.CustomerEcho, firstName, surname)))
	ex, err := c.beginLocked(commands.Create(draft, firstName, surname), true)
	if err != nil {
		return nil, err
	}
	c.state.Pending = nil
	c.state.ChipOffer = nil
	return ex, nil
}

// SubmitReference looks a booking up through the chat backend
func (c *Controller) SubmitReference(ctx context.Context, ref string) error {
	ex, err := c.BeginReference(ref)
	if err != nil {
		return err
	}
	return c.complete(ctx, ex)
}

// BeginReference validates ref and starts the lookup command
func (c *Controller) BeginReference(ref string) (*Exchange, error) {
	ref, err := validation.Reference(ref)
	if err != nil {
		return nil, err
	}
	return c.BeginSubmit(commands.Lookup(ref), true)
}

// SubmitCancel cancels a booking through the chat backend
func (c *Controller) SubmitCancel(ctx context.Context, ref string) error {
	ex, err := c.BeginCancel(ref)
	if err != nil {
		return err
	}
	return c.complete(ctx, ex)
}

// BeginCancel validates ref and starts the cancellation command
func (c *Controller) BeginCancel(ref string) (*Exchange, error) {
	ref, err := validation.Reference(ref)
	if err != nil {
		return nil, err
	}
	return c.BeginSubmit(commands.Cancel(ref), true)
}

// Lookup is an outstanding direct booking retrieval
type Lookup struct {
	Reference string

	backend Backend
}

// Run performs the retrieval. It touches no controller state.
func (l *Lookup) Run(ctx context.Context) (models.Booking, error) {
	return l.backend.GetBooking(ctx, l.Reference)
}

// LookupBooking loads the booking to edit from the retrieval endpoint
func (c *Controller) LookupBooking(ctx context.Context, ref string) error {
	l, err := c.BeginLookup(ref)
	if err != nil {
		return err
	}
	b, err := l.Run(ctx)
	return c.FinishLookup(l, b, err)
}

// BeginLookup validates and echoes ref and marks a request in flight
func (c *Controller) BeginLookup(ref string) (*Lookup, error) {
	ref, err := validation.Reference(ref)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state.InFlight {
		return nil, ErrBusy
	}

	c.state.Messages = append(c.state.Messages, models.UserMessage(ref))
	c.state.InFlight = true
	return &Lookup{Reference: ref, backend: c.backend}, nil
}

// FinishLookup stores the retrieved booking or reports that none was found
func (c *Controller) FinishLookup(l *Lookup, b models.Booking, err error) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.state.InFlight = false
	if err != nil {
		logger.Error("Booking lookup failed", "reference", l.Reference, "error", err)
		c.state.Messages = append(c.state.Messages, models.AgentMessage(constants.LookupFailureMessage))
		c.state.Mode = models.ModeOptions
		c.state.ShowOptions = true
		return err
	}

	c.state.BookingToEdit = &b
	c.state.Messages = append(c.state.Messages,
		models.AgentMessage(fmt.Sprintf(constants.BookingFoundText, b.VisitDate, b.VisitTime, b.PartySize)))
	return nil
}

// SubmitUpdate sends new details for the loaded booking
func (c *Controller) SubmitUpdate(ctx context.Context, date, t string, party int) error {
	ex, err := c.BeginUpdate(date, t, party)
	if err != nil {
		return err
	}
	return c.complete(ctx, ex)
}

// BeginUpdate validates the new details and starts the update command
func (c *Controller) BeginUpdate(date, t string, party int) (*Exchange, error) {
	date, err := validation.Date(date)
	if err != nil {
		return nil, err
	}
	if t, err = validation.Time(t); err != nil {
		return nil, err
	}
	if _, err := validation.PartySize(fmt.Sprint(party)); err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state.BookingToEdit == nil {
		return nil, ErrNoBooking
	}
	if c.state.InFlight {
		return nil, ErrBusy
	}

	ref := c.state.BookingToEdit.BookingReference
	c.state.Messages = append(c.state.Messages,
		models.UserMessage(fmt.Sprintf(constants.UpdateEcho, date, t, party)))
	ex, err := c.beginLocked(commands.Update(ref, date, t, party), true)
	if err != nil {
		return nil, err
	}
	c.state.BookingToEdit = nil
	return ex, nil
}

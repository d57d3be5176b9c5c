// Package controller owns the conversation state: the message log, the active
// mode, option-panel visibility, the chip offer, the pending booking draft and
// the booking being edited.
//
// Operations that reach the backend come in two forms. The blocking form
// (Submit, SubmitAvailability, ...) is convenient for the CLI and tests. The
// Begin/Run/Finish form lets the TUI run the network call inside a tea.Cmd while
// the state mutations stay on the update loop.
package controller

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/julianstephens/tablebot/internal/constants"
	"github.com/julianstephens/tablebot/internal/interpreter"
	"github.com/julianstephens/tablebot/internal/logger"
	"github.com/julianstephens/tablebot/internal/models"
)

const welcomeText = constants.WelcomeMessage

var (
	// ErrBusy is returned while a backend request is still outstanding
	ErrBusy = errors.New("a request is already in flight")
	// ErrEmptyInput is returned when blank text is submitted
	ErrEmptyInput = errors.New("empty input")
	// ErrNoPendingBooking is returned when customer details arrive without a draft
	ErrNoPendingBooking = errors.New("no pending booking")
	// ErrNoBooking is returned when update details arrive before a booking was loaded
	ErrNoBooking = errors.New("no booking loaded")
	// ErrNotSelectable is returned for modes that have no option button
	ErrNotSelectable = errors.New("mode is not selectable")
)

// Backend is the remote chat and booking service
type Backend interface {
	Chat(ctx context.Context, message string) (string, error)
	GetBooking(ctx context.Context, ref string) (models.Booking, error)
}

// Controller serializes every state transition of one conversation
type Controller struct {
	mu      sync.Mutex
	backend Backend
	state   State
}

// New creates a controller holding the welcome message in options mode
func New(backend Backend) *Controller {
	return &Controller{
		backend: backend,
		state:   initialState(),
	}
}

// State returns a deep copy of the current state
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.clone()
}

// Exchange is one outstanding chat request
type Exchange struct {
	Message string

	context string
	prior   *models.ChipOffer
	backend Backend
}

// Run performs the network call. It touches no controller state.
func (e *Exchange) Run(ctx context.Context) (string, error) {
	return e.backend.Chat(ctx, e.Message)
}

// Submit sends text to the chat backend and applies the reply
func (c *Controller) Submit(ctx context.Context, text string, suppressEcho bool) error {
	ex, err := c.BeginSubmit(text, suppressEcho)
	if err != nil {
		return err
	}
	return c.complete(ctx, ex)
}

// BeginSubmit validates and echoes text and marks a request in flight.
// Blank text is answered locally and returns ErrEmptyInput.
func (c *Controller) BeginSubmit(text string, suppressEcho bool) (*Exchange, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.beginLocked(text, suppressEcho)
}

func (c *Controller) beginLocked(text string, suppressEcho bool) (*Exchange, error) {
	if c.state.InFlight {
		return nil, ErrBusy
	}
	if strings.TrimSpace(text) == "" {
		c.state.Messages = append(c.state.Messages, models.AgentMessage(constants.EmptyInputMessage))
		c.state.Mode = models.ModeOptions
		c.state.ShowOptions = true
		return nil, ErrEmptyInput
	}

	ex := &Exchange{
		Message: text,
		context: c.state.recentContext(text, constants.RecentMessageWindow),
		prior:   c.state.ChipOffer.Clone(),
		backend: c.backend,
	}
	if !suppressEcho {
		c.state.Messages = append(c.state.Messages, models.UserMessage(text))
	}
	c.state.InFlight = true
	logger.Debug("Sending chat message", "mode", c.state.Mode, "message", text)
	return ex, nil
}

// FinishSubmit applies the outcome of an exchange. The returned error is the
// request failure, already reported to the user as a generic agent message.
func (c *Controller) FinishSubmit(ex *Exchange, reply string, err error) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.state.InFlight = false
	if err != nil {
		logger.Error("Chat request failed", "error", err)
		c.state.Messages = append(c.state.Messages, models.AgentMessage(constants.GenericFailureMessage))
		c.state.Mode = models.ModeOptions
		c.state.ShowOptions = true
		return err
	}

	c.state.Messages = append(c.state.Messages, models.AgentMessage(reply))
	offer := interpreter.BuildChipOffer(reply, ex.context, ex.prior)
	c.state.ChipOffer = offer
	c.state.ShowOptions = offer == nil
	if offer == nil {
		c.state.Mode = models.ModeOptions
	} else {
		logger.Debug("Chip offer built", "date", offer.Date, "party", offer.PartySize, "times", offer.Times)
	}
	return nil
}

func (c *Controller) complete(ctx context.Context, ex *Exchange) error {
	reply, err := ex.Run(ctx)
	return c.FinishSubmit(ex, reply, err)
}

// SelectOption starts a sub-flow from the option panel
func (c *Controller) SelectOption(mode models.Mode) error {
	if mode.Label() == "" {
		return fmt.Errorf("%w: %s", ErrNotSelectable, mode)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state.InFlight {
		return ErrBusy
	}

	c.state.Messages = append(c.state.Messages, models.UserMessage(mode.Label()))
	if prompt := mode.Prompt(); prompt != "" {
		c.state.Messages = append(c.state.Messages, models.AgentMessage(prompt))
	}
	if mode == models.ModeUpdate {
		c.state.BookingToEdit = nil
	}
	c.state.Mode = mode
	c.state.ShowOptions = false
	c.state.ChipOffer = nil
	return nil
}

// ShowOptionPanel reveals the option panel without changing mode
func (c *Controller) ShowOptionPanel() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.ShowOptions = true
}

// Abandon leaves the current sub-flow, dropping any draft or loaded booking
func (c *Controller) Abandon() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state.InFlight {
		return ErrBusy
	}
	c.state.Mode = models.ModeOptions
	c.state.ShowOptions = true
	c.state.Pending = nil
	c.state.BookingToEdit = nil
	return nil
}

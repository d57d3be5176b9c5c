package controller

import "github.com/julianstephens/tablebot/internal/models"

// State is a snapshot of the conversation
type State struct {
	Messages      []models.Message
	Mode          models.Mode
	ShowOptions   bool
	ChipOffer     *models.ChipOffer
	Pending       *models.PendingBooking
	BookingToEdit *models.Booking
	InFlight      bool
}

func initialState() State {
	return State{
		Messages:    []models.Message{models.AgentMessage(welcomeText)},
		Mode:        models.ModeOptions,
		ShowOptions: true,
	}
}

// clone returns a deep copy so callers can't mutate controller-owned data
func (s State) clone() State {
	out := s
	out.Messages = append([]models.Message(nil), s.Messages...)
	out.ChipOffer = s.ChipOffer.Clone()
	if s.Pending != nil {
		p := *s.Pending
		out.Pending = &p
	}
	if s.BookingToEdit != nil {
		b := *s.BookingToEdit
		out.BookingToEdit = &b
	}
	return out
}

// recentContext joins the outgoing text with the last few messages for party-size inference
func (s State) recentContext(text string, window int) string {
	start := len(s.Messages) - window
	if start < 0 {
		start = 0
	}
	ctx := text
	for _, m := range s.Messages[start:] {
		ctx += " " + m.Text
	}
	return ctx
}

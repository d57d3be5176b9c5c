package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/tablebot/internal/controller"
	"github.com/julianstephens/tablebot/internal/models"
)

// exchangeDoneMsg carries a finished chat request back to the update loop
type exchangeDoneMsg struct {
	exchange *controller.Exchange
	reply    string
	err      error
}

// lookupDoneMsg carries a finished booking retrieval back to the update loop
type lookupDoneMsg struct {
	lookup  *controller.Lookup
	booking models.Booking
	err     error
}

func runExchange(ctx context.Context, ex *controller.Exchange) tea.Cmd {
	return func() tea.Msg {
		reply, err := ex.Run(ctx)
		return exchangeDoneMsg{exchange: ex, reply: reply, err: err}
	}
}

func runLookup(ctx context.Context, l *controller.Lookup) tea.Cmd {
	return func() tea.Msg {
		b, err := l.Run(ctx)
		return lookupDoneMsg{lookup: l, booking: b, err: err}
	}
}

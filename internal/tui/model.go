package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/tablebot/internal/controller"
	"github.com/julianstephens/tablebot/internal/models"
	"github.com/julianstephens/tablebot/internal/tui/components/chips"
	"github.com/julianstephens/tablebot/internal/tui/components/transcript"
)

// focus is which part of the screen receives plain key presses
type focus int

const (
	focusInput focus = iota
	focusPanel
)

// reservedRows is the height kept free under the transcript for panels, input and help
const reservedRows = 16

type Model struct {
	ctx         context.Context
	ctrl        *controller.Controller
	snapshot    controller.State
	keys        KeyMap
	help        help.Model
	transcript  transcript.Model
	chips       chips.Model
	input       textinput.Model
	spinner     spinner.Model
	form        *huh.Form
	formKind    formKind
	bookingForm *BookingFormModel
	customer    *CustomerFormModel
	reference   *ReferenceFormModel
	focus       focus
	status      string
	quitting    bool
	width       int
	height      int
}

// NewModel builds the chat screen for ctrl; ctx bounds every backend call
func NewModel(ctx context.Context, ctrl *controller.Controller) Model {
	ti := textinput.New()
	ti.Placeholder = "Type a message and press enter"
	ti.CharLimit = 500
	ti.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = spinnerStyle

	m := Model{
		ctx:        ctx,
		ctrl:       ctrl,
		keys:       DefaultKeyMap(),
		help:       help.New(),
		transcript: transcript.New(0, 0),
		chips:      chips.New(),
		input:      ti,
		spinner:    sp,
	}
	m.refresh()
	return m
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) ShortHelp() []key.Binding {
	if m.form != nil {
		return []key.Binding{m.keys.Back, m.keys.Quit}
	}
	keys := []key.Binding{m.keys.Send, m.keys.Focus}
	if m.snapshot.ShowOptions {
		keys = append(keys, m.keys.Option)
	} else {
		keys = append(keys, m.keys.ShowOptions)
	}
	if m.chipsVisible() {
		ck := m.chips.Keys()
		keys = append(keys, ck.Prev, ck.Next)
	}
	return append(keys, m.keys.Help, m.keys.Quit)
}

func (m Model) FullHelp() [][]key.Binding {
	ck := m.chips.Keys()
	return [][]key.Binding{
		{m.keys.Send, m.keys.Focus, m.keys.Back, m.keys.Quit},
		{m.keys.Option, m.keys.ShowOptions, ck.Prev, ck.Next, ck.Choose},
		{m.keys.ScrollUp, m.keys.ScrollDown, m.keys.Help},
	}
}

// chipsVisible reports whether the time chips replace the sub-flow form
func (m Model) chipsVisible() bool {
	s := m.snapshot
	if s.InFlight || s.ChipOffer == nil || len(s.ChipOffer.Times) == 0 {
		return false
	}
	return s.Mode != models.ModeCreate && s.Mode != models.ModeCreateCustomer
}

// desiredForm picks the sub-flow form for the current state
func (m Model) desiredForm() formKind {
	s := m.snapshot
	if s.InFlight || m.chipsVisible() {
		return formNone
	}
	switch s.Mode {
	case models.ModeAvailability:
		return formAvailability
	case models.ModeCreate:
		return formCreate
	case models.ModeCreateCustomer:
		if s.Pending != nil {
			return formCustomer
		}
	case models.ModeGet:
		return formGet
	case models.ModeUpdate:
		if s.BookingToEdit == nil {
			return formLookup
		}
		return formUpdate
	case models.ModeCancel:
		return formCancel
	}
	return formNone
}

// refresh pulls a new snapshot from the controller and rebuilds what depends on it
func (m *Model) refresh() tea.Cmd {
	hadChips := m.chipsVisible()
	m.snapshot = m.ctrl.State()
	m.transcript.SetMessages(m.snapshot.Messages)

	if m.chipsVisible() {
		m.chips.SetOffer(m.snapshot.ChipOffer)
		if !hadChips {
			m.setFocus(focusPanel)
		}
	} else {
		m.chips.SetOffer(nil)
	}

	want := m.desiredForm()
	if want == m.formKind {
		return nil
	}
	m.formKind = want
	m.form = m.buildForm(want)
	if m.form == nil {
		return nil
	}
	return m.form.Init()
}

func (m *Model) buildForm(kind formKind) *huh.Form {
	switch kind {
	case formAvailability:
		m.bookingForm = defaultBookingForm()
		return NewAvailabilityForm(m.bookingForm)
	case formCreate:
		m.bookingForm = defaultBookingForm()
		return NewBookingForm(m.bookingForm)
	case formUpdate:
		m.bookingForm = bookingFormFrom(m.snapshot.BookingToEdit)
		return NewBookingForm(m.bookingForm)
	case formCustomer:
		m.customer = &CustomerFormModel{}
		return NewCustomerForm(m.customer)
	case formGet:
		m.reference = &ReferenceFormModel{}
		return NewReferenceForm(m.reference, "Enter your booking reference")
	case formLookup:
		m.reference = &ReferenceFormModel{}
		return NewReferenceForm(m.reference, "Booking reference to edit")
	case formCancel:
		m.reference = &ReferenceFormModel{}
		return NewReferenceForm(m.reference, "Booking reference to cancel")
	}
	return nil
}

func (m *Model) setFocus(f focus) {
	m.focus = f
	if f == focusInput {
		m.input.Focus()
	} else {
		m.input.Blur()
	}
}

func (m *Model) setSize(width, height int) {
	m.width = width
	m.height = height
	m.help.Width = width
	m.input.Width = width - 6
	m.chips.SetWidth(width - 4)

	rows := height - reservedRows
	if rows < 3 {
		rows = 3
	}
	m.transcript.SetSize(width-2, rows)
}

package tui

import (
	"errors"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/tablebot/internal/controller"
	apperrors "github.com/julianstephens/tablebot/internal/errors"
	"github.com/julianstephens/tablebot/internal/models"
	"github.com/julianstephens/tablebot/internal/tui/components/chips"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.setSize(msg.Width, msg.Height)
		return m, nil

	case exchangeDoneMsg:
		err := m.ctrl.FinishSubmit(msg.exchange, msg.reply, msg.err)
		m.status = apperrors.Hint(err)
		return m, m.refresh()

	case lookupDoneMsg:
		err := m.ctrl.FinishLookup(msg.lookup, msg.booking, msg.err)
		m.status = apperrors.Hint(err)
		return m, m.refresh()

	case chips.SelectTimeMsg:
		m.ctrl.SelectTime(msg.Time)
		m.setFocus(focusInput)
		return m, m.refresh()

	case spinner.TickMsg:
		if !m.snapshot.InFlight {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) {
			m.quitting = true
			return m, tea.Quit
		}
		if m.form == nil {
			return m.handleKey(msg)
		}
		if key.Matches(msg, m.keys.Back) {
			return m.abandon()
		}
	}

	if m.form != nil {
		return m.updateForm(msg)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Focus):
		if m.focus == focusInput {
			m.setFocus(focusPanel)
		} else {
			m.setFocus(focusInput)
		}
		return m, nil
	case key.Matches(msg, m.keys.ShowOptions):
		m.ctrl.ShowOptionPanel()
		return m, m.refresh()
	case key.Matches(msg, m.keys.Back):
		if m.snapshot.Mode != models.ModeOptions {
			return m.abandon()
		}
		m.setFocus(focusInput)
		return m, nil
	case key.Matches(msg, m.keys.ScrollUp), key.Matches(msg, m.keys.ScrollDown):
		var cmd tea.Cmd
		m.transcript, cmd = m.transcript.Update(msg)
		return m, cmd
	}

	if m.focus == focusInput {
		if key.Matches(msg, m.keys.Send) {
			return m.sendInput()
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	case key.Matches(msg, m.keys.Option) && m.snapshot.ShowOptions:
		return m.selectOption(msg.String())
	}

	if m.chipsVisible() {
		var cmd tea.Cmd
		m.chips, cmd = m.chips.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) selectOption(digit string) (tea.Model, tea.Cmd) {
	idx := int(digit[0]-'1')
	if idx < 0 || idx >= len(models.OptionModes) {
		return m, nil
	}
	if err := m.ctrl.SelectOption(models.OptionModes[idx]); err != nil {
		m.status = err.Error()
		return m, nil
	}
	m.status = ""
	m.setFocus(focusInput)
	return m, m.refresh()
}

func (m Model) sendInput() (tea.Model, tea.Cmd) {
	text := m.input.Value()
	ex, err := m.ctrl.BeginSubmit(text, false)
	if errors.Is(err, controller.ErrBusy) {
		m.status = "Still waiting for the last reply…"
		return m, nil
	}
	m.input.SetValue("")
	if err != nil {
		// blank input is answered in the thread
		m.status = ""
		return m, m.refresh()
	}
	return m.startExchange(ex, nil)
}

func (m Model) startExchange(ex *controller.Exchange, err error) (tea.Model, tea.Cmd) {
	if err != nil {
		m.status = err.Error()
		return m, m.refresh()
	}
	m.status = ""
	cmd := m.refresh()
	return m, tea.Batch(cmd, runExchange(m.ctx, ex), m.spinner.Tick)
}

func (m Model) abandon() (tea.Model, tea.Cmd) {
	if err := m.ctrl.Abandon(); err != nil {
		m.status = err.Error()
		return m, nil
	}
	m.form = nil
	m.formKind = formNone
	m.status = ""
	m.setFocus(focusInput)
	return m, m.refresh()
}

func (m Model) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}
	cmds = append(cmds, cmd)

	switch m.form.State {
	case huh.StateCompleted:
		kind := m.formKind
		m.form = nil
		m.formKind = formNone
		next, cmd := m.submitForm(kind)
		return next, tea.Batch(append(cmds, cmd)...)
	case huh.StateAborted:
		return m.abandon()
	}
	return m, tea.Batch(cmds...)
}

// submitForm hands the completed form to the controller
func (m Model) submitForm(kind formKind) (tea.Model, tea.Cmd) {
	switch kind {
	case formAvailability:
		return m.startExchange(m.ctrl.BeginAvailability(m.bookingForm.Date, m.bookingForm.party()))
	case formCreate:
		if err := m.ctrl.SubmitCreate(m.bookingForm.Date, m.bookingForm.Time, m.bookingForm.party()); err != nil {
			m.status = err.Error()
		}
		return m, m.refresh()
	case formCustomer:
		return m.startExchange(m.ctrl.BeginCustomer(m.customer.FirstName, m.customer.Surname))
	case formGet:
		return m.startExchange(m.ctrl.BeginReference(m.reference.Reference))
	case formCancel:
		return m.startExchange(m.ctrl.BeginCancel(m.reference.Reference))
	case formUpdate:
		return m.startExchange(m.ctrl.BeginUpdate(m.bookingForm.Date, m.bookingForm.Time, m.bookingForm.party()))
	case formLookup:
		l, err := m.ctrl.BeginLookup(m.reference.Reference)
		if err != nil {
			m.status = err.Error()
			return m, m.refresh()
		}
		m.status = ""
		cmd := m.refresh()
		return m, tea.Batch(cmd, runLookup(m.ctx, l), m.spinner.Tick)
	}
	return m, m.refresh()
}

package chips

import (
	"fmt"
	"slices"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/tablebot/internal/interpreter"
	"github.com/julianstephens/tablebot/internal/models"
)

// SelectTimeMsg is sent when the user picks a chip
type SelectTimeMsg struct {
	Time string
}

var (
	chipStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)

	selectedChipStyle = chipStyle.
				Foreground(lipgloss.Color("205")).
				BorderForeground(lipgloss.Color("205")).
				Bold(true)

	captionStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true)
)

type KeyMap struct {
	Prev   key.Binding
	Next   key.Binding
	Choose key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Prev: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "prev time"),
		),
		Next: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "next time"),
		),
		Choose: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "take time"),
		),
	}
}

// Model renders a chip offer as a row of selectable times
type Model struct {
	offer  *models.ChipOffer
	cursor int
	keys   KeyMap
	width  int
}

func New() Model {
	return Model{keys: DefaultKeyMap()}
}

func (m Model) Keys() KeyMap {
	return m.keys
}

// SetOffer replaces the offer, keeping the cursor when the same times are shown
func (m *Model) SetOffer(offer *models.ChipOffer) {
	if offer == nil || m.offer == nil || !slices.Equal(offer.Times, m.offer.Times) {
		m.cursor = 0
	}
	m.offer = offer
}

func (m *Model) SetWidth(width int) {
	m.width = width
}

// Empty reports whether there is nothing to pick
func (m Model) Empty() bool {
	return m.offer == nil || len(m.offer.Times) == 0
}

// Selected returns the time under the cursor
func (m Model) Selected() (string, bool) {
	if m.Empty() {
		return "", false
	}
	return m.offer.Times[m.cursor], true
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if m.Empty() {
		return m, nil
	}
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, m.keys.Prev):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(keyMsg, m.keys.Next):
		if m.cursor < len(m.offer.Times)-1 {
			m.cursor++
		}
	case key.Matches(keyMsg, m.keys.Choose):
		t := m.offer.Times[m.cursor]
		return m, func() tea.Msg { return SelectTimeMsg{Time: t} }
	}
	return m, nil
}

func (m Model) View() string {
	if m.Empty() {
		return ""
	}

	var row []string
	var rows []string
	lineWidth := 0
	for i, t := range m.offer.Times {
		style := chipStyle
		if i == m.cursor {
			style = selectedChipStyle
		}
		chip := style.Render(interpreter.HumanTime(t))
		w := lipgloss.Width(chip)
		if m.width > 0 && lineWidth+w > m.width && len(row) > 0 {
			rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
			row, lineWidth = nil, 0
		}
		row = append(row, chip)
		lineWidth += w
	}
	rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))

	caption := captionStyle.Render(fmt.Sprintf("%s · party of %d", interpreter.PrettyDate(m.offer.Date), m.offer.PartySize))
	return lipgloss.JoinVertical(lipgloss.Left, append([]string{caption}, rows...)...)
}

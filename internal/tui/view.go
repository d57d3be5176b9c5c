package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/tablebot/internal/models"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	sections := []string{
		titleStyle.Render("The Hungry Unicorn"),
		m.transcript.View(),
	}
	if panel := m.viewPanel(); panel != "" {
		sections = append(sections, panel)
	}
	sections = append(sections,
		m.viewOptions(),
		m.viewInput(),
	)
	if m.status != "" {
		sections = append(sections, warningStyle.Render(m.status))
	}
	sections = append(sections, m.help.View(m))

	return docStyle.Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

func (m Model) viewPanel() string {
	switch {
	case m.snapshot.InFlight:
		return m.spinner.View() + mutedStyle.Render(" Waiting for a reply…")
	case m.form != nil:
		return focusedPanelStyle.Render(m.form.View())
	case m.chipsVisible():
		style := blurredPanelStyle
		if m.focus == focusPanel {
			style = focusedPanelStyle
		}
		return style.Render(m.chips.View())
	}
	return ""
}

func (m Model) viewOptions() string {
	if !m.snapshot.ShowOptions {
		return mutedStyle.Render("ctrl+o: Show Options")
	}
	buttons := make([]string, 0, len(models.OptionModes))
	for i, mode := range models.OptionModes {
		buttons = append(buttons, optionStyle.Render(
			optionKeyStyle.Render(fmt.Sprintf("[%d]", i+1))+" "+mode.Label()))
	}
	row := lipgloss.JoinHorizontal(lipgloss.Top, buttons...)
	if m.focus == focusPanel && m.form == nil {
		return focusedPanelStyle.Render(row)
	}
	return blurredPanelStyle.Render(row)
}

func (m Model) viewInput() string {
	if m.form != nil {
		return mutedStyle.Render(strings.Repeat("─", max(m.width-4, 0)))
	}
	return m.input.View()
}

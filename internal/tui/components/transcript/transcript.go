package transcript

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/tablebot/internal/models"
)

var (
	agentStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Background(lipgloss.Color("237")).
			Padding(0, 1)

	userStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("230")).
			Background(lipgloss.Color("62")).
			Padding(0, 1)

	senderStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true)
)

// Model is the scrollable conversation thread
type Model struct {
	viewport viewport.Model
	messages []models.Message
	width    int
	height   int
}

func New(width, height int) Model {
	return Model{viewport: viewport.New(width, height)}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	return m.viewport.View()
}

func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.viewport.Width = width
	m.viewport.Height = height
	m.Render()
}

// SetMessages replaces the thread and scrolls to the newest message when it grew
func (m *Model) SetMessages(messages []models.Message) {
	grew := len(messages) != len(m.messages)
	m.messages = messages
	m.Render()
	if grew {
		m.viewport.GotoBottom()
	}
}

func (m *Model) Render() {
	if m.width <= 0 {
		return
	}
	bubbleWidth := m.width * 3 / 4
	if bubbleWidth < 20 {
		bubbleWidth = m.width
	}

	var b strings.Builder
	for i, msg := range m.messages {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(renderMessage(msg, m.width, bubbleWidth))
		b.WriteString("\n")
	}
	m.viewport.SetContent(b.String())
}

func renderMessage(msg models.Message, width, bubbleWidth int) string {
	if msg.From == models.SenderUser {
		bubble := userStyle.Width(min(bubbleWidth, lipgloss.Width(msg.Text)+2)).Render(msg.Text)
		return lipgloss.PlaceHorizontal(width, lipgloss.Right,
			lipgloss.JoinVertical(lipgloss.Right, senderStyle.Render("you"), bubble))
	}
	bubble := agentStyle.Width(min(bubbleWidth, lipgloss.Width(msg.Text)+2)).Render(msg.Text)
	return lipgloss.JoinVertical(lipgloss.Left, senderStyle.Render("unicorn"), bubble)
}

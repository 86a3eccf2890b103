package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"clinicalqa/internal/domain"
)

// AssistantPort is the TUI-facing subset of the assistant service.
type AssistantPort interface {
	Ask(question string) (string, error)
	Summarize() (string, error)
	Translate(text string) (string, error)
	Sentiment(text string) domain.SentimentBreakdown
	History() []domain.Turn
	Reset()
}

// Model is the Bubble Tea model for the chat application.
type Model struct {
	assistant  AssistantPort
	input      textinput.Model
	viewport   viewport.Model
	transcript []string
	status     string
	lastAnswer string
	ready      bool
}

// New creates a new TUI model instance.
func New(assistant AssistantPort, banner string) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "Ask about the clinical data, or /summary /translate /sentiment /clear"
	ti.Focus()
	ti.CharLimit = 0
	vp := viewport.New(0, 0)
	m := Model{
		assistant: assistant,
		input:     ti,
		viewport:  vp,
		status:    "Document loaded. Ask a question.",
	}
	if banner != "" {
		m.transcript = append(m.transcript, infoStyle.Render(banner))
	}
	return m
}

// Init initializes the model (text input cursor blink).
func (m Model) Init() tea.Cmd { return textinput.Blink }

// Update handles key and window events and updates the view state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ready = true
		_, th := transcriptBoxStyle.GetFrameSize()
		_, ih := inputBoxStyle.GetFrameSize()
		reserved := 1 + 1 + ih + 1 // header, status, input frame, spacer
		vh := msg.Height - reserved
		if vh < 3 {
			vh = 3
		}
		m.viewport.Width = max(20, msg.Width)
		m.viewport.Height = max(3, vh-th)
		m.refresh()
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || msg.Type == tea.KeyCtrlD {
			return m, tea.Quit
		}
		switch msg.String() {
		case "enter":
			line := strings.TrimSpace(m.input.Value())
			if line != "" {
				m.input.SetValue("")
				m = m.handle(line)
				m.refresh()
				return m, nil
			}
		case "up":
			m.viewport.LineUp(1)
			return m, nil
		case "down":
			m.viewport.LineDown(1)
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// handle dispatches one input line: a slash command or a question.
func (m Model) handle(line string) Model {
	cmd, rest, _ := strings.Cut(line, " ")
	switch cmd {
	case "/clear":
		m.assistant.Reset()
		m.transcript = nil
		m.lastAnswer = ""
		m.status = "Conversation cleared."
	case "/summary":
		summary, err := m.assistant.Summarize()
		if err != nil {
			m.status = "Summary degraded: " + err.Error()
		} else {
			m.status = "Summary of the loaded document."
		}
		m.appendExchange("summary", summary)
		m.lastAnswer = summary
	case "/translate":
		text := strings.TrimSpace(rest)
		if text == "" {
			text = m.lastAnswer
		}
		if text == "" {
			m.status = "Nothing to translate yet."
			return m
		}
		out, err := m.assistant.Translate(text)
		if err != nil {
			m.status = "Translation degraded: " + err.Error()
		} else {
			m.status = "Translated."
		}
		m.appendExchange("translation", out)
	case "/sentiment":
		text := strings.TrimSpace(rest)
		if text == "" {
			text = m.lastAnswer
		}
		if text == "" {
			m.status = "Nothing to analyze yet."
			return m
		}
		b := m.assistant.Sentiment(text)
		m.appendExchange("sentiment", fmt.Sprintf("%s (positive %d, negative %d, neutral %d)",
			b.Label, b.Positive, b.Negative, b.Neutral))
		m.status = "Sentiment breakdown."
	default:
		answer, err := m.assistant.Ask(line)
		if err != nil {
			m.status = "Error: " + err.Error()
			return m
		}
		m.transcript = append(m.transcript, userStyle.Render("you: ")+line)
		m.transcript = append(m.transcript, assistantStyle.Render("assistant: ")+answer)
		m.lastAnswer = answer
		m.status = fmt.Sprintf("%d turns in this session.", len(m.assistant.History()))
	}
	return m
}

func (m *Model) appendExchange(kind, body string) {
	m.transcript = append(m.transcript, infoStyle.Render(kind+": ")+body)
}

func (m *Model) refresh() {
	m.viewport.SetContent(strings.Join(m.transcript, "\n"))
	m.viewport.GotoBottom()
}

// View renders the TUI layout.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	header := lipgloss.NewStyle().Bold(true).Render("Clinical Data Q&A")
	transcript := transcriptBoxStyle.Render(m.viewport.View())
	input := inputBoxStyle.Render(m.input.View())
	status := statusStyle.Render(m.status)
	return header + "\n" + transcript + "\n" + input + "\n" + status
}

var (
	transcriptBoxStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	inputBoxStyle      = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	userStyle          = lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true)
	assistantStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
	infoStyle          = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	statusStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
)

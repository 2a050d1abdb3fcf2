// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package ui

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/pdiddy/proofquiz/internal/quiz"
)

type quizKeys struct {
	Up     key.Binding
	Down   key.Binding
	Open   key.Binding
	Play   key.Binding
	First  key.Binding
	Second key.Binding
	Back   key.Binding
	Next   key.Binding
	Home   key.Binding
	Quit   key.Binding
}

func defaultQuizKeys() quizKeys {
	return quizKeys{
		Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Open:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),
		Play:   key.NewBinding(key.WithKeys("enter", " ", "p"), key.WithHelp("enter/p", "play")),
		First:  key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "first option")),
		Second: key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "second option")),
		Back:   key.NewBinding(key.WithKeys("b", "left"), key.WithHelp("←/b", "back")),
		Next:   key.NewBinding(key.WithKeys("n", "right"), key.WithHelp("→/n", "next")),
		Home:   key.NewBinding(key.WithKeys("h", "esc"), key.WithHelp("h", "home")),
		Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// QuizOptions configures the live quiz.
type QuizOptions struct {
	NoColor bool
	// Notices feeds the status line, typically speech errors and the
	// sentences of the text engine.
	Notices <-chan string
}

// QuizModel is the live quiz UI.
type QuizModel struct {
	session *quiz.Session
	cursor  int
	status  string
	notices <-chan string
	keys    quizKeys
	help    help.Model
	noColor bool
}

// NewQuizModel constructs a live quiz model around a session.
func NewQuizModel(s *quiz.Session, opts QuizOptions) QuizModel {
	return QuizModel{
		session: s,
		notices: opts.Notices,
		keys:    defaultQuizKeys(),
		help:    help.New(),
		noColor: opts.NoColor,
	}
}

// Init waits for the first notice.
func (m QuizModel) Init() tea.Cmd {
	return waitForNotice(m.notices)
}

// Update handles key presses and notices.
func (m QuizModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.WindowSizeMsg:
		m.help.Width = typed.Width
		return m, nil
	case noticeMsg:
		m.status = string(typed)
		return m, waitForNotice(m.notices)
	case tea.KeyMsg:
		if key.Matches(typed, m.keys.Quit) {
			return m, tea.Quit
		}
		if m.session.View().Kind == quiz.ViewSet {
			return m.updateSet(typed), nil
		}
		return m.updateHome(typed), nil
	}
	return m, nil
}

func (m QuizModel) updateHome(msg tea.KeyMsg) QuizModel {
	n := len(m.session.Sets())
	switch {
	case key.Matches(msg, m.keys.Up):
		m.cursor = max(m.cursor-1, 0)
	case key.Matches(msg, m.keys.Down):
		m.cursor = min(m.cursor+1, n-1)
	case key.Matches(msg, m.keys.Open):
		m = m.navigate(m.session.Open(m.cursor), 0)
	}
	return m
}

func (m QuizModel) updateSet(msg tea.KeyMsg) QuizModel {
	set := m.session.View().Set
	n := m.session.Sets()[set].Len()
	switch {
	case key.Matches(msg, m.keys.Up):
		m.cursor = max(m.cursor-1, 0)
	case key.Matches(msg, m.keys.Down):
		m.cursor = min(m.cursor+1, n-1)
	case key.Matches(msg, m.keys.Play):
		m.status = ""
		if err := m.session.PlaySentence(m.cursor); err != nil {
			m.status = playError(err)
		}
	case key.Matches(msg, m.keys.First):
		m = m.selectPosition(0)
	case key.Matches(msg, m.keys.Second):
		m = m.selectPosition(1)
	case key.Matches(msg, m.keys.Back):
		m = m.navigate(m.session.Back(), 0)
	case key.Matches(msg, m.keys.Next):
		m = m.navigate(m.session.Next(), 0)
	case key.Matches(msg, m.keys.Home):
		m = m.navigate(m.session.Home(), set)
	}
	return m
}

func (m QuizModel) selectPosition(pos int) QuizModel {
	sel, err := m.session.SelectPosition(m.cursor, pos)
	switch {
	case err != nil:
		m.status = err.Error()
	case !sel.Recorded:
		m.status = fmt.Sprintf("Question %d is already answered", m.cursor+1)
	default:
		m.status = sel.Feedback.String()
	}
	return m
}

func (m QuizModel) navigate(err error, cursor int) QuizModel {
	if err != nil {
		m.status = err.Error()
		return m
	}
	m.cursor = cursor
	m.status = ""
	return m
}

func playError(err error) string {
	if errors.Is(err, quiz.ErrNoPlayer) {
		return "audio is disabled"
	}
	return "speech: " + err.Error()
}

// View renders the quiz.
func (m QuizModel) View() string {
	body := renderQuiz(m.session.Screen(), m.cursor, m.noColor)
	status := stylize(m.status, m.noColor, colorAlert)
	return lipgloss.JoinVertical(lipgloss.Left, body, status, m.help.ShortHelpView(m.shortHelp()))
}

func (m QuizModel) shortHelp() []key.Binding {
	if m.session.View().Kind == quiz.ViewSet {
		return []key.Binding{m.keys.Up, m.keys.Down, m.keys.Play, m.keys.First, m.keys.Second, m.keys.Back, m.keys.Next, m.keys.Home, m.keys.Quit}
	}
	return []key.Binding{m.keys.Up, m.keys.Down, m.keys.Open, m.keys.Quit}
}

// RunQuiz runs the live quiz until the user quits.
func RunQuiz(s *quiz.Session, opts QuizOptions, teaOpts ...tea.ProgramOption) error {
	_, err := tea.NewProgram(NewQuizModel(s, opts), append([]tea.ProgramOption{tea.WithAltScreen()}, teaOpts...)...).Run()
	return err
}

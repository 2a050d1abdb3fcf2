// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package ui

import (
	"context"
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/pdiddy/proofquiz/internal/review"
	"github.com/pdiddy/proofquiz/pkg/types"
)

const reviewTitle = "PDF to LaTeX Review"

// ReviewBackend uploads, checks and downloads documents.
type ReviewBackend interface {
	review.Backend
	review.Downloader
}

type reviewKeys struct {
	Upload  key.Binding
	Check   key.Binding
	Yes     key.Binding
	No      key.Binding
	Focus   key.Binding
	Reset   key.Binding
	Dismiss key.Binding
	Quit    key.Binding
}

func defaultReviewKeys() reviewKeys {
	return reviewKeys{
		Upload:  key.NewBinding(key.WithKeys("enter", "u"), key.WithHelp("enter/u", "upload")),
		Check:   key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "check")),
		Yes:     key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "download")),
		No:      key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "skip download")),
		Focus:   key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "edit path")),
		Reset:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reset")),
		Dismiss: key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "dismiss")),
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ReviewOptions configures the live review flow.
type ReviewOptions struct {
	NoColor bool
	// Path prefills the file input.
	Path string
	// DownloadDir receives accepted downloads.
	DownloadDir string
}

// uploadDoneMsg carries the outcome of an upload.
type uploadDoneMsg struct {
	ticket review.Ticket
	id     string
	err    error
}

// checkDoneMsg carries the outcome of a check.
type checkDoneMsg struct {
	ticket review.Ticket
	issues []types.Issue
	err    error
}

// downloadDoneMsg carries the outcome of a download.
type downloadDoneMsg struct {
	path string
	err  error
}

// ReviewModel is the live review UI.
type ReviewModel struct {
	ctx         context.Context
	backend     ReviewBackend
	controller  *review.Controller
	input       textinput.Model
	spinner     spinner.Model
	keys        reviewKeys
	help        help.Model
	downloadDir string
	notice      string
	noColor     bool
}

// NewReviewModel constructs a review model. Requests derive from ctx.
func NewReviewModel(ctx context.Context, backend ReviewBackend, opts ReviewOptions) ReviewModel {
	input := textinput.New()
	input.Placeholder = "path/to/paper.pdf"
	input.Prompt = "PDF: "
	input.SetValue(opts.Path)
	input.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return ReviewModel{
		ctx:         ctx,
		backend:     backend,
		controller:  review.NewController(ctx, backend),
		input:       input,
		spinner:     sp,
		keys:        defaultReviewKeys(),
		help:        help.New(),
		downloadDir: opts.DownloadDir,
		noColor:     opts.NoColor,
	}
}

// Controller exposes the review state machine.
func (m ReviewModel) Controller() *review.Controller { return m.controller }

// Init starts the cursor blinking.
func (m ReviewModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles keys, spinner ticks and request completions.
func (m ReviewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.WindowSizeMsg:
		m.help.Width = typed.Width
		return m, nil
	case spinner.TickMsg:
		st := m.controller.State()
		if !st.Uploading && !st.Checking {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(typed)
		return m, cmd
	case uploadDoneMsg:
		if err := m.controller.FinishUpload(typed.ticket, typed.id, typed.err); err == nil {
			m.input.Blur()
		}
		return m, nil
	case checkDoneMsg:
		_ = m.controller.FinishCheck(typed.ticket, typed.issues, typed.err)
		return m, nil
	case downloadDoneMsg:
		if typed.err != nil {
			m.notice = "Download failed: " + typed.err.Error()
		} else {
			m.notice = "Saved " + typed.path
		}
		return m, nil
	case tea.KeyMsg:
		return m.updateKey(typed)
	}
	return m, nil
}

func (m ReviewModel) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}
	if m.input.Focused() {
		switch msg.Type {
		case tea.KeyEnter:
			return m.startUpload()
		case tea.KeyTab, tea.KeyEsc:
			m.input.Blur()
			return m, nil
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	st := m.controller.State()
	switch {
	case st.PromptVisible && key.Matches(msg, m.keys.Yes):
		return m.answerDownload(true)
	case st.PromptVisible && key.Matches(msg, m.keys.No):
		return m.answerDownload(false)
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Upload):
		return m.startUpload()
	case key.Matches(msg, m.keys.Check):
		return m.startCheck()
	case key.Matches(msg, m.keys.Focus):
		cmd := m.input.Focus()
		return m, cmd
	case key.Matches(msg, m.keys.Reset):
		m.controller.Reset()
		m.notice = ""
		cmd := m.input.Focus()
		return m, cmd
	case key.Matches(msg, m.keys.Dismiss):
		m.controller.DismissAlert()
		m.notice = ""
	}
	return m, nil
}

func (m ReviewModel) startUpload() (tea.Model, tea.Cmd) {
	ticket, err := m.controller.BeginUpload(strings.TrimSpace(m.input.Value()))
	if err != nil {
		return m, nil
	}
	m.notice = ""
	backend := m.backend
	upload := func() tea.Msg {
		id, err := backend.Upload(ticket.Context(), ticket.Path)
		return uploadDoneMsg{ticket: ticket, id: id, err: err}
	}
	return m, tea.Batch(upload, m.spinner.Tick)
}

func (m ReviewModel) startCheck() (tea.Model, tea.Cmd) {
	ticket, err := m.controller.BeginCheck()
	if err != nil {
		return m, nil
	}
	backend := m.backend
	check := func() tea.Msg {
		issues, err := backend.Check(ticket.Context(), ticket.DocumentID)
		return checkDoneMsg{ticket: ticket, issues: issues, err: err}
	}
	return m, tea.Batch(check, m.spinner.Tick)
}

func (m ReviewModel) answerDownload(accept bool) (tea.Model, tea.Cmd) {
	id := m.controller.State().DocumentID
	url, ok := m.controller.ConfirmDownload(accept)
	if !ok {
		return m, nil
	}
	m.notice = "Downloading " + url
	backend, ctx, dir := m.backend, m.ctx, m.downloadDir
	return m, func() tea.Msg {
		path, err := backend.Download(ctx, id, dir)
		return downloadDoneMsg{path: path, err: err}
	}
}

// View renders the review flow.
func (m ReviewModel) View() string {
	st := m.controller.State()
	lines := []string{
		stylize(bold(reviewTitle, m.noColor), m.noColor, colorTitle),
		"",
		m.input.View(),
		m.buttonLine(st.UploadLabel(), st.Uploading),
	}
	if st.PromptVisible {
		lines = append(lines, stylize(review.MsgDownloadPrompt+" (y/n)", m.noColor, colorCursor))
	}
	if st.DocumentID != "" {
		lines = append(lines, "", "Document: "+st.DocumentID)
	}
	lines = append(lines, m.buttonLine(st.CheckLabel(), st.Checking))
	if results := review.ResultLines(st.Results); len(results) > 0 {
		lines = append(lines, "")
		for _, r := range results {
			lines = append(lines, renderResultLine(r, m.noColor))
		}
	}
	lines = append(lines, "")
	if st.Alert != "" {
		lines = append(lines, stylize(st.Alert, m.noColor, colorAlert))
	}
	if m.notice != "" {
		lines = append(lines, stylize(m.notice, m.noColor, colorMuted))
	}
	lines = append(lines, m.help.ShortHelpView(m.shortHelp(st)))
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (m ReviewModel) buttonLine(label string, busy bool) string {
	if busy {
		return m.spinner.View() + " " + stylize(label, m.noColor, colorMuted)
	}
	return "[" + label + "]"
}

func (m ReviewModel) shortHelp(st review.State) []key.Binding {
	if m.input.Focused() {
		return []key.Binding{m.keys.Upload, m.keys.Focus}
	}
	if st.PromptVisible {
		return []key.Binding{m.keys.Yes, m.keys.No, m.keys.Check, m.keys.Quit}
	}
	return []key.Binding{m.keys.Upload, m.keys.Check, m.keys.Focus, m.keys.Reset, m.keys.Dismiss, m.keys.Quit}
}

func renderResultLine(line string, noColor bool) string {
	switch {
	case strings.HasPrefix(line, "Line "):
		return bold(line, noColor)
	case strings.HasPrefix(line, "Mistake: "):
		return stylize(line, noColor, colorWrong)
	case strings.HasPrefix(line, "Suggestion: "):
		return stylize(line, noColor, colorCorrect)
	case line == review.MsgCheckFailed:
		return stylize(line, noColor, colorAlert)
	}
	return line
}

// RunReview runs the live review flow until the user quits.
func RunReview(ctx context.Context, backend ReviewBackend, opts ReviewOptions, teaOpts ...tea.ProgramOption) error {
	_, err := tea.NewProgram(NewReviewModel(ctx, backend, opts), append([]tea.ProgramOption{tea.WithContext(ctx)}, teaOpts...)...).Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return ctx.Err()
	}
	return err
}

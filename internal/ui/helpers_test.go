// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package ui

import (
	"fmt"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/proofquiz/internal/bank"
	"github.com/pdiddy/proofquiz/internal/quiz"
	"github.com/pdiddy/proofquiz/pkg/types"
)

// recordingPlayer remembers every sentence it was asked to speak.
type recordingPlayer struct {
	played []string
	err    error
}

func (p *recordingPlayer) Play(text string) error {
	p.played = append(p.played, text)
	return p.err
}

// newTestSession builds n questions whose correct option is always the first.
func newTestSession(t *testing.T, n int, player quiz.Player) *quiz.Session {
	t.Helper()
	qs := make([]types.Question, n)
	for i := range qs {
		qs[i] = types.Question{
			Sentence:     fmt.Sprintf("Sentence %d.", i+1),
			Options:      [types.OptionCount]string{fmt.Sprintf("right%d", i+1), fmt.Sprintf("wrong%d", i+1)},
			CorrectIndex: 0,
		}
	}
	s, err := quiz.NewSession(bank.Partition(qs, bank.DefaultSetSize), quiz.Options{
		Player: player,
		Flip:   func() bool { return false },
	})
	require.NoError(t, err)
	return s
}

var namedKeys = map[string]tea.KeyType{
	"enter":  tea.KeyEnter,
	"up":     tea.KeyUp,
	"down":   tea.KeyDown,
	"left":   tea.KeyLeft,
	"right":  tea.KeyRight,
	"esc":    tea.KeyEsc,
	"tab":    tea.KeyTab,
	"ctrl+c": tea.KeyCtrlC,
}

func keyMsg(k string) tea.KeyMsg {
	if kt, ok := namedKeys[k]; ok {
		return tea.KeyMsg{Type: kt}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

// press feeds keys to m and returns the final model and the last command.
func press(m tea.Model, keys ...string) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	for _, k := range keys {
		m, cmd = m.Update(keyMsg(k))
	}
	return m, cmd
}

func isQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}

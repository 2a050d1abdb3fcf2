// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package ui

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/proofquiz/internal/quiz"
)

func TestQuizModel_HomeView(t *testing.T) {
	s := newTestSession(t, 25, nil)
	m := NewQuizModel(s, QuizOptions{NoColor: true})

	view := m.View()
	assert.Contains(t, view, quiz.AppTitle)
	assert.Contains(t, view, "> Set 1 (10 questions)")
	assert.Contains(t, view, "  Set 3 (5 questions)")
}

func TestQuizModel_OpenAndAnswer(t *testing.T) {
	s := newTestSession(t, 25, nil)
	var m = NewQuizModel(s, QuizOptions{NoColor: true})

	next, _ := press(m, "down", "enter")
	m = next.(QuizModel)
	require.Equal(t, quiz.SetView(1), s.View())
	assert.Contains(t, m.View(), "Quiz Set 2")

	next, _ = press(m, "1")
	m = next.(QuizModel)
	assert.Equal(t, "correct :)", m.status)

	next, _ = press(m, "2")
	m = next.(QuizModel)
	assert.Equal(t, "Question 1 is already answered", m.status)

	next, _ = press(m, "down", "2")
	m = next.(QuizModel)
	assert.Equal(t, "wrong :(", m.status)

	view := m.View()
	assert.Contains(t, view, "[1] right11 ✓")
	assert.Contains(t, view, "[2] wrong12 ✗")
	assert.Contains(t, view, "Sentence 12.", "answered cards reveal the sentence")
	assert.NotContains(t, view, "Sentence 13.", "unanswered cards keep the sentence hidden")
	assert.Equal(t, 2, s.Score().Overall.Answered)
}

func TestQuizModel_Navigation(t *testing.T) {
	s := newTestSession(t, 25, nil)
	m := NewQuizModel(s, QuizOptions{NoColor: true})

	next, _ := press(m, "enter", "b")
	m = next.(QuizModel)
	assert.Equal(t, quiz.SetView(0), s.View())
	assert.Contains(t, m.status, quiz.ErrTransitionNotAllowed.Error())
	assert.Contains(t, m.View(), "(Back)")

	next, _ = press(m, "n", "right")
	m = next.(QuizModel)
	assert.Equal(t, quiz.SetView(2), s.View())
	assert.Contains(t, m.View(), "(Next)")

	next, _ = press(m, "h")
	m = next.(QuizModel)
	assert.Equal(t, quiz.Home, s.View())
	assert.Equal(t, 2, m.cursor, "home keeps the cursor on the set just left")
}

func TestQuizModel_CursorClamped(t *testing.T) {
	s := newTestSession(t, 12, nil)
	m := NewQuizModel(s, QuizOptions{NoColor: true})

	next, _ := press(m, "up", "down", "down", "down")
	assert.Equal(t, 1, next.(QuizModel).cursor)
}

func TestQuizModel_Play(t *testing.T) {
	player := &recordingPlayer{}
	s := newTestSession(t, 12, player)
	m := NewQuizModel(s, QuizOptions{NoColor: true})

	next, _ := press(m, "enter", "down", "p")
	m = next.(QuizModel)
	assert.Equal(t, []string{"Sentence 2."}, player.played)
	assert.Empty(t, m.status)

	player.err = errors.New("no audio device")
	next, _ = press(m, "enter")
	assert.Equal(t, "speech: no audio device", next.(QuizModel).status)
}

func TestQuizModel_PlayWithoutPlayer(t *testing.T) {
	s := newTestSession(t, 12, nil)
	m := NewQuizModel(s, QuizOptions{NoColor: true})

	next, _ := press(m, "enter", "p")
	assert.Equal(t, "audio is disabled", next.(QuizModel).status)
}

func TestQuizModel_Notices(t *testing.T) {
	notices := make(chan string, 1)
	s := newTestSession(t, 12, nil)
	m := NewQuizModel(s, QuizOptions{NoColor: true, Notices: notices})

	NoticeWriter(notices).Write([]byte("[sentence] Sentence 1.\n"))
	cmd := m.Init()
	require.NotNil(t, cmd)
	next, again := m.Update(cmd())
	assert.Equal(t, "[sentence] Sentence 1.", next.(QuizModel).status)
	assert.NotNil(t, again, "the model keeps listening for notices")
}

func TestQuizModel_Quit(t *testing.T) {
	s := newTestSession(t, 12, nil)
	m := NewQuizModel(s, QuizOptions{NoColor: true})

	_, cmd := press(m, "q")
	assert.True(t, isQuit(cmd))
	_, cmd = press(m, "enter", "ctrl+c")
	assert.True(t, isQuit(cmd))
}

func TestNoticeWriter_DropsWhenFull(t *testing.T) {
	ch := make(chan string, 1)
	w := NoticeWriter(ch)
	n, err := w.Write([]byte("one\ntwo\n"))
	require.NoError(t, err)
	assert.Equal(t, 8, n)
	assert.Equal(t, "one", <-ch)
	assert.Empty(t, ch)
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package quiz

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/proofquiz/internal/bank"
	"github.com/pdiddy/proofquiz/pkg/types"
)

func syntheticBank(n int) []types.Question {
	qs := make([]types.Question, n)
	for i := range qs {
		qs[i] = types.Question{
			Sentence:     fmt.Sprintf("Sentence %d.", i),
			Options:      [2]string{fmt.Sprintf("first%d", i), fmt.Sprintf("second%d", i)},
			CorrectIndex: i % 2,
		}
	}
	return qs
}

// recordingPlayer captures Play calls.
type recordingPlayer struct {
	played []string
	err    error
}

func (p *recordingPlayer) Play(text string) error {
	p.played = append(p.played, text)
	return p.err
}

// alternate returns a Flip that yields the given pattern repeatedly.
func alternate(pattern ...bool) func() bool {
	i := 0
	return func() bool {
		v := pattern[i%len(pattern)]
		i++
		return v
	}
}

func newSession(t *testing.T, n int, opts Options) *Session {
	t.Helper()
	s, err := NewSession(bank.Partition(syntheticBank(n), 10), opts)
	require.NoError(t, err)
	return s
}

func TestNewSession(t *testing.T) {
	s := newSession(t, 194, Options{})
	assert.Equal(t, Home, s.View())
	assert.NotEmpty(t, s.ID())
	assert.Len(t, s.Sets(), 20)

	named := newSession(t, 3, Options{ID: "fixed"})
	assert.Equal(t, "fixed", named.ID())

	_, err := NewSession(nil, Options{})
	assert.Error(t, err)
}

func TestSession_Navigation(t *testing.T) {
	s := newSession(t, 25, Options{Flip: alternate(false)})

	require.NoError(t, s.Open(1))
	assert.Equal(t, SetView(1), s.View())
	assert.Len(t, s.Orders(), 10)

	require.NoError(t, s.Next())
	assert.Equal(t, SetView(2), s.View())
	assert.Len(t, s.Orders(), 5)

	assert.ErrorIs(t, s.Next(), ErrTransitionNotAllowed)
	assert.Equal(t, SetView(2), s.View())

	require.NoError(t, s.Back())
	require.NoError(t, s.Back())
	assert.ErrorIs(t, s.Back(), ErrTransitionNotAllowed)
	assert.Equal(t, SetView(0), s.View())

	require.NoError(t, s.Home())
	assert.Equal(t, Home, s.View())
	assert.Nil(t, s.Orders())
	assert.ErrorIs(t, s.Open(3), ErrTransitionNotAllowed)
}

func TestSession_SelectOptionIdempotent(t *testing.T) {
	s := newSession(t, 20, Options{Flip: alternate(true, false)})
	require.NoError(t, s.Open(0))

	first, err := s.SelectOption(3, 0)
	require.NoError(t, err)
	assert.True(t, first.Recorded)

	for _, opt := range []int{1, 0, 1} {
		again, err := s.SelectOption(3, opt)
		require.NoError(t, err)
		assert.False(t, again.Recorded)
		assert.Equal(t, first.Option, again.Option)
		assert.Equal(t, first.Feedback, again.Feedback)
	}
	got, ok := s.Answers().Get(0, 3)
	require.True(t, ok)
	assert.Equal(t, 0, got)
}

func TestSession_FeedbackMatchesCorrectIndex(t *testing.T) {
	qs, err := bank.Default()
	require.NoError(t, err)
	for _, chosen := range []int{0, 1} {
		s, err := NewSession(bank.Partition(qs, 10), Options{Flip: alternate(false)})
		require.NoError(t, err)
		for si := range s.Sets() {
			if s.View() != Home {
				require.NoError(t, s.Home())
			}
			require.NoError(t, s.Open(si))
			for qi, q := range s.Sets()[si].Questions {
				sel, err := s.SelectOption(qi, chosen)
				require.NoError(t, err)
				assert.Equal(t, chosen == q.CorrectIndex, sel.Correct)
				if chosen == q.CorrectIndex {
					assert.Equal(t, FeedbackCorrect, sel.Feedback)
				} else {
					assert.Equal(t, FeedbackWrong, sel.Feedback)
				}
			}
		}
	}
}

func TestSession_ScenarioCorrectThenWrong(t *testing.T) {
	s := newSession(t, 30, Options{Flip: alternate(false)})
	require.NoError(t, s.Open(0))

	q0 := s.Sets()[0].Questions[0]
	sel, err := s.SelectOption(0, q0.CorrectIndex)
	require.NoError(t, err)
	assert.Equal(t, "correct :)", sel.Feedback.String())

	q1 := s.Sets()[0].Questions[1]
	sel, err = s.SelectOption(1, 1-q1.CorrectIndex)
	require.NoError(t, err)
	assert.Equal(t, "wrong :(", sel.Feedback.String())

	score := s.Score()
	assert.Equal(t, Tally{Total: 10, Answered: 2, Correct: 1}, score.Sets[0])
	assert.Equal(t, Tally{Total: 30, Answered: 2, Correct: 1}, score.Overall)
}

func TestSession_SelectPositionUsesOrder(t *testing.T) {
	s := newSession(t, 10, Options{Flip: alternate(true)})
	require.NoError(t, s.Open(0))
	assert.Equal(t, Reversed, s.Orders()[0])

	sel, err := s.SelectPosition(0, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, sel.Option, "visual position 0 holds original option 1 when reversed")

	got, _ := s.Answers().Get(0, 0)
	assert.Equal(t, 1, got)

	_, err = s.SelectPosition(0, 2)
	assert.ErrorIs(t, err, ErrInvalidOption)
}

func TestSession_PerQuestionErrors(t *testing.T) {
	p := &recordingPlayer{}
	s := newSession(t, 12, Options{Player: p, Flip: alternate(false)})

	_, err := s.SelectOption(0, 0)
	assert.ErrorIs(t, err, ErrNotInSet)
	assert.ErrorIs(t, s.PlaySentence(0), ErrNotInSet)

	require.NoError(t, s.Open(1))
	_, err = s.SelectOption(2, 0)
	assert.ErrorIs(t, err, ErrNoSuchQuestion)
	_, err = s.SelectOption(0, 5)
	assert.ErrorIs(t, err, ErrInvalidOption)
	assert.Empty(t, p.played)
}

func TestSession_PlaySentence(t *testing.T) {
	p := &recordingPlayer{}
	s := newSession(t, 12, Options{Player: p, Flip: alternate(false)})
	require.NoError(t, s.Open(1))

	require.NoError(t, s.PlaySentence(1))
	require.NoError(t, s.PlaySentence(0))
	assert.Equal(t, []string{"Sentence 11.", "Sentence 10."}, p.played)

	p.err = errors.New("no audio device")
	assert.EqualError(t, s.PlaySentence(0), "no audio device")

	silent := newSession(t, 3, Options{})
	require.NoError(t, silent.Open(0))
	assert.ErrorIs(t, silent.PlaySentence(0), ErrNoPlayer)
}

func TestSession_OrdersRedrawnOnEntry(t *testing.T) {
	s := newSession(t, 20, Options{Flip: alternate(false, true, true)})
	require.NoError(t, s.Open(0))
	first := append([]Order(nil), s.Orders()...)
	require.NoError(t, s.Next())
	require.NoError(t, s.Back())
	assert.NotEqual(t, first, s.Orders())
}

func TestSession_SeededCoinIsFair(t *testing.T) {
	s := newSession(t, 2000, Options{Seed: 42})
	reversed, total := 0, 0
	for si := range s.Sets() {
		if si == 0 {
			require.NoError(t, s.Open(0))
		} else {
			require.NoError(t, s.Next())
		}
		for _, o := range s.Orders() {
			total++
			if o == Reversed {
				reversed++
			}
		}
	}
	ratio := float64(reversed) / float64(total)
	assert.InDelta(t, 0.5, ratio, 0.05)
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package quiz implements the listening quiz controller: the Home/SetView
// state machine, the per-question answer arena and a pure renderer that
// turns the current state into a Screen.
package quiz

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"

	"github.com/pdiddy/proofquiz/pkg/types"
)

// Player speaks a sentence. Implementations cancel whatever they were
// saying before starting.
type Player interface {
	Play(text string) error
}

// Options configures a Session.
type Options struct {
	// Player is the speech slot. PlaySentence fails with ErrNoPlayer when nil.
	Player Player

	// Seed seeds the option order coin. Zero seeds from the clock.
	Seed int64

	// Flip overrides the coin. It returns true to reverse a question's
	// options. Tests use it for deterministic orders.
	Flip func() bool

	// ID names the session. Empty generates a UUID.
	ID string
}

// Selection is the outcome of SelectOption.
type Selection struct {
	// Recorded is false when the question was already answered.
	Recorded bool
	// Option is the stored choice (the earlier one when not recorded).
	Option   int
	Correct  bool
	Feedback Feedback
}

// Session owns all quiz state for one process run.
type Session struct {
	id      string
	sets    []types.QuestionSet
	answers *AnswerState
	view    View
	orders  []Order
	player  Player
	flip    func() bool
}

// NewSession starts a session at Home over sets.
func NewSession(sets []types.QuestionSet, opts Options) (*Session, error) {
	if len(sets) == 0 {
		return nil, fmt.Errorf("new session: %w", ErrNoSuchQuestion)
	}
	id := opts.ID
	if id == "" {
		id = uuid.NewString()
	}
	flip := opts.Flip
	if flip == nil {
		seed := opts.Seed
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		rng := rand.New(rand.NewPCG(uint64(seed), uint64(seed)>>1|1))
		flip = func() bool { return rng.Float64() < 0.5 }
	}
	return &Session{
		id:      id,
		sets:    sets,
		answers: NewAnswerState(sets),
		view:    Home,
		player:  opts.Player,
		flip:    flip,
	}, nil
}

// ID returns the session identifier.
func (s *Session) ID() string { return s.id }

// View returns the current view.
func (s *Session) View() View { return s.view }

// Sets returns the partition the session runs over.
func (s *Session) Sets() []types.QuestionSet { return s.sets }

// Answers exposes the answer arena for read access.
func (s *Session) Answers() *AnswerState { return s.answers }

// Orders returns the presentation order of the open set.
func (s *Session) Orders() []Order { return s.orders }

// Screen renders the current state.
func (s *Session) Screen() Screen {
	return Render(State{View: s.view, Sets: s.sets, Answers: s.answers, Orders: s.orders})
}

// Score returns the running score.
func (s *Session) Score() Score { return ScoreOf(s.sets, s.answers) }

// Open moves from Home to set i.
func (s *Session) Open(i int) error { return s.apply(ActionOpen, i) }

// Back moves to the previous set.
func (s *Session) Back() error { return s.apply(ActionBack, 0) }

// Next moves to the following set.
func (s *Session) Next() error { return s.apply(ActionNext, 0) }

// Home returns to the set picker.
func (s *Session) Home() error { return s.apply(ActionHome, 0) }

func (s *Session) apply(action Action, arg int) error {
	to, err := Step(s.view, action, arg, len(s.sets))
	if err != nil {
		return err
	}
	s.view = to
	s.orders = nil
	if to.Kind == ViewSet {
		s.orders = s.drawOrders(s.sets[to.Set].Len())
	}
	return nil
}

// drawOrders flips a fair coin per question every time a set is entered.
func (s *Session) drawOrders(n int) []Order {
	orders := make([]Order, n)
	for i := range orders {
		orders[i] = InOrder
		if s.flip() {
			orders[i] = Reversed
		}
	}
	return orders
}

func (s *Session) question(qi int) (types.Question, error) {
	if s.view.Kind != ViewSet {
		return types.Question{}, ErrNotInSet
	}
	set := s.sets[s.view.Set]
	if qi < 0 || qi >= set.Len() {
		return types.Question{}, fmt.Errorf("set %d question %d: %w", s.view.Set, qi, ErrNoSuchQuestion)
	}
	return set.Questions[qi], nil
}

// PlaySentence speaks question qi of the open set through the player.
func (s *Session) PlaySentence(qi int) error {
	q, err := s.question(qi)
	if err != nil {
		return err
	}
	if s.player == nil {
		return ErrNoPlayer
	}
	return s.player.Play(q.Sentence)
}

// SelectOption records option (an original index, not a visual position)
// for question qi of the open set. Repeated calls are no-ops that report
// the first choice.
func (s *Session) SelectOption(qi, option int) (Selection, error) {
	q, err := s.question(qi)
	if err != nil {
		return Selection{}, err
	}
	recorded, err := s.answers.Record(s.view.Set, qi, option)
	if err != nil {
		return Selection{}, err
	}
	stored, _ := s.answers.Get(s.view.Set, qi)
	return Selection{
		Recorded: recorded,
		Option:   stored,
		Correct:  q.IsCorrect(stored),
		Feedback: feedbackFor(q, stored),
	}, nil
}

// SelectPosition records the option drawn at visual position pos.
func (s *Session) SelectPosition(qi, pos int) (Selection, error) {
	if _, err := s.question(qi); err != nil {
		return Selection{}, err
	}
	if pos < 0 || pos >= types.OptionCount {
		return Selection{}, fmt.Errorf("position %d: %w", pos, ErrInvalidOption)
	}
	return s.SelectOption(qi, s.orders[qi][pos])
}

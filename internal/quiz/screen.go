// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package quiz

import (
	"fmt"

	"github.com/pdiddy/proofquiz/pkg/types"
)

// AppTitle is shown on the set picker.
const AppTitle = "English Sound Quiz"

// Order maps visual positions to original option indices.
type Order [types.OptionCount]int

var (
	// InOrder shows options as they appear in the bank.
	InOrder = Order{0, 1}
	// Reversed swaps the two options.
	Reversed = Order{1, 0}
)

// Feedback is the message shown under an answered question.
type Feedback int

const (
	FeedbackNone Feedback = iota
	FeedbackCorrect
	FeedbackWrong
)

func (f Feedback) String() string {
	switch f {
	case FeedbackCorrect:
		return "correct :)"
	case FeedbackWrong:
		return "wrong :("
	default:
		return ""
	}
}

// feedbackFor derives the message for a recorded option.
func feedbackFor(q types.Question, option int) Feedback {
	if q.IsCorrect(option) {
		return FeedbackCorrect
	}
	return FeedbackWrong
}

// OptionButton is one candidate as drawn on a card.
type OptionButton struct {
	// Option is the original index in Question.Options.
	Option   int
	Label    string
	Selected bool
	Correct  bool
	Wrong    bool
	Disabled bool
}

// Card is one question of the open set.
type Card struct {
	Index    int
	Title    string
	Sentence string
	Buttons  [types.OptionCount]OptionButton
	Answered bool
	Feedback Feedback
}

// SetButton is one entry of the set picker.
type SetButton struct {
	Index int
	Label string
}

// NavButton is a navigation control below the cards.
type NavButton struct {
	Label    string
	Disabled bool
}

// Screen is everything a front end needs to draw the current view.
type Screen struct {
	View  View
	Title string

	// Home only.
	Sets []SetButton

	// Set view only.
	Cards []Card
	Back  NavButton
	Home  NavButton
	Next  NavButton

	Score Score
}

// State is the input of Render. Orders holds the presentation order of
// every question in the open set.
type State struct {
	View    View
	Sets    []types.QuestionSet
	Answers *AnswerState
	Orders  []Order
}

// Render builds the screen for state. It has no side effects.
func Render(state State) Screen {
	screen := Screen{View: state.View, Score: ScoreOf(state.Sets, state.Answers)}
	if state.View.Kind != ViewSet {
		screen.Title = AppTitle
		screen.Sets = make([]SetButton, len(state.Sets))
		for i, s := range state.Sets {
			screen.Sets[i] = SetButton{
				Index: i,
				Label: fmt.Sprintf("Set %d (%d questions)", i+1, s.Len()),
			}
		}
		return screen
	}

	setIdx := state.View.Set
	set := state.Sets[setIdx]
	screen.Title = fmt.Sprintf("Quiz Set %d", setIdx+1)
	screen.Cards = make([]Card, set.Len())
	for qi, q := range set.Questions {
		order := InOrder
		if qi < len(state.Orders) {
			order = state.Orders[qi]
		}
		chosen, answered := state.Answers.Get(setIdx, qi)
		screen.Cards[qi] = renderCard(qi, q, order, chosen, answered)
	}

	n := len(state.Sets)
	screen.Back = NavButton{Label: "Back", Disabled: !Enabled(state.View, ActionBack, n)}
	screen.Home = NavButton{Label: "Home", Disabled: !Enabled(state.View, ActionHome, n)}
	screen.Next = NavButton{Label: "Next", Disabled: !Enabled(state.View, ActionNext, n)}
	return screen
}

func renderCard(qi int, q types.Question, order Order, chosen int, answered bool) Card {
	card := Card{
		Index:    qi,
		Title:    fmt.Sprintf("Question %d", qi+1),
		Sentence: q.Sentence,
		Answered: answered,
	}
	for pos, opt := range order {
		b := OptionButton{Option: opt, Label: q.Options[opt]}
		if answered {
			b.Selected = true
			b.Disabled = true
			switch {
			case q.IsCorrect(opt):
				b.Correct = true
			case opt == chosen:
				b.Wrong = true
			}
		}
		card.Buttons[pos] = b
	}
	if answered {
		card.Feedback = feedbackFor(q, chosen)
	}
	return card
}

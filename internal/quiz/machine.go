// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package quiz

import (
	"errors"
	"fmt"
)

var (
	// ErrTransitionNotAllowed is returned when an action is not enabled in
	// the current view. The view is left unchanged.
	ErrTransitionNotAllowed = errors.New("transition not allowed")

	// ErrNoSuchQuestion is returned for set or question indices outside the bank.
	ErrNoSuchQuestion = errors.New("no such question")

	// ErrInvalidOption is returned for option indices other than 0 and 1.
	ErrInvalidOption = errors.New("invalid option")

	// ErrNotInSet is returned by per-question operations issued from Home.
	ErrNotInSet = errors.New("no question set is open")

	// ErrNoPlayer is returned by PlaySentence when no speech player is wired.
	ErrNoPlayer = errors.New("no speech player configured")
)

// ViewKind enumerates the quiz screens.
type ViewKind int

const (
	// ViewHome is the set picker.
	ViewHome ViewKind = iota
	// ViewSet shows the questions of one set.
	ViewSet
)

func (k ViewKind) String() string {
	switch k {
	case ViewHome:
		return "home"
	case ViewSet:
		return "set"
	default:
		return fmt.Sprintf("view(%d)", int(k))
	}
}

// View is the current screen. Set is meaningful only for ViewSet.
type View struct {
	Kind ViewKind
	Set  int
}

// Home is the initial view.
var Home = View{Kind: ViewHome}

// SetView returns the view for set i.
func SetView(i int) View { return View{Kind: ViewSet, Set: i} }

func (v View) String() string {
	if v.Kind == ViewSet {
		return fmt.Sprintf("set(%d)", v.Set)
	}
	return v.Kind.String()
}

// Action is a navigation request.
type Action int

const (
	// ActionOpen opens the set given as argument. Home only.
	ActionOpen Action = iota
	// ActionBack moves to the previous set.
	ActionBack
	// ActionNext moves to the following set.
	ActionNext
	// ActionHome returns to the set picker.
	ActionHome
)

func (a Action) String() string {
	switch a {
	case ActionOpen:
		return "open"
	case ActionBack:
		return "back"
	case ActionNext:
		return "next"
	case ActionHome:
		return "home"
	default:
		return fmt.Sprintf("action(%d)", int(a))
	}
}

// transition computes the target view. ok is false when the guard fails.
type transition func(from View, arg, setCount int) (to View, ok bool)

// transitions is the full navigation table; missing entries are disallowed.
var transitions = map[ViewKind]map[Action]transition{
	ViewHome: {
		ActionOpen: func(_ View, arg, n int) (View, bool) {
			return SetView(arg), arg >= 0 && arg < n
		},
	},
	ViewSet: {
		ActionBack: func(from View, _, _ int) (View, bool) {
			return SetView(from.Set - 1), from.Set > 0
		},
		ActionNext: func(from View, _, n int) (View, bool) {
			return SetView(from.Set + 1), from.Set < n-1
		},
		ActionHome: func(View, int, int) (View, bool) {
			return Home, true
		},
	},
}

// Step applies action to from over a bank of setCount sets. arg is the set
// index for ActionOpen and ignored otherwise.
func Step(from View, action Action, arg, setCount int) (View, error) {
	t, ok := transitions[from.Kind][action]
	if !ok {
		return from, fmt.Errorf("%s from %s: %w", action, from, ErrTransitionNotAllowed)
	}
	to, ok := t(from, arg, setCount)
	if !ok {
		return from, fmt.Errorf("%s from %s: %w", action, from, ErrTransitionNotAllowed)
	}
	return to, nil
}

// Enabled reports whether action is allowed from v. For ActionOpen the
// question is whether any set can be opened.
func Enabled(v View, action Action, setCount int) bool {
	_, err := Step(v, action, 0, setCount)
	return err == nil
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package quiz

import (
	"fmt"

	"github.com/pdiddy/proofquiz/pkg/types"
)

// unanswered marks an arena slot that has no selection yet.
const unanswered int8 = -1

// AnswerState records the option picked for every question of every set.
// Slots live in one flat arena indexed through per-set offsets. A slot is
// written at most once; there is no way back to unanswered.
type AnswerState struct {
	slots   []int8
	offsets []int
	lengths []int
}

// NewAnswerState returns an all-unanswered state shaped like sets.
func NewAnswerState(sets []types.QuestionSet) *AnswerState {
	a := &AnswerState{
		offsets: make([]int, len(sets)),
		lengths: make([]int, len(sets)),
	}
	total := 0
	for i, s := range sets {
		a.offsets[i] = total
		a.lengths[i] = s.Len()
		total += s.Len()
	}
	a.slots = make([]int8, total)
	for i := range a.slots {
		a.slots[i] = unanswered
	}
	return a
}

func (a *AnswerState) slot(set, question int) (int, error) {
	if set < 0 || set >= len(a.offsets) || question < 0 || question >= a.lengths[set] {
		return 0, fmt.Errorf("set %d question %d: %w", set, question, ErrNoSuchQuestion)
	}
	return a.offsets[set] + question, nil
}

// Get returns the recorded option and whether the question was answered.
func (a *AnswerState) Get(set, question int) (option int, answered bool) {
	i, err := a.slot(set, question)
	if err != nil || a.slots[i] == unanswered {
		return 0, false
	}
	return int(a.slots[i]), true
}

// Record stores option for the question unless one is already stored.
// It reports whether the state changed.
func (a *AnswerState) Record(set, question, option int) (bool, error) {
	i, err := a.slot(set, question)
	if err != nil {
		return false, err
	}
	if option < 0 || option >= types.OptionCount {
		return false, fmt.Errorf("option %d: %w", option, ErrInvalidOption)
	}
	if a.slots[i] != unanswered {
		return false, nil
	}
	a.slots[i] = int8(option)
	return true, nil
}

// Answered returns how many questions of set have a recorded option.
func (a *AnswerState) Answered(set int) int {
	if set < 0 || set >= len(a.offsets) {
		return 0
	}
	n := 0
	for _, v := range a.slots[a.offsets[set] : a.offsets[set]+a.lengths[set]] {
		if v != unanswered {
			n++
		}
	}
	return n
}

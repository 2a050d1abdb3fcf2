// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package quiz

import "github.com/pdiddy/proofquiz/pkg/types"

// Tally counts answers for a group of questions.
type Tally struct {
	Total    int
	Answered int
	Correct  int
}

// Score is the running result of a session.
type Score struct {
	Sets    []Tally
	Overall Tally
}

// ScoreOf derives the score from the recorded answers.
func ScoreOf(sets []types.QuestionSet, answers *AnswerState) Score {
	score := Score{Sets: make([]Tally, len(sets))}
	for si, s := range sets {
		t := Tally{Total: s.Len()}
		for qi, q := range s.Questions {
			if answers == nil {
				continue
			}
			opt, ok := answers.Get(si, qi)
			if !ok {
				continue
			}
			t.Answered++
			if q.IsCorrect(opt) {
				t.Correct++
			}
		}
		score.Sets[si] = t
		score.Overall.Total += t.Total
		score.Overall.Answered += t.Answered
		score.Overall.Correct += t.Correct
	}
	return score
}

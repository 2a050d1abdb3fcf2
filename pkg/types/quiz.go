// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types holds the records shared between the quiz and review front
// ends and the configuration tree decoded by the CLI.
package types

// OptionCount is the number of candidate words every Question offers.
const OptionCount = 2

// Question is one listening item: a sentence that is spoken aloud and two
// similar sounding candidates, one of which appears in the sentence.
type Question struct {
	// Sentence is the text passed to the speech engine.
	Sentence string `json:"sentence" yaml:"sentence"`

	// Options holds the two candidates in source order.
	Options [OptionCount]string `json:"options" yaml:"options"`

	// CorrectIndex is the position in Options of the right answer (0 or 1).
	CorrectIndex int `json:"correct_index" yaml:"correct_index"`

	// Category optionally groups questions by the sound pair they drill
	// (e.g. "L_R", "V_B").
	Category string `json:"category,omitempty" yaml:"category,omitempty"`
}

// IsCorrect reports whether option is the right answer.
func (q Question) IsCorrect(option int) bool {
	return option == q.CorrectIndex
}

// QuestionSet is a contiguous slice of the bank presented as one screen.
type QuestionSet struct {
	// Index is the zero-based position of the set in the partition.
	Index int `json:"index" yaml:"index"`

	// Questions lists the set members in bank order.
	Questions []Question `json:"questions" yaml:"questions"`
}

// Len returns the number of questions in the set.
func (s QuestionSet) Len() int { return len(s.Questions) }

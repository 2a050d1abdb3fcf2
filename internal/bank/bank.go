// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package bank loads, validates and partitions the listening quiz question
// bank. A built-in bank is embedded in the binary; YAML or JSON files with
// the same shape can replace it.
package bank

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/proofquiz/pkg/types"
)

// DefaultSetSize is the number of questions per set when none is configured.
const DefaultSetSize = 10

//go:embed questions.yaml
var builtin []byte

// ErrEmptyBank is returned when a bank, after filtering, has no questions.
var ErrEmptyBank = errors.New("question bank is empty")

// bankEntry is the on-disk shape of one question. Options is a slice so a
// wrong count is reported as a validation error rather than a decode error.
type bankEntry struct {
	Sentence     string   `json:"sentence" yaml:"sentence"`
	Options      []string `json:"options" yaml:"options"`
	CorrectIndex int      `json:"correct_index" yaml:"correct_index"`
	Category     string   `json:"category,omitempty" yaml:"category,omitempty"`
}

// bankDocument is the on-disk shape of a bank file.
type bankDocument struct {
	Questions []bankEntry `json:"questions" yaml:"questions"`
}

// Default returns the built-in bank.
func Default() ([]types.Question, error) {
	return Parse("built-in", builtin)
}

// Load reads a bank file. YAML is a superset of JSON, so both formats go
// through the same decoder.
func Load(path string) ([]types.Question, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading bank %s: %w", path, err)
	}
	return Parse(path, data)
}

// Resolve returns the bank at path, or the built-in bank when path is empty.
func Resolve(path string) ([]types.Question, error) {
	if strings.TrimSpace(path) == "" {
		return Default()
	}
	return Load(path)
}

// Parse decodes and validates a bank document. name is used in errors.
// The document may be a mapping with a "questions" key or a bare list.
func Parse(name string, data []byte) ([]types.Question, error) {
	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing bank %s: %w", name, err)
	}
	if list, ok := raw.([]any); ok {
		raw = map[string]any{"questions": list}
	}
	if err := validateSchema(raw); err != nil {
		return nil, fmt.Errorf("bank %s: %w", name, err)
	}

	normalized, err := yaml.Marshal(raw)
	if err != nil {
		return nil, fmt.Errorf("re-encoding bank %s: %w", name, err)
	}
	var doc bankDocument
	if err := yaml.Unmarshal(normalized, &doc); err != nil {
		return nil, fmt.Errorf("decoding bank %s: %w", name, err)
	}

	questions := make([]types.Question, 0, len(doc.Questions))
	for i, e := range doc.Questions {
		q, err := e.question()
		if err != nil {
			return nil, fmt.Errorf("bank %s: question %d: %w", name, i+1, err)
		}
		questions = append(questions, q)
	}
	if len(questions) == 0 {
		return nil, fmt.Errorf("bank %s: %w", name, ErrEmptyBank)
	}
	return questions, nil
}

func (e bankEntry) question() (types.Question, error) {
	q := types.Question{
		Sentence:     e.Sentence,
		CorrectIndex: e.CorrectIndex,
		Category:     e.Category,
	}
	if len(e.Options) != types.OptionCount {
		return q, fmt.Errorf("want %d options, got %d", types.OptionCount, len(e.Options))
	}
	copy(q.Options[:], e.Options)
	return q, Check(q)
}

// Check enforces the Question invariants: a sentence, two non-empty
// options and a correct index in {0,1}.
func Check(q types.Question) error {
	if strings.TrimSpace(q.Sentence) == "" {
		return errors.New("sentence is empty")
	}
	for i, opt := range q.Options {
		if strings.TrimSpace(opt) == "" {
			return fmt.Errorf("option %d is empty", i)
		}
	}
	if q.CorrectIndex < 0 || q.CorrectIndex >= types.OptionCount {
		return fmt.Errorf("correct_index %d out of range [0,%d]", q.CorrectIndex, types.OptionCount-1)
	}
	return nil
}

// Filter keeps questions of the given category. An empty category keeps all.
func Filter(questions []types.Question, category string) ([]types.Question, error) {
	if category == "" {
		return questions, nil
	}
	var out []types.Question
	for _, q := range questions {
		if strings.EqualFold(q.Category, category) {
			out = append(out, q)
		}
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("category %q: %w", category, ErrEmptyBank)
	}
	return out, nil
}

// Categories returns the distinct categories in first-seen order.
func Categories(questions []types.Question) []string {
	seen := make(map[string]bool)
	var out []string
	for _, q := range questions {
		if q.Category == "" || seen[q.Category] {
			continue
		}
		seen[q.Category] = true
		out = append(out, q.Category)
	}
	return out
}

// Partition slices questions into contiguous sets of at most size
// questions, preserving bank order. A non-positive size uses
// DefaultSetSize.
func Partition(questions []types.Question, size int) []types.QuestionSet {
	if size <= 0 {
		size = DefaultSetSize
	}
	sets := make([]types.QuestionSet, 0, (len(questions)+size-1)/size)
	for start := 0; start < len(questions); start += size {
		end := min(start+size, len(questions))
		chunk := make([]types.Question, end-start)
		copy(chunk, questions[start:end])
		sets = append(sets, types.QuestionSet{Index: len(sets), Questions: chunk})
	}
	return sets
}

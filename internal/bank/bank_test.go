// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package bank

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/proofquiz/pkg/types"
)

// syntheticBank returns n distinct valid questions.
func syntheticBank(n int) []types.Question {
	qs := make([]types.Question, n)
	for i := range qs {
		qs[i] = types.Question{
			Sentence:     fmt.Sprintf("Sentence number %d.", i),
			Options:      [2]string{fmt.Sprintf("a%d", i), fmt.Sprintf("b%d", i)},
			CorrectIndex: i % 2,
		}
	}
	return qs
}

func TestDefault_Invariants(t *testing.T) {
	qs, err := Default()
	require.NoError(t, err)
	require.Len(t, qs, 152)

	for i, q := range qs {
		assert.Len(t, q.Options, 2, "question %d", i)
		assert.Contains(t, []int{0, 1}, q.CorrectIndex, "question %d", i)
		assert.NoError(t, Check(q), "question %d", i)
	}
	assert.Equal(t, "I won't send a book.", qs[0].Sentence)
	assert.Equal(t, [2]string{"won't", "want"}, qs[0].Options)
}

func TestPartition_194Questions(t *testing.T) {
	qs := syntheticBank(194)
	sets := Partition(qs, 10)

	require.Len(t, sets, 20)
	for i := 0; i < 19; i++ {
		assert.Equal(t, 10, sets[i].Len(), "set %d", i)
		assert.Equal(t, i, sets[i].Index)
	}
	assert.Equal(t, 4, sets[19].Len())
}

func TestPartition_ConcatenationReproducesBank(t *testing.T) {
	for _, tc := range []struct {
		n, size int
	}{
		{0, 10}, {1, 10}, {10, 10}, {11, 10}, {152, 10}, {194, 10}, {7, 3}, {20, 0},
	} {
		t.Run(fmt.Sprintf("n=%d/size=%d", tc.n, tc.size), func(t *testing.T) {
			qs := syntheticBank(tc.n)
			sets := Partition(qs, tc.size)

			limit := tc.size
			if limit <= 0 {
				limit = DefaultSetSize
			}
			var joined []types.Question
			for _, s := range sets {
				assert.LessOrEqual(t, s.Len(), limit)
				assert.NotZero(t, s.Len())
				joined = append(joined, s.Questions...)
			}
			if tc.n == 0 {
				assert.Empty(t, joined)
				return
			}
			assert.Equal(t, qs, joined)
		})
	}
}

func TestPartition_SetsDoNotAliasBank(t *testing.T) {
	qs := syntheticBank(3)
	sets := Partition(qs, 2)
	sets[0].Questions[0].Sentence = "changed"
	assert.Equal(t, "Sentence number 0.", qs[0].Sentence)
}

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		want    int
		wantErr bool
	}{
		{
			name: "mapping form",
			doc: `questions:
  - sentence: "He is here."
    options: ["is", "isn't"]
    correct_index: 0
  - sentence: "Look at the cloud."
    options: ["crowd", "cloud"]
    correct_index: 1
    category: L_R`,
			want: 2,
		},
		{
			name: "bare list",
			doc: `- sentence: "He is here."
  options: ["is", "isn't"]
  correct_index: 0`,
			want: 1,
		},
		{
			name: "json",
			doc:  `{"questions":[{"sentence":"I think so.","options":["think","sink"],"correct_index":0}]}`,
			want: 1,
		},
		{
			name: "three options",
			doc: `questions:
  - sentence: "He is here."
    options: ["is", "isn't", "was"]
    correct_index: 0`,
			wantErr: true,
		},
		{
			name: "one option",
			doc: `questions:
  - sentence: "He is here."
    options: ["is"]
    correct_index: 0`,
			wantErr: true,
		},
		{
			name: "correct index out of range",
			doc: `questions:
  - sentence: "He is here."
    options: ["is", "isn't"]
    correct_index: 2`,
			wantErr: true,
		},
		{
			name: "empty sentence",
			doc: `questions:
  - sentence: ""
    options: ["is", "isn't"]
    correct_index: 0`,
			wantErr: true,
		},
		{
			name:    "empty bank",
			doc:     `questions: []`,
			wantErr: true,
		},
		{
			name:    "not yaml",
			doc:     "questions: [",
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			qs, err := Parse(tt.name, []byte(tt.doc))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Len(t, qs, tt.want)
		})
	}
}

func TestLoad_FileAndResolve(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bank.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`questions:
  - sentence: "She quit her job."
    options: ["quit", "quiet"]
    correct_index: 0
`), 0o644))

	qs, err := Resolve(path)
	require.NoError(t, err)
	require.Len(t, qs, 1)
	assert.Equal(t, "quit", qs[0].Options[0])

	builtin, err := Resolve("  ")
	require.NoError(t, err)
	assert.Len(t, builtin, 152)

	_, err = Load(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}

func TestFilterAndCategories(t *testing.T) {
	qs := syntheticBank(4)
	qs[0].Category = "L_R"
	qs[1].Category = "V_B"
	qs[2].Category = "l_r"

	got, err := Filter(qs, "L_R")
	require.NoError(t, err)
	assert.Len(t, got, 2)

	all, err := Filter(qs, "")
	require.NoError(t, err)
	assert.Len(t, all, 4)

	_, err = Filter(qs, "S_TH")
	assert.ErrorIs(t, err, ErrEmptyBank)

	assert.Equal(t, []string{"L_R", "V_B", "l_r"}, Categories(qs))
}

func TestEncode_ParseAcceptsOutput(t *testing.T) {
	questions, err := Default()
	require.NoError(t, err)
	questions[0].Category = "contractions"

	for _, format := range []string{"yaml", "json"} {
		data, err := Encode(questions, format)
		require.NoError(t, err, format)
		back, err := Parse("encoded."+format, data)
		require.NoError(t, err, format)
		assert.Equal(t, questions, back, format)
	}

	_, err = Encode(questions, "toml")
	assert.Error(t, err)
}

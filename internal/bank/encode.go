// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package bank

import (
	"encoding/json"
	"fmt"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/proofquiz/pkg/types"
)

// Encode renders questions as a bank document in format "yaml" or "json".
// Parse accepts the output.
func Encode(questions []types.Question, format string) ([]byte, error) {
	doc := bankDocument{Questions: make([]bankEntry, len(questions))}
	for i, q := range questions {
		doc.Questions[i] = bankEntry{
			Sentence:     q.Sentence,
			Options:      q.Options[:],
			CorrectIndex: q.CorrectIndex,
			Category:     q.Category,
		}
	}
	switch format {
	case "", "yaml", "yml":
		return yaml.Marshal(doc)
	case "json":
		return json.MarshalIndent(doc, "", "  ")
	default:
		return nil, fmt.Errorf("unknown bank format %q (expected yaml|json)", format)
	}
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Issue is one proofreading finding returned by the check backend.
type Issue struct {
	Line       LineNumber `json:"line" yaml:"line"`
	Mistake    string     `json:"mistake" yaml:"mistake"`
	Suggestion string     `json:"suggestion" yaml:"suggestion"`
}

// LineNumber is a source line reported by the check backend. The backend
// may encode it as a JSON number or as a numeric string.
type LineNumber int

// UnmarshalJSON accepts 12, "12" and " 12 ".
func (n *LineNumber) UnmarshalJSON(data []byte) error {
	var num int
	if err := json.Unmarshal(data, &num); err == nil {
		*n = LineNumber(num)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("line must be a number or numeric string: %s", data)
	}
	num, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return fmt.Errorf("line %q is not numeric: %w", s, err)
	}
	*n = LineNumber(num)
	return nil
}

// UploadResponse is the /upload payload. Exactly one field is set.
type UploadResponse struct {
	LatexFile string `json:"latex_file,omitempty"`
	Error     string `json:"error,omitempty"`
}

// CheckRequest is the /check request body.
type CheckRequest struct {
	LatexFile string `json:"latex_file"`
}

// CheckResponse is the /check payload. Errors is nil when Error is set.
type CheckResponse struct {
	Errors []Issue `json:"errors"`
	Error  string  `json:"error,omitempty"`
}

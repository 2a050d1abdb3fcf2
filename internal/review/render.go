// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package review

import (
	"fmt"
	"io"
	"strings"

	"github.com/pdiddy/proofquiz/pkg/types"
)

// ResultLines renders the result area as text lines. An empty slice means
// the area is blank.
func ResultLines(r Results) []string {
	switch {
	case r.Placeholder != "":
		return []string{r.Placeholder}
	case r.Error != "":
		return []string{r.Error}
	case r.Issues == nil:
		return nil
	case len(r.Issues) == 0:
		return []string{MsgNoErrors}
	}
	lines := make([]string, 0, 3*len(r.Issues))
	for _, is := range r.Issues {
		lines = append(lines, IssueLines(is)...)
	}
	return lines
}

// IssueLines renders one finding as its three result rows.
func IssueLines(is types.Issue) []string {
	return []string{
		fmt.Sprintf("Line %d:", is.Line),
		"Mistake: " + is.Mistake,
		"Suggestion: " + is.Suggestion,
	}
}

// WriteIssues prints issues to w, one blank line between findings.
func WriteIssues(w io.Writer, issues []types.Issue) {
	if len(issues) == 0 {
		fmt.Fprintln(w, MsgNoErrors)
		return
	}
	for i, is := range issues {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintln(w, strings.Join(IssueLines(is), "\n"))
	}
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package ui renders the quiz and review flows, either as a live Bubble
// Tea program or as a line-oriented prompt for pipes and dumb terminals.
package ui

import (
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/pdiddy/proofquiz/pkg/types"
)

// ModeDecision captures whether to use the live UI.
type ModeDecision struct {
	Live    bool
	Warning string
}

// isTerminal reports whether a writer is a TTY.
var isTerminal = defaultIsTerminal

// ResolveMode determines whether to enable the live UI for stdout.
func ResolveMode(mode types.UIMode, stdout io.Writer) (ModeDecision, error) {
	normalized := types.UIMode(strings.ToLower(strings.TrimSpace(string(mode))))
	if normalized == "" {
		normalized = types.UIAuto
	}
	switch normalized {
	case types.UIAuto:
		return ModeDecision{Live: isTerminal(stdout)}, nil
	case types.UILive:
		if isTerminal(stdout) {
			return ModeDecision{Live: true}, nil
		}
		return ModeDecision{
			Live:    false,
			Warning: "Live UI requested but stdout is not a TTY; falling back to plain output.",
		}, nil
	case types.UIPlain:
		return ModeDecision{Live: false}, nil
	default:
		return ModeDecision{}, fmt.Errorf("invalid ui mode %q (expected auto|live|plain)", mode)
	}
}

func defaultIsTerminal(stdout io.Writer) bool {
	if stdout == nil {
		return false
	}
	if file, ok := stdout.(*os.File); ok {
		return term.IsTerminal(int(file.Fd()))
	}
	if fder, ok := stdout.(interface{ Fd() uintptr }); ok {
		return term.IsTerminal(int(fder.Fd()))
	}
	return false
}

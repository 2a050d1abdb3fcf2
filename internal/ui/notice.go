// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package ui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// NoticeWriter forwards each written line to a channel so background
// writers (the text speech engine, speech error hooks) can reach the
// status line of a live program. Lines are dropped when the channel is full.
type NoticeWriter chan<- string

func (w NoticeWriter) Write(p []byte) (int, error) {
	text := strings.TrimRight(string(p), "\n")
	if text == "" {
		return len(p), nil
	}
	for _, line := range strings.Split(text, "\n") {
		w.Send(line)
	}
	return len(p), nil
}

// Send enqueues one notice without blocking the caller.
func (w NoticeWriter) Send(line string) {
	select {
	case w <- line:
	default:
	}
}

// noticeMsg carries one notice into the update loop.
type noticeMsg string

// waitForNotice blocks until a notice is available.
func waitForNotice(notices <-chan string) tea.Cmd {
	if notices == nil {
		return nil
	}
	return func() tea.Msg {
		line, ok := <-notices
		if !ok {
			return nil
		}
		return noticeMsg(line)
	}
}

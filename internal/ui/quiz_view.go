// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package ui

import (
	"fmt"
	"strings"

	"github.com/pdiddy/proofquiz/internal/quiz"
)

const playLabel = "Play Sentence"

// renderQuiz draws a quiz screen. cursor marks the focused set on the
// picker or the focused question in a set; -1 marks nothing.
func renderQuiz(screen quiz.Screen, cursor int, noColor bool) string {
	var b strings.Builder
	b.WriteString(stylize(bold(screen.Title, noColor), noColor, colorTitle))
	b.WriteString("\n")
	b.WriteString(stylize(scoreLine(screen.Score.Overall), noColor, colorMuted))
	b.WriteString("\n\n")

	if screen.View.Kind != quiz.ViewSet {
		for _, s := range screen.Sets {
			line := marker(s.Index == cursor) + s.Label
			if t := screen.Score.Sets[s.Index]; t.Answered > 0 {
				line += stylize(fmt.Sprintf("  %d/%d", t.Correct, t.Total), noColor, colorMuted)
			}
			if s.Index == cursor {
				line = stylize(line, noColor, colorCursor)
			}
			b.WriteString(line + "\n")
		}
		return b.String()
	}

	for _, card := range screen.Cards {
		b.WriteString(renderCard(card, card.Index == cursor, noColor))
	}
	b.WriteString("\n")
	b.WriteString(strings.Join([]string{
		navLabel(screen.Back, noColor),
		navLabel(screen.Home, noColor),
		navLabel(screen.Next, noColor),
	}, " "))
	b.WriteString("\n")
	return b.String()
}

func renderCard(card quiz.Card, focused, noColor bool) string {
	var b strings.Builder
	title := marker(focused) + card.Title + "  [" + playLabel + "]"
	if focused {
		title = stylize(title, noColor, colorCursor)
	}
	b.WriteString(title + "\n")

	buttons := make([]string, len(card.Buttons))
	for pos, btn := range card.Buttons {
		buttons[pos] = optionLabel(pos, btn, noColor)
	}
	line := "    " + strings.Join(buttons, "  ")
	if card.Answered {
		color := colorCorrect
		if card.Feedback == quiz.FeedbackWrong {
			color = colorWrong
		}
		line += "   " + stylize(card.Feedback.String(), noColor, color)
	}
	b.WriteString(line + "\n")
	if card.Answered {
		b.WriteString(stylize("    "+card.Sentence, noColor, colorMuted) + "\n")
	}
	return b.String()
}

func optionLabel(pos int, btn quiz.OptionButton, noColor bool) string {
	label := fmt.Sprintf("[%d] %s", pos+1, btn.Label)
	switch {
	case btn.Correct:
		return stylize(label+" ✓", noColor, colorCorrect)
	case btn.Wrong:
		return stylize(label+" ✗", noColor, colorWrong)
	case btn.Disabled:
		return stylize(label, noColor, colorMuted)
	}
	return label
}

func navLabel(btn quiz.NavButton, noColor bool) string {
	if btn.Disabled {
		return stylize("("+btn.Label+")", noColor, colorMuted)
	}
	return "[" + btn.Label + "]"
}

func scoreLine(t quiz.Tally) string {
	return fmt.Sprintf("Score: %d correct of %d answered (%d questions)", t.Correct, t.Answered, t.Total)
}

func marker(focused bool) string {
	if focused {
		return "> "
	}
	return "  "
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package ui

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pdiddy/proofquiz/internal/quiz"
)

const quizPlainHelp = `Commands:
  set N      open set N
  play Q     play the sentence of question Q
  pick Q O   answer question Q with option O (1 or 2, as shown)
  back       previous set
  next       next set
  home       back to the set list
  score      show the score
  quit       leave the quiz`

// RunQuizPlain drives a session from line commands read from in, printing
// screens and feedback to out. It returns at "quit" or end of input.
func RunQuizPlain(s *quiz.Session, in io.Reader, out io.Writer) error {
	reader := bufio.NewScanner(in)
	fmt.Fprintf(out, "Session %s (type help for commands)\n", s.ID())
	fmt.Fprint(out, renderQuiz(s.Screen(), -1, true))
	for {
		fmt.Fprint(out, "> ")
		if !reader.Scan() {
			break
		}
		fields := strings.Fields(reader.Text())
		if len(fields) == 0 {
			continue
		}
		if quit := runQuizCommand(s, fields, out); quit {
			break
		}
	}
	fmt.Fprintln(out)
	fmt.Fprintf(out, "Session %s finished\n", s.ID())
	fmt.Fprintln(out, scoreLine(s.Score().Overall))
	return reader.Err()
}

// runQuizCommand executes one command and reports whether to quit.
func runQuizCommand(s *quiz.Session, fields []string, out io.Writer) bool {
	cmd, args := strings.ToLower(fields[0]), fields[1:]
	var err error
	redraw := false
	switch cmd {
	case "quit", "exit", "q":
		return true
	case "help", "?":
		fmt.Fprintln(out, quizPlainHelp)
	case "set", "open":
		var n int
		if n, err = oneBased(args, 0, "set"); err == nil {
			err = s.Open(n)
			redraw = true
		}
	case "back":
		err, redraw = s.Back(), true
	case "next":
		err, redraw = s.Next(), true
	case "home":
		err, redraw = s.Home(), true
	case "score":
		printScore(s.Score(), out)
	case "play":
		var q int
		if q, err = oneBased(args, 0, "question"); err == nil {
			err = s.PlaySentence(q)
		}
	case "pick":
		err = pick(s, args, out)
	default:
		err = fmt.Errorf("unknown command %q (type help)", cmd)
	}
	if err != nil {
		fmt.Fprintf(out, "error: %v\n", err)
		return false
	}
	if redraw {
		fmt.Fprint(out, renderQuiz(s.Screen(), -1, true))
	}
	return false
}

func pick(s *quiz.Session, args []string, out io.Writer) error {
	q, err := oneBased(args, 0, "question")
	if err != nil {
		return err
	}
	pos, err := oneBased(args, 1, "option")
	if err != nil {
		return err
	}
	sel, err := s.SelectPosition(q, pos)
	if err != nil {
		return err
	}
	if !sel.Recorded {
		fmt.Fprintf(out, "Question %d is already answered: %s\n", q+1, sel.Feedback)
		return nil
	}
	fmt.Fprintf(out, "Question %d: %s\n", q+1, sel.Feedback)
	return nil
}

func printScore(score quiz.Score, out io.Writer) {
	for i, t := range score.Sets {
		if t.Answered == 0 {
			continue
		}
		fmt.Fprintf(out, "Set %d: %d/%d correct, %d answered\n", i+1, t.Correct, t.Total, t.Answered)
	}
	fmt.Fprintln(out, scoreLine(score.Overall))
}

// oneBased parses args[i] as a 1-based number and returns it 0-based.
func oneBased(args []string, i int, what string) (int, error) {
	if i >= len(args) {
		return 0, fmt.Errorf("missing %s number", what)
	}
	n, err := strconv.Atoi(args[i])
	if err != nil {
		return 0, fmt.Errorf("%s %q is not a number", what, args[i])
	}
	return n - 1, nil
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package quiz

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"testing"

	"github.com/cucumber/godog"

	"github.com/pdiddy/proofquiz/internal/bank"
	"github.com/pdiddy/proofquiz/pkg/types"
)

func TestQuizFeatures(t *testing.T) {
	suite := godog.TestSuite{
		Name:                "quiz",
		ScenarioInitializer: initializeQuizScenario,
		Options: &godog.Options{
			Format:   "progress",
			Paths:    []string{filepath.Join("testdata", "features")},
			Output:   io.Discard,
			TestingT: t,
		},
	}
	if suite.Run() != 0 {
		t.Fatal("quiz features failed")
	}
}

// quizFeature holds scenario state.
type quizFeature struct {
	questions []types.Question
	session   *Session
}

func initializeQuizScenario(ctx *godog.ScenarioContext) {
	f := &quizFeature{}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		*f = quizFeature{}
		return ctx, nil
	})

	ctx.Step(`^a bank of (\d+) questions$`, f.aBankOfQuestions)
	ctx.Step(`^the quiz (?:starts|has started)$`, f.theQuizStarts)
	ctx.Step(`^there are (\d+) sets$`, f.thereAreSets)
	ctx.Step(`^sets (\d+) to (\d+) have (\d+) questions each$`, f.setsHaveQuestionsEach)
	ctx.Step(`^set (\d+) has (\d+) questions$`, f.setHasQuestions)
	ctx.Step(`^I open set (\d+)$`, f.iOpenSet)
	ctx.Step(`^I pick the correct option for question (\d+)$`, f.iPickCorrect)
	ctx.Step(`^I pick the other option for question (\d+)$`, f.iPickOther)
	ctx.Step(`^question (\d+) shows "([^"]*)"$`, f.questionShows)
	ctx.Step(`^(\d+) questions? of set (\d+) (?:is|are) answered$`, f.questionsAnswered)
	ctx.Step(`^(Back|Next) is (enabled|disabled)$`, f.buttonState)
	ctx.Step(`^I press (Back|Next|Home)$`, f.iPress)
	ctx.Step(`^the open set is (\d+)$`, f.theOpenSetIs)
	ctx.Step(`^the set picker is shown$`, f.theSetPickerIsShown)
}

func (f *quizFeature) aBankOfQuestions(n int) error {
	f.questions = syntheticBank(n)
	return nil
}

func (f *quizFeature) theQuizStarts() error {
	s, err := NewSession(bank.Partition(f.questions, bank.DefaultSetSize), Options{Seed: 7})
	f.session = s
	return err
}

func (f *quizFeature) thereAreSets(n int) error {
	if got := len(f.session.Sets()); got != n {
		return fmt.Errorf("got %d sets, want %d", got, n)
	}
	return nil
}

func (f *quizFeature) setsHaveQuestionsEach(from, to, n int) error {
	for i := from; i <= to; i++ {
		if err := f.setHasQuestions(i, n); err != nil {
			return err
		}
	}
	return nil
}

func (f *quizFeature) setHasQuestions(set, n int) error {
	if got := f.session.Sets()[set-1].Len(); got != n {
		return fmt.Errorf("set %d has %d questions, want %d", set, got, n)
	}
	return nil
}

func (f *quizFeature) iOpenSet(set int) error {
	return f.session.Open(set - 1)
}

func (f *quizFeature) current(q int) types.Question {
	return f.session.Sets()[f.session.View().Set].Questions[q-1]
}

func (f *quizFeature) iPickCorrect(q int) error {
	_, err := f.session.SelectOption(q-1, f.current(q).CorrectIndex)
	return err
}

func (f *quizFeature) iPickOther(q int) error {
	_, err := f.session.SelectOption(q-1, 1-f.current(q).CorrectIndex)
	return err
}

func (f *quizFeature) questionShows(q int, want string) error {
	card := f.session.Screen().Cards[q-1]
	if got := card.Feedback.String(); got != want {
		return fmt.Errorf("question %d shows %q, want %q", q, got, want)
	}
	return nil
}

func (f *quizFeature) questionsAnswered(n, set int) error {
	if got := f.session.Answers().Answered(set - 1); got != n {
		return fmt.Errorf("set %d has %d answered, want %d", set, got, n)
	}
	return nil
}

func (f *quizFeature) buttonState(name, state string) error {
	screen := f.session.Screen()
	b := screen.Back
	if name == "Next" {
		b = screen.Next
	}
	if want := state == "disabled"; b.Disabled != want {
		return fmt.Errorf("%s disabled=%v, want %s", name, b.Disabled, state)
	}
	return nil
}

func (f *quizFeature) iPress(name string) error {
	switch name {
	case "Back":
		return f.session.Back()
	case "Next":
		return f.session.Next()
	default:
		return f.session.Home()
	}
}

func (f *quizFeature) theOpenSetIs(set int) error {
	if v := f.session.View(); v != SetView(set-1) {
		return fmt.Errorf("view is %s, want set %d", v, set)
	}
	return nil
}

func (f *quizFeature) theSetPickerIsShown() error {
	if v := f.session.View(); v != Home {
		return fmt.Errorf("view is %s, want home", v)
	}
	return nil
}

package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/proofquiz/internal/bank"
	"github.com/pdiddy/proofquiz/internal/quiz"
	"github.com/pdiddy/proofquiz/internal/speech"
	"github.com/pdiddy/proofquiz/internal/ui"
	"github.com/pdiddy/proofquiz/pkg/types"
)

var quizCmd = &cobra.Command{
	Use:   "quiz",
	Short: "Run the listening quiz",
	Long: `Quiz partitions the question bank into sets of ten. Open a set, play a
sentence and pick the word you heard. Each question can be answered once;
the answer is checked immediately.

Sentences are spoken by the first engine found on PATH (espeak-ng, espeak,
spd-say, say). With --no-audio or speech.engine=none the sentence is
printed instead of spoken.`,
	RunE: runQuiz,
}

var quizSetsCmd = &cobra.Command{
	Use:   "sets",
	Short: "List the question sets of the bank",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(viper.GetViper())
		if err != nil {
			return err
		}
		sets, err := loadSets(cfg.Quiz)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		for _, b := range quiz.Render(quiz.State{View: quiz.Home, Sets: sets}).Sets {
			fmt.Fprintln(out, b.Label)
		}
		return nil
	},
}

func init() {
	quizCmd.PersistentFlags().String("bank", "", "question bank file, YAML or JSON (default: built-in bank)")
	quizCmd.PersistentFlags().Int("set-size", 0, "questions per set (default 10)")
	quizCmd.PersistentFlags().String("category", "", "only use questions of this category")
	quizCmd.Flags().Int64("seed", 0, "seed for option order (default: clock)")
	quizCmd.Flags().Bool("no-audio", false, "print sentences instead of speaking them")

	_ = viper.BindPFlag("quiz.bank", quizCmd.PersistentFlags().Lookup("bank"))
	_ = viper.BindPFlag("quiz.set_size", quizCmd.PersistentFlags().Lookup("set-size"))
	_ = viper.BindPFlag("quiz.category", quizCmd.PersistentFlags().Lookup("category"))
	_ = viper.BindPFlag("quiz.seed", quizCmd.Flags().Lookup("seed"))

	quizCmd.AddCommand(quizSetsCmd)
	rootCmd.AddCommand(quizCmd)
}

// loadSets reads, filters and partitions the configured bank.
func loadSets(cfg types.QuizConfig) ([]types.QuestionSet, error) {
	questions, err := bank.Resolve(cfg.Bank)
	if err != nil {
		return nil, err
	}
	if cfg.Category != "" {
		filtered, err := bank.Filter(questions, cfg.Category)
		if err != nil {
			return nil, fmt.Errorf("%w (categories: %v)", err, bank.Categories(questions))
		}
		questions = filtered
	}
	return bank.Partition(questions, cfg.SetSize), nil
}

func runQuiz(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(viper.GetViper())
	if err != nil {
		return err
	}
	sets, err := loadSets(cfg.Quiz)
	if err != nil {
		return err
	}

	out, errOut := cmd.OutOrStdout(), cmd.ErrOrStderr()
	decision, err := ui.ResolveMode(cfg.UI.Mode, out)
	if err != nil {
		return err
	}
	if decision.Warning != "" {
		fmt.Fprintln(errOut, decision.Warning)
	}

	// In live mode background output goes to the status line.
	var notices chan string
	sentenceOut, warnOut := out, errOut
	if decision.Live {
		notices = make(chan string, 16)
		sentenceOut, warnOut = ui.NoticeWriter(notices), ui.NoticeWriter(notices)
	}

	noAudio, _ := cmd.Flags().GetBool("no-audio")
	engineName := cfg.Speech.Engine
	if noAudio {
		engineName = types.EngineNone
	}

	opts := quiz.Options{Seed: cfg.Quiz.Seed}
	speaker, err := newSpeaker(engineName, cfg.Speech.Lang, sentenceOut, warnOut)
	if err != nil {
		return err
	}
	if speaker != nil {
		defer speaker.Stop()
		opts.Player = speaker
	}

	session, err := quiz.NewSession(sets, opts)
	if err != nil {
		return err
	}

	if decision.Live {
		return ui.RunQuiz(session, ui.QuizOptions{NoColor: cfg.UI.NoColor, Notices: notices})
	}
	return ui.RunQuizPlain(session, cmd.InOrStdin(), out)
}

// newSpeaker detects the configured engine. A missing engine in auto mode
// is a warning and the quiz runs without audio; it returns nil then.
func newSpeaker(name types.SpeechEngineName, lang string, sentenceOut, warnOut io.Writer) (*speech.Speaker, error) {
	engine, err := speech.Detect(name, sentenceOut)
	if errors.Is(err, speech.ErrNoEngine) && (name == "" || name == types.EngineAuto) {
		fmt.Fprintf(warnOut, "warning: %v; use --no-audio to print sentences\n", err)
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return speech.NewSpeaker(engine, speech.Options{
		Lang: lang,
		OnError: func(err error) {
			fmt.Fprintf(warnOut, "speech: %v\n", err)
		},
	}), nil
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package speech plays quiz sentences through a local text-to-speech
// engine. Engines are command-line synthesizers found on PATH; the Speaker
// owns the single playback slot.
package speech

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"

	"github.com/pdiddy/proofquiz/pkg/types"
)

// ErrNoEngine is returned when no synthesizer is available.
var ErrNoEngine = errors.New("no speech engine available")

// Engine speaks text in a language. Speak blocks until playback ends or ctx
// is cancelled; cancelling stops the audio.
type Engine interface {
	// Name returns the engine name (e.g. "espeak-ng").
	Name() string

	// Available reports whether the engine binary exists on PATH.
	Available() bool

	// Speak plays text with the given BCP 47 language tag.
	Speak(ctx context.Context, text, lang string) error
}

// executor abstracts command execution for testing.
type executor interface {
	LookPath(file string) (string, error)
	Run(ctx context.Context, name string, args ...string) error
}

// osExecutor is the production executor backed by os/exec.
type osExecutor struct{}

func (o *osExecutor) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

func (o *osExecutor) Run(ctx context.Context, name string, args ...string) error {
	return exec.CommandContext(ctx, name, args...).Run()
}

// commandEngine implements Engine for one synthesizer binary. The engines
// differ only in binary name and in how text and language map to argv.
type commandEngine struct {
	bin  string
	argv func(text, lang string) []string
	exec executor
}

func (e *commandEngine) Name() string { return e.bin }

func (e *commandEngine) Available() bool {
	_, err := e.exec.LookPath(e.bin)
	return err == nil
}

func (e *commandEngine) Speak(ctx context.Context, text, lang string) error {
	if err := e.exec.Run(ctx, e.bin, e.argv(text, lang)...); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("running %s: %w", e.bin, err)
	}
	return nil
}

// espeakVoice maps "en-US" to the espeak voice name "en-us".
func espeakVoice(lang string) string {
	return strings.ToLower(lang)
}

// primarySubtag maps "en-US" to "en".
func primarySubtag(lang string) string {
	primary, _, _ := strings.Cut(lang, "-")
	return strings.ToLower(primary)
}

func newEspeakEngine(bin string, exec executor) *commandEngine {
	return &commandEngine{
		bin: bin,
		argv: func(text, lang string) []string {
			return []string{"-v", espeakVoice(lang), text}
		},
		exec: exec,
	}
}

func newSpdSayEngine(exec executor) *commandEngine {
	return &commandEngine{
		bin: string(types.EngineSpdSay),
		argv: func(text, lang string) []string {
			// -w waits for the message so cancelling the process ends it.
			return []string{"-w", "-l", primarySubtag(lang), text}
		},
		exec: exec,
	}
}

func newSayEngine(exec executor) *commandEngine {
	return &commandEngine{
		bin: string(types.EngineSay),
		argv: func(text, _ string) []string {
			return []string{text}
		},
		exec: exec,
	}
}

// TextEngine writes the sentence instead of speaking it. It backs
// --no-audio and terminals without a synthesizer.
type TextEngine struct {
	W io.Writer
}

func (t *TextEngine) Name() string    { return string(types.EngineNone) }
func (t *TextEngine) Available() bool { return true }

func (t *TextEngine) Speak(ctx context.Context, text, _ string) error {
	if t.W == nil {
		return nil
	}
	_, err := fmt.Fprintf(t.W, "[sentence] %s\n", text)
	return err
}

var defaultExec = &osExecutor{}

// candidates lists engines in detection order.
func candidates(exec executor) []*commandEngine {
	return []*commandEngine{
		newEspeakEngine(string(types.EngineEspeakNG), exec),
		newEspeakEngine(string(types.EngineEspeak), exec),
		newSpdSayEngine(exec),
		newSayEngine(exec),
	}
}

// Detect resolves the configured engine. "auto" (or empty) tries espeak-ng,
// espeak, spd-say and say in that order. "none" returns a TextEngine that
// writes to w.
func Detect(name types.SpeechEngineName, w io.Writer) (Engine, error) {
	return detect(name, w, defaultExec)
}

func detect(name types.SpeechEngineName, w io.Writer, exec executor) (Engine, error) {
	if name == types.EngineNone {
		return &TextEngine{W: w}, nil
	}
	all := candidates(exec)
	if name == "" || name == types.EngineAuto {
		for _, e := range all {
			if e.Available() {
				return e, nil
			}
		}
		names := make([]string, len(all))
		for i, e := range all {
			names[i] = e.bin
		}
		return nil, fmt.Errorf("%w: none of %s found on PATH", ErrNoEngine, strings.Join(names, ", "))
	}
	for _, e := range all {
		if e.bin != string(name) {
			continue
		}
		if !e.Available() {
			return nil, fmt.Errorf("%w: %s not found on PATH", ErrNoEngine, e.bin)
		}
		return e, nil
	}
	return nil, fmt.Errorf("unknown speech engine %q (expected auto|espeak-ng|espeak|spd-say|say|none)", name)
}

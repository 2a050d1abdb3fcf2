// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package speech

import (
	"context"
	"sync"
)

// DefaultLang is the language every sentence is spoken in.
const DefaultLang = "en-US"

// Speaker is the single playback slot. Play interrupts whatever is being
// spoken and replaces it, so at most one utterance is audible.
type Speaker struct {
	engine  Engine
	lang    string
	onError func(error)

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// Options configures a Speaker.
type Options struct {
	// Lang defaults to DefaultLang.
	Lang string

	// OnError receives playback failures of utterances that were not
	// interrupted. It runs on the playback goroutine.
	OnError func(error)
}

// NewSpeaker returns a Speaker that plays through engine.
func NewSpeaker(engine Engine, opts Options) *Speaker {
	lang := opts.Lang
	if lang == "" {
		lang = DefaultLang
	}
	return &Speaker{engine: engine, lang: lang, onError: opts.OnError}
}

// Engine returns the engine in use.
func (s *Speaker) Engine() Engine { return s.engine }

// Play cancels the current utterance, waits for it to stop and starts
// speaking text. It does not wait for playback to finish.
func (s *Speaker) Play(text string) error {
	if s.engine == nil {
		return ErrNoEngine
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopLocked()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	s.cancel, s.done = cancel, done

	go func() {
		defer close(done)
		err := s.engine.Speak(ctx, text, s.lang)
		if err != nil && ctx.Err() == nil && s.onError != nil {
			s.onError(err)
		}
	}()
	return nil
}

// Stop interrupts the current utterance, if any, and waits for it to end.
func (s *Speaker) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopLocked()
}

func (s *Speaker) stopLocked() {
	if s.cancel == nil {
		return
	}
	s.cancel()
	<-s.done
	s.cancel, s.done = nil, nil
}

// Wait blocks until the current utterance finishes on its own.
func (s *Speaker) Wait() {
	s.mu.Lock()
	done := s.done
	s.mu.Unlock()
	if done != nil {
		<-done
	}
}

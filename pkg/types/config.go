package types

import "time"

// HTTPConfig holds shared HTTP settings for the review backend client.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "proofquiz/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent" mapstructure:"user_agent"`
}

// ReviewConfig holds settings for the upload, download and check flow.
type ReviewConfig struct {
	HTTPConfig `yaml:",inline" mapstructure:",squash"`

	// BaseURL is the root of the conversion backend (e.g. "http://127.0.0.1:5000").
	BaseURL string `json:"base_url" yaml:"base_url" mapstructure:"base_url"`

	// DownloadDir is where accepted downloads are written.
	DownloadDir string `json:"download_dir" yaml:"download_dir" mapstructure:"download_dir"`

	// Token is sent as a bearer token when set. Loaded from .secrets/review-token.
	Token string `json:"-" yaml:"-" mapstructure:"token"`
}

// QuizConfig holds settings for the listening quiz.
type QuizConfig struct {
	// Bank is a YAML or JSON question file. Empty selects the built-in bank.
	Bank string `json:"bank" yaml:"bank" mapstructure:"bank"`

	// SetSize is the number of questions per set (default 10).
	SetSize int `json:"set_size" yaml:"set_size" mapstructure:"set_size"`

	// Seed drives option order randomization. Zero seeds from the clock.
	Seed int64 `json:"seed" yaml:"seed" mapstructure:"seed"`

	// Category restricts the bank to one category when non-empty.
	Category string `json:"category" yaml:"category" mapstructure:"category"`
}

// SpeechEngineName selects a text-to-speech engine.
type SpeechEngineName string

const (
	EngineAuto     SpeechEngineName = "auto"
	EngineEspeakNG SpeechEngineName = "espeak-ng"
	EngineEspeak   SpeechEngineName = "espeak"
	EngineSpdSay   SpeechEngineName = "spd-say"
	EngineSay      SpeechEngineName = "say"
	EngineNone     SpeechEngineName = "none"
)

// SpeechConfig holds text-to-speech settings.
type SpeechConfig struct {
	// Engine selects the synthesizer; "auto" probes PATH.
	Engine SpeechEngineName `json:"engine" yaml:"engine" mapstructure:"engine"`

	// Lang is the BCP 47 language tag passed to the engine (default "en-US").
	Lang string `json:"lang" yaml:"lang" mapstructure:"lang"`
}

// UIMode selects between the live terminal UI and line-oriented output.
type UIMode string

const (
	UIAuto  UIMode = "auto"
	UILive  UIMode = "live"
	UIPlain UIMode = "plain"
)

// UIConfig holds presentation settings.
type UIConfig struct {
	Mode    UIMode `json:"mode" yaml:"mode" mapstructure:"mode"`
	NoColor bool   `json:"no_color" yaml:"no_color" mapstructure:"no_color"`
}

// Config groups every section of proofquiz.yaml.
type Config struct {
	Review ReviewConfig `json:"review" yaml:"review" mapstructure:"review"`
	Quiz   QuizConfig   `json:"quiz" yaml:"quiz" mapstructure:"quiz"`
	Speech SpeechConfig `json:"speech" yaml:"speech" mapstructure:"speech"`
	UI     UIConfig     `json:"ui" yaml:"ui" mapstructure:"ui"`
}

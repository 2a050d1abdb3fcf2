// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the proofquiz CLI: a listening quiz
// and a PDF to LaTeX review client.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/proofquiz/internal/secrets"
	"github.com/pdiddy/proofquiz/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds credentials loaded from .secrets/ at startup.
var loadedSecrets secrets.Store

// rootCmd is the base command for the proofquiz CLI.
var rootCmd = &cobra.Command{
	Use:   "proofquiz",
	Short: "Listening quiz and LaTeX proofreading client",
	Long: `proofquiz bundles two small front ends.

The quiz plays an English sentence aloud and asks which of two similar
sounding words it contains. Questions come in sets of ten.

The review commands upload a PDF to a conversion backend, download the
converted LaTeX file and ask the backend to check it for mistakes.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		s, err := secrets.Load(secrets.DefaultDir, cmd.ErrOrStderr())
		if err != nil {
			return err
		}
		loadedSecrets = s
		if len(s) > 0 {
			fmt.Fprintf(cmd.ErrOrStderr(), "Loaded secrets: %v\n", s.Keys())
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./proofquiz.yaml or ~/.config/proofquiz/config.yaml)")
	rootCmd.PersistentFlags().String("ui", "", "ui mode: auto, live or plain")
	rootCmd.PersistentFlags().Bool("no-color", false, "disable colors in the live UI")

	_ = viper.BindPFlag("ui.mode", rootCmd.PersistentFlags().Lookup("ui"))
	_ = viper.BindPFlag("ui.no_color", rootCmd.PersistentFlags().Lookup("no-color"))
}

// setDefaults registers the default of every configuration key.
func setDefaults(v *viper.Viper) {
	v.SetDefault("review.base_url", "http://127.0.0.1:5000")
	v.SetDefault("review.timeout", 60*time.Second)
	v.SetDefault("review.user_agent", "proofquiz/"+version)
	v.SetDefault("review.download_dir", ".")
	v.SetDefault("review.token", "")
	v.SetDefault("quiz.bank", "")
	v.SetDefault("quiz.set_size", 10)
	v.SetDefault("quiz.seed", 0)
	v.SetDefault("quiz.category", "")
	v.SetDefault("speech.engine", string(types.EngineAuto))
	v.SetDefault("speech.lang", "en-US")
	v.SetDefault("ui.mode", string(types.UIAuto))
	v.SetDefault("ui.no_color", false)
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("proofquiz")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "proofquiz"))
		}
	}

	setDefaults(viper.GetViper())
	viper.SetEnvPrefix("PROOFQUIZ")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// loadConfig decodes the merged configuration of v.
func loadConfig(v *viper.Viper) (types.Config, error) {
	var cfg types.Config
	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("decoding configuration: %w", err)
	}
	if cfg.Review.Token == "" {
		cfg.Review.Token = loadedSecrets.Default(secrets.ReviewToken, "")
	}
	return cfg, nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

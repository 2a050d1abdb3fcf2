package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/proofquiz/internal/review"
	"github.com/pdiddy/proofquiz/internal/ui"
	"github.com/pdiddy/proofquiz/pkg/types"
)

var reviewCmd = &cobra.Command{
	Use:   "review [FILE]",
	Short: "Convert a PDF to LaTeX and check it for mistakes",
	Long: `Review talks to the conversion backend (review.base_url). Without a
subcommand it opens an interactive flow: upload a PDF, optionally download
the converted LaTeX file, then check it for mistakes.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runReview,
}

var reviewUploadCmd = &cobra.Command{
	Use:   "upload FILE...",
	Short: "Upload PDF files for conversion",
	Long: `Upload sends each PDF to the backend and prints the identifier of the
converted document. With --download the document is saved to the download
directory; without either flag you are asked when stdin is a terminal.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runReviewUpload,
}

var reviewCheckCmd = &cobra.Command{
	Use:   "check ID",
	Short: "Check a converted document for mistakes",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, _, err := reviewClient()
		if err != nil {
			return err
		}
		issues, err := client.Check(cmd.Context(), args[0])
		if err != nil {
			return reviewError(err, review.MsgCheckFailed)
		}
		review.WriteIssues(cmd.OutOrStdout(), issues)
		return nil
	},
}

var reviewDownloadCmd = &cobra.Command{
	Use:   "download ID",
	Short: "Download a converted document",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, cfg, err := reviewClient()
		if err != nil {
			return err
		}
		path, err := client.Download(cmd.Context(), args[0], cfg.DownloadDir)
		if err != nil {
			return reviewError(err, "download failed")
		}
		fmt.Fprintf(cmd.OutOrStdout(), "saved: %s\n", path)
		return nil
	},
}

func init() {
	reviewCmd.PersistentFlags().String("base-url", "", "conversion backend URL (default http://127.0.0.1:5000)")
	reviewCmd.PersistentFlags().Duration("timeout", 0, "HTTP request timeout (default 60s)")
	reviewCmd.PersistentFlags().String("dir", "", "download directory (default .)")
	reviewUploadCmd.Flags().Bool("download", false, "download each converted document")
	reviewUploadCmd.Flags().Bool("no-download", false, "never download, do not ask")
	reviewUploadCmd.MarkFlagsMutuallyExclusive("download", "no-download")

	_ = viper.BindPFlag("review.base_url", reviewCmd.PersistentFlags().Lookup("base-url"))
	_ = viper.BindPFlag("review.timeout", reviewCmd.PersistentFlags().Lookup("timeout"))
	_ = viper.BindPFlag("review.download_dir", reviewCmd.PersistentFlags().Lookup("dir"))

	reviewCmd.AddCommand(reviewUploadCmd)
	reviewCmd.AddCommand(reviewCheckCmd)
	reviewCmd.AddCommand(reviewDownloadCmd)
	rootCmd.AddCommand(reviewCmd)
}

func reviewClient() (*review.Client, types.ReviewConfig, error) {
	cfg, err := loadConfig(viper.GetViper())
	if err != nil {
		return nil, types.ReviewConfig{}, err
	}
	return review.NewClient(cfg.Review), cfg.Review, nil
}

// reviewError maps a review failure to the message shown to the user.
// Cobra prefixes it with "Error: ".
func reviewError(err error, fallback string) error {
	var ve *review.ValidationError
	if errors.As(err, &ve) {
		return ve
	}
	var te *review.TransportError
	if errors.As(err, &te) && te.ServerReported() {
		return errors.New(te.Server)
	}
	return fmt.Errorf("%s: %w", fallback, err)
}

func runReview(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(viper.GetViper())
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	decision, err := ui.ResolveMode(cfg.UI.Mode, out)
	if err != nil {
		return err
	}
	if decision.Warning != "" {
		fmt.Fprintln(cmd.ErrOrStderr(), decision.Warning)
	}

	opts := ui.ReviewOptions{NoColor: cfg.UI.NoColor, DownloadDir: cfg.Review.DownloadDir}
	if len(args) == 1 {
		opts.Path = args[0]
	}
	client := review.NewClient(cfg.Review)
	if decision.Live {
		return ui.RunReview(cmd.Context(), client, opts)
	}
	return ui.RunReviewPlain(cmd.Context(), client, opts, cmd.InOrStdin(), out)
}

func runReviewUpload(cmd *cobra.Command, args []string) error {
	client, cfg, err := reviewClient()
	if err != nil {
		return err
	}
	download, _ := cmd.Flags().GetBool("download")
	noDownload, _ := cmd.Flags().GetBool("no-download")

	out := cmd.OutOrStdout()
	opts := review.BatchOptions{Download: download, Dir: cfg.DownloadDir}
	if !download && !noDownload {
		if decision, _ := ui.ResolveMode(types.UIAuto, out); decision.Live {
			opts.Confirm = promptDownload(cmd.InOrStdin(), out)
		}
	}

	result := review.UploadBatch(cmd.Context(), client, client, args, opts, out)
	if result.HasFailures() {
		return fmt.Errorf("%d file(s) failed", result.Failed)
	}
	return nil
}

// promptDownload asks the download question on out for each document.
func promptDownload(in io.Reader, out io.Writer) func(string) bool {
	reader := bufio.NewScanner(in)
	return func(id string) bool {
		fmt.Fprintf(out, "%s [%s] (y/n) ", review.MsgDownloadPrompt, id)
		if !reader.Scan() {
			return false
		}
		answer := strings.ToLower(strings.TrimSpace(reader.Text()))
		return answer == "y" || answer == "yes"
	}
}

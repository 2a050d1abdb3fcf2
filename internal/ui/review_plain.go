// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package ui

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/pdiddy/proofquiz/internal/review"
)

const reviewPlainHelp = `Commands:
  upload PATH   convert a PDF
  y | n         answer the download prompt
  check         check the converted document for errors
  reset         start over
  quit          leave`

// RunReviewPlain drives the review flow from line commands read from in.
func RunReviewPlain(ctx context.Context, backend ReviewBackend, opts ReviewOptions, in io.Reader, out io.Writer) error {
	c := review.NewController(ctx, backend)
	reader := bufio.NewScanner(in)

	if opts.Path != "" {
		plainUpload(c, opts.Path, out)
	}
	for {
		if c.State().PromptVisible {
			fmt.Fprintf(out, "%s (y/n) ", review.MsgDownloadPrompt)
		} else {
			fmt.Fprint(out, "> ")
		}
		if !reader.Scan() {
			break
		}
		line := strings.TrimSpace(reader.Text())
		if line == "" {
			continue
		}
		cmd, arg, _ := strings.Cut(line, " ")
		cmd = strings.ToLower(cmd)
		switch cmd {
		case "quit", "exit", "q":
			return nil
		case "help", "?":
			fmt.Fprintln(out, reviewPlainHelp)
		case "upload", "u":
			plainUpload(c, strings.TrimSpace(arg), out)
		case "y", "yes", "n", "no":
			id := c.State().DocumentID
			if _, ok := c.ConfirmDownload(cmd[0] == 'y'); ok {
				path, err := backend.Download(ctx, id, opts.DownloadDir)
				if err != nil {
					fmt.Fprintf(out, "Download failed: %v\n", err)
					continue
				}
				fmt.Fprintf(out, "Saved %s\n", path)
			}
		case "check", "c":
			if c.State().DocumentID != "" {
				fmt.Fprintln(out, review.MsgCheckingPlace)
			}
			_, _ = c.RunCheck()
			if printAlert(c, out) {
				continue
			}
			for _, r := range review.ResultLines(c.State().Results) {
				fmt.Fprintln(out, r)
			}
		case "reset":
			c.Reset()
		default:
			fmt.Fprintf(out, "unknown command %q (type help)\n", cmd)
		}
	}
	return reader.Err()
}

func plainUpload(c *review.Controller, path string, out io.Writer) {
	if path != "" {
		fmt.Fprintln(out, review.LabelUploading)
	}
	if err := c.SubmitUpload(path); err != nil {
		printAlert(c, out)
		return
	}
	fmt.Fprintf(out, "Converted: %s\n", c.State().DocumentID)
}

// printAlert prints and dismisses a pending alert, reporting whether there was one.
func printAlert(c *review.Controller, out io.Writer) bool {
	alert := c.State().Alert
	if alert == "" {
		return false
	}
	fmt.Fprintln(out, alert)
	c.DismissAlert()
	return true
}

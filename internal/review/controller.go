// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package review drives the PDF upload, download and proofreading flow
// against the conversion backend.
//
// Controller owns the view state. Each operation is split into Begin and
// Finish halves so a UI loop can run the network call elsewhere and apply
// the result later. Every ticket carries the generation it was issued in;
// starting a new upload or resetting the view bumps the generation, and a
// Finish with an older ticket is discarded with ErrStale.
package review

import (
	"context"
	"errors"
	"sync"

	"github.com/pdiddy/proofquiz/pkg/types"
)

// User-facing messages.
const (
	MsgSelectFile     = "Please select a PDF file to upload."
	MsgUploadFirst    = "Please upload a PDF and convert it to LaTeX first."
	MsgUploadFailed   = "An error occurred while uploading the file."
	MsgCheckFailed    = "An error occurred while checking for errors."
	MsgCheckingPlace  = "Checking for errors..."
	MsgNoErrors       = "No errors found."
	MsgDownloadPrompt = "Do you want to download the LaTeX file?"

	LabelUpload    = "Upload"
	LabelUploading = "Uploading..."
	LabelCheck     = "Check for Errors"
	LabelChecking  = "Checking..."
)

var (
	// ErrStale is returned by Finish when a newer generation superseded the ticket.
	ErrStale = errors.New("response superseded by a newer request")

	// ErrBusy is returned by Begin while the same action is in flight.
	ErrBusy = errors.New("request already in flight")
)

// Backend is the remote side of the flow. *Client implements it.
type Backend interface {
	Upload(ctx context.Context, path string) (string, error)
	Check(ctx context.Context, id string) ([]types.Issue, error)
	DownloadURL(id string) string
}

// Results is the content of the result area.
type Results struct {
	// Placeholder is shown while a check is in flight.
	Placeholder string
	// Issues holds the last check outcome; non-nil and empty means no errors.
	Issues []types.Issue
	// Error is an inline transport failure of the last check.
	Error string
}

// State is a snapshot of the review view.
type State struct {
	DocumentID    string
	PromptVisible bool
	Uploading     bool
	Checking      bool
	Alert         string
	Results       Results
	Generation    uint64
}

// UploadLabel is the caption of the upload control.
func (s State) UploadLabel() string {
	if s.Uploading {
		return LabelUploading
	}
	return LabelUpload
}

// CheckLabel is the caption of the check control.
func (s State) CheckLabel() string {
	if s.Checking {
		return LabelChecking
	}
	return LabelCheck
}

// Ticket identifies one in-flight request.
type Ticket struct {
	ctx        context.Context
	generation uint64
	// Path is the file being uploaded.
	Path string
	// DocumentID is the document being checked.
	DocumentID string
}

// Context is cancelled when the ticket's generation is superseded.
func (t Ticket) Context() context.Context {
	if t.ctx == nil {
		return context.Background()
	}
	return t.ctx
}

// Generation returns the generation the ticket was issued in.
func (t Ticket) Generation() uint64 { return t.generation }

// Controller holds the review view state. It is safe for concurrent use.
type Controller struct {
	backend Backend

	mu     sync.Mutex
	state  State
	base   context.Context
	cancel context.CancelFunc
	genCtx context.Context
}

// NewController returns a controller in the initial state. Requests issued
// by the controller derive their context from ctx.
func NewController(ctx context.Context, backend Backend) *Controller {
	c := &Controller{backend: backend, base: ctx}
	c.genCtx, c.cancel = context.WithCancel(ctx)
	return c
}

// State returns a copy of the current state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	s := c.state
	if s.Results.Issues != nil {
		s.Results.Issues = append([]types.Issue{}, s.Results.Issues...)
	}
	return s
}

// bumpLocked starts a new generation, aborting requests of the old one.
func (c *Controller) bumpLocked() {
	c.cancel()
	c.genCtx, c.cancel = context.WithCancel(c.base)
	c.state.Generation++
}

func (c *Controller) ticketLocked() Ticket {
	return Ticket{ctx: c.genCtx, generation: c.state.Generation}
}

// Reset returns the view to its initial state. In-flight requests are
// cancelled and their responses discarded.
func (c *Controller) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.bumpLocked()
	c.state = State{Generation: c.state.Generation}
}

// DismissAlert clears the alert line.
func (c *Controller) DismissAlert() {
	c.mu.Lock()
	c.state.Alert = ""
	c.mu.Unlock()
}

// BeginUpload validates path and marks the upload in flight. A pending
// check belongs to the previous generation and is abandoned.
func (c *Controller) BeginUpload(path string) (Ticket, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state.Uploading {
		return Ticket{}, ErrBusy
	}
	f, err := openPDF(path)
	if err != nil {
		c.state.Alert = err.Error()
		return Ticket{}, err
	}
	f.Close()

	c.bumpLocked()
	if c.state.Checking {
		c.state.Checking = false
		c.state.Results = Results{}
	}
	c.state.Uploading = true
	c.state.Alert = ""
	t := c.ticketLocked()
	t.Path = path
	return t, nil
}

// FinishUpload applies the outcome of an upload. On success the identifier
// is stored and the download prompt revealed. On failure the alert is set
// and the rest of the state is left unchanged.
func (c *Controller) FinishUpload(t Ticket, id string, err error) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if t.generation != c.state.Generation {
		return ErrStale
	}
	c.state.Uploading = false
	if err != nil {
		c.state.Alert = alertFor(err, MsgUploadFailed)
		return err
	}
	c.state.DocumentID = id
	c.state.PromptVisible = true
	return nil
}

// SubmitUpload runs a whole upload synchronously.
func (c *Controller) SubmitUpload(path string) error {
	t, err := c.BeginUpload(path)
	if err != nil {
		return err
	}
	id, err := c.backend.Upload(t.Context(), t.Path)
	return c.FinishUpload(t, id, err)
}

// ConfirmDownload answers the download prompt. It hides the prompt and,
// when accepted with a stored identifier, returns the retrieval URL. The
// identifier stays available for checks either way.
func (c *Controller) ConfirmDownload(accept bool) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.state.PromptVisible = false
	if !accept || c.state.DocumentID == "" {
		return "", false
	}
	return c.backend.DownloadURL(c.state.DocumentID), true
}

// BeginCheck marks a check in flight. Without a stored identifier it
// returns a ValidationError and sets the alert.
func (c *Controller) BeginCheck() (Ticket, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state.Checking {
		return Ticket{}, ErrBusy
	}
	if c.state.DocumentID == "" {
		err := missingDocument()
		c.state.Alert = err.Error()
		return Ticket{}, err
	}
	c.state.Checking = true
	c.state.Alert = ""
	c.state.Results = Results{Placeholder: MsgCheckingPlace}
	t := c.ticketLocked()
	t.DocumentID = c.state.DocumentID
	return t, nil
}

// FinishCheck applies the outcome of a check. A server-reported error
// becomes an alert; any other failure is shown inline in the result area.
func (c *Controller) FinishCheck(t Ticket, issues []types.Issue, err error) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if t.generation != c.state.Generation {
		return ErrStale
	}
	c.state.Checking = false
	if err != nil {
		var te *TransportError
		if errors.As(err, &te) && te.ServerReported() {
			c.state.Results = Results{}
			c.state.Alert = alertFor(err, MsgCheckFailed)
		} else {
			c.state.Results = Results{Error: MsgCheckFailed}
		}
		return err
	}
	if issues == nil {
		issues = []types.Issue{}
	}
	c.state.Results = Results{Issues: append([]types.Issue{}, issues...)}
	return nil
}

// RunCheck runs a whole check synchronously and returns the issues found.
func (c *Controller) RunCheck() ([]types.Issue, error) {
	t, err := c.BeginCheck()
	if err != nil {
		return nil, err
	}
	issues, err := c.backend.Check(t.Context(), t.DocumentID)
	if err := c.FinishCheck(t, issues, err); err != nil {
		return nil, err
	}
	return issues, nil
}

// alertFor maps an error to its alert text.
func alertFor(err error, fallback string) string {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Message
	}
	var te *TransportError
	if errors.As(err, &te) && te.ServerReported() {
		return "Error: " + te.Server
	}
	return fallback
}

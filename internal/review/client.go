// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package review

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pdiddy/proofquiz/internal/httputil"
	"github.com/pdiddy/proofquiz/pkg/types"
)

const (
	uploadPath   = "/upload"
	checkPath    = "/check"
	downloadPath = "/uploads/"

	// FileField is the multipart field carrying the PDF.
	FileField = "file"

	defaultTimeout = 60 * time.Second
)

// Client talks to the conversion and proofreading backend.
type Client struct {
	baseURL string
	http    *http.Client
	headers httputil.Headers
}

// NewClient returns a client for cfg. A zero timeout selects 60s.
func NewClient(cfg types.ReviewConfig) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		headers: httputil.Headers{UserAgent: cfg.UserAgent, Token: cfg.Token},
	}
}

// WithHTTPClient replaces the underlying HTTP client. Used by tests.
func (c *Client) WithHTTPClient(hc *http.Client) *Client {
	c.http = hc
	return c
}

// Upload sends the PDF at path as multipart field "file" and returns the
// identifier of the converted document.
func (c *Client) Upload(ctx context.Context, path string) (string, error) {
	f, err := openPDF(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile(FileField, filepath.Base(path))
	if err != nil {
		return "", &TransportError{Op: "upload", Err: err}
	}
	if _, err := io.Copy(part, f); err != nil {
		return "", &TransportError{Op: "upload", Err: fmt.Errorf("reading %s: %w", path, err)}
	}
	if err := mw.Close(); err != nil {
		return "", &TransportError{Op: "upload", Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+uploadPath, &body)
	if err != nil {
		return "", &TransportError{Op: "upload", Err: err}
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	var out types.UploadResponse
	if err := c.doJSON(req, &out); err != nil {
		return "", &TransportError{Op: "upload", Err: err}
	}
	if out.Error != "" {
		return "", &TransportError{Op: "upload", Server: out.Error}
	}
	if out.LatexFile == "" {
		return "", &TransportError{Op: "upload", Err: errors.New("response has neither latex_file nor error")}
	}
	return out.LatexFile, nil
}

// Check asks the backend to proofread the converted document id.
func (c *Client) Check(ctx context.Context, id string) ([]types.Issue, error) {
	if id == "" {
		return nil, missingDocument()
	}
	req, err := httputil.NewJSONRequest(ctx, http.MethodPost, c.baseURL+checkPath, types.CheckRequest{LatexFile: id})
	if err != nil {
		return nil, &TransportError{Op: "check", Err: err}
	}

	var out types.CheckResponse
	if err := c.doJSON(req, &out); err != nil {
		return nil, &TransportError{Op: "check", Err: err}
	}
	if out.Error != "" {
		return nil, &TransportError{Op: "check", Server: out.Error}
	}
	if out.Errors == nil {
		out.Errors = []types.Issue{}
	}
	return out.Errors, nil
}

// DownloadURL returns the retrieval URL of the converted document id.
func (c *Client) DownloadURL(id string) string {
	return c.baseURL + downloadPath + url.PathEscape(id)
}

// Download fetches the converted document id into dir and returns the
// written path. The file is written to a temporary name and renamed so a
// failed transfer leaves no partial output.
func (c *Client) Download(ctx context.Context, id, dir string) (string, error) {
	if id == "" {
		return "", missingDocument()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.DownloadURL(id), nil)
	if err != nil {
		return "", &TransportError{Op: "download", Err: err}
	}
	c.headers.Apply(req)
	req.Header.Set("Accept", "*/*")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", &TransportError{Op: "download", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var payload struct {
			Error string `json:"error"`
		}
		if derr := httputil.DecodeJSON(resp, &payload); derr == nil && payload.Error != "" {
			return "", &TransportError{Op: "download", Server: payload.Error}
		}
		return "", &TransportError{Op: "download", Err: fmt.Errorf("HTTP %d", resp.StatusCode)}
	}

	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating download directory: %w", err)
	}
	dest := filepath.Join(dir, filepath.Base(id))
	tmp, err := os.CreateTemp(dir, ".download-*.tmp")
	if err != nil {
		return "", fmt.Errorf("creating temp file: %w", err)
	}
	if _, err := io.Copy(tmp, resp.Body); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", &TransportError{Op: "download", Err: err}
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), dest); err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("renaming download: %w", err)
	}
	return dest, nil
}

func (c *Client) doJSON(req *http.Request, v any) error {
	c.headers.Apply(req)
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	return httputil.DecodeJSON(resp, v)
}

// openPDF rejects an empty path or one that is not a readable regular file.
func openPDF(path string) (*os.File, error) {
	if path == "" {
		return nil, &ValidationError{Field: FileField, Message: MsgSelectFile}
	}
	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		return nil, &ValidationError{Field: FileField, Message: MsgSelectFile}
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, &ValidationError{Field: FileField, Message: MsgSelectFile}
	}
	return f, nil
}

func missingDocument() error {
	return &ValidationError{Field: "latex_file", Message: MsgUploadFirst}
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package review

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
)

// Downloader fetches a converted document into a directory.
type Downloader interface {
	Download(ctx context.Context, id, dir string) (string, error)
}

// BatchOptions controls UploadBatch.
type BatchOptions struct {
	// Download fetches each converted document into Dir.
	Download bool
	Dir      string
	// Confirm, when set and Download is false, answers the download
	// prompt for each converted document.
	Confirm func(id string) bool
}

func (o BatchOptions) wantDownload(id string) bool {
	if o.Download {
		return true
	}
	return o.Confirm != nil && o.Confirm(id)
}

// BatchResult holds the outcome of a batch upload run.
type BatchResult struct {
	Converted  int
	Downloaded int
	Failed     int
	// IDs maps each converted path to its document identifier.
	IDs map[string]string
}

// Total returns the number of files processed.
func (r BatchResult) Total() int {
	return r.Converted + r.Failed
}

// HasFailures reports whether any upload or download failed.
func (r BatchResult) HasFailures() bool {
	return r.Failed > 0
}

// UploadBatch uploads each path, printing per-file status to w and
// returning a summary. Files are processed in order; a failure does not
// stop the batch. d may be nil when opts.Download is false.
func UploadBatch(ctx context.Context, b Backend, d Downloader, paths []string, opts BatchOptions, w io.Writer) BatchResult {
	result := BatchResult{IDs: make(map[string]string)}
	for _, p := range paths {
		name := filepath.Base(p)
		id, err := b.Upload(ctx, p)
		if err != nil {
			fmt.Fprintf(w, "failed:    %s (%v)\n", name, err)
			result.Failed++
			continue
		}
		result.Converted++
		result.IDs[p] = id
		fmt.Fprintf(w, "converted: %s -> %s\n", name, id)

		if d == nil || !opts.wantDownload(id) {
			continue
		}
		dest, err := d.Download(ctx, id, opts.Dir)
		if err != nil {
			fmt.Fprintf(w, "failed:    %s download (%v)\n", id, err)
			result.Failed++
			result.Converted--
			continue
		}
		result.Downloaded++
		fmt.Fprintf(w, "saved:     %s\n", dest)
	}
	if len(paths) > 1 {
		fmt.Fprintf(w, "\nBatch summary: %d converted, %d downloaded, %d failed (total: %d)\n",
			result.Converted, result.Downloaded, result.Failed, result.Total())
	}
	return result
}

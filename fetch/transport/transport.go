// Package transport opens readable byte streams for download URLs.
//
// Two implementations are provided: [HTTP] for http/https URLs and
// [FTP] for ftp URLs. FTP supports opening a stream at a byte offset
// (REST/RETR), which is how interrupted transfers resume.
package transport

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
)

var (
	// ErrResumeNotSupported is returned when a transport is asked to open
	// a stream at a non-zero offset it cannot honor.
	ErrResumeNotSupported = errors.New("transport does not support resuming at an offset")

	// ErrNoFileName is returned when the URL path has no file name
	// component to download.
	ErrNoFileName = errors.New("url path has no file name component")
)

// Stream is an open connection to remote content. Size is the number
// of bytes the stream is expected to yield, or -1 when the transport
// could not determine it.
type Stream struct {
	Body io.ReadCloser
	Size int64
}

// Transport opens a stream for the given URL starting at offset.
// Offset 0 requests the full content.
type Transport interface {
	Open(ctx context.Context, u *url.URL, offset int64) (*Stream, error)
}

// Error is a network-level failure opening or reading remote content.
//
// Resumable reports whether the failure occurred in a resume protocol
// exchange where a fresh, non-resumed download may still succeed. The
// orchestrator uses it for its one-shot resume-to-full fallback;
// everything else is terminal.
type Error struct {
	URL        string
	Op         string
	StatusCode int
	Body       string
	Resumable  bool
	Err        error
}

func (e *Error) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("transport %s %s: status %d, body: %s", e.Op, e.URL, e.StatusCode, e.Body)
	}

	return fmt.Sprintf("transport %s %s: %v", e.Op, e.URL, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

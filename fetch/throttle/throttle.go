// Package throttle bounds the sustained throughput of a byte stream
// using a token bucket limiter.
package throttle

import (
	"context"
	"errors"
	"fmt"
	"io"

	"golang.org/x/time/rate"
)

var (
	ErrMustNotBeZero = errors.New("must be greater than zero")
	ErrWaitingFailed = errors.New("limiter waiting failed")
)

// Config defines the throttler's sustained
// bytes per second and burst size in bytes.
type Config struct {
	BytesPerSec int
	Burst       int
}

// Reader is an io.Reader, using the time/rate token bucket limiter to
// restrict how fast bytes are drawn from the underlying stream. Reads
// never exceed the burst size, so a large caller buffer degrades into
// multiple paced reads rather than one unbounded burst.
type Reader struct {
	ctx     context.Context
	r       io.Reader
	limiter *rate.Limiter
	burst   int
}

// NewReader wraps r with a token bucket of the given sustained rate
// and burst. The context bounds time spent waiting for tokens;
// cancelling it aborts in-flight reads.
func NewReader(ctx context.Context, r io.Reader, bytesPerSec, burst int) (*Reader, error) {
	if bytesPerSec <= 0 || burst <= 0 {
		return nil, fmt.Errorf("bytesPerSec[%d] and burst[%d] %w", bytesPerSec, burst, ErrMustNotBeZero)
	}

	return &Reader{
		ctx:     ctx,
		r:       r,
		limiter: rate.NewLimiter(rate.Limit(bytesPerSec), burst),
		burst:   burst,
	}, nil
}

func (t *Reader) Read(p []byte) (int, error) {
	if len(p) > t.burst {
		p = p[:t.burst]
	}

	n, err := t.r.Read(p)
	if n > 0 {
		if werr := t.limiter.WaitN(t.ctx, n); werr != nil {
			return n, fmt.Errorf("%w: %w", ErrWaitingFailed, werr)
		}
	}

	return n, err
}

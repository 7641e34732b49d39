package fetch

import (
	"errors"
	"fmt"
	"hash"
	"io"
	"log/slog"

	"go.opentelemetry.io/otel/trace"

	"github.com/adamwoolhether/fetchr/fetch/throttle"
	"github.com/adamwoolhether/fetchr/fetch/transport"
)

// Option is a functional option for configuring a [Fetcher] via [Build].
type Option func(*options) error

type options struct {
	httpTransport transport.Transport
	ftpTransport  transport.Transport
	httpOpts      []transport.HTTPOption
	logger        *slog.Logger
	tracer        trace.Tracer
	chunkSize     int
	throttle      *throttle.Config
	progressOut   io.Writer
	progressLog   bool
	newDigest     func() hash.Hash
}

// WithLogger injects a custom [slog.Logger] into the [Fetcher].
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) error {
		if logger == nil {
			return errors.New("logger must not be nil")
		}
		o.logger = logger
		return nil
	}
}

// WithTracer sets the tracer used to span each fetch operation.
// A no-op tracer is used when unset.
func WithTracer(tracer trace.Tracer) Option {
	return func(o *options) error {
		if tracer == nil {
			return errors.New("tracer must not be nil")
		}
		o.tracer = tracer
		return nil
	}
}

// WithChunkSize sets the read chunk size in bytes, bounding memory use
// and setting the granularity of progress updates.
func WithChunkSize(size int) Option {
	return func(o *options) error {
		if size <= 0 {
			return errors.New("chunk size must be greater than zero")
		}
		o.chunkSize = size
		return nil
	}
}

// WithThrottle enables token-bucket bandwidth limiting with the given
// sustained bytes per second and burst size.
func WithThrottle(bytesPerSec, burst int) Option {
	return func(o *options) error {
		if bytesPerSec <= 0 || burst <= 0 {
			return fmt.Errorf("bytesPerSec[%d] and burst[%d] %w", bytesPerSec, burst, throttle.ErrMustNotBeZero)
		}
		o.throttle = &throttle.Config{BytesPerSec: bytesPerSec, Burst: burst}
		return nil
	}
}

// WithProgressWriter renders an interactive progress bar to out during
// transfers, typically os.Stdout. The fetcher is silent by default.
func WithProgressWriter(out io.Writer) Option {
	return func(o *options) error {
		if out == nil {
			return errors.New("progress writer must not be nil")
		}
		o.progressOut = out
		return nil
	}
}

// WithProgressLogging emits structured progress records through the
// fetcher's logger instead of rendering a bar. Suited to
// non-interactive runs.
func WithProgressLogging() Option {
	return func(o *options) error {
		o.progressLog = true
		return nil
	}
}

// WithHTTPOptions configures the default HTTP transport (client,
// timeout, user agent). Ignored when WithHTTPTransport is also given.
func WithHTTPOptions(opts ...transport.HTTPOption) Option {
	return func(o *options) error {
		o.httpOpts = append(o.httpOpts, opts...)
		return nil
	}
}

// WithHTTPTransport replaces the transport used for http and https URLs.
func WithHTTPTransport(t transport.Transport) Option {
	return func(o *options) error {
		if t == nil {
			return errors.New("transport must not be nil")
		}
		o.httpTransport = t
		return nil
	}
}

// WithFTPTransport replaces the transport used for ftp URLs.
func WithFTPTransport(t transport.Transport) Option {
	return func(o *options) error {
		if t == nil {
			return errors.New("transport must not be nil")
		}
		o.ftpTransport = t
		return nil
	}
}

// WithDigest sets the hash constructor used to verify checksums,
// e.g. sha256.New. Default: md5.New, the digest dataset catalogs
// conventionally publish.
func WithDigest(newDigest func() hash.Hash) Option {
	return func(o *options) error {
		if newDigest == nil {
			return errors.New("digest constructor must not be nil")
		}
		o.newDigest = newDigest
		return nil
	}
}

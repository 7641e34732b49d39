package transport

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/url"
	"time"
)

// maxErrBodySize caps the amount of response body read when building
// an error for an unexpected status code. This prevents unbounded
// memory usage when a large response arrives with a wrong status.
const maxErrBodySize = 4 << 10 // 4KB

// HTTP opens streams over http and https using a std-lib
// *http.Client. It sets a default client and transport, which can be
// customized via optional funcs.
type HTTP struct {
	c *http.Client
}

// HTTPOption is a functional option for configuring [HTTP] via [NewHTTP].
type HTTPOption func(*httpOpts) error

type httpOpts struct {
	client    *http.Client
	rt        http.RoundTripper
	timeout   *time.Duration
	userAgent string
}

// WithClient replaces the default [http.Client].
func WithClient(hc *http.Client) HTTPOption {
	return func(o *httpOpts) error {
		if hc == nil {
			return errors.New("client must not be nil")
		}
		o.client = hc
		return nil
	}
}

// WithRoundTripper sets a custom [http.RoundTripper] as the base transport.
func WithRoundTripper(rt http.RoundTripper) HTTPOption {
	return func(o *httpOpts) error {
		if rt == nil {
			return errors.New("transport must not be nil")
		}
		o.rt = rt
		return nil
	}
}

// WithTimeout sets the overall request timeout on the underlying [http.Client].
func WithTimeout(d time.Duration) HTTPOption {
	return func(o *httpOpts) error {
		if d < 0 {
			return errors.New("timeout must not be negative")
		}
		o.timeout = &d
		return nil
	}
}

// WithUserAgent adds a persistent User-Agent header to all outgoing requests.
func WithUserAgent(header string) HTTPOption {
	return func(o *httpOpts) error {
		o.userAgent = header
		return nil
	}
}

// NewHTTP builds an HTTP transport with the provided options.
func NewHTTP(optFns ...HTTPOption) (*HTTP, error) {
	t := &HTTP{c: http.DefaultClient}

	var opts httpOpts
	for _, opt := range optFns {
		if err := opt(&opts); err != nil {
			return nil, err
		}
	}

	if opts.client != nil {
		t.c = opts.client
	}
	if opts.timeout != nil {
		t.c.Timeout = *opts.timeout
	}

	var rt http.RoundTripper
	switch {
	case opts.rt != nil:
		rt = opts.rt
	case opts.client != nil && opts.client.Transport != nil:
		rt = opts.client.Transport
	default:
		rt = http.DefaultTransport
	}
	if opts.userAgent != "" {
		rt = userAgent{value: opts.userAgent, base: rt}
	}
	t.c.Transport = rt

	return t, nil
}

// Open issues a GET for u and returns the response body as a stream.
// The stream size comes from the Content-Length header, -1 when absent
// or unparsable. Opening at a non-zero offset is refused with a
// resumable *Error so the caller can fall back to a full download.
func (t *HTTP) Open(ctx context.Context, u *url.URL, offset int64) (*Stream, error) {
	if offset > 0 {
		return nil, &Error{URL: u.String(), Op: "open", Resumable: true, Err: ErrResumeNotSupported}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, &Error{URL: u.String(), Op: "request", Err: err}
	}

	resp, err := t.c.Do(req)
	if err != nil {
		return nil, &Error{URL: u.String(), Op: "connect", Err: err}
	}

	if resp.StatusCode != http.StatusOK {
		b, rerr := io.ReadAll(io.LimitReader(resp.Body, maxErrBodySize))
		if rerr != nil {
			b = []byte("unable to read body")
		}
		if cerr := resp.Body.Close(); cerr != nil {
			b = append(b, []byte(": "+cerr.Error())...)
		}

		return nil, &Error{
			URL:        u.String(),
			Op:         "status",
			StatusCode: resp.StatusCode,
			Body:       string(b),
			Err:        ErrUnexpectedStatusCode,
		}
	}

	return &Stream{Body: resp.Body, Size: resp.ContentLength}, nil
}

// ErrUnexpectedStatusCode is the sentinel error wrapped by status *Errors.
var ErrUnexpectedStatusCode = errors.New("unexpected status code")

// userAgent is an http.RoundTripper, enabling the persistent User-Agent header.
type userAgent struct {
	value string
	base  http.RoundTripper
}

func (ua userAgent) RoundTrip(r *http.Request) (*http.Response, error) {
	cpy := r.Clone(r.Context())
	cpy.Header.Set("User-Agent", ua.value)
	return ua.base.RoundTrip(cpy)
}

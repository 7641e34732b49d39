// Package fetch downloads dataset files over HTTP(S) and FTP into a
// local directory, resuming interrupted transfers, verifying content
// integrity, and installing completed files atomically.
package fetch

import (
	"context"
	"crypto/md5"
	"errors"
	"fmt"
	"hash"
	"io"
	"log/slog"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/adamwoolhether/fetchr/fetch/progress"
	"github.com/adamwoolhether/fetchr/fetch/throttle"
	"github.com/adamwoolhether/fetchr/fetch/transfer"
	"github.com/adamwoolhether/fetchr/fetch/transport"
)

// PartSuffix marks in-flight downloads. The temporary and final paths
// differ only by this suffix, inside the same directory, so the final
// rename is atomic.
const PartSuffix = ".part"

// Fetcher downloads remote files. Build one with [Build] and reuse it;
// a Fetcher is safe for concurrent fetches of distinct destinations.
// Concurrent fetches of the same destination path are not synchronized
// and will corrupt each other's temp file.
type Fetcher struct {
	http      transport.Transport
	ftp       transport.Transport
	logger    *slog.Logger
	tracer    trace.Tracer
	chunkSize int
	throttle  *throttle.Config
	progOut   io.Writer
	progLog   bool
	newDigest func() hash.Hash
}

// Build constructs a Fetcher with the provided options.
func Build(optFns ...Option) (*Fetcher, error) {
	var opts options
	for _, opt := range optFns {
		if err := opt(&opts); err != nil {
			return nil, fmt.Errorf("applying fetcher option: %w", err)
		}
	}

	f := &Fetcher{
		http:      opts.httpTransport,
		ftp:       opts.ftpTransport,
		logger:    slog.Default(),
		tracer:    noop.NewTracerProvider().Tracer("no-op tracer"),
		chunkSize: transfer.DefaultChunkSize,
		throttle:  opts.throttle,
		progOut:   opts.progressOut,
		progLog:   opts.progressLog,
		newDigest: md5.New,
	}

	if opts.logger != nil {
		f.logger = opts.logger
	}
	if opts.tracer != nil {
		f.tracer = opts.tracer
	}
	if opts.chunkSize > 0 {
		f.chunkSize = opts.chunkSize
	}
	if opts.newDigest != nil {
		f.newDigest = opts.newDigest
	}

	if f.http == nil {
		t, err := transport.NewHTTP(opts.httpOpts...)
		if err != nil {
			return nil, fmt.Errorf("building http transport: %w", err)
		}
		f.http = t
	}
	if f.ftp == nil {
		f.ftp = transport.NewFTP()
	}

	return f, nil
}

// Fetch downloads the file named by req.URL into req.Dir and returns
// the absolute path of the completed file.
//
// The transfer streams into <name>.part and the final path appears
// only via an atomic rename after the transfer completed and, when
// req.Checksum is set, matched. When the final file already exists and
// req.Overwrite is false, the existing path is returned with no
// network activity.
//
// An interrupted transfer leaves the .part file on disk; a later call
// with req.Resume set completes it in place (FTP only; other schemes
// restart from zero). When the resume protocol exchange itself fails,
// the fetch retries exactly once as a fresh, full download.
func (f *Fetcher) Fetch(ctx context.Context, req Request) (string, error) {
	if err := validateRequest(req); err != nil {
		return "", err
	}

	u, err := url.Parse(req.URL)
	if err != nil {
		return "", fmt.Errorf("parsing url %s: %w", req.URL, err)
	}
	if _, err := f.transportFor(u.Scheme); err != nil {
		return "", err
	}

	name := path.Base(u.Path)
	if name == "" || name == "." || name == "/" {
		return "", fmt.Errorf("%w: %s", ErrNoFileName, req.URL)
	}

	logger := f.logger.With("fetch_id", uuid.New().String(), "url", req.URL)

	ctx, span := f.tracer.Start(ctx, "fetch.Fetch", trace.WithAttributes(
		attribute.String("url", req.URL),
		attribute.String("dir", req.Dir),
	))
	defer span.End()

	if err := os.MkdirAll(req.Dir, 0o755); err != nil {
		return "", fmt.Errorf("creating destination directory %s: %w", req.Dir, err)
	}

	finalPath := filepath.Join(req.Dir, name)
	tempPath := finalPath + PartSuffix

	if _, err := os.Stat(finalPath); err == nil {
		if !req.Overwrite {
			logger.Info("skipping existing file", "path", finalPath)
			return filepath.Abs(finalPath)
		}
		if err := os.Remove(finalPath); err != nil {
			return "", fmt.Errorf("removing existing file %s: %w", finalPath, err)
		}
	}
	if req.Overwrite {
		if err := os.Remove(tempPath); err != nil && !errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("removing stale temp file %s: %w", tempPath, err)
		}
	}

	start := time.Now()
	logger.Info("downloading data", "to", req.Dir)

	var offset int64
	if req.Resume && u.Scheme == "ftp" {
		if fi, err := os.Stat(tempPath); err == nil {
			offset = fi.Size()
		}
	}

	written, err := f.download(ctx, logger, u, tempPath, offset)
	if err != nil {
		var terr *transport.Error
		if offset > 0 && errors.As(err, &terr) && terr.Resumable {
			// One-shot fallback: the resume exchange failed, but a
			// fresh full download may still succeed. Not a retry loop.
			logger.Warn("resume failed, restarting as full download", "error", err)
			written, err = f.download(ctx, logger, u, tempPath, 0)
		}
	}
	if err != nil {
		// The temp file stays on disk for a later resume attempt.
		span.RecordError(err)
		return "", fmt.Errorf("fetching %s: %w", req.URL, err)
	}

	if req.Checksum != "" {
		if err := f.verify(tempPath, req.Checksum); err != nil {
			span.RecordError(err)
			return "", fmt.Errorf("verifying %s: %w", req.URL, err)
		}
	}

	if err := os.Rename(tempPath, finalPath); err != nil {
		return "", fmt.Errorf("installing completed file at %s: %w", finalPath, err)
	}

	abs, err := filepath.Abs(finalPath)
	if err != nil {
		return "", fmt.Errorf("resolving %s: %w", finalPath, err)
	}

	span.SetAttributes(attribute.Int64("bytes", written))
	logger.Info("download complete",
		"path", abs,
		"size", progress.FormatBytes(written),
		"elapsed", time.Since(start).Round(time.Second),
	)

	return abs, nil
}

// download performs a single transfer attempt into tempPath, starting
// at offset. It returns the total byte count reached, including the
// offset.
func (f *Fetcher) download(ctx context.Context, logger *slog.Logger, u *url.URL, tempPath string, offset int64) (int64, error) {
	tr, err := f.transportFor(u.Scheme)
	if err != nil {
		return 0, err
	}

	stream, err := tr.Open(ctx, u, offset)
	if err != nil {
		return 0, err
	}
	defer func() {
		if err := stream.Body.Close(); err != nil {
			logger.Error("closing transport stream", "error", err)
		}
	}()

	flags := os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	if offset > 0 {
		flags = os.O_WRONLY | os.O_CREATE | os.O_APPEND
		logger.Info("resuming partial transfer", "offset", offset)
	}

	file, err := os.OpenFile(tempPath, flags, 0o644)
	if err != nil {
		return 0, fmt.Errorf("opening temp file %s: %w", tempPath, err)
	}

	// The handle is released no matter how the transfer ends; the
	// success path below closes explicitly to surface close errors.
	var closed bool
	defer func() {
		if closed {
			return
		}
		if err := file.Close(); err != nil {
			logger.Error("closing temp file", "error", err)
		}
	}()

	total := int64(-1)
	if stream.Size >= 0 {
		total = offset + stream.Size
	}

	var src io.Reader = stream.Body
	if f.throttle != nil {
		src, err = throttle.NewReader(ctx, src, f.throttle.BytesPerSec, f.throttle.Burst)
		if err != nil {
			return 0, fmt.Errorf("configuring throttle: %w", err)
		}
	}

	reporter := f.reporterFor(logger, offset, total)

	n, err := transfer.Drain(src, file, f.chunkSize, offset, reporter.Update)
	if bar, ok := reporter.(*progress.Bar); ok {
		bar.Finish()
	}
	if err != nil {
		return n, err
	}

	if err := file.Sync(); err != nil {
		return n, fmt.Errorf("syncing temp file: %w", err)
	}
	closed = true
	if err := file.Close(); err != nil {
		return n, fmt.Errorf("closing temp file: %w", err)
	}

	return n, nil
}

// verify digests the completed temp file. A mismatched file is removed:
// it is complete but wrong, so a later resume could never repair it.
func (f *Fetcher) verify(tempPath, expected string) error {
	v, err := transfer.NewVerifier(f.newDigest(), expected)
	if err != nil {
		return err
	}

	if err := v.VerifyFile(tempPath); err != nil {
		if errors.Is(err, transfer.ErrChecksumMismatch) {
			if rerr := os.Remove(tempPath); rerr != nil {
				f.logger.Error("removing corrupt temp file", "path", tempPath, "error", rerr)
			}
		}
		return err
	}

	return nil
}

func (f *Fetcher) transportFor(scheme string) (transport.Transport, error) {
	switch scheme {
	case "http", "https":
		return f.http, nil
	case "ftp":
		return f.ftp, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedScheme, scheme)
	}
}

func (f *Fetcher) reporterFor(logger *slog.Logger, initial, total int64) progress.Reporter {
	switch {
	case f.progOut != nil:
		return progress.NewBar(f.progOut, initial, total,
			progress.WithSpinner(),
			progress.WithMessage("downloading"),
		)
	case f.progLog:
		return progress.NewLog(logger, initial, total)
	default:
		return progress.Silent{}
	}
}

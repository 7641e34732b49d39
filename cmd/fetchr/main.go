// Command fetchr downloads a remote file into a local directory,
// resuming partial transfers and verifying an optional MD5 checksum.
//
// Usage:
//
//	fetchr [-config fetchr.yaml] [-resume] [-overwrite] [-md5 HEX] [-quiet] URL DIR
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/adamwoolhether/fetchr/fetch"
	"github.com/adamwoolhether/fetchr/fetch/transport"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		configPath = flag.String("config", "", "path to config file (default: fetchr.yaml)")
		resume     = flag.Bool("resume", false, "resume a partially downloaded file")
		overwrite  = flag.Bool("overwrite", false, "replace an existing file")
		md5sum     = flag.String("md5", "", "expected hex-encoded MD5 digest")
		quiet      = flag.Bool("quiet", false, "suppress the progress bar")
	)
	flag.Parse()

	if flag.NArg() != 2 {
		flag.Usage()
		return fmt.Errorf("expected URL and DIR arguments, got %d", flag.NArg())
	}
	rawURL, dir := flag.Arg(0), flag.Arg(1)

	cfg, err := LoadConfig(*configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger, err := setupLogger(&cfg.Logging)
	if err != nil {
		return err
	}
	slog.SetDefault(logger)

	opts := []fetch.Option{
		fetch.WithLogger(logger),
		fetch.WithChunkSize(cfg.ChunkSize),
		fetch.WithHTTPOptions(transport.WithUserAgent(cfg.UserAgent)),
	}
	if cfg.Throttle.BytesPerSec > 0 {
		opts = append(opts, fetch.WithThrottle(cfg.Throttle.BytesPerSec, cfg.Throttle.Burst))
	}
	if *quiet {
		opts = append(opts, fetch.WithProgressLogging())
	} else {
		opts = append(opts, fetch.WithProgressWriter(os.Stdout))
	}

	f, err := fetch.Build(opts...)
	if err != nil {
		return fmt.Errorf("building fetcher: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	path, err := f.Fetch(ctx, fetch.Request{
		URL:       rawURL,
		Dir:       dir,
		Resume:    *resume,
		Overwrite: *overwrite,
		Checksum:  *md5sum,
	})
	if err != nil {
		return err
	}

	fmt.Println(path)

	return nil
}

func setupLogger(cfg *LoggingConfig) (*slog.Logger, error) {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return nil, fmt.Errorf("invalid log level: %s", cfg.Level)
	}

	handlerOpts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stderr, handlerOpts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, handlerOpts)
	}

	return slog.New(handler), nil
}

// Package progress renders transfer progress for interactive and
// non-interactive consumers.
//
// [Bar] draws a single-line, carriage-return-updated progress bar with
// an optional spinner to a writer such as os.Stdout. [Log] emits
// structured progress records through an *slog.Logger at most once per
// second. [Silent] discards all updates.
//
// All three satisfy [Reporter], the capability the fetcher drives
// during a transfer. A Reporter is owned by a single transfer at a
// time; none of the implementations are safe for concurrent use.
package progress

package transfer

import (
	"fmt"
	"io"
)

// DefaultChunkSize bounds memory use per read and sets the granularity
// of progress updates.
const DefaultChunkSize = 8192

// Error is returned when a drain aborts mid-stream. It carries the
// total byte count reached, including the initial offset, so callers
// can decide whether the partial sink contents are worth keeping.
type Error struct {
	Bytes int64
	Err   error
}

func (e *Error) Error() string {
	return fmt.Sprintf("transfer aborted at %d bytes: %v", e.Bytes, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Drain reads up to chunkSize bytes at a time from src and writes them
// to dst until end of stream. The running total starts at
// initialOffset; report, if non-nil, is invoked with the total after
// every non-empty chunk. Returns the total bytes accounted for.
//
// On a read or write error the drain stops and returns an *Error with
// the byte count reached. Bytes already written remain in dst; the
// caller owns their fate.
func Drain(src io.Reader, dst io.Writer, chunkSize int, initialOffset int64, report func(total int64)) (int64, error) {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}

	buf := make([]byte, chunkSize)
	total := initialOffset

	for {
		n, rerr := src.Read(buf)
		if n > 0 {
			if _, werr := dst.Write(buf[:n]); werr != nil {
				return total, &Error{Bytes: total, Err: fmt.Errorf("writing chunk: %w", werr)}
			}

			total += int64(n)
			if report != nil {
				report(total)
			}
		}

		if rerr == io.EOF {
			return total, nil
		}
		if rerr != nil {
			return total, &Error{Bytes: total, Err: fmt.Errorf("reading chunk: %w", rerr)}
		}
	}
}

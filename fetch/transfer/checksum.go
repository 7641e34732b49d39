package transfer

import (
	"encoding/hex"
	"errors"
	"fmt"
	"hash"
	"io"
	"os"
)

// ErrChecksumMismatch is the sentinel wrapped by [ChecksumError].
var ErrChecksumMismatch = errors.New("checksum mismatch")

// ChecksumError reports a digest that differs from the expected value.
type ChecksumError struct {
	Expected string
	Actual   string
	Err      error
}

func (e *ChecksumError) Error() string {
	return fmt.Sprintf("%v: expected %s, got %s", e.Err, e.Expected, e.Actual)
}

func (e *ChecksumError) Unwrap() error {
	return e.Err
}

// Verifier computes a digest over file contents and compares it to an
// expected hex-encoded value. The hash algorithm is supplied by the
// caller (e.g. md5.New(), sha256.New()).
type Verifier struct {
	hash     hash.Hash
	expected string
}

// NewVerifier returns a Verifier comparing against the hex-encoded
// expected digest.
func NewVerifier(h hash.Hash, expected string) (*Verifier, error) {
	if h == nil {
		return nil, errors.New("hash must not be nil")
	}
	if expected == "" {
		return nil, errors.New("expected checksum must not be empty")
	}

	return &Verifier{hash: h, expected: expected}, nil
}

// VerifyFile digests the full contents of the file at path and returns
// a *ChecksumError wrapping [ErrChecksumMismatch] when the result
// differs from the expected value. The file is only read, never
// modified.
func (v *Verifier) VerifyFile(path string) error {
	if v == nil {
		return nil
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening file for verification: %w", err)
	}
	defer f.Close()

	v.hash.Reset()
	if _, err := io.Copy(v.hash, f); err != nil {
		return fmt.Errorf("digesting %s: %w", path, err)
	}

	actual := hex.EncodeToString(v.hash.Sum(nil))
	if actual != v.expected {
		return &ChecksumError{
			Expected: v.expected,
			Actual:   actual,
			Err:      ErrChecksumMismatch,
		}
	}

	return nil
}

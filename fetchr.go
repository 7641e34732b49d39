// Package fetchr exposes the fetcher builder.
package fetchr

import (
	"github.com/adamwoolhether/fetchr/fetch"
)

// New instantiates a new *fetch.Fetcher with the provided options.
// If not specified, default HTTP and FTP transports are used.
func New(opts ...fetch.Option) (*fetch.Fetcher, error) {
	return fetch.Build(opts...)
}

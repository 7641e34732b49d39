package fetch

import (
	"errors"
)

var (
	// ErrUnsupportedScheme is returned for URLs that are neither
	// http, https, nor ftp.
	ErrUnsupportedScheme = errors.New("unsupported url scheme")

	// ErrNoFileName is returned when the URL path has no file name
	// component to derive the destination from.
	ErrNoFileName = errors.New("url path has no file name component")
)

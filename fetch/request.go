package fetch

// Request describes one download. It is passed by value into
// [Fetcher.Fetch] and never mutated.
type Request struct {
	// URL of the remote file. Schemes http, https, and ftp are
	// supported.
	URL string `json:"url" validate:"required,url"`

	// Dir is the destination directory. Created (recursively) when
	// missing.
	Dir string `json:"dir" validate:"required"`

	// Resume continues a previously interrupted transfer from the
	// size of an existing .part file. Only FTP can resume; other
	// schemes silently perform a full download.
	Resume bool `json:"resume"`

	// Overwrite deletes an existing final file (and stale .part
	// file) before downloading. When false and the final file
	// exists, Fetch returns it without any network activity.
	Overwrite bool `json:"overwrite"`

	// Checksum is the optional hex-encoded expected digest of the
	// complete file. When set, the downloaded file must match before
	// it is installed at the final path.
	Checksum string `json:"checksum" validate:"omitempty,hexadecimal"`
}

package transport

import (
	"context"
	"io"
	"net"
	"net/url"
	"path"
	"time"

	"github.com/jlaffaye/ftp"
)

// FTP opens streams over ftp with anonymous authentication. Unlike
// [HTTP], it honors non-zero offsets: the transfer is switched to
// binary type and restarted at the offset (REST) before retrieval, so
// a partially downloaded file can be completed in place.
type FTP struct {
	dialTimeout time.Duration
}

// FTPOption is a functional option for configuring [FTP] via [NewFTP].
type FTPOption func(*FTP)

// WithDialTimeout bounds how long establishing the control connection
// may take. Default: 30s.
func WithDialTimeout(d time.Duration) FTPOption {
	return func(t *FTP) {
		if d > 0 {
			t.dialTimeout = d
		}
	}
}

// NewFTP builds an FTP transport with the provided options.
func NewFTP(opts ...FTPOption) *FTP {
	t := &FTP{dialTimeout: 30 * time.Second}
	for _, opt := range opts {
		opt(t)
	}

	return t
}

// Open connects to the server named by u, authenticates anonymously,
// changes into the directory component of the path when it has one,
// and retrieves the file starting at offset.
//
// Failures while connecting, authenticating, or changing directory
// are terminal. Failures in the restart/retrieve exchange itself are
// marked resumable when offset > 0, since a fresh full download may
// still succeed where the resume protocol did not.
func (t *FTP) Open(ctx context.Context, u *url.URL, offset int64) (*Stream, error) {
	dir, name, err := splitRemotePath(u)
	if err != nil {
		return nil, &Error{URL: u.String(), Op: "path", Err: err}
	}

	conn, err := ftp.Dial(hostPort(u), ftp.DialWithContext(ctx), ftp.DialWithTimeout(t.dialTimeout))
	if err != nil {
		return nil, &Error{URL: u.String(), Op: "connect", Err: err}
	}

	if err := conn.Login("anonymous", "anonymous"); err != nil {
		conn.Quit()
		return nil, &Error{URL: u.String(), Op: "login", Err: err}
	}

	if dir != "" && dir != "/" {
		if err := conn.ChangeDir(dir); err != nil {
			conn.Quit()
			return nil, &Error{URL: u.String(), Op: "cwd", Err: err}
		}
	}

	// SIZE is an extension; an unknown size is not an error.
	size := int64(-1)
	if n, err := conn.FileSize(name); err == nil {
		size = n
	}

	if err := conn.Type(ftp.TransferTypeBinary); err != nil {
		conn.Quit()
		return nil, &Error{URL: u.String(), Op: "type", Resumable: offset > 0, Err: err}
	}

	var resp *ftp.Response
	if offset > 0 {
		resp, err = conn.RetrFrom(name, uint64(offset))
	} else {
		resp, err = conn.Retr(name)
	}
	if err != nil {
		conn.Quit()
		return nil, &Error{URL: u.String(), Op: "retr", Resumable: offset > 0, Err: err}
	}

	if size >= 0 {
		size -= offset
		if size < 0 {
			size = 0
		}
	}

	return &Stream{
		Body: &ftpBody{resp: resp, conn: conn},
		Size: size,
	}, nil
}

// ftpBody ties the lifetime of the control connection to the data
// stream: closing the body closes the data connection and quits the
// session.
type ftpBody struct {
	resp *ftp.Response
	conn *ftp.ServerConn
}

func (b *ftpBody) Read(p []byte) (int, error) {
	return b.resp.Read(p)
}

func (b *ftpBody) Close() error {
	err := b.resp.Close()
	if qerr := b.conn.Quit(); err == nil {
		err = qerr
	}

	return err
}

// splitRemotePath breaks a URL path into its directory component and
// file name. url.URL.Path is already percent-decoded.
func splitRemotePath(u *url.URL) (dir, name string, err error) {
	dir, name = path.Split(u.Path)
	if name == "" {
		return "", "", ErrNoFileName
	}

	return dir, name, nil
}

func hostPort(u *url.URL) string {
	if u.Port() != "" {
		return u.Host
	}

	return net.JoinHostPort(u.Hostname(), "21")
}

var _ io.ReadCloser = (*ftpBody)(nil)

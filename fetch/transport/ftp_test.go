package transport

import (
	"errors"
	"net/url"
	"testing"
)

func parse(t *testing.T, raw string) *url.URL {
	t.Helper()

	u, err := url.Parse(raw)
	if err != nil {
		t.Fatalf("parsing %q: %v", raw, err)
	}

	return u
}

func TestSplitRemotePath(t *testing.T) {
	tests := []struct {
		name     string
		rawURL   string
		wantDir  string
		wantName string
	}{
		{"nested path", "ftp://host/pub/datasets/sample.fif", "/pub/datasets/", "sample.fif"},
		{"root file", "ftp://host/sample.fif", "/", "sample.fif"},
		{"percent-encoded", "ftp://host/pub/my%20data/sample.fif", "/pub/my data/", "sample.fif"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			dir, name, err := splitRemotePath(parse(t, tc.rawURL))
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if dir != tc.wantDir {
				t.Errorf("dir = %q, want %q", dir, tc.wantDir)
			}
			if name != tc.wantName {
				t.Errorf("name = %q, want %q", name, tc.wantName)
			}
		})
	}
}

func TestSplitRemotePath_NoFileName(t *testing.T) {
	for _, raw := range []string{"ftp://host/", "ftp://host/pub/datasets/"} {
		_, _, err := splitRemotePath(parse(t, raw))
		if !errors.Is(err, ErrNoFileName) {
			t.Errorf("%s: expected ErrNoFileName, got %v", raw, err)
		}
	}
}

func TestHostPort(t *testing.T) {
	tests := []struct {
		rawURL string
		want   string
	}{
		{"ftp://host/file", "host:21"},
		{"ftp://host:2121/file", "host:2121"},
	}

	for _, tc := range tests {
		if got := hostPort(parse(t, tc.rawURL)); got != tc.want {
			t.Errorf("hostPort(%s) = %q, want %q", tc.rawURL, got, tc.want)
		}
	}
}

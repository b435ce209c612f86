package resource

import (
	"context"
	"encoding/base64"
	"fmt"
	"mime"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	stdnet "docmark/std/net"
)

// Fetcher retrieves resources by URI.
type Fetcher interface {
	Fetch(ctx context.Context, uri string) (body []byte, contentType string, err error)
}

// DefaultFetcher fetches data URIs, local files and resources over
// HTTP/HTTPS. Relative references are resolved against a base, which is
// either a URL or a directory.
type DefaultFetcher struct {
	base       string
	allowFiles bool
}

// NewFetcher creates a DefaultFetcher with the given base. Local files are
// readable only when the base is not a network URL.
func NewFetcher(base string) *DefaultFetcher {
	return &DefaultFetcher{base: base, allowFiles: !stdnet.IsNetworkURL(base)}
}

// Fetch retrieves the resource at the given URI.
func (f *DefaultFetcher) Fetch(ctx context.Context, uri string) ([]byte, string, error) {
	uri = strings.TrimSpace(uri)
	if IsDataURI(uri) {
		return DecodeDataURI(uri)
	}
	resolved := uri
	if !stdnet.IsNetworkURL(uri) && stdnet.IsNetworkURL(f.base) {
		resolved = stdnet.ResolveURL(f.base, uri)
	}
	if stdnet.IsNetworkURL(resolved) {
		return stdnet.Fetch(ctx, resolved)
	}
	if !f.allowFiles {
		return nil, "", fmt.Errorf("cannot fetch non-network URI: %s", resolved)
	}
	path := strings.TrimPrefix(resolved, "file://")
	if !filepath.IsAbs(path) && f.base != "" {
		path = filepath.Join(f.base, path)
	}
	body, err := os.ReadFile(path)
	if err != nil {
		return nil, "", fmt.Errorf("reading %s: %w", path, err)
	}
	return body, mime.TypeByExtension(filepath.Ext(path)), nil
}

// IsDataURI reports whether uri uses the data: scheme.
func IsDataURI(uri string) bool {
	return len(uri) > 5 && strings.EqualFold(uri[:5], "data:")
}

// DecodeDataURI decodes a data: URI ("data:image/png;base64,...").
// Payloads without ";base64" are percent-decoded.
func DecodeDataURI(uri string) ([]byte, string, error) {
	if !IsDataURI(uri) {
		return nil, "", fmt.Errorf("not a data URI")
	}
	header, payload, ok := strings.Cut(uri[5:], ",")
	if !ok {
		return nil, "", fmt.Errorf("malformed data URI: missing ','")
	}
	contentType := header
	isBase64 := false
	if strings.HasSuffix(strings.ToLower(header), ";base64") {
		contentType = header[:len(header)-len(";base64")]
		isBase64 = true
	}
	if contentType == "" {
		contentType = "text/plain"
	}
	if isBase64 {
		payload = strings.Map(func(r rune) rune {
			if r == ' ' || r == '\n' || r == '\r' || r == '\t' {
				return -1
			}
			return r
		}, payload)
		data, err := base64.StdEncoding.DecodeString(payload)
		if err != nil {
			data, err = base64.RawStdEncoding.DecodeString(strings.TrimRight(payload, "="))
		}
		if err != nil {
			return nil, "", fmt.Errorf("decoding data URI: %w", err)
		}
		return data, contentType, nil
	}
	data, err := url.PathUnescape(payload)
	if err != nil {
		return nil, "", fmt.Errorf("decoding data URI: %w", err)
	}
	return []byte(data), contentType, nil
}

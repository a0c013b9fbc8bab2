package scrape

import (
	"bytes"
	"compress/gzip"
	"io"
	"strings"

	"github.com/andybalholm/brotli"
)

// maxBodyBytes bounds how much of a page is read.
const maxBodyBytes = 4 << 20

// decodeBody inflates br or gzip bodies. If decoding fails the raw bytes
// are returned, since some servers mislabel plain HTML.
func decodeBody(encoding string, body io.Reader) ([]byte, error) {
	raw, err := io.ReadAll(io.LimitReader(body, maxBodyBytes))
	if err != nil {
		return nil, err
	}

	var r io.Reader
	switch strings.ToLower(strings.TrimSpace(encoding)) {
	case "br":
		r = brotli.NewReader(bytes.NewReader(raw))
	case "gzip", "x-gzip":
		gz, gzErr := gzip.NewReader(bytes.NewReader(raw))
		if gzErr != nil {
			return raw, nil
		}
		defer gz.Close()
		r = gz
	default:
		return raw, nil
	}

	decoded, err := io.ReadAll(io.LimitReader(r, maxBodyBytes))
	if err != nil {
		return raw, nil
	}
	return decoded, nil
}

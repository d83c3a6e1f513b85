package client

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

// acceptEncoding advertises the codings readBody can decode.
const acceptEncoding = "gzip, zstd"

// maxBodySize caps how much of a decoded response body is read.
var maxBodySize int64 = 32 << 20

// errBodyTooLarge is returned instead of a truncated body.
var errBodyTooLarge = errors.New("response body too large")

// readBody reads the response body, decoding gzip or zstd content encodings.
func readBody(resp *http.Response) ([]byte, error) {
	if resp.StatusCode == http.StatusNoContent || resp.ContentLength == 0 {
		return nil, nil
	}

	var r io.Reader = resp.Body

	switch strings.ToLower(strings.TrimSpace(resp.Header.Get("Content-Encoding"))) {
	case "", "identity":
	case "gzip":
		gz, err := gzip.NewReader(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("gzip reader: %w", err)
		}
		defer gz.Close()
		r = gz
	case "zstd":
		dec, err := zstd.NewReader(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("zstd reader: %w", err)
		}
		defer dec.Close()
		r = dec
	default:
		return nil, fmt.Errorf("unsupported content encoding %q", resp.Header.Get("Content-Encoding"))
	}

	raw, err := io.ReadAll(io.LimitReader(r, maxBodySize+1))
	if err != nil {
		return nil, err
	}
	if int64(len(raw)) > maxBodySize {
		return nil, fmt.Errorf("%w: over %d bytes", errBodyTooLarge, maxBodySize)
	}
	return raw, nil
}

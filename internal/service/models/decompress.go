package models

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/andybalholm/brotli"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zlib"
	"github.com/klauspost/compress/zstd"
)

type decoder func(r io.Reader) (io.ReadCloser, error)

var decoders = map[string]decoder{
	"gzip": func(r io.Reader) (io.ReadCloser, error) { return gzip.NewReader(r) },
	"deflate": func(r io.Reader) (io.ReadCloser, error) {
		return zlib.NewReader(r)
	},
	"br": func(r io.Reader) (io.ReadCloser, error) { return io.NopCloser(brotli.NewReader(r)), nil },
	"zstd": func(r io.Reader) (io.ReadCloser, error) {
		zr, err := zstd.NewReader(r, zstd.WithDecoderMaxMemory(maxBodyBytes))
		if err != nil {
			return nil, err
		}
		return zr.IOReadCloser(), nil
	},
}

// decodeBody 依 Content-Encoding 解壓；header 缺失時以 magic number 判斷 gzip / zstd
func decodeBody(raw []byte, h http.Header) ([]byte, error) {
	enc := strings.ToLower(strings.TrimSpace(h.Get("Content-Encoding")))
	if enc == "" || enc == "identity" {
		enc = sniffEncoding(raw)
	}
	if enc == "" {
		return raw, nil
	}
	dec, ok := decoders[enc]
	if !ok {
		return nil, fmt.Errorf("unsupported content encoding %q", enc)
	}
	rc, err := dec(bytes.NewReader(raw))
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	// 多讀一個 byte 判斷是否超過上限
	out, err := io.ReadAll(io.LimitReader(rc, maxBodyBytes+1))
	if err != nil {
		return nil, err
	}
	if len(out) > maxBodyBytes {
		return nil, fmt.Errorf("decoded body exceeds %d bytes", maxBodyBytes)
	}
	return out, nil
}

func sniffEncoding(b []byte) string {
	switch {
	case bytes.HasPrefix(b, []byte{0x1f, 0x8b}):
		return "gzip"
	case bytes.HasPrefix(b, []byte{0x28, 0xb5, 0x2f, 0xfd}):
		return "zstd"
	default:
		return ""
	}
}

package models

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeBody_UnsupportedEncoding(t *testing.T) {
	h := http.Header{}
	h.Set("Content-Encoding", "compress")
	_, err := decodeBody([]byte("x"), h)
	assert.ErrorContains(t, err, "unsupported content encoding")
}

func TestDecodeBody_IdentityPassthrough(t *testing.T) {
	h := http.Header{}
	h.Set("Content-Encoding", "identity")
	out, err := decodeBody([]byte(listBody), h)
	require.NoError(t, err)
	assert.Equal(t, listBody, string(out))
}

func TestSniffEncoding(t *testing.T) {
	assert.Equal(t, "gzip", sniffEncoding([]byte{0x1f, 0x8b, 0x08}))
	assert.Equal(t, "zstd", sniffEncoding([]byte{0x28, 0xb5, 0x2f, 0xfd, 0x00}))
	assert.Empty(t, sniffEncoding([]byte(`{"data":[]}`)))
	assert.Empty(t, sniffEncoding(nil))
}

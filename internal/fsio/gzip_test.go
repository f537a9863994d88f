package fsio_test

import (
	"bytes"
	"compress/gzip"
	"io"
	"testing"

	"github.com/harmonode/qobuz/internal/fsio"
	"github.com/stretchr/testify/require"
)

func TestGzipRoundTrip(t *testing.T) {
	var buf bytes.Buffer

	w := fsio.NewGzipWriter(&buf)
	_, err := w.Write([]byte("reg 4 one.flac\n"))
	require.NoError(t, err)
	_, err = w.Write([]byte("dir 0 albums\n"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	r, err := gzip.NewReader(&buf)
	require.NoError(t, err)
	out, err := io.ReadAll(r)
	require.NoError(t, err)
	require.Equal(t, "reg 4 one.flac\ndir 0 albums\n", string(out))
}

func TestGzipFlushMakesDataReadable(t *testing.T) {
	var buf bytes.Buffer

	w := fsio.NewGzipWriter(&buf)
	_, err := w.Write([]byte("partial"))
	require.NoError(t, err)
	require.NoError(t, w.Flush())

	r, err := gzip.NewReader(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)

	out := make([]byte, 7)
	_, err = io.ReadFull(r, out)
	require.NoError(t, err)
	require.Equal(t, "partial", string(out))
}

// Package fsio holds small output-stream helpers for dumping data to disk.
package fsio

import (
	"compress/gzip"
	"io"

	xerrors "github.com/harmonode/qobuz/internal/errors"
)

// GzipWriter compresses everything written to it onto the underlying writer.
// Close must be called to flush the trailing gzip frame; it does not close
// the underlying writer.
type GzipWriter struct {
	gz *gzip.Writer
}

func NewGzipWriter(w io.Writer) *GzipWriter {
	return &GzipWriter{gz: gzip.NewWriter(w)}
}

func (w *GzipWriter) Write(p []byte) (int, error) {
	n, err := w.gz.Write(p)
	return n, xerrors.Wrapf(err, "[GzipWriter.Write]")
}

// Flush emits a sync point so everything written so far becomes readable by
// a decompressor, at some cost in compression ratio.
func (w *GzipWriter) Flush() error {
	return xerrors.Wrapf(w.gz.Flush(), "[GzipWriter.Flush]")
}

func (w *GzipWriter) Close() error {
	return xerrors.Wrapf(w.gz.Close(), "[GzipWriter.Close]")
}

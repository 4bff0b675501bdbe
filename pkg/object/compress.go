package object

import (
	"bytes"
	"io"

	"github.com/klauspost/compress/zlib"
	"go.uber.org/multierr"
)

// compressZlib deflates data at the default compression level.
func compressZlib(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	enc, err := zlib.NewWriterLevel(&buf, zlib.DefaultCompression)
	if err != nil {
		return nil, err
	}
	if _, err := enc.Write(data); err != nil {
		return nil, multierr.Append(err, enc.Close())
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// decompressZlib inflates a whole zlib stream into memory.
func decompressZlib(data []byte) (out []byte, err error) {
	dec, err := zlib.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer func() {
		err = multierr.Append(err, dec.Close())
	}()
	return io.ReadAll(dec)
}

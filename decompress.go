package otutab

import (
	"bufio"
	"bytes"
	"compress/bzip2"
	"compress/gzip"
	"compress/zlib"
	"errors"
	"fmt"
	"io"

	"github.com/krolaw/zipstream"
	"github.com/xi2/xz"
)

type DataType byte

const (
	DataTypeInvalid DataType = iota
	DataTypeNoCompression
	DataTypeGzip
	DataTypeZip
	DataTypeXZ
	DataTypeZ
	DataTypeBZip2
	DataTypeZlib
)

// ErrUnsupportedCompression is returned for streams whose signature is known
// but which cannot be decoded, such as Unix compress (.Z) files.
var ErrUnsupportedCompression = errors.New("unsupported compression format")

var byteCodeSigs = map[DataType][]byte{
	DataTypeGzip:  {0x1f, 0x8b, 0x08},
	DataTypeZip:   {0x50, 0x4b, 0x03, 0x04},
	DataTypeXZ:    {0xfd, 0x37, 0x7a, 0x58, 0x5a, 0x00},
	DataTypeZ:     {0x1f, 0x9d},
	DataTypeBZip2: {0x42, 0x5a, 0x68},
	DataTypeZlib:  {0x78, 0x9c},
}

// DetectDataType matches the leading bytes of a stream against known
// compression signatures. Short inputs are uncompressed by definition.
func DetectDataType(head []byte) DataType {
	for dt, sig := range byteCodeSigs {
		if len(head) >= len(sig) && bytes.Equal(head[:len(sig)], sig) {
			return dt
		}
	}

	return DataTypeNoCompression
}

// MaybeDecompressReadCloser peeks at the start of rc and, if it carries a
// known compression signature, wraps it in the matching decompressor. No seek
// is needed, so this works for Google Storage streams as well as files.
func MaybeDecompressReadCloser(rc io.ReadCloser) (io.ReadCloser, error) {
	br := bufio.NewReader(rc)
	// Inputs shorter than the peek, including empty ones, are returned as is.
	head, perr := br.Peek(6)
	if perr != nil && perr != io.EOF && perr != bufio.ErrBufferFull {
		return nil, perr
	}

	var r io.Reader
	var err error
	switch DetectDataType(head) {
	case DataTypeGzip:
		r, err = gzip.NewReader(br)
	case DataTypeZip:
		zr := zipstream.NewReader(br)
		// Only the first entry in the archive is read.
		_, err = zr.Next()
		r = zr
	case DataTypeBZip2:
		r = bzip2.NewReader(br)
	case DataTypeXZ:
		r, err = xz.NewReader(br, 0)
	case DataTypeZlib:
		r, err = zlib.NewReader(br)
	case DataTypeZ:
		err = fmt.Errorf("unix compress (.Z): %w", ErrUnsupportedCompression)
	default:
		r = br
	}
	if err != nil {
		return nil, err
	}

	return &layeredReadCloser{Reader: r, under: rc}, nil
}

// layeredReadCloser closes the decompressor, if it can be closed, and then the
// underlying handle.
type layeredReadCloser struct {
	io.Reader
	under io.Closer
}

func (c *layeredReadCloser) Close() error {
	var err error
	if cl, ok := c.Reader.(io.Closer); ok {
		err = cl.Close()
	}
	if uerr := c.under.Close(); err == nil {
		err = uerr
	}

	return err
}

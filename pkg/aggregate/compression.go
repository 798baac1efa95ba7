package aggregate

import (
	"bufio"
	"bytes"
	"compress/bzip2"
	"compress/gzip"
	"io"

	"github.com/m-mizutani/goerr/v2"
	"github.com/ulikunitz/xz"
)

// Compression is the container format of an input file
type Compression int

const (
	CompressionNone Compression = iota
	CompressionGzip
	CompressionBzip2
	CompressionXZ
)

func (c Compression) String() string {
	switch c {
	case CompressionGzip:
		return "gzip"
	case CompressionBzip2:
		return "bzip2"
	case CompressionXZ:
		return "xz"
	default:
		return "none"
	}
}

var (
	gzipMagic  = []byte{0x1f, 0x8b}
	bzip2Magic = []byte{0x42, 0x5a, 0x68}
	xzMagic    = []byte{0xfd, 0x37, 0x7a, 0x58, 0x5a, 0x00}

	// first block or end of stream marker following "BZh" and the level digit
	bzip2BlockMagic = []byte{0x31, 0x41, 0x59, 0x26, 0x53, 0x59}
	bzip2EOSMagic   = []byte{0x17, 0x72, 0x45, 0x38, 0x50, 0x90}
)

// sniffLen is how much of the input is inspected before choosing a reader
const sniffLen = 4096

// DetectCompression inspects the leading bytes of a stream. Besides the
// magic prefix the container header must be well formed; anything else is
// treated as plain text.
func DetectCompression(header []byte) Compression {
	switch {
	case bytes.HasPrefix(header, gzipMagic) && validGzipHeader(header):
		return CompressionGzip
	case bytes.HasPrefix(header, bzip2Magic) && validBzip2Header(header):
		return CompressionBzip2
	case bytes.HasPrefix(header, xzMagic) && validXZHeader(header):
		return CompressionXZ
	default:
		return CompressionNone
	}
}

func validGzipHeader(header []byte) bool {
	zr, err := gzip.NewReader(bytes.NewReader(header))
	if err != nil {
		return false
	}
	_ = zr.Close()
	return true
}

func validBzip2Header(header []byte) bool {
	if len(header) < 10 {
		return false
	}
	if header[3] < '1' || header[3] > '9' {
		return false
	}
	return bytes.Equal(header[4:10], bzip2BlockMagic) || bytes.Equal(header[4:10], bzip2EOSMagic)
}

func validXZHeader(header []byte) bool {
	_, err := xz.NewReader(bytes.NewReader(header))
	return err == nil
}

// decompress wraps r with a decompressor chosen by its leading bytes.
// Plain input is returned as-is.
func decompress(r io.Reader) (io.Reader, Compression, error) {
	br := bufio.NewReaderSize(r, sniffLen)

	header, err := br.Peek(sniffLen)
	if err != nil && err != io.EOF {
		return nil, CompressionNone, goerr.Wrap(err, "failed to read input header")
	}

	kind := DetectCompression(header)
	switch kind {
	case CompressionGzip:
		zr, err := gzip.NewReader(br)
		if err != nil {
			return nil, kind, goerr.Wrap(err, "failed to create gzip reader")
		}
		return zr, kind, nil

	case CompressionBzip2:
		return bzip2.NewReader(br), kind, nil

	case CompressionXZ:
		zr, err := xz.NewReader(br)
		if err != nil {
			return nil, kind, goerr.Wrap(err, "failed to create xz reader")
		}
		return zr, kind, nil
	}

	return br, CompressionNone, nil
}

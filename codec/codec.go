package codec

import (
	"io"
	"strings"
)

// Codec has methods to create compressor/encoder and decompressor/decoder.
//
// Codec is used to read packages that were archived individually after download (for example "abc.crx.xz") without
// having to decompress them to disk first.
type Codec interface {
	// NewDecoder creates a decoder to decompress contents from the given io.Reader.
	NewDecoder(src io.Reader) (io.ReadCloser, error)
	// NewEncoder creates an encoder to compress contents from the given io.Writer.
	NewEncoder(dst io.Writer) (io.WriteCloser, error)
	// Name returns the name of the compression algorithm.
	Name() string
	// Ext returns the extension of files compressed with this codec, including the leading ".".
	Ext() string
}

// All returns every supported codec, in the order archived packages are looked up.
func All() []Codec {
	return []Codec{XzCodec{}, ZstdCodec{}, GzipCodec{}, Lz4Codec{}}
}

// DetectFromExt uses the extension of the file's name to determine the compression algorithm.
//
// Returns nil if the name has no recognised compression extension.
func DetectFromExt(name string) Codec {
	switch name = strings.ToLower(name); {
	case strings.HasSuffix(name, ".xz"):
		return XzCodec{}
	case strings.HasSuffix(name, ".zst"):
		return ZstdCodec{}
	case strings.HasSuffix(name, ".gz"):
		return GzipCodec{}
	case strings.HasSuffix(name, ".lz4"):
		return Lz4Codec{}
	default:
		return nil
	}
}

package codec

import (
	"io"

	"github.com/pierrec/lz4/v4"
)

// Lz4Codec implements Codec for lz4 frame compression.
type Lz4Codec struct {
}

var _ Codec = Lz4Codec{}

func (c Lz4Codec) NewDecoder(src io.Reader) (io.ReadCloser, error) {
	return io.NopCloser(lz4.NewReader(src)), nil
}

func (c Lz4Codec) NewEncoder(dst io.Writer) (io.WriteCloser, error) {
	return lz4.NewWriter(dst), nil
}

func (c Lz4Codec) Name() string {
	return "lz4"
}

func (c Lz4Codec) Ext() string {
	return ".lz4"
}

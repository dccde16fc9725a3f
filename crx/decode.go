package crx

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/nguyengg/xcrx/codec"
)

// Decode strips the CRX header from buf and returns the ZIP payload.
//
// If buf is already a ZIP archive, it is returned unchanged. Otherwise, the returned slice is a copy that does not
// alias buf. All failures are of type *FormatError.
func Decode(buf []byte) ([]byte, error) {
	_, data, err := DecodeHeader(buf)
	return data, err
}

// DecodeHeader is a variant of Decode that also returns the parsed Header.
func DecodeHeader(buf []byte) (Header, []byte, error) {
	h, err := ParseHeader(buf)
	if err != nil {
		return h, nil, err
	}

	if h.Format == FormatZip {
		return h, buf, nil
	}

	return h, bytes.Clone(buf[h.ZipStartOffset:]), nil
}

// ReadFile reads the named package into memory.
//
// Packages that were archived with one of codec.All (for example "abc.crx.xz") are decompressed transparently based on
// the file name's extension.
func ReadFile(name string) ([]byte, error) {
	c := codec.DetectFromExt(name)
	if c == nil {
		data, err := os.ReadFile(name)
		if err != nil {
			return nil, fmt.Errorf(`read file "%s" error: %w`, name, err)
		}

		return data, nil
	}

	f, err := os.Open(name)
	if err != nil {
		return nil, fmt.Errorf(`open file "%s" error: %w`, name, err)
	}
	defer f.Close()

	dec, err := c.NewDecoder(f)
	if err != nil {
		return nil, fmt.Errorf(`create %s decoder for "%s" error: %w`, c.Name(), name, err)
	}
	defer dec.Close()

	data, err := io.ReadAll(dec)
	if err != nil {
		return nil, fmt.Errorf(`decompress file "%s" error: %w`, name, err)
	}

	return data, nil
}

// DecodeFile calls ReadFile then DecodeHeader.
func DecodeFile(name string) (Header, []byte, error) {
	buf, err := ReadFile(name)
	if err != nil {
		return Header{}, nil, err
	}

	return DecodeHeader(buf)
}

package crx

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"
)

var (
	zipMagic = []byte{0x50, 0x4b, 0x03, 0x04}
	crxMagic = []byte{0x43, 0x72, 0x32, 0x34}
)

const (
	// crx2 header: magic (4), version (4), public key length (4), signature length (4).
	crx2FixedSize = 16
	// crx3 header: magic (4), version (4), header length (4).
	crx3FixedSize = 12
)

// Format is the container format detected by ParseHeader.
type Format int

const (
	// FormatZip means the input was already a ZIP archive.
	FormatZip Format = iota
	// FormatCrx2 is the legacy container carrying a raw public key and signature.
	FormatCrx2
	// FormatCrx3 is the current container carrying a protobuf-encoded header block.
	FormatCrx3
)

func (f Format) String() string {
	switch f {
	case FormatZip:
		return "zip"
	case FormatCrx2:
		return "crx2"
	case FormatCrx3:
		return "crx3"
	default:
		return fmt.Sprintf("Format(%d)", int(f))
	}
}

// Header describes the authentication header that precedes the ZIP payload.
type Header struct {
	Format Format

	// Version is the CRX format version. Zero for FormatZip.
	Version uint32

	// ZipStartOffset is the offset at which the ZIP payload starts. Zero for FormatZip.
	ZipStartOffset uint32

	// PublicKeyLength and SignatureLength are only set for FormatCrx2.
	PublicKeyLength, SignatureLength uint32

	// HeaderLength is the length of the opaque protobuf header block, only set for FormatCrx3.
	HeaderLength uint32
}

// ParseHeader validates the container header of buf and computes the offset of the ZIP payload.
//
// buf is not modified or retained.
func ParseHeader(buf []byte) (h Header, err error) {
	if len(buf) < 4 {
		return h, ErrTooShort
	}

	switch {
	case bytes.Equal(buf[:4], zipMagic):
		return Header{Format: FormatZip}, nil
	case !bytes.Equal(buf[:4], crxMagic):
		return h, ErrInvalidMagic
	}

	if len(buf) < 8 {
		return h, ErrTooShort
	}

	var offset uint64
	switch h.Version = binary.LittleEndian.Uint32(buf[4:8]); h.Version {
	case 2:
		if len(buf) < crx2FixedSize {
			return h, ErrHeaderTooLarge
		}

		h.Format = FormatCrx2
		h.PublicKeyLength = binary.LittleEndian.Uint32(buf[8:12])
		h.SignatureLength = binary.LittleEndian.Uint32(buf[12:16])
		offset = crx2FixedSize + uint64(h.PublicKeyLength) + uint64(h.SignatureLength)
	case 3:
		if len(buf) < crx3FixedSize {
			return h, ErrHeaderTooLarge
		}

		h.Format = FormatCrx3
		h.HeaderLength = binary.LittleEndian.Uint32(buf[8:12])
		offset = crx3FixedSize + uint64(h.HeaderLength)
	default:
		return h, ErrUnsupportedVersion
	}

	if offset > uint64(len(buf)) || offset > math.MaxUint32 {
		return h, ErrHeaderTooLarge
	}

	h.ZipStartOffset = uint32(offset)
	return h, nil
}

// PublicKey returns the raw public key embedded in a CRX2 header.
//
// Returns nil for other formats or if buf is not the buffer the header was parsed from.
func (h Header) PublicKey(buf []byte) []byte {
	if h.Format != FormatCrx2 {
		return nil
	}

	end := uint64(crx2FixedSize) + uint64(h.PublicKeyLength)
	if end > uint64(len(buf)) {
		return nil
	}

	return bytes.Clone(buf[crx2FixedSize:end])
}

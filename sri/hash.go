package sri

import (
	"crypto/sha256"
	"crypto/sha512"
	"encoding/base64"
	"hash"
	"strings"
)

// Hash extends hash.Hash with SumToString to generate the base64-encoded cryptographic hash that can be used to verify
// [Subresource Integrity].
//
// [Subresource Integrity]: https://developer.mozilla.org/en-US/docs/Web/Security/Subresource_Integrity
type Hash interface {
	hash.Hash

	// Name returns the name of the hash function.
	Name() string

	// SumToString calls [hash.Hash.Sum] passing b and encodes the returned slice as a string prefixed with the hash
	// name, for example "sha256-47DEQpj8HBSa+/TImW+5JCeuQeRkm5NMpJWZG3hSuFU".
	SumToString(b []byte) string
}

// NewSha256 returns a new Hash using sha256 as the hash function.
func NewSha256() Hash {
	return &hasher{Hash: sha256.New(), name: "sha256"}
}

// NewSha384 returns a new Hash using sha384 as the hash function.
func NewSha384() Hash {
	return &hasher{Hash: sha512.New384(), name: "sha384"}
}

// NewSha512 returns a new Hash using sha512 as the hash function.
func NewSha512() Hash {
	return &hasher{Hash: sha512.New(), name: "sha512"}
}

// Digest returns the sha256 digest of data in SRI form.
func Digest(data []byte) string {
	h := NewSha256()
	_, _ = h.Write(data)
	return h.SumToString(nil)
}

func parse(digest string) Hash {
	name, _, _ := strings.Cut(digest, "-")

	switch name {
	case "sha256":
		return NewSha256()
	case "sha384":
		return NewSha384()
	case "sha512":
		return NewSha512()
	default:
		return nil
	}
}

// hasher implements Hash.
type hasher struct {
	hash.Hash
	name string
}

func (h *hasher) Name() string {
	return h.name
}

func (h *hasher) SumToString(b []byte) string {
	return h.name + "-" + base64.StdEncoding.EncodeToString(h.Sum(b))
}

var _ Hash = (*hasher)(nil)

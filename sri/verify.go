package sri

import (
	"bytes"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"strings"
)

// Verify reports whether data matches the expected digest.
//
// The digest can be given in SRI form ("sha256-<base64>", "sha384-<base64>", "sha512-<base64>") or as the plain
// hex-encoded sha256 that the extension update service reports in its "hash_sha256" attribute.
//
// An error is returned only if the digest is not recognised.
func Verify(data []byte, digest string) (bool, error) {
	if len(digest) == sha256.Size*2 && !strings.Contains(digest, "-") {
		expected, err := hex.DecodeString(strings.ToLower(digest))
		if err != nil {
			return false, fmt.Errorf("decode hex digest error: %w", err)
		}

		actual := sha256.Sum256(data)
		return subtle.ConstantTimeCompare(expected, actual[:]) == 1, nil
	}

	h := parse(digest)
	if h == nil {
		return false, fmt.Errorf("unknown digest %q", digest)
	}

	_, _ = h.Write(data)
	return subtle.ConstantTimeCompare([]byte(h.SumToString(nil)), []byte(digest)) == 1, nil
}

// VerifyAny reports whether data matches at least one of the given digests.
//
// Unrecognised digests are skipped; an error is returned only if none of them were recognised.
func VerifyAny(data []byte, digests ...string) (bool, error) {
	var (
		recognised bool
		errs       bytes.Buffer
	)

	for _, d := range digests {
		ok, err := Verify(data, d)
		if err != nil {
			if errs.Len() > 0 {
				errs.WriteString(", ")
			}
			errs.WriteString(err.Error())
			continue
		}

		recognised = true
		if ok {
			return true, nil
		}
	}

	if !recognised {
		return false, fmt.Errorf("no recognised digest: %s", errs.String())
	}

	return false, nil
}

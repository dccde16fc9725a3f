package crx

import (
	"crypto/sha256"
)

// ExtensionID derives the Chrome extension id from the extension's public key.
//
// The id is the first 16 bytes of the SHA-256 digest of the key, hex-encoded using the alphabet 'a' to 'p' instead of
// '0' to 'f'. Use Header.PublicKey to retrieve the key from a CRX2 package.
func ExtensionID(publicKey []byte) string {
	sum := sha256.Sum256(publicKey)

	id := make([]byte, 0, 32)
	for _, b := range sum[:16] {
		id = append(id, 'a'+(b>>4), 'a'+(b&0x0f))
	}

	return string(id)
}

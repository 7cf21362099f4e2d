package value

import (
	"crypto/sha256"
	"encoding/hex"
)

// Fingerprint computes a domain-separated SHA-256 over data.
// Format: SHA256(domain + 0x00 + data), hex encoded.
// The null byte keeps domain and data from running into each other.
func Fingerprint(domain string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

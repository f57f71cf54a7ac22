package core

import (
	"encoding/binary"
	"strconv"

	"github.com/go-crypt/x/blake2b"
)

// Fingerprint derives a compact cache key from the given parts using
// BLAKE2b hashing. Identical parts always produce identical keys.
func Fingerprint(parts ...string) string {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	for _, part := range parts {
		h.Write([]byte(part))
		h.Write([]byte{0}) // separator so ("ab","c") != ("a","bc")
	}
	sum := h.Sum(nil)
	return strconv.FormatUint(binary.LittleEndian.Uint64(sum), 16)
}

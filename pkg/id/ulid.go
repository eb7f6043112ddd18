// Package id generates ULIDs for request tracing.
package id

import (
	"crypto/rand"
	"encoding/binary"
	"time"
)

// alphabet is Crockford's base32 set; I, L, O and U are excluded so IDs
// stay unambiguous when read back from logs.
const alphabet = "0123456789ABCDEFGHJKMNPQRSTVWXYZ"

// NewULID returns a 26-character ULID: 48 bits of millisecond timestamp
// followed by 80 random bits, base32-encoded. Later IDs sort after earlier
// ones, which keeps trace listings in arrival order.
func NewULID() string {
	var entropy [10]byte
	if _, err := rand.Read(entropy[:]); err != nil {
		// crypto/rand failing is near-impossible; degrade to clock entropy
		// rather than panicking inside request middleware.
		binary.BigEndian.PutUint64(entropy[:8], uint64(time.Now().UnixNano()))
	}

	var buf [26]byte

	ms := uint64(time.Now().UnixMilli())
	for i := 9; i >= 0; i-- {
		buf[i] = alphabet[ms&0x1f]
		ms >>= 5
	}

	// The 80 entropy bits split evenly into 16 five-bit groups.
	bits, have, out := uint32(0), 0, 10
	for _, b := range entropy {
		bits = bits<<8 | uint32(b)
		have += 8
		for have >= 5 {
			have -= 5
			buf[out] = alphabet[(bits>>have)&0x1f]
			out++
		}
	}

	return string(buf[:])
}

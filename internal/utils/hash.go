package utils

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"hash"
	"sync"
)

// HashHeader is the request header carrying the hex HMAC-SHA256 of the body.
const HashHeader = "HashSHA256"

// Hasher computes keyed HMAC-SHA256 digests. It keeps a pool of hash
// instances so that hot request paths do not allocate a new HMAC per call.
// A Hasher is safe for concurrent use.
type Hasher struct {
	pool sync.Pool
}

// NewHasher constructs a [Hasher] for hashKey.
func NewHasher(hashKey string) *Hasher {
	key := []byte(hashKey)
	return &Hasher{
		pool: sync.Pool{
			New: func() any {
				return hmac.New(sha256.New, key)
			},
		},
	}
}

// Sum returns the HMAC-SHA256 digest of data.
func (h *Hasher) Sum(data []byte) []byte {
	mac := h.pool.Get().(hash.Hash)
	mac.Reset()

	mac.Write(data)
	sum := mac.Sum(nil)

	mac.Reset()
	h.pool.Put(mac)

	return sum
}

// HexSum returns the hex-encoded HMAC-SHA256 digest of data.
func (h *Hasher) HexSum(data []byte) string {
	return hex.EncodeToString(h.Sum(data))
}

// Equal reports whether hexDigest is the hex HMAC-SHA256 of data.
// The comparison runs in constant time.
func (h *Hasher) Equal(data []byte, hexDigest string) bool {
	expected, err := hex.DecodeString(hexDigest)
	if err != nil {
		return false
	}

	return hmac.Equal(h.Sum(data), expected)
}

package common

import (
	"crypto/rand"
	"encoding/hex"
)

// MakeRandHexString reads size bytes from crypto/rand and returns them as
// 2*size lowercase hex characters. Password salts are built with it.
func MakeRandHexString(size int) (string, error) {
	buf := make([]byte, size)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

// WipeByteArray zeroes a password buffer after the request that needed it
// has been sent.
func WipeByteArray(b []byte) {
	clear(b)
}

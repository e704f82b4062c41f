package utils

import (
	"hash/crc32"
	"strings"
)

// Joaat is the engine's one-at-a-time string hash. Input is lower cased the
// same way the engine tools do before hashing names.
func Joaat(str string) uint32 {
	var hash uint32
	for _, c := range []byte(strings.ToLower(str)) {
		hash += uint32(c)
		hash += hash << 10
		hash ^= hash >> 6
	}
	hash += hash << 3
	hash ^= hash >> 11
	hash += hash << 15
	return hash
}

func Crc32(str string) uint32 {
	return crc32.ChecksumIEEE([]byte(str))
}

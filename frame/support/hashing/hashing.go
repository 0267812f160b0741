// Package hashing implements the twox hashers used to build storage keys.
package hashing

import (
	"encoding/binary"

	"github.com/cespare/xxhash/v2"
)

// Twox64 returns the 8-byte xxHash64 (seed 0) of data, little-endian.
func Twox64(data []byte) [8]byte {
	var out [8]byte
	binary.LittleEndian.PutUint64(out[:], xxh64(data, 0))

	return out
}

// Twox128 returns the concatenation of xxHash64 with seeds 0 and 1, each little-endian.
func Twox128(data []byte) [16]byte {
	var out [16]byte
	binary.LittleEndian.PutUint64(out[0:8], xxh64(data, 0))
	binary.LittleEndian.PutUint64(out[8:16], xxh64(data, 1))

	return out
}

func xxh64(data []byte, seed uint64) uint64 {
	d := xxhash.NewWithSeed(seed)
	_, _ = d.Write(data)

	return d.Sum64()
}

// Package unhashed reads and writes runtime storage at raw keys, through the
// current storage backend.
package unhashed

import (
	"context"
	"encoding/hex"
	"fmt"

	"pallet-generator/frame/support/storage"
	"pallet-generator/internal/logger"
)

// Encoder is a value with a storage encoding.
type Encoder interface {
	Encode() []byte
}

// Decoder is a pointer to V that can be decoded from storage.
type Decoder[V any] interface {
	*V
	Decode(data []byte) error
}

// Get decodes the value stored at key.
// A missing key and a value that does not decode both read as absent;
// the latter is reported as corrupted state.
func Get[V any, P Decoder[V]](key []byte) (V, bool) {
	var v V

	raw, ok := get(key)
	if !ok {
		return v, false
	}

	if err := P(&v).Decode(raw); err != nil {
		logger.Default().Error("corrupted state", "key", hex.EncodeToString(key), "error", err)

		var zero V
		return zero, false
	}

	return v, true
}

// Put stores the encoding of value at key.
func Put(key []byte, value Encoder) {
	if err := storage.Current().Put(context.Background(), key, value.Encode()); err != nil {
		panic(fmt.Sprintf("storage backend failed to put %x: %v", key, err))
	}
}

// Exists reports whether a value is stored at key.
func Exists(key []byte) bool {
	_, ok := get(key)
	return ok
}

// Kill removes the value stored at key.
func Kill(key []byte) {
	if err := storage.Current().Delete(context.Background(), key); err != nil {
		panic(fmt.Sprintf("storage backend failed to delete %x: %v", key, err))
	}
}

// Take returns the value stored at key and removes it.
func Take[V any, P Decoder[V]](key []byte) (V, bool) {
	v, ok := Get[V, P](key)
	Kill(key)

	return v, ok
}

func get(key []byte) ([]byte, bool) {
	raw, ok, err := storage.Current().Get(context.Background(), key)
	if err != nil {
		panic(fmt.Sprintf("storage backend failed to get %x: %v", key, err))
	}

	return raw, ok
}

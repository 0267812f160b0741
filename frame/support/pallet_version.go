package support

import (
	"fmt"

	"pallet-generator/frame/support/hashing"
	"pallet-generator/frame/support/storage/unhashed"
)

// PalletVersionStorageKeyPostfix is hashed into the second half of every
// pallet version storage key.
const PalletVersionStorageKeyPostfix = ":__PALLET_VERSION__:"

// PalletVersionStorageKey returns the key the version of pallet P is stored
// under: twox128(name) ++ twox128(PalletVersionStorageKeyPostfix).
// It fails when P has no name in info.
func PalletVersionStorageKey[P any](info PalletInfo) ([]byte, bool) {
	name, ok := PalletName[P](info)
	if !ok {
		return nil, false
	}

	prefix := hashing.Twox128([]byte(name))
	postfix := hashing.Twox128([]byte(PalletVersionStorageKeyPostfix))

	key := make([]byte, 0, len(prefix)+len(postfix))
	key = append(key, prefix[:]...)
	key = append(key, postfix[:]...)

	return key, true
}

// PutPalletVersion stores v as the version of pallet P.
// Every active pallet has a name in the runtime; a missing name panics.
func PutPalletVersion[P any](info PalletInfo, v PalletVersion) {
	key, ok := PalletVersionStorageKey[P](info)
	if !ok {
		var p P
		panic(fmt.Sprintf("every active pallet has a name in the runtime: %T is not registered", p))
	}

	unhashed.Put(key, v)
}

package support

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pallet-generator/frame/support/hashing"
	"pallet-generator/frame/support/storage"
	"pallet-generator/frame/support/storage/unhashed"
)

type testPallet[T any] struct{}

type otherPallet struct{}

func TestPalletVersion_EncodeDecode(t *testing.T) {
	v := NewPalletVersion(258, 3, 7)

	encoded := v.Encode()
	assert.Equal(t, []byte{0x02, 0x01, 3, 7}, encoded)

	var decoded PalletVersion
	require.NoError(t, decoded.Decode(encoded))
	assert.Equal(t, v, decoded)
}

func TestPalletVersion_DecodeWrongLength(t *testing.T) {
	var v PalletVersion

	err := v.Decode([]byte{1, 2, 3})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected 4 bytes, got 3")
}

func TestPalletVersion_Compare(t *testing.T) {
	base := NewPalletVersion(2, 1, 0)

	assert.Equal(t, 0, base.Compare(NewPalletVersion(2, 1, 0)))
	assert.Equal(t, -1, base.Compare(NewPalletVersion(3, 0, 0)))
	assert.Equal(t, 1, base.Compare(NewPalletVersion(2, 0, 9)))
	assert.Equal(t, -1, base.Compare(NewPalletVersion(2, 1, 1)))
	assert.Equal(t, "2.1.0", base.String())
}

func TestPalletInfoRegistry(t *testing.T) {
	r := NewPalletInfoRegistry()
	Register[testPallet[int]](r, "Template")

	name, ok := PalletName[testPallet[int]](r)
	require.True(t, ok)
	assert.Equal(t, "Template", name)

	// another instantiation is another pallet
	_, ok = PalletName[testPallet[string]](r)
	assert.False(t, ok)

	_, ok = r.Name(reflect.TypeFor[otherPallet]())
	assert.False(t, ok)

	_, ok = PalletName[otherPallet](nil)
	assert.False(t, ok)
}

func TestPalletVersionStorageKey(t *testing.T) {
	r := NewPalletInfoRegistry()
	Register[otherPallet](r, "System")

	key, ok := PalletVersionStorageKey[otherPallet](r)
	require.True(t, ok)
	require.Len(t, key, 32)

	prefix := hashing.Twox128([]byte("System"))
	postfix := hashing.Twox128([]byte(PalletVersionStorageKeyPostfix))
	assert.Equal(t, prefix[:], key[:16])
	assert.Equal(t, postfix[:], key[16:])
}

func TestPalletVersionStorageKey_Unregistered(t *testing.T) {
	key, ok := PalletVersionStorageKey[otherPallet](NewPalletInfoRegistry())
	assert.False(t, ok)
	assert.Nil(t, key)
}

func TestPutPalletVersion(t *testing.T) {
	r := NewPalletInfoRegistry()
	Register[otherPallet](r, "Other")

	storage.WithBackend(storage.NewMemoryBackend(), func() {
		PutPalletVersion[otherPallet](r, NewPalletVersion(1, 2, 3))

		key, ok := PalletVersionStorageKey[otherPallet](r)
		require.True(t, ok)

		got, ok := unhashed.Get[PalletVersion](key)
		require.True(t, ok)
		assert.Equal(t, NewPalletVersion(1, 2, 3), got)
	})
}

func TestPutPalletVersion_Unregistered(t *testing.T) {
	storage.WithBackend(storage.NewMemoryBackend(), func() {
		assert.PanicsWithValue(t,
			"every active pallet has a name in the runtime: support.otherPallet is not registered",
			func() { PutPalletVersion[otherPallet](NewPalletInfoRegistry(), PalletVersion{}) })
	})
}

type cloneCounter struct{ n *int }

func (c cloneCounter) Clone() cloneCounter {
	*c.n++
	return cloneCounter{n: c.n}
}

type alwaysEqual struct{ v int }

func (alwaysEqual) Equal(alwaysEqual) bool { return true }

func TestCloneField(t *testing.T) {
	n := 0
	CloneField(cloneCounter{n: &n})
	assert.Equal(t, 1, n)

	assert.Equal(t, 42, CloneField(42))
}

func TestEqualField(t *testing.T) {
	assert.True(t, EqualField(alwaysEqual{1}, alwaysEqual{2}))
	assert.True(t, EqualField([]int{1, 2}, []int{1, 2}))
	assert.False(t, EqualField(map[string]int{"a": 1}, map[string]int{"a": 2}))
}

func TestDebugStruct(t *testing.T) {
	assert.Equal(t, "Pallet", DebugStruct("Pallet"))
	assert.Equal(t, "Config { a: 1, b: x }",
		DebugStruct("Config", DebugField{Name: "a", Value: 1}, DebugField{Name: "b", Value: "x"}))
}

package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPkgAlias(t *testing.T) {
	assert.Equal(t, "", PkgAlias(""))
	assert.Equal(t, "support", PkgAlias("pallet-generator/frame/support"))
	assert.Equal(t, "unhashed", PkgAlias("pallet-generator/frame/support/storage/unhashed"))
}

func TestFirst(t *testing.T) {
	v, ok := First([]string{"a", "b"})
	assert.True(t, ok)
	assert.Equal(t, "a", v)

	_, ok = First([]string(nil))
	assert.False(t, ok)
}

func TestSingle(t *testing.T) {
	v, ok := Single([]int{7})
	assert.True(t, ok)
	assert.Equal(t, 7, v)

	_, ok = Single([]int{})
	assert.False(t, ok)

	_, ok = Single([]int{1, 2})
	assert.False(t, ok)
}

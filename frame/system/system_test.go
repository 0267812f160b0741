package system

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"pallet-generator/frame/support"
)

var registry = support.NewPalletInfoRegistry()

type runtime struct{}

func (runtime) PalletInfo() support.PalletInfo { return registry }

type pallet[T Config] struct{}

func TestPalletInfoOf(t *testing.T) {
	support.Register[pallet[runtime]](registry, "Example")

	name, ok := support.PalletName[pallet[runtime]](PalletInfoOf[runtime]())
	assert.True(t, ok)
	assert.Equal(t, "Example", name)
}

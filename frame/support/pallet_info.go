package support

import (
	"reflect"
	"sync"
)

// PalletInfo resolves the name a pallet type is registered under in the runtime.
type PalletInfo interface {
	Name(pallet reflect.Type) (string, bool)
}

// PalletInfoRegistry is a PalletInfo filled at runtime construction.
type PalletInfoRegistry struct {
	mu    sync.RWMutex
	names map[reflect.Type]string
}

// NewPalletInfoRegistry returns an empty registry.
func NewPalletInfoRegistry() *PalletInfoRegistry {
	return &PalletInfoRegistry{names: make(map[reflect.Type]string)}
}

// Name implements PalletInfo.
func (r *PalletInfoRegistry) Name(pallet reflect.Type) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	name, ok := r.names[pallet]

	return name, ok
}

// Register records name for pallet type P. Registering a type again renames it.
func Register[P any](r *PalletInfoRegistry, name string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.names[reflect.TypeFor[P]()] = name
}

// PalletName resolves the registered name of pallet type P.
func PalletName[P any](info PalletInfo) (string, bool) {
	if info == nil {
		return "", false
	}

	return info.Name(reflect.TypeFor[P]())
}

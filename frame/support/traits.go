// Package support is the runtime side of generated pallet code: the
// capability interfaces generated methods satisfy and the helpers they call.
package support

// ErrorMetadata describes one variant of a pallet error.
type ErrorMetadata struct {
	Name          string
	Documentation []string
}

// ModuleErrorMetadata exposes the error metadata of a pallet.
type ModuleErrorMetadata interface {
	Metadata() []ErrorMetadata
}

// GetPalletVersion reports the version a pallet was built with and the
// version recorded in storage.
type GetPalletVersion interface {
	CurrentVersion() PalletVersion
	StorageVersion() (PalletVersion, bool)
}

// OnGenesis runs once when the chain state is first built.
type OnGenesis interface {
	OnGenesis()
}

// Package system holds the base configuration every runtime provides to its pallets.
package system

import "pallet-generator/frame/support"

// Config is implemented by the runtime type pallets are instantiated with.
// Generated code calls it on the zero value, so implementations should be
// value types.
type Config interface {
	PalletInfo() support.PalletInfo
}

// PalletInfoOf returns the pallet naming capability of runtime T.
func PalletInfoOf[T Config]() support.PalletInfo {
	var t T
	return t.PalletInfo()
}

package expand

//go:generate go tool stringer -type=Capability -trimprefix=Capability -output=capability_string.go

// Capability is one contract implemented for the pallet struct.
type Capability int

const (
	CapabilityErrorMetadata Capability = iota
	CapabilityPalletVersion
	CapabilityGenesis
)

// Interface returns the support interface the capability satisfies.
func (c Capability) Interface() string {
	switch c {
	case CapabilityErrorMetadata:
		return "ModuleErrorMetadata"
	case CapabilityPalletVersion:
		return "GetPalletVersion"
	case CapabilityGenesis:
		return "OnGenesis"
	default:
		panic("unknown capability " + c.String())
	}
}

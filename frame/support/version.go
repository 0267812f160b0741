package support

import (
	"cmp"
	"encoding/binary"
	"fmt"
)

// PalletVersion is the version of a pallet's package, reduced to the
// ranges storage can hold.
type PalletVersion struct {
	Major uint16
	Minor uint8
	Patch uint8
}

// encodedPalletVersionLen is the size of an encoded PalletVersion.
const encodedPalletVersionLen = 4

// NewPalletVersion builds a PalletVersion.
func NewPalletVersion(major uint16, minor, patch uint8) PalletVersion {
	return PalletVersion{Major: major, Minor: minor, Patch: patch}
}

// Encode returns the storage encoding: little-endian u16 major, then minor and patch bytes.
func (v PalletVersion) Encode() []byte {
	out := make([]byte, encodedPalletVersionLen)
	binary.LittleEndian.PutUint16(out, v.Major)
	out[2] = v.Minor
	out[3] = v.Patch

	return out
}

// Decode parses the storage encoding into v.
func (v *PalletVersion) Decode(data []byte) error {
	if len(data) != encodedPalletVersionLen {
		return fmt.Errorf("pallet version: expected %d bytes, got %d", encodedPalletVersionLen, len(data))
	}

	v.Major = binary.LittleEndian.Uint16(data)
	v.Minor = data[2]
	v.Patch = data[3]

	return nil
}

// Compare orders versions by major, minor then patch.
func (v PalletVersion) Compare(other PalletVersion) int {
	if c := cmp.Compare(v.Major, other.Major); c != 0 {
		return c
	}

	if c := cmp.Compare(v.Minor, other.Minor); c != 0 {
		return c
	}

	return cmp.Compare(v.Patch, other.Patch)
}

func (v PalletVersion) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

package common

import "path"

// UnknownStr is the String of out-of-range enum values.
const UnknownStr = "unknown"

// PkgAlias returns the default import name (last element of path) for a package path.
// Returns empty string if pkgPath is empty.
func PkgAlias(pkgPath string) string {
	if pkgPath == "" {
		return ""
	}

	return path.Base(pkgPath)
}

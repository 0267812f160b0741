// Package def holds the definition model of a pallet package: the parsed
// items of the file declaring the pallet struct together with the projections
// the expanders need (generics, qualifying clause, error declaration).
//
// A Def is built once by the analyze package, then handed by pointer to each
// expander. Expanders only read it, except for the single attribute append
// performed on the pallet struct.
package def

import (
	"fmt"
	"go/ast"

	"github.com/Masterminds/semver/v3"
)

// Def is the definition model of one pallet package.
type Def struct {
	// Item is the file holding the pallet struct and its sibling items.
	Item *Module
	// Config describes the config interface bounding the pallet.
	Config ConfigDef
	// PalletStruct locates the pallet struct inside Item.
	PalletStruct PalletStructDef
	// Error is the optional error declaration.
	Error ErrorDecl
	// FrameSupport is the import path qualifying support symbols.
	FrameSupport string
	// FrameSystem is the import path qualifying system symbols.
	FrameSystem string
	// PkgVersion is the declared version of the enclosing package.
	PkgVersion *semver.Version

	expanded map[string]bool
}

// Module is the file whose declarations form the ordered item collection.
type Module struct {
	// PkgName is the Go package name.
	PkgName string
	// PkgPath is the import path of the package.
	PkgPath string
	// Dir is the directory of the package sources, when loaded from disk.
	Dir string
	// File is the parsed file; File.Decls is the item collection.
	File *ast.File
	// Files are all parsed files of the package, File included.
	Files []*ast.File
	// Imports maps the local import name to its path.
	Imports map[string]string
}

// Items returns the ordered item collection.
func (m *Module) Items() []ast.Decl {
	return m.File.Decls
}

// PackageItems returns the declarations of every file of the package in file
// order, or Items when only the pallet file is known.
func (m *Module) PackageItems() []ast.Decl {
	if len(m.Files) == 0 {
		return m.Items()
	}

	var items []ast.Decl
	for _, f := range m.Files {
		items = append(items, f.Decls...)
	}

	return items
}

// ConfigDef describes the config interface.
type ConfigDef struct {
	// Name is the interface identifier (e.g., "Config").
	Name string
	// WhereClause holds the extra predicates repeated on every implementation.
	WhereClause WhereClause
}

// PalletStructDef locates the pallet struct.
type PalletStructDef struct {
	// Index is the position of the struct declaration in Module.Items.
	Index int
	// Pallet is the struct identifier (e.g., "Pallet").
	Pallet string
}

// MarkExpanded records that the named expansion ran on d.
// Running an expansion twice on the same model is not supported and panics.
func (d *Def) MarkExpanded(name string) {
	if d.expanded == nil {
		d.expanded = make(map[string]bool)
	}

	if d.expanded[name] {
		panic(fmt.Sprintf("expansion %q already ran on this definition model", name))
	}

	d.expanded[name] = true
}

// Expanded reports whether the named expansion already ran on d.
func (d *Def) Expanded(name string) bool {
	return d.expanded[name]
}

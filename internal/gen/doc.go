// Package gen renders the declarations produced by the expanders into the
// generated file of a pallet package.
//
// Output is built with github.com/dave/jennifer, which tracks imports and
// formats the result with go/format. The file is deterministic: the same
// definition model always yields the same bytes.
package gen

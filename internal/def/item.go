package def

import (
	"go/ast"
	"go/token"
	"strings"
)

// DirectivePrefix starts every directive understood by pallet-generator.
const DirectivePrefix = "//pallet:"

// DeriveDirective is the directive carrying one derive attribute.
const DeriveDirective = DirectivePrefix + "derive"

// Attr is a derive attribute naming a marker symbol by import path and name.
type Attr struct {
	Path string
	Name string
}

// Comment renders the attribute as a directive line.
func (a Attr) Comment() string {
	return DeriveDirective + " " + a.Path + "." + a.Name
}

// ParseAttr parses a derive directive line.
// It returns false for any other comment.
func ParseAttr(text string) (Attr, bool) {
	rest, ok := strings.CutPrefix(text, DeriveDirective+" ")
	if !ok {
		return Attr{}, false
	}

	rest = strings.TrimSpace(rest)

	dot := strings.LastIndex(rest, ".")
	if dot <= 0 || dot == len(rest)-1 {
		return Attr{}, false
	}

	return Attr{Path: rest[:dot], Name: rest[dot+1:]}, true
}

// Attrs returns the derive attributes attached to decl, in order.
func Attrs(decl *ast.GenDecl) []Attr {
	if decl.Doc == nil {
		return nil
	}

	var attrs []Attr

	for _, c := range decl.Doc.List {
		if a, ok := ParseAttr(c.Text); ok {
			attrs = append(attrs, a)
		}
	}

	return attrs
}

// StructDecl returns decl as a single struct type declaration.
func StructDecl(item ast.Decl) (*ast.GenDecl, *ast.TypeSpec, bool) {
	decl, ok := item.(*ast.GenDecl)
	if !ok || decl.Tok != token.TYPE || len(decl.Specs) != 1 {
		return nil, nil, false
	}

	spec, ok := decl.Specs[0].(*ast.TypeSpec)
	if !ok {
		return nil, nil, false
	}

	if _, ok := spec.Type.(*ast.StructType); !ok {
		return nil, nil, false
	}

	return decl, spec, true
}

// PalletStructItem resolves the pallet struct by its stored index.
// The parser guarantees the item is a struct declaration; anything else is a
// broken upstream invariant and panics.
func (d *Def) PalletStructItem() (*ast.GenDecl, *ast.TypeSpec) {
	items := d.Item.Items()
	if d.PalletStruct.Index < 0 || d.PalletStruct.Index >= len(items) {
		panic("unreachable: pallet struct index is checked by the pallet struct parser")
	}

	decl, spec, ok := StructDecl(items[d.PalletStruct.Index])
	if !ok {
		panic("unreachable: pallet struct item is checked by the pallet struct parser")
	}

	return decl, spec
}

// AppendAttrs appends derive attributes to the doc group of decl.
func AppendAttrs(decl *ast.GenDecl, attrs ...Attr) {
	if decl.Doc == nil {
		decl.Doc = &ast.CommentGroup{}
	}

	for _, a := range attrs {
		decl.Doc.List = append(decl.Doc.List, &ast.Comment{Text: a.Comment()})
	}
}

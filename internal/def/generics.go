package def

import (
	"go/ast"

	"github.com/dave/jennifer/jen"
)

// TypeParam is one type parameter of a declaration.
type TypeParam struct {
	Name       string
	Constraint ast.Expr
}

// WhereClause is the qualifying clause of the config interface: extra
// constraints that every generated implementation must repeat.
type WhereClause struct {
	Predicates []WherePredicate
}

// WherePredicate constrains Param with Bound in addition to its declared constraint.
type WherePredicate struct {
	Param string
	Bound ast.Expr
}

// IsEmpty reports whether the clause has no predicates.
func (w WhereClause) IsEmpty() bool {
	return len(w.Predicates) == 0
}

// BoundsFor returns the extra bounds applying to param, in declaration order.
func (w WhereClause) BoundsFor(param string) []ast.Expr {
	var bounds []ast.Expr

	for _, p := range w.Predicates {
		if p.Param == param {
			bounds = append(bounds, p.Bound)
		}
	}

	return bounds
}

// TypeParams flattens the type parameter list of spec.
// A grouped list such as [K, V any] yields one TypeParam per name.
func TypeParams(spec *ast.TypeSpec) []TypeParam {
	if spec.TypeParams == nil {
		return nil
	}

	var params []TypeParam

	for _, field := range spec.TypeParams.List {
		for _, name := range field.Names {
			params = append(params, TypeParam{Name: name.Name, Constraint: field.Type})
		}
	}

	return params
}

// DeclGenerics renders params as they appear when declaring a generic item.
func (m *Module) DeclGenerics(params []TypeParam) []jen.Code {
	out := make([]jen.Code, 0, len(params))
	for _, p := range params {
		out = append(out, jen.Id(p.Name).Add(m.TypeExpr(p.Constraint)))
	}

	return out
}

// UseGenerics renders params as bare identifiers for instantiation.
func UseGenerics(params []TypeParam) []jen.Code {
	out := make([]jen.Code, 0, len(params))
	for _, p := range params {
		out = append(out, jen.Id(p.Name))
	}

	return out
}

// TypeImplGenerics returns the pallet struct generics in declaration position.
func (d *Def) TypeImplGenerics() []jen.Code {
	return d.Item.DeclGenerics(d.palletParams())
}

// TypeUseGenerics returns the pallet struct generics in use position.
func (d *Def) TypeUseGenerics() []jen.Code {
	return UseGenerics(d.palletParams())
}

// ConfigWhereClause returns the qualifying clause, possibly empty.
func (d *Def) ConfigWhereClause() WhereClause {
	return d.Config.WhereClause
}

// ImplGenerics returns the declaration-position generics with the qualifying
// clause folded into each constrained parameter:
//
//	[T Config]                          without a clause
//	[T interface{ Config; fmt.Stringer }] with "T fmt.Stringer"
func (d *Def) ImplGenerics() []jen.Code {
	params := d.palletParams()
	where := d.ConfigWhereClause()

	if where.IsEmpty() {
		return d.Item.DeclGenerics(params)
	}

	out := make([]jen.Code, 0, len(params))

	for _, p := range params {
		bounds := where.BoundsFor(p.Name)
		if len(bounds) == 0 {
			out = append(out, jen.Id(p.Name).Add(d.Item.TypeExpr(p.Constraint)))
			continue
		}

		elems := []jen.Code{d.Item.TypeExpr(p.Constraint)}
		for _, b := range bounds {
			elems = append(elems, d.Item.TypeExpr(b))
		}

		out = append(out, jen.Id(p.Name).Interface(elems...))
	}

	return out
}

// ConfigParam returns the type parameter bound by the config interface.
func (d *Def) ConfigParam() string {
	return d.palletParams()[0].Name
}

func (d *Def) palletParams() []TypeParam {
	_, spec := d.PalletStructItem()
	return TypeParams(spec)
}

package expand

import (
	"fmt"
	"go/ast"

	"github.com/dave/jennifer/jen"

	"pallet-generator/internal/def"
)

// Derive implements the support derive markers attached to the structs of
// every file of the package. The implementations never require anything of
// the struct's type parameters. Markers from other packages are left to other
// expanders. EqNoBound implies PartialEqNoBound since Eq needs Equal.
func Derive(d *def.Def) []jen.Code {
	var out []jen.Code

	for _, item := range d.Item.PackageItems() {
		decl, spec, ok := def.StructDecl(item)
		if !ok {
			continue
		}

		attrs := def.Attrs(decl)
		if len(attrs) == 0 {
			continue
		}

		t := newDeriveTarget(d, spec)
		seen := make(map[string]bool)

		for _, a := range attrs {
			if a.Path != d.FrameSupport || seen[a.Name] {
				continue
			}

			seen[a.Name] = true

			switch a.Name {
			case "CloneNoBound":
				out = append(out, t.clone())
			case "PartialEqNoBound":
				out = append(out, t.partialEq())
			case "EqNoBound":
				if !seen["PartialEqNoBound"] {
					seen["PartialEqNoBound"] = true
					out = append(out, t.partialEq())
				}

				out = append(out, t.eq())
			case "RuntimeDebugNoBound":
				out = append(out, t.debug())
			}
		}
	}

	return out
}

type deriveTarget struct {
	d      *def.Def
	name   string
	params []def.TypeParam
	fields []string
}

func newDeriveTarget(d *def.Def, spec *ast.TypeSpec) *deriveTarget {
	t := &deriveTarget{
		d:      d,
		name:   spec.Name.Name,
		params: def.TypeParams(spec),
	}

	for _, field := range spec.Type.(*ast.StructType).Fields.List {
		if len(field.Names) == 0 {
			t.fields = append(t.fields, embeddedName(field.Type))
			continue
		}

		for _, n := range field.Names {
			if n.Name != "_" {
				t.fields = append(t.fields, n.Name)
			}
		}
	}

	return t
}

// embeddedName is the implicit field name of an embedded type.
func embeddedName(expr ast.Expr) string {
	switch e := expr.(type) {
	case *ast.Ident:
		return e.Name
	case *ast.SelectorExpr:
		return e.Sel.Name
	case *ast.StarExpr:
		return embeddedName(e.X)
	case *ast.IndexExpr:
		return embeddedName(e.X)
	case *ast.IndexListExpr:
		return embeddedName(e.X)
	default:
		panic(fmt.Sprintf("unreachable: embedded field of type %T", expr))
	}
}

func (t *deriveTarget) self() *jen.Statement {
	return withTypes(jen.Id(t.name), def.UseGenerics(t.params))
}

func (t *deriveTarget) method(doc string) *jen.Statement {
	return jen.Comment(doc).Line().Func().Params(jen.Id("v").Add(t.self()))
}

func (t *deriveTarget) clone() jen.Code {
	values := jen.Dict{}
	for _, f := range t.fields {
		values[jen.Id(f)] = jen.Qual(t.d.FrameSupport, "CloneField").Call(jen.Id("v").Dot(f))
	}

	return t.method(fmt.Sprintf("Clone returns a copy of %s.", t.name)).
		Id("Clone").Params().Add(t.self()).Block(
		jen.Return(t.self().Values(values)),
	)
}

func (t *deriveTarget) partialEq() jen.Code {
	var cond *jen.Statement

	for _, f := range t.fields {
		cmp := jen.Qual(t.d.FrameSupport, "EqualField").Call(jen.Id("v").Dot(f), jen.Id("other").Dot(f))
		if cond == nil {
			cond = cmp
			continue
		}

		cond = cond.Op("&&").Add(cmp)
	}

	if cond == nil {
		cond = jen.True()
	}

	return t.method("Equal reports whether v and other hold equal fields.").
		Id("Equal").Params(jen.Id("other").Add(t.self())).Bool().Block(
		jen.Return(cond),
	)
}

func (t *deriveTarget) eq() jen.Code {
	check := jen.Var().Id("_").Qual(t.d.FrameSupport, "Eq").Types(t.self()).Op("=").Add(t.self()).Values()

	return withTypes(jen.Func().Id("_"), t.d.Item.DeclGenerics(t.params)).Params().Block(check)
}

func (t *deriveTarget) debug() jen.Code {
	args := []jen.Code{jen.Lit(t.name)}
	for _, f := range t.fields {
		args = append(args, jen.Qual(t.d.FrameSupport, "DebugField").Values(jen.Dict{
			jen.Id("Name"):  jen.Lit(f),
			jen.Id("Value"): jen.Id("v").Dot(f),
		}))
	}

	return t.method(fmt.Sprintf("String formats %s for debugging.", t.name)).
		Id("String").Params().String().Block(
		jen.Return(jen.Qual(t.d.FrameSupport, "DebugStruct").Call(args...)),
	)
}

// withTypes instantiates s with codes, leaving non-generic names bare.
func withTypes(s *jen.Statement, codes []jen.Code) *jen.Statement {
	if len(codes) == 0 {
		return s
	}

	return s.Types(codes...)
}

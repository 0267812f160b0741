package def

import (
	"go/ast"
	"go/token"
	"go/types"

	"github.com/dave/jennifer/jen"
)

// TypeExpr converts a type expression of the module's file into emitted code.
// Selectors on imported packages become qualified references so the emitted
// file imports what it uses.
func (m *Module) TypeExpr(expr ast.Expr) jen.Code {
	switch e := expr.(type) {
	case *ast.Ident:
		return jen.Id(e.Name)

	case *ast.SelectorExpr:
		if pkg, ok := e.X.(*ast.Ident); ok {
			if path, ok := m.Imports[pkg.Name]; ok {
				return jen.Qual(path, e.Sel.Name)
			}
		}

		return jen.Add(m.TypeExpr(e.X)).Dot(e.Sel.Name)

	case *ast.StarExpr:
		return jen.Op("*").Add(m.TypeExpr(e.X))

	case *ast.ParenExpr:
		return jen.Parens(m.TypeExpr(e.X))

	case *ast.ArrayType:
		if e.Len == nil {
			return jen.Index().Add(m.TypeExpr(e.Elt))
		}

		return jen.Index(jen.Op(types.ExprString(e.Len))).Add(m.TypeExpr(e.Elt))

	case *ast.MapType:
		return jen.Map(m.TypeExpr(e.Key)).Add(m.TypeExpr(e.Value))

	case *ast.IndexExpr:
		return jen.Add(m.TypeExpr(e.X)).Types(m.TypeExpr(e.Index))

	case *ast.IndexListExpr:
		args := make([]jen.Code, 0, len(e.Indices))
		for _, idx := range e.Indices {
			args = append(args, m.TypeExpr(idx))
		}

		return jen.Add(m.TypeExpr(e.X)).Types(args...)

	case *ast.UnaryExpr:
		if e.Op == token.TILDE {
			return jen.Op("~").Add(m.TypeExpr(e.X))
		}

	case *ast.BinaryExpr:
		if e.Op == token.OR {
			return jen.Add(m.TypeExpr(e.X)).Op("|").Add(m.TypeExpr(e.Y))
		}

	case *ast.Ellipsis:
		return jen.Op("...").Add(m.TypeExpr(e.Elt))

	case *ast.ChanType:
		switch e.Dir {
		case ast.SEND:
			return jen.Chan().Op("<-").Add(m.TypeExpr(e.Value))
		case ast.RECV:
			return jen.Op("<-").Chan().Add(m.TypeExpr(e.Value))
		default:
			return jen.Chan().Add(m.TypeExpr(e.Value))
		}

	case *ast.FuncType:
		return m.signature(jen.Func(), e)

	case *ast.InterfaceType:
		var elems []jen.Code

		for _, field := range e.Methods.List {
			if len(field.Names) == 0 {
				elems = append(elems, m.TypeExpr(field.Type))
				continue
			}

			for _, n := range field.Names {
				elems = append(elems, m.signature(jen.Id(n.Name), field.Type.(*ast.FuncType)))
			}
		}

		return jen.Interface(elems...)

	case *ast.StructType:
		return jen.Struct(m.fields(e.Fields)...)
	}

	// Remaining expressions hold no package references.
	return jen.Op(types.ExprString(expr))
}

// signature appends the parameters and results of fn to s.
func (m *Module) signature(s *jen.Statement, fn *ast.FuncType) *jen.Statement {
	s = s.Params(m.fields(fn.Params)...)

	if fn.Results == nil || len(fn.Results.List) == 0 {
		return s
	}

	if r := fn.Results.List; len(r) == 1 && len(r[0].Names) == 0 {
		return s.Add(m.TypeExpr(r[0].Type))
	}

	return s.Params(m.fields(fn.Results)...)
}

func (m *Module) fields(list *ast.FieldList) []jen.Code {
	if list == nil {
		return nil
	}

	var out []jen.Code

	for _, field := range list.List {
		if len(field.Names) == 0 {
			out = append(out, m.TypeExpr(field.Type))
			continue
		}

		for _, n := range field.Names {
			out = append(out, jen.Id(n.Name).Add(m.TypeExpr(field.Type)))
		}
	}

	return out
}

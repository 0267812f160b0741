package analyze

import (
	"go/ast"
	"go/token"
	"strings"

	"pallet-generator/internal/def"
)

// Directive names.
const (
	dirPallet  = "pallet"
	dirConfig  = "config"
	dirWhere   = "where"
	dirError   = "error"
	dirVersion = "version"
	dirDerive  = "derive"
)

var knownDirectives = []string{dirPallet, dirConfig, dirWhere, dirError, dirVersion, dirDerive}

type directive struct {
	name string
	arg  string
	pos  token.Pos
}

// directives extracts the //pallet: lines of the given comment groups.
func directives(groups ...*ast.CommentGroup) []directive {
	var out []directive

	for _, g := range groups {
		if g == nil {
			continue
		}

		for _, c := range g.List {
			rest, ok := strings.CutPrefix(c.Text, def.DirectivePrefix)
			if !ok {
				continue
			}

			name, arg, _ := strings.Cut(rest, " ")
			out = append(out, directive{name: name, arg: strings.TrimSpace(arg), pos: c.Slash})
		}
	}

	return out
}

func hasDirective(dirs []directive, name string) bool {
	for _, d := range dirs {
		if d.name == name {
			return true
		}
	}

	return false
}

// specDoc returns the comment groups documenting one spec of decl.
// A standalone declaration is documented on the decl, a grouped one on each spec.
func specDoc(decl *ast.GenDecl, specDoc *ast.CommentGroup) []*ast.CommentGroup {
	if decl.Lparen.IsValid() {
		return []*ast.CommentGroup{specDoc}
	}

	return []*ast.CommentGroup{decl.Doc, specDoc}
}

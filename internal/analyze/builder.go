package analyze

import (
	"cmp"
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"maps"
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/Masterminds/semver/v3"

	"pallet-generator/internal/common"
	"pallet-generator/internal/def"
	"pallet-generator/internal/diagnostic"
	"pallet-generator/internal/match"
)

// Default module references of the emitted code.
const (
	DefaultFrameSupport = "pallet-generator/frame/support"
	DefaultFrameSystem  = "pallet-generator/frame/system"
)

// Options controls how a definition model is built.
type Options struct {
	// PkgVersion overrides the //pallet:version constant when set.
	PkgVersion string
	// FrameSupport is the import path of the support runtime; empty means
	// DefaultFrameSupport.
	FrameSupport string
	// FrameSystem is the import path of the system runtime; empty means
	// DefaultFrameSystem.
	FrameSystem string
	// Fset positions diagnostics; may be nil.
	Fset *token.FileSet
}

// DefaultOptions returns options pointing at this module's runtime.
func DefaultOptions() Options {
	return Options{
		FrameSupport: DefaultFrameSupport,
		FrameSystem:  DefaultFrameSystem,
	}
}

type typeCandidate struct {
	file  *ast.File
	index int
	decl  *ast.GenDecl
	spec  *ast.TypeSpec
	dirs  []directive
}

type versionCandidate struct {
	value string
	pos   token.Pos
	name  string
}

type builder struct {
	opts  Options
	diags diagnostic.Diagnostics

	imports  map[string]string
	pallets  []typeCandidate
	configs  []typeCandidate
	errors   []typeCandidate
	versions []versionCandidate
}

// BuildDef builds the definition model of the package pkgPath from its parsed
// files. Files must be parsed with comments. The returned diagnostics hold
// warnings even when the model is built; on any error diagnostic the model is
// nil and the error joins all of them.
func BuildDef(pkgPath string, files []*ast.File, opts Options) (*def.Def, diagnostic.Diagnostics, error) {
	opts.FrameSupport = cmp.Or(opts.FrameSupport, DefaultFrameSupport)
	opts.FrameSystem = cmp.Or(opts.FrameSystem, DefaultFrameSystem)

	b := &builder{opts: opts}

	for _, file := range files {
		b.collect(file)
	}

	d := b.build(pkgPath, files)

	if err := b.diags.Error(); err != nil {
		return nil, b.diags, err
	}

	return d, b.diags, nil
}

func (b *builder) pos(p token.Pos) string {
	if b.opts.Fset == nil || !p.IsValid() {
		return ""
	}

	return b.opts.Fset.Position(p).String()
}

func (b *builder) collect(file *ast.File) {
	for i, item := range file.Decls {
		switch decl := item.(type) {
		case *ast.GenDecl:
			switch decl.Tok {
			case token.TYPE:
				b.collectTypes(file, i, decl)
			case token.CONST:
				b.collectVersions(decl)
			default:
				b.misplaced(directives(decl.Doc), "")
			}
		case *ast.FuncDecl:
			b.misplaced(directives(decl.Doc), decl.Name.Name)
		}
	}
}

func (b *builder) collectTypes(file *ast.File, index int, decl *ast.GenDecl) {
	for _, s := range decl.Specs {
		spec := s.(*ast.TypeSpec)
		dirs := directives(specDoc(decl, spec.Doc)...)
		c := typeCandidate{file: file, index: index, decl: decl, spec: spec, dirs: dirs}

		for _, d := range dirs {
			switch d.name {
			case dirPallet:
				if decl.Lparen.IsValid() {
					b.diags.AddError(diagnostic.CodePalletNotStruct,
						"the pallet struct must be declared in its own type declaration",
						b.pos(d.pos), spec.Name.Name)

					continue
				}

				b.pallets = append(b.pallets, c)
			case dirConfig:
				b.configs = append(b.configs, c)
			case dirError:
				b.errors = append(b.errors, c)
			case dirWhere:
				if !hasDirective(dirs, dirConfig) {
					b.diags.AddError(diagnostic.CodeBadWhere,
						"//pallet:where is only allowed on the config interface",
						b.pos(d.pos), spec.Name.Name)
				}
			case dirDerive:
				b.derive(decl, spec, d)
			default:
				b.misplaced([]directive{d}, spec.Name.Name)
			}
		}
	}
}

// derive checks that a //pallet:derive directive sits where the derive
// expander reads it: on a struct declared in its own type declaration.
func (b *builder) derive(decl *ast.GenDecl, spec *ast.TypeSpec, d directive) {
	if _, ok := def.ParseAttr(def.DeriveDirective + " " + d.arg); !ok {
		b.diags.AddWarning(diagnostic.CodeMisplaced,
			fmt.Sprintf("//pallet:derive %s is not of the form <import path>.<Name>", d.arg),
			b.pos(d.pos), spec.Name.Name)

		return
	}

	if _, _, ok := def.StructDecl(decl); !ok || decl.Lparen.IsValid() {
		b.misplaced([]directive{d}, spec.Name.Name)
	}
}

func (b *builder) collectVersions(decl *ast.GenDecl) {
	for _, s := range decl.Specs {
		spec := s.(*ast.ValueSpec)

		for _, d := range directives(specDoc(decl, spec.Doc)...) {
			if d.name != dirVersion {
				b.misplaced([]directive{d}, spec.Names[0].Name)
				continue
			}

			value, ok := stringConst(spec)
			if !ok {
				b.diags.AddError(diagnostic.CodeBadVersion,
					"//pallet:version must annotate a single string constant",
					b.pos(d.pos), spec.Names[0].Name)

				continue
			}

			b.versions = append(b.versions, versionCandidate{value: value, pos: d.pos, name: spec.Names[0].Name})
		}
	}
}

func stringConst(spec *ast.ValueSpec) (string, bool) {
	if len(spec.Names) != 1 || len(spec.Values) != 1 {
		return "", false
	}

	lit, ok := spec.Values[0].(*ast.BasicLit)
	if !ok || lit.Kind != token.STRING {
		return "", false
	}

	v, err := strconv.Unquote(lit.Value)
	if err != nil {
		return "", false
	}

	return v, true
}

func (b *builder) misplaced(dirs []directive, item string) {
	for _, d := range dirs {
		msg := fmt.Sprintf("//pallet:%s has no effect here", d.name)

		if !slices.Contains(knownDirectives, d.name) {
			msg = fmt.Sprintf("unknown directive //pallet:%s", d.name)
			if s, ok := match.Closest(d.name, knownDirectives, 2); ok {
				msg += fmt.Sprintf(", did you mean //pallet:%s?", s)
			}
		}

		b.diags.AddWarning(diagnostic.CodeMisplaced, msg, b.pos(d.pos), item)
	}
}

func (b *builder) build(pkgPath string, files []*ast.File) *def.Def {
	pallet, ok := b.pallet()
	if !ok {
		return nil
	}

	b.imports = packageImports(pallet.file, files)

	d := &def.Def{
		Item: &def.Module{
			PkgName: pallet.file.Name.Name,
			PkgPath: pkgPath,
			File:    pallet.file,
			Files:   files,
			Imports: b.imports,
		},
		PalletStruct: def.PalletStructDef{Index: pallet.index, Pallet: pallet.spec.Name.Name},
		FrameSupport: b.opts.FrameSupport,
		FrameSystem:  b.opts.FrameSystem,
	}

	params := def.TypeParams(pallet.spec)

	if cfg, ok := b.config(params); ok {
		d.Config = cfg
	}

	d.Error = b.errorDecl(pallet, len(params))
	d.PkgVersion = b.version()

	return d
}

func (b *builder) pallet() (typeCandidate, bool) {
	pallet, ok := common.Single(b.pallets)
	if !ok {
		if len(b.pallets) == 0 {
			b.diags.AddError(diagnostic.CodeNoPallet, "no struct is marked //pallet:pallet", "", "")
		}

		for _, p := range b.pallets {
			b.diags.AddError(diagnostic.CodeMultiplePallets, "more than one struct is marked //pallet:pallet",
				b.pos(p.spec.Pos()), p.spec.Name.Name)
		}

		return typeCandidate{}, false
	}

	if _, ok := pallet.spec.Type.(*ast.StructType); !ok {
		b.diags.AddError(diagnostic.CodePalletNotStruct, "the pallet must be a struct type",
			b.pos(pallet.spec.Pos()), pallet.spec.Name.Name)

		return typeCandidate{}, false
	}

	if len(def.TypeParams(pallet.spec)) == 0 {
		b.diags.AddError(diagnostic.CodePalletNotGeneric, "the pallet struct must be generic over its config",
			b.pos(pallet.spec.Pos()), pallet.spec.Name.Name)

		return typeCandidate{}, false
	}

	return pallet, true
}

// packageImports merges the import tables of all files; the pallet file wins
// on conflicting names.
func packageImports(palletFile *ast.File, files []*ast.File) map[string]string {
	imports := make(map[string]string)

	for _, f := range files {
		if f == palletFile {
			continue
		}

		for name, path := range fileImports(f) {
			if _, ok := imports[name]; !ok {
				imports[name] = path
			}
		}
	}

	maps.Copy(imports, fileImports(palletFile))

	return imports
}

// fileImports maps the local import names of file to their paths.
// Blank and dot imports are skipped.
func fileImports(file *ast.File) map[string]string {
	imports := make(map[string]string)

	for _, imp := range file.Imports {
		path, err := strconv.Unquote(imp.Path.Value)
		if err != nil {
			continue
		}

		name := common.PkgAlias(path)
		if imp.Name != nil {
			name = imp.Name.Name
		}

		if name == "_" || name == "." {
			continue
		}

		imports[name] = path
	}

	return imports
}

func (b *builder) config(params []def.TypeParam) (def.ConfigDef, bool) {
	cfg, ok := common.Single(b.configs)
	if !ok {
		if len(b.configs) == 0 {
			b.diags.AddError(diagnostic.CodeNoConfig, "no interface is marked //pallet:config", "", "")
		}

		for _, c := range b.configs {
			b.diags.AddError(diagnostic.CodeMultipleConfigs, "more than one interface is marked //pallet:config",
				b.pos(c.spec.Pos()), c.spec.Name.Name)
		}

		return def.ConfigDef{}, false
	}

	name := cfg.spec.Name.Name

	iface, ok := cfg.spec.Type.(*ast.InterfaceType)
	if !ok {
		b.diags.AddError(diagnostic.CodeNoConfig, "the config must be an interface type",
			b.pos(cfg.spec.Pos()), name)

		return def.ConfigDef{}, false
	}

	if !b.embedsSystemConfig(cfg.file, iface) {
		b.diags.AddError(diagnostic.CodeConfigNoSystem,
			fmt.Sprintf("the config must embed %s.Config", b.opts.FrameSystem),
			b.pos(cfg.spec.Pos()), name)
	}

	first, _ := common.First(params)
	if id, ok := first.Constraint.(*ast.Ident); !ok || id.Name != name {
		b.diags.AddError(diagnostic.CodeConfigNotBound,
			fmt.Sprintf("the first type parameter of the pallet must be constrained by %s", name),
			"", first.Name)
	}

	out := def.ConfigDef{Name: name}

	for _, d := range cfg.dirs {
		if d.name != dirWhere {
			continue
		}

		if p, ok := b.wherePredicate(d, params); ok {
			out.WhereClause.Predicates = append(out.WhereClause.Predicates, p)
		}
	}

	return out, true
}

// embedsSystemConfig reports whether iface embeds the Config interface of the
// system runtime, resolved through the imports of the declaring file.
func (b *builder) embedsSystemConfig(file *ast.File, iface *ast.InterfaceType) bool {
	imports := fileImports(file)

	for _, field := range iface.Methods.List {
		if len(field.Names) > 0 {
			continue
		}

		sel, ok := field.Type.(*ast.SelectorExpr)
		if !ok || sel.Sel.Name != "Config" {
			continue
		}

		if pkg, ok := sel.X.(*ast.Ident); ok && imports[pkg.Name] == b.opts.FrameSystem {
			return true
		}
	}

	return false
}

func (b *builder) wherePredicate(d directive, params []def.TypeParam) (def.WherePredicate, bool) {
	param, bound, ok := strings.Cut(d.arg, " ")
	if !ok || strings.TrimSpace(bound) == "" {
		b.diags.AddError(diagnostic.CodeBadWhere, "expected //pallet:where <Param> <Constraint>", b.pos(d.pos), "")
		return def.WherePredicate{}, false
	}

	known := false
	for _, p := range params {
		known = known || p.Name == param
	}

	if !known {
		b.diags.AddError(diagnostic.CodeBadWhere,
			fmt.Sprintf("%s is not a type parameter of the pallet", param), b.pos(d.pos), "")

		return def.WherePredicate{}, false
	}

	expr, err := parser.ParseExpr(strings.TrimSpace(bound))
	if err != nil {
		b.diags.AddError(diagnostic.CodeBadWhere, fmt.Sprintf("invalid constraint: %v", err), b.pos(d.pos), "")
		return def.WherePredicate{}, false
	}

	valid := true

	ast.Inspect(expr, func(n ast.Node) bool {
		sel, ok := n.(*ast.SelectorExpr)
		if !ok {
			return true
		}

		if pkg, ok := sel.X.(*ast.Ident); ok {
			if _, ok := b.imports[pkg.Name]; !ok {
				b.diags.AddError(diagnostic.CodeBadWhere,
					fmt.Sprintf("package %s is not imported by the pallet package", pkg.Name), b.pos(d.pos), "")

				valid = false
			}
		}

		return false
	})

	return def.WherePredicate{Param: param, Bound: expr}, valid
}

func (b *builder) errorDecl(pallet typeCandidate, arity int) def.ErrorDecl {
	if len(b.errors) > 1 {
		for _, e := range b.errors {
			b.diags.AddError(diagnostic.CodeMultipleErrors, "more than one type is marked //pallet:error",
				b.pos(e.spec.Pos()), e.spec.Name.Name)
		}

		return def.NoError{}
	}

	e, ok := common.First(b.errors)
	if !ok {
		return def.NoError{}
	}

	if n := len(def.TypeParams(e.spec)); n != arity {
		b.diags.AddError(diagnostic.CodeErrorGenerics,
			fmt.Sprintf("error declaration has %d type parameters, pallet has %d", n, arity),
			b.pos(e.spec.Pos()), e.spec.Name.Name)
	}

	index := -1
	if e.file == pallet.file {
		index = e.index
	}

	return def.WithError{Error: e.spec.Name.Name, Index: index}
}

func (b *builder) version() *semver.Version {
	raw, pos := b.opts.PkgVersion, token.NoPos

	if raw == "" {
		v, ok := common.Single(b.versions)
		if !ok {
			if len(b.versions) == 0 {
				b.diags.AddError(diagnostic.CodeNoVersion,
					"no //pallet:version constant and no package version configured", "", "")
			}

			for _, v := range b.versions {
				b.diags.AddError(diagnostic.CodeBadVersion, "more than one //pallet:version constant",
					b.pos(v.pos), v.name)
			}

			return nil
		}

		raw, pos = v.value, v.pos
	}

	v, err := semver.NewVersion(raw)
	if err != nil {
		b.diags.AddError(diagnostic.CodeBadVersion, fmt.Sprintf("invalid version %q: %v", raw, err), b.pos(pos), "")
		return nil
	}

	if v.Major() > math.MaxUint16 || v.Minor() > math.MaxUint8 || v.Patch() > math.MaxUint8 {
		b.diags.AddError(diagnostic.CodeBadVersion,
			fmt.Sprintf("version %s does not fit major.minor.patch of 16, 8 and 8 bits", v), b.pos(pos), "")

		return nil
	}

	return v
}

package expand

import (
	"bytes"
	"go/ast"
	"go/parser"
	"go/token"
	"strconv"
	"strings"
	"testing"

	"github.com/Masterminds/semver/v3"
	"github.com/dave/jennifer/jen"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pallet-generator/internal/def"
)

const (
	frameSupport = "pallet-generator/frame/support"
	frameSystem  = "pallet-generator/frame/system"
	pkgPath      = "pallet-generator/examples/template"
)

const palletSource = `package template

import "pallet-generator/frame/system"

type Config interface {
	system.Config
}

// Pallet is the pallet struct.
type Pallet[T Config] struct{}

type Error[T Config] struct{}

func helper() {}
`

func newDef(t *testing.T, src string, withError bool) *def.Def {
	t.Helper()

	file, err := parser.ParseFile(token.NewFileSet(), "pallet.go", src, parser.ParseComments)
	require.NoError(t, err)

	imports := make(map[string]string)
	for _, imp := range file.Imports {
		path, err := strconv.Unquote(imp.Path.Value)
		require.NoError(t, err)

		imports[path[strings.LastIndex(path, "/")+1:]] = path
	}

	index := -1
	for i, item := range file.Decls {
		if _, spec, ok := def.StructDecl(item); ok && spec.Name.Name == "Pallet" {
			index = i
		}
	}

	require.GreaterOrEqual(t, index, 0)

	var errDecl def.ErrorDecl = def.NoError{}
	if withError {
		errDecl = def.WithError{Error: "Error", Index: index + 1}
	}

	return &def.Def{
		Item: &def.Module{
			PkgName: "template",
			PkgPath: pkgPath,
			File:    file,
			Imports: imports,
		},
		Config:       def.ConfigDef{Name: "Config"},
		PalletStruct: def.PalletStructDef{Index: index, Pallet: "Pallet"},
		Error:        errDecl,
		FrameSupport: frameSupport,
		FrameSystem:  frameSystem,
		PkgVersion:   semver.MustParse("2.1.3"),
	}
}

// renderFile formats codes as a generated file so that the output is gofmt-ed
// and checked for syntax.
func renderFile(t *testing.T, codes []jen.Code) string {
	t.Helper()

	f := jen.NewFilePathName(pkgPath, "template")
	for _, c := range codes {
		f.Add(c)
		f.Line()
	}

	var buf bytes.Buffer
	require.NoError(t, f.Render(&buf))

	return buf.String()
}

func attrTexts(decl *ast.GenDecl) []string {
	var out []string
	for _, c := range decl.Doc.List {
		out = append(out, c.Text)
	}

	return out
}

func TestPalletStruct_AppendsDerives(t *testing.T) {
	d := newDef(t, palletSource, false)

	before := len(d.Item.Items())

	PalletStruct(d)

	decl, _ := d.PalletStructItem()
	assert.Equal(t, []string{
		"// Pallet is the pallet struct.",
		"//pallet:derive pallet-generator/frame/support.CloneNoBound",
		"//pallet:derive pallet-generator/frame/support.EqNoBound",
		"//pallet:derive pallet-generator/frame/support.PartialEqNoBound",
		"//pallet:derive pallet-generator/frame/support.RuntimeDebugNoBound",
	}, attrTexts(decl))

	assert.Len(t, d.Item.Items(), before)

	for i, item := range d.Item.Items() {
		if i == d.PalletStruct.Index {
			continue
		}

		if g, ok := item.(*ast.GenDecl); ok && g.Doc != nil {
			assert.Empty(t, def.Attrs(g), "item %d must not carry derive attributes", i)
		}
	}
}

func TestPalletStruct_WithoutError(t *testing.T) {
	d := newDef(t, palletSource, false)

	out := renderFile(t, PalletStruct(d))

	assert.Contains(t, out, "func (Pallet[T]) Metadata() []support.ErrorMetadata {\n\treturn nil\n}")
	assert.NotContains(t, out, "var e Error[T]")
}

func TestPalletStruct_WithError(t *testing.T) {
	d := newDef(t, palletSource, true)

	out := renderFile(t, PalletStruct(d))

	assert.Contains(t, out, "func (Pallet[T]) Metadata() []support.ErrorMetadata {")
	assert.Contains(t, out, "var e Error[T]")
	assert.Contains(t, out, "return e.Metadata()")
	assert.NotContains(t, out, "return nil")
}

func TestPalletStruct_PalletVersion(t *testing.T) {
	d := newDef(t, palletSource, false)

	out := renderFile(t, PalletStruct(d))

	assert.Contains(t, out, "func (Pallet[T]) CurrentVersion() support.PalletVersion {")
	assert.Contains(t, out, "Major: 2,")
	assert.Contains(t, out, "Minor: 1,")
	assert.Contains(t, out, "Patch: 3,")

	assert.Contains(t, out, "func (Pallet[T]) StorageVersion() (support.PalletVersion, bool) {")
	assert.Contains(t, out, "key, ok := support.PalletVersionStorageKey[Pallet[T]](system.PalletInfoOf[T]())")
	assert.Contains(t, out, `panic("every active pallet has a name in the runtime")`)
	assert.Contains(t, out, "return unhashed.Get[support.PalletVersion](key)")
	assert.Contains(t, out, `"pallet-generator/frame/support/storage/unhashed"`)
}

func TestPalletStruct_Genesis(t *testing.T) {
	d := newDef(t, palletSource, false)

	out := renderFile(t, PalletStruct(d))

	assert.Contains(t, out, "func (Pallet[T]) OnGenesis() {")
	assert.Contains(t, out, "support.PutPalletVersion[Pallet[T]](system.PalletInfoOf[T](), support.PalletVersion{")
}

func TestPalletStruct_Conformance(t *testing.T) {
	d := newDef(t, palletSource, false)

	out := renderFile(t, PalletStruct(d))

	for _, iface := range []string{"ModuleErrorMetadata", "GetPalletVersion", "OnGenesis"} {
		assert.Contains(t, out, "func _[T Config]() {\n\tvar _ support."+iface+" = Pallet[T]{}\n}")
	}
}

func TestPalletStruct_WhereClause(t *testing.T) {
	d := newDef(t, palletSource, false)

	bound, err := parser.ParseExpr("comparable")
	require.NoError(t, err)

	d.Config.WhereClause = def.WhereClause{Predicates: []def.WherePredicate{{Param: "T", Bound: bound}}}

	out := renderFile(t, PalletStruct(d))

	assert.Equal(t, 3, strings.Count(out, "func _[T interface {"))
	assert.Contains(t, out, "comparable")

	// methods keep the plain receiver
	assert.Contains(t, out, "func (Pallet[T]) OnGenesis() {")
}

func TestPalletStruct_VersionIsFixed(t *testing.T) {
	d := newDef(t, palletSource, false)
	d.PkgVersion = semver.MustParse("0.0.0")

	out := renderFile(t, PalletStruct(d))

	assert.Contains(t, out, "Major: 0,")
	assert.NotContains(t, out, "semver")
}

func TestRun_Default(t *testing.T) {
	d := newDef(t, palletSource, true)

	out := renderFile(t, Run(d, DefaultExpanders()))

	assert.True(t, d.Expanded("pallet_struct"))
	assert.True(t, d.Expanded("derive"))

	// pallet struct capabilities first, derived methods after
	meta := strings.Index(out, "Metadata() []support.ErrorMetadata")
	clone := strings.Index(out, "Clone() Pallet[T]")

	require.Positive(t, meta)
	require.Positive(t, clone)
	assert.Less(t, meta, clone)

	assert.Contains(t, out, "func (v Pallet[T]) Equal(other Pallet[T]) bool {\n\treturn true\n}")
	assert.Contains(t, out, "var _ support.Eq[Pallet[T]] = Pallet[T]{}")
	assert.Contains(t, out, `return support.DebugStruct("Pallet")`)
}

func TestRun_Twice(t *testing.T) {
	d := newDef(t, palletSource, false)

	Run(d, DefaultExpanders())

	assert.PanicsWithValue(t, `expansion "pallet_struct" already ran on this definition model`, func() {
		Run(d, DefaultExpanders())
	})

	decl, _ := d.PalletStructItem()
	assert.Len(t, def.Attrs(decl), len(PalletDerives))
}

const deriveSource = `package template

import "pallet-generator/frame/system"

type Config interface {
	system.Config
}

type Pallet[T Config] struct{}

//pallet:derive pallet-generator/frame/support.CloneNoBound
//pallet:derive pallet-generator/frame/support.PartialEqNoBound
//pallet:derive pallet-generator/frame/support.RuntimeDebugNoBound
//pallet:derive pallet-generator/frame/support.CloneNoBound
//pallet:derive example.com/other.CloneNoBound
type Account[T Config] struct {
	Owner   T
	Balance uint64
	_       int
	system.Config
}

//pallet:derive pallet-generator/frame/support.EqNoBound
type Plain struct{}
`

func TestDerive(t *testing.T) {
	d := newDef(t, deriveSource, false)

	out := renderFile(t, Derive(d))

	assert.Equal(t, 1, strings.Count(out, ") Clone() Account[T] {"))
	assert.Contains(t, out, "Balance: support.CloneField(v.Balance),")
	assert.Contains(t, out, "Config:  support.CloneField(v.Config),")
	assert.Contains(t, out, "Owner:   support.CloneField(v.Owner),")

	assert.Contains(t, out, "func (v Account[T]) Equal(other Account[T]) bool {")
	assert.Contains(t, out,
		"return support.EqualField(v.Owner, other.Owner) && support.EqualField(v.Balance, other.Balance) && support.EqualField(v.Config, other.Config)")

	assert.Contains(t, out, `support.DebugStruct("Account", support.DebugField{`)
	assert.NotContains(t, out, "v._")

	assert.Contains(t, out, "func (v Plain) Equal(other Plain) bool {\n\treturn true\n}")
	assert.Contains(t, out, "func _() {\n\tvar _ support.Eq[Plain] = Plain{}\n}")
}

func TestDerive_EqImpliesPartialEq(t *testing.T) {
	src := `package template

//pallet:derive pallet-generator/frame/support.EqNoBound
//pallet:derive pallet-generator/frame/support.PartialEqNoBound
type Pallet[T any] struct {
	N T
}
`

	d := newDef(t, src, false)

	out := renderFile(t, Derive(d))

	assert.Equal(t, 1, strings.Count(out, ") Equal(other Pallet[T]) bool {"))
	assert.Less(t, strings.Index(out, "Equal(other"), strings.Index(out, "support.Eq[Pallet[T]]"))
}

const siblingSource = `package template

//pallet:derive pallet-generator/frame/support.CloneNoBound
//pallet:derive pallet-generator/frame/support.RuntimeDebugNoBound
type Account struct {
	N int
}
`

func TestDerive_SiblingFile(t *testing.T) {
	d := newDef(t, palletSource, false)

	sibling, err := parser.ParseFile(token.NewFileSet(), "types.go", siblingSource, parser.ParseComments)
	require.NoError(t, err)

	d.Item.Files = []*ast.File{d.Item.File, sibling}

	out := renderFile(t, Derive(d))

	assert.Contains(t, out, "func (v Account) Clone() Account {")
	assert.Contains(t, out, "N: support.CloneField(v.N),")
	assert.Contains(t, out, `return support.DebugStruct("Account", support.DebugField{`)
}

func TestDerive_NoMarkers(t *testing.T) {
	d := newDef(t, palletSource, false)

	assert.Empty(t, Derive(d))
}

func TestCapability_String(t *testing.T) {
	assert.Equal(t, "ErrorMetadata", CapabilityErrorMetadata.String())
	assert.Equal(t, "PalletVersion", CapabilityPalletVersion.String())
	assert.Equal(t, "Genesis", CapabilityGenesis.String())
	assert.Equal(t, "Capability(7)", Capability(7).String())

	assert.Equal(t, "GetPalletVersion", CapabilityPalletVersion.Interface())
	assert.Panics(t, func() { _ = Capability(7).Interface() })
}

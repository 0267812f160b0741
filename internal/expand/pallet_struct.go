// Package expand turns a definition model into the declarations generated
// for it. Each expander reads the model and returns an ordered block of
// top-level declarations; only PalletStruct mutates the model.
package expand

import (
	"fmt"

	"github.com/dave/jennifer/jen"

	"pallet-generator/internal/def"
)

// UnhashedPackage is the path of the raw storage package below FrameSupport.
const UnhashedPackage = "/storage/unhashed"

// NoNameMessage is the panic message of generated code when the runtime does
// not know the pallet.
const NoNameMessage = "every active pallet has a name in the runtime"

// PalletDerives are the derive markers added to every pallet struct.
var PalletDerives = []string{
	"CloneNoBound",
	"EqNoBound",
	"PartialEqNoBound",
	"RuntimeDebugNoBound",
}

// PalletStruct expands the pallet struct:
//   - appends the PalletDerives attributes to its declaration,
//   - implements ModuleErrorMetadata,
//   - implements GetPalletVersion,
//   - implements OnGenesis.
func PalletStruct(d *def.Def) []jen.Code {
	decl, _ := d.PalletStructItem()

	attrs := make([]def.Attr, 0, len(PalletDerives))
	for _, name := range PalletDerives {
		attrs = append(attrs, def.Attr{Path: d.FrameSupport, Name: name})
	}

	def.AppendAttrs(decl, attrs...)

	p := &palletExpansion{d: d}

	var out []jen.Code
	out = append(out, p.errorMetadata()...)
	out = append(out, p.palletVersion()...)
	out = append(out, p.genesis()...)

	return out
}

type palletExpansion struct {
	d *def.Def
}

// self is Pallet[T, ...] at the use-position generics.
func (p *palletExpansion) self() *jen.Statement {
	return jen.Id(p.d.PalletStruct.Pallet).Types(p.d.TypeUseGenerics()...)
}

func (p *palletExpansion) support(name string) *jen.Statement {
	return jen.Qual(p.d.FrameSupport, name)
}

func (p *palletExpansion) palletInfo() *jen.Statement {
	return jen.Qual(p.d.FrameSystem, "PalletInfoOf").Types(jen.Id(p.d.ConfigParam())).Call()
}

// currentVersion is the package version as a literal, fixed at generation time.
func (p *palletExpansion) currentVersion() *jen.Statement {
	v := p.d.PkgVersion

	return p.support("PalletVersion").Values(jen.Dict{
		jen.Id("Major"): jen.Lit(int(v.Major())),
		jen.Id("Minor"): jen.Lit(int(v.Minor())),
		jen.Id("Patch"): jen.Lit(int(v.Patch())),
	})
}

// conformance checks that Pallet satisfies c wherever the qualifying clause holds.
func (p *palletExpansion) conformance(c Capability) jen.Code {
	return jen.Func().Id("_").Types(p.d.ImplGenerics()...).Params().Block(
		jen.Var().Id("_").Add(p.support(c.Interface())).Op("=").Add(p.self()).Values(),
	)
}

func (p *palletExpansion) method(doc string) *jen.Statement {
	return jen.Comment(doc).Line().Func().Params(p.self())
}

func (p *palletExpansion) errorMetadata() []jen.Code {
	pallet := p.d.PalletStruct.Pallet

	var body []jen.Code

	switch e := p.d.Error.(type) {
	case def.WithError:
		body = []jen.Code{
			jen.Var().Id("e").Id(e.Error).Types(p.d.TypeUseGenerics()...),
			jen.Return(jen.Id("e").Dot("Metadata").Call()),
		}
	case def.NoError:
		body = []jen.Code{jen.Return(jen.Nil())}
	default:
		panic(fmt.Sprintf("unreachable: unknown error declaration %T", e))
	}

	return []jen.Code{
		p.method(fmt.Sprintf("Metadata returns the error metadata of %s.", pallet)).
			Id("Metadata").Params().Index().Add(p.support("ErrorMetadata")).Block(body...),
		p.conformance(CapabilityErrorMetadata),
	}
}

func (p *palletExpansion) palletVersion() []jen.Code {
	pallet := p.d.PalletStruct.Pallet
	unhashed := p.d.FrameSupport + UnhashedPackage

	return []jen.Code{
		p.method(fmt.Sprintf("CurrentVersion returns the version %s was built with.", pallet)).
			Id("CurrentVersion").Params().Add(p.support("PalletVersion")).Block(
			jen.Return(p.currentVersion()),
		),
		p.method(fmt.Sprintf("StorageVersion returns the version of %s recorded in storage.", pallet)).
			Id("StorageVersion").Params().Params(p.support("PalletVersion"), jen.Bool()).Block(
			jen.List(jen.Id("key"), jen.Id("ok")).Op(":=").
				Add(p.support("PalletVersionStorageKey")).Types(p.self()).Call(p.palletInfo()),
			jen.If(jen.Op("!").Id("ok")).Block(
				jen.Panic(jen.Lit(NoNameMessage)),
			),
			jen.Return(jen.Qual(unhashed, "Get").Types(p.support("PalletVersion")).Call(jen.Id("key"))),
		),
		p.conformance(CapabilityPalletVersion),
	}
}

func (p *palletExpansion) genesis() []jen.Code {
	pallet := p.d.PalletStruct.Pallet

	return []jen.Code{
		p.method(fmt.Sprintf("OnGenesis records the current version of %s in storage.", pallet)).
			Id("OnGenesis").Params().Block(
			p.support("PutPalletVersion").Types(p.self()).Call(p.palletInfo(), p.currentVersion()),
		),
		p.conformance(CapabilityGenesis),
	}
}

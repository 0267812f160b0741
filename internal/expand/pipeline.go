package expand

import (
	"github.com/dave/jennifer/jen"

	"pallet-generator/internal/def"
)

// Expander is a named expansion over a definition model.
type Expander struct {
	Name   string
	Expand func(d *def.Def) []jen.Code
}

// DefaultExpanders returns the expanders run for every pallet, in order.
// PalletStruct comes first because it adds the markers Derive consumes.
func DefaultExpanders() []Expander {
	return []Expander{
		{Name: "pallet_struct", Expand: PalletStruct},
		{Name: "derive", Expand: Derive},
	}
}

// Run applies expanders to d in order and concatenates their output.
// Running an expander a second time on the same model panics.
func Run(d *def.Def, expanders []Expander) []jen.Code {
	var out []jen.Code

	for _, e := range expanders {
		d.MarkExpanded(e.Name)
		out = append(out, e.Expand(d)...)
	}

	return out
}

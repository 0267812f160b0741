package analyze

import (
	"fmt"
	"go/types"

	"gopkg.in/yaml.v3"

	"pallet-generator/internal/def"
)

// Summary is a printable view of a definition model.
type Summary struct {
	Package      string   `yaml:"package"`
	Path         string   `yaml:"path"`
	Pallet       string   `yaml:"pallet"`
	Generics     []string `yaml:"generics"`
	Config       string   `yaml:"config"`
	Where        []string `yaml:"where,omitempty"`
	Error        string   `yaml:"error,omitempty"`
	Version      string   `yaml:"version"`
	Derives      []string `yaml:"derives,omitempty"`
	FrameSupport string   `yaml:"frame_support"`
	FrameSystem  string   `yaml:"frame_system"`
}

// Summarize describes d.
func Summarize(d *def.Def) Summary {
	decl, spec := d.PalletStructItem()

	s := Summary{
		Package:      d.Item.PkgName,
		Path:         d.Item.PkgPath,
		Pallet:       d.PalletStruct.Pallet,
		Config:       d.Config.Name,
		FrameSupport: d.FrameSupport,
		FrameSystem:  d.FrameSystem,
	}

	for _, p := range def.TypeParams(spec) {
		s.Generics = append(s.Generics, p.Name+" "+types.ExprString(p.Constraint))
	}

	for _, p := range d.ConfigWhereClause().Predicates {
		s.Where = append(s.Where, p.Param+" "+types.ExprString(p.Bound))
	}

	if e, ok := d.Error.(def.WithError); ok {
		s.Error = e.Error
	}

	if d.PkgVersion != nil {
		s.Version = d.PkgVersion.String()
	}

	for _, a := range def.Attrs(decl) {
		s.Derives = append(s.Derives, a.Path+"."+a.Name)
	}

	return s
}

// YAML renders the summary.
func (s Summary) YAML() ([]byte, error) {
	out, err := yaml.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("marshaling summary: %w", err)
	}

	return out, nil
}

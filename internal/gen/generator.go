package gen

import (
	"bytes"
	"fmt"

	"github.com/dave/jennifer/jen"

	"pallet-generator/internal/common"
	"pallet-generator/internal/def"
	"pallet-generator/internal/expand"
	"pallet-generator/internal/logger"
)

// Header is the comment opening every generated file.
const Header = "Code generated by pallet-generator. DO NOT EDIT."

// GeneratorConfig holds configuration for code generation.
type GeneratorConfig struct {
	// Filename is the name of the generated file inside the pallet package.
	Filename string
	// DebugDir receives the unformatted source when formatting fails; empty disables it.
	DebugDir string
	// Expanders run on the model; nil means expand.DefaultExpanders.
	Expanders []expand.Expander
}

// DefaultGeneratorConfig returns the default generator configuration.
func DefaultGeneratorConfig() GeneratorConfig {
	return GeneratorConfig{
		Filename: "pallet_gen.go",
	}
}

// Generator generates the capability implementations of a pallet package.
type Generator struct {
	config GeneratorConfig
	log    logger.Logger
}

// NewGenerator creates a new Generator with the given configuration.
func NewGenerator(config GeneratorConfig, log logger.Logger) *Generator {
	if config.Filename == "" {
		config.Filename = DefaultGeneratorConfig().Filename
	}

	if config.Expanders == nil {
		config.Expanders = expand.DefaultExpanders()
	}

	return &Generator{config: config, log: log}
}

// GeneratedFile represents a generated Go source file.
type GeneratedFile struct {
	// Filename is the name of the file (e.g., "pallet_gen.go").
	Filename string
	// Content is the formatted Go source code.
	Content []byte
}

// Generate runs the expanders on d and renders their output.
// d is consumed: running Generate twice on the same model panics.
func (g *Generator) Generate(d *def.Def) (*GeneratedFile, error) {
	f := jen.NewFilePathName(d.Item.PkgPath, d.Item.PkgName)
	f.HeaderComment(Header)

	for _, path := range []string{d.FrameSupport, d.FrameSystem, d.FrameSupport + expand.UnhashedPackage} {
		f.ImportName(path, common.PkgAlias(path))
	}

	decls := expand.Run(d, g.config.Expanders)
	for _, decl := range decls {
		f.Add(decl)
		f.Line()
	}

	var buf bytes.Buffer
	if err := f.Render(&buf); err != nil {
		g.dumpUnformatted(f)
		return nil, fmt.Errorf("rendering %s for %s: %w", g.config.Filename, d.Item.PkgPath, err)
	}

	g.log.Debug("generated file",
		"package", d.Item.PkgPath,
		"file", g.config.Filename,
		"declarations", len(decls),
		"bytes", buf.Len(),
	)

	return &GeneratedFile{Filename: g.config.Filename, Content: buf.Bytes()}, nil
}

func (g *Generator) dumpUnformatted(f *jen.File) {
	if g.config.DebugDir == "" {
		return
	}

	f.NoFormat = true

	var buf bytes.Buffer
	if err := f.Render(&buf); err != nil {
		g.log.Warn("rendering unformatted source", "error", err)
		return
	}

	if err := writeDebugUnformatted(g.config.DebugDir, g.config.Filename, buf.Bytes()); err != nil {
		g.log.Warn("writing unformatted source", "error", err)
	}
}

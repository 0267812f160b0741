package analyze

import (
	"context"
	"errors"
	"fmt"
	"go/token"
	"path/filepath"

	"golang.org/x/tools/go/packages"

	"pallet-generator/internal/def"
	"pallet-generator/internal/logger"
)

// LoadMode specifies what information to load from packages.
// The definition model is purely syntactic, so no type checking is needed.
const LoadMode = packages.NeedName |
	packages.NeedFiles |
	packages.NeedSyntax

// Analyzer loads a Go package and builds its definition model.
type Analyzer struct {
	opts Options
	log  logger.Logger
}

// NewAnalyzer creates a new Analyzer.
func NewAnalyzer(opts Options, log logger.Logger) *Analyzer {
	return &Analyzer{opts: opts, log: log}
}

// LoadDef loads the single package matched by pattern (e.g., "./examples/template")
// and builds its definition model.
func (a *Analyzer) LoadDef(ctx context.Context, pattern string) (*def.Def, error) {
	fset := token.NewFileSet()

	cfg := &packages.Config{
		Context: ctx,
		Mode:    LoadMode,
		Fset:    fset,
	}

	pkgs, err := packages.Load(cfg, pattern)
	if err != nil {
		return nil, fmt.Errorf("failed to load packages: %w", err)
	}

	if len(pkgs) != 1 {
		return nil, fmt.Errorf("pattern %q matched %d packages, want exactly one", pattern, len(pkgs))
	}

	pkg := pkgs[0]

	// Check for package errors
	var errs []error
	for _, e := range pkg.Errors {
		errs = append(errs, e)
	}

	if len(errs) > 0 {
		return nil, fmt.Errorf("package errors: %w", errors.Join(errs...))
	}

	a.log.Debug("loaded package", "path", pkg.PkgPath, "files", len(pkg.Syntax))

	opts := a.opts
	opts.Fset = fset

	d, diags, err := BuildDef(pkg.PkgPath, pkg.Syntax, opts)

	for _, w := range diags.Warnings {
		a.log.Warn(w.Message, "code", w.Code, "pos", w.Pos, "item", w.Item)
	}

	if err != nil {
		return nil, fmt.Errorf("invalid pallet package %s: %w", pkg.PkgPath, err)
	}

	if len(pkg.GoFiles) > 0 {
		d.Item.Dir = filepath.Dir(pkg.GoFiles[0])
	}

	a.log.Info("built definition model",
		"package", pkg.PkgPath,
		"pallet", d.PalletStruct.Pallet,
		"version", d.PkgVersion.String(),
	)

	return d, nil
}

package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"pallet-generator/internal/analyze"
	"pallet-generator/internal/gen"
	"pallet-generator/internal/logger"
)

// NewGenerateCommand creates the generate command.
func NewGenerateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate [pattern]",
		Short: "Generate the pallet implementations of a package",
		Long: `Load the package matched by pattern (default ".") and write the generated
implementations of its pallet struct next to its sources.`,
		Example: `  # From a go:generate directive inside the pallet package
  //go:generate go run pallet-generator/cmd/pallet-generator generate .

  # Print instead of writing
  pallet-generator generate ./examples/template --dry-run`,
		Args: cobra.MaximumNArgs(1),
		RunE: runGenerate,
	}

	cmd.Flags().StringP("output", "o", "", "Generated file name (default: pallet_gen.go)")
	cmd.Flags().String("pkg-version", "", "Package version, overriding //pallet:version")
	cmd.Flags().String("frame-support", "", "Import path of the support runtime")
	cmd.Flags().String("frame-system", "", "Import path of the system runtime")
	cmd.Flags().String("debug-dir", "", "Directory receiving the unformatted source when rendering fails")
	cmd.Flags().Bool("dry-run", false, "Print the generated file instead of writing it")

	return cmd
}

func runGenerate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	cfg := GetConfig(ctx)
	log := logger.FromContext(ctx)

	d, err := analyze.NewAnalyzer(cfg.AnalyzeOptions(), log).LoadDef(ctx, patternArg(args))
	if err != nil {
		return err
	}

	file, err := gen.NewGenerator(cfg.GeneratorConfig(), log).Generate(d)
	if err != nil {
		return err
	}

	if dryRun, _ := cmd.Flags().GetBool("dry-run"); dryRun {
		_, err := cmd.OutOrStdout().Write(file.Content)
		return err
	}

	dir := d.Item.Dir
	if dir == "" {
		dir = "."
	}

	path, err := gen.WriteFile(dir, file)
	if err != nil {
		return fmt.Errorf("generating %s: %w", d.Item.PkgPath, err)
	}

	log.Info("wrote generated file", "path", path)

	return nil
}

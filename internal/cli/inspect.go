package cli

import (
	"github.com/spf13/cobra"

	"pallet-generator/internal/analyze"
	"pallet-generator/internal/expand"
	"pallet-generator/internal/logger"
)

// NewInspectCommand creates the inspect command.
func NewInspectCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect [pattern]",
		Short: "Print the definition model of a pallet package as YAML",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg := GetConfig(ctx)

			d, err := analyze.NewAnalyzer(cfg.AnalyzeOptions(), logger.FromContext(ctx)).LoadDef(ctx, patternArg(args))
			if err != nil {
				return err
			}

			// show the model as the expanders leave it
			if expanded, _ := cmd.Flags().GetBool("expanded"); expanded {
				expand.Run(d, expand.DefaultExpanders())
			}

			out, err := analyze.Summarize(d).YAML()
			if err != nil {
				return err
			}

			_, err = cmd.OutOrStdout().Write(out)

			return err
		},
	}

	cmd.Flags().Bool("expanded", false, "Run the expanders before printing")

	return cmd
}

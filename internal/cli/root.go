// Package cli provides the command-line interface of pallet-generator.
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"pallet-generator/internal/config"
	"pallet-generator/internal/logger"
)

// Version information (set at build time).
var Version = "0.1.0"

var cfgFile string

// configKey is used to store config in context.
type configKey struct{}

// NewRootCmd creates and returns the root command.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "pallet-generator",
		Short: "Generate the capability implementations of pallet structs",
		Long: `pallet-generator reads a Go package annotated with //pallet: directives and
writes the error metadata, version reporting, genesis and derive
implementations of its pallet struct into a generated file.`,
		Version: Version,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Name() == "help" || cmd.Name() == "completion" || cmd.Name() == "__complete" {
				return nil
			}

			cfg, used, err := config.Load(cfgFile, cmd.Flags())
			if err != nil {
				return err
			}

			lcfg := cfg.LoggerConfig()
			lcfg.Output = cmd.ErrOrStderr()
			logger.Init(lcfg)

			log := logger.Default()
			if used != "" {
				log.Debug("using config file", "path", used)
			}

			ctx := context.WithValue(cmd.Context(), configKey{}, cfg)
			ctx = logger.ContextWithLogger(ctx, log)
			cmd.SetContext(ctx)

			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./palletgen.yaml)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level (debug|info|warn|error)")
	rootCmd.PersistentFlags().Bool("log-json", false, "Log as JSON")

	rootCmd.AddCommand(NewGenerateCommand())
	rootCmd.AddCommand(NewInspectCommand())
	rootCmd.AddCommand(NewVersionCommand())

	return rootCmd
}

// Execute runs the root command.
func Execute() error {
	rootCmd := NewRootCmd()
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}

	return nil
}

// GetConfig retrieves the config from the command context.
func GetConfig(ctx context.Context) *config.Config {
	if c, ok := ctx.Value(configKey{}).(*config.Config); ok {
		return c
	}

	cfg, _, err := config.Load("", nil)
	if err != nil {
		return &config.Config{}
	}

	return cfg
}

func patternArg(args []string) string {
	if len(args) == 0 {
		return "."
	}

	return args[0]
}

// File: cmd/root.go
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/xkilldash9x/mpdf/internal/config"
	"github.com/xkilldash9x/mpdf/internal/convert"
	"github.com/xkilldash9x/mpdf/internal/observability"
)

const usageLine = "Usage: ./mpdf <input file path> <output file path>"

// configSearchPaths lists the directories searched for config.yaml.
// Overridden in tests.
var configSearchPaths = func() []string {
	paths := []string{"."}
	if home, err := homedir.Dir(); err == nil {
		paths = append(paths, filepath.Join(home, ".mpdf"))
	}
	return paths
}

// NewRootCommand creates a new, clean root command. Each call returns an
// independent instance so tests never share state.
func NewRootCommand() *cobra.Command {
	var cfg *config.Config

	cmd := &cobra.Command{
		Use:           "mpdf <input file path> <output file path>",
		Short:         "mpdf lays out styled HTML or Markdown and renders it to PDF, PNG, SVG or JSON.",
		Version:       Version,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			v := viper.New()
			config.SetDefaults(v)

			if err := initializeConfig(v); err != nil {
				return fmt.Errorf("failed to initialize configuration: %w", err)
			}

			loaded, err := config.NewConfigFromViper(v)
			if err != nil {
				return fmt.Errorf("failed to load or validate config: %w", err)
			}
			cfg = loaded

			observability.InitializeLogger(cfg.Logger())
			observability.GetLogger().Debug("Starting mpdf", zap.String("version", Version))
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if len(args) < 2 {
				fmt.Fprintln(out, usageLine)
				return nil
			}

			pipeline := convert.NewPipeline(cfg, observability.GetLogger())
			if err := pipeline.ConvertFile(cmd.Context(), args[0], args[1]); err != nil {
				observability.GetLogger().Error("Conversion failed", zap.Error(err))
				fmt.Fprintf(out, "Error. %s\n", err)
				return nil
			}
			fmt.Fprintln(out, "Done.")
			return nil
		},
	}

	cmd.SetVersionTemplate(`{{printf "%s\n" .Version}}`)
	cmd.AddCommand(newVersionCommand())
	return cmd
}

// Execute runs the root command with ctx.
func Execute(ctx context.Context) error {
	defer observability.Sync()

	if err := NewRootCommand().ExecuteContext(ctx); err != nil {
		if !errors.Is(err, context.Canceled) {
			fmt.Fprintln(os.Stderr, err)
		}
		return err
	}
	return nil
}

// initializeConfig reads config.yaml from the search paths. A missing file
// is not an error.
func initializeConfig(v *viper.Viper) error {
	for _, p := range configSearchPaths() {
		v.AddConfigPath(p)
	}
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("error reading config file: %w", err)
		}
	}
	return nil
}

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/softpare/weblint/internal/config"
	"github.com/softpare/weblint/internal/lint"
	"github.com/softpare/weblint/internal/lint/rules"
	"github.com/softpare/weblint/internal/observability"
	"github.com/softpare/weblint/internal/reporting"
)

// errProblemsFound signals a non-zero exit without extra error output noise.
type errProblemsFound struct {
	count int
}

func (e errProblemsFound) Error() string {
	return fmt.Sprintf("found %d problems", e.count)
}

// newCheckCmd creates the `check` command, the main entry point for linting.
func newCheckCmd() *cobra.Command {
	checkCmd := &cobra.Command{
		Use:   "check [files or directories...]",
		Short: "Lints the given JavaScript files and directories",
		Args:  cobra.MinimumNArgs(1),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			// Bind flags to viper keys so flags override file and env values
			// with the right precedence.
			if err := viper.BindPFlag("output.format", cmd.Flags().Lookup("format")); err != nil {
				return err
			}
			if err := viper.BindPFlag("output.path", cmd.Flags().Lookup("output")); err != nil {
				return err
			}
			if err := viper.BindPFlag("lint.concurrency", cmd.Flags().Lookup("concurrency")); err != nil {
				return err
			}
			if err := viper.BindPFlag("lint.tags", cmd.Flags().Lookup("tags")); err != nil {
				return err
			}
			return viper.BindPFlag("lint.exclude", cmd.Flags().Lookup("exclude"))
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := observability.GetLogger()

			var cfg config.Config
			if err := viper.Unmarshal(&cfg); err != nil {
				return fmt.Errorf("failed to unmarshal config with flag overrides: %w", err)
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			selected := rules.Filter(rules.ForTags(cfg.Lint.Tags), cfg.Lint.IncludeRules, cfg.Lint.ExcludeRules)
			if len(selected) == 0 {
				return fmt.Errorf("no rules selected; check lint.tags and rule filters")
			}

			linter := lint.NewLinter(logger, selected...)
			runner, err := lint.NewRunner(logger, linter, cfg.Lint.Concurrency, cfg.Lint.Exclude)
			if err != nil {
				return err
			}

			results, err := runner.Run(ctx, args)
			if err != nil {
				logger.Error("Lint run failed", zap.Error(err))
				return err
			}

			reporter, err := reporting.New(cfg.Output.Format, cfg.Output.Path, Version, selected)
			if err != nil {
				return err
			}
			problems := 0
			for _, res := range results {
				problems += len(res.Diagnostics)
				if err := reporter.Write(&res); err != nil {
					reporter.Close()
					return fmt.Errorf("failed to write report: %w", err)
				}
			}
			if err := reporter.Close(); err != nil {
				return fmt.Errorf("failed to finalize report: %w", err)
			}

			if problems > 0 {
				return errProblemsFound{count: problems}
			}
			return nil
		},
	}

	checkCmd.Flags().StringP("format", "f", "text", "output format: text, json, or sarif")
	checkCmd.Flags().StringP("output", "o", "", "output file (default stdout)")
	checkCmd.Flags().Int("concurrency", 0, "number of files linted in parallel (default: CPU count)")
	checkCmd.Flags().StringSlice("tags", nil, "rule set tags to enable")
	checkCmd.Flags().StringSlice("exclude", nil, "glob patterns of files to skip")

	return checkCmd
}

func init() {
	rootCmd.AddCommand(newCheckCmd())
}

package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/softpare/weblint/internal/lint/rules"
)

// newRulesCmd creates the `rules` command, which lists the available rules.
func newRulesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rules",
		Short: "Lists the available lint rules",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, rule := range rules.All() {
				if _, err := fmt.Fprintf(cmd.OutOrStdout(), "%-20s [%s] %s\n",
					rule.Code(), strings.Join(rule.Tags(), ","), rule.Summary()); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

func init() {
	rootCmd.AddCommand(newRulesCmd())
}

// Package scenariocmd holds the scenario catalog commands of the operator CLI.
package scenariocmd

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/mtoivan/samplab/internal/errors"
	"github.com/mtoivan/samplab/internal/sandbox"
	"github.com/mtoivan/samplab/internal/scenarios"
	"github.com/spf13/cobra"
)

var Group = &cobra.Group{
	ID:    "scenarios",
	Title: "Scenario catalog",
}

// quietLogger suppresses the catalog's info chatter so command output stays
// parseable.
func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
}

var List = &cobra.Command{
	Use:     "list",
	GroupID: "scenarios",
	Short:   "List the built-in scenarios",
	Long:    "Lists every scenario in the embedded catalog with its methods and required point count.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		catalog, err := scenarios.New(quietLogger())
		if err != nil {
			return errors.Wrap(err, "load catalog")
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		_, _ = fmt.Fprintln(w, "ID\tNAME\tRECOMMENDED\tAPPLICABLE\tREQUIRED POINTS")
		for _, sc := range catalog.All() {
			applicable := make([]string, 0, len(sc.ApplicableMethods))
			for _, m := range sc.ApplicableMethods {
				applicable = append(applicable, string(m))
			}
			_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\n",
				sc.ID, sc.Name, sc.RecommendedMethod, strings.Join(applicable, ", "), sandbox.RequiredPoints(sc))
		}
		return errors.Wrap(w.Flush(), "flush table")
	},
}

var Check = &cobra.Command{
	Use:     "check <file>",
	GroupID: "scenarios",
	Short:   "Validate an external catalog file",
	Long: `Validates a scenario catalog JSON document with the same rules the server
applies to the embedded catalog on startup. Exits non-zero when any
definition is broken, so it can gate a deploy.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return errors.Wrap(err, "read catalog file")
		}
		catalog, err := scenarios.NewFromJSON(data, quietLogger())
		if err != nil {
			return errors.Wrap(err, "validate catalog", slog.String("file", args[0]))
		}
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s: %d scenarios OK\n", args[0], catalog.Len())
		return nil
	},
}

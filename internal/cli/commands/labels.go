package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ccollicutt/confparse/pkg/classifier"
)

// NewLabelsCommand creates the labels command.
func NewLabelsCommand() *cobra.Command {
	var showPattern bool

	cmd := &cobra.Command{
		Use:   "labels",
		Short: "List line labels in match priority order",
		Long: `List every label a line can receive, in the order the alternatives are
tried. The first alternative that matches the whole line wins.`,
		Args: cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			for i, l := range classifier.Labels() {
				fmt.Fprintf(out, "%d. %-13s %s\n", i+1, l, classifier.Expression(l))
			}
			if showPattern {
				fmt.Fprintf(out, "\nPattern: %s\n", classifier.CompositePattern())
			}
		},
	}

	cmd.Flags().BoolVarP(&showPattern, "pattern", "p", false, "Also print the composite pattern")

	return cmd
}

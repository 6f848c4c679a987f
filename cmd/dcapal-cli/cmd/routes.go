package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/dcapal/dcapal-web/internal/routes"
)

var demoIDs []string

// routesCmd represents the routes command
var routesCmd = &cobra.Command{
	Use:   "routes",
	Short: "Print the browser route table",
	Long: `Builds the route table the server mounts and prints every path with its
route name, in registration order. The catch-all comes first; echo still
matches it last.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		entries := routes.Build(routes.Screens{}, demoIDs)
		paths := routes.Paths(entries)

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "PATH\tNAME")
		for i, e := range entries {
			fmt.Fprintf(w, "%s\t%s\n", paths[i], e.Name)
		}
		return w.Flush()
	},
}

func init() {
	routesCmd.Flags().StringSliceVar(&demoIDs, "demo", routes.DemoPortfolios, "demo portfolio ids to generate routes for")
	rootCmd.AddCommand(routesCmd)
}

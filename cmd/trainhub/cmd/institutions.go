package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var institutionsRefresh bool

var institutionsCmd = &cobra.Command{
	Use:   "institutions",
	Short: "List training institutions",
	Long: `List training institutions.

Results are served from the local catalog cache when present. Use
--refresh to fetch the current listing from the portal.`,
	RunE: runInstitutions,
}

func init() {
	institutionsCmd.Flags().BoolVar(&institutionsRefresh, "refresh", false, "fetch the listing from the portal")
	rootCmd.AddCommand(institutionsCmd)
}

func runInstitutions(cmd *cobra.Command, args []string) error {
	app, err := newApp(cmd.Context())
	if err != nil {
		return err
	}

	cat, err := app.openCatalog()
	if err != nil {
		return err
	}
	defer cat.Close()

	if err := refreshCatalog(cmd, app, cat, institutionsRefresh); err != nil {
		return err
	}

	institutions, err := cat.Institutions(cmd.Context())
	if err != nil {
		return err
	}
	if len(institutions) == 0 {
		fmt.Println("No institutions found.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tADDRESS\tPHONE")
	for _, inst := range institutions {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", inst.ID, inst.Name, inst.Address, inst.Phone)
	}
	return w.Flush()
}

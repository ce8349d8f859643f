package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/trainhub/trainhub/internal/adapter/outbound/catalog"
	"github.com/trainhub/trainhub/internal/adapter/outbound/portal"
)

var (
	trainingsSearch  string
	trainingsRefresh bool
)

var trainingsCmd = &cobra.Command{
	Use:   "trainings",
	Short: "List training courses",
	Long: `List training courses.

Results are served from the local catalog cache when present. Use
--refresh to fetch the current listing from the portal, and --search
to filter by course name, institution, or NCS category.`,
	RunE: runTrainings,
}

func init() {
	trainingsCmd.Flags().StringVarP(&trainingsSearch, "search", "s", "", "filter by keyword")
	trainingsCmd.Flags().BoolVar(&trainingsRefresh, "refresh", false, "fetch the listing from the portal")
	rootCmd.AddCommand(trainingsCmd)
}

func runTrainings(cmd *cobra.Command, args []string) error {
	app, err := newApp(cmd.Context())
	if err != nil {
		return err
	}

	cat, err := app.openCatalog()
	if err != nil {
		return err
	}
	defer cat.Close()

	if err := refreshCatalog(cmd, app, cat, trainingsRefresh); err != nil {
		return err
	}

	var trainings []portal.Training
	if trainingsSearch != "" {
		trainings, err = cat.SearchTrainings(cmd.Context(), trainingsSearch)
	} else {
		trainings, err = cat.Trainings(cmd.Context())
	}
	if err != nil {
		return err
	}
	if len(trainings) == 0 {
		fmt.Println("No trainings found.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tINSTITUTION\tNCS\tPERIOD")
	for _, t := range trainings {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n",
			t.ID, t.Name, t.InstitutionName, t.NCSTypeDescription, t.Period)
	}
	return w.Flush()
}

// refreshCatalog populates the catalog from the portal when the cache
// is empty or a refresh was requested.
func refreshCatalog(cmd *cobra.Command, app *app, cat *catalog.Store, force bool) error {
	if !force {
		if _, ok, err := cat.RefreshedAt(cmd.Context()); err != nil {
			return err
		} else if ok {
			return nil
		}
	}

	institutions, err := app.client.Institutions(cmd.Context())
	if err != nil {
		return fmt.Errorf("fetch institutions: %w", err)
	}
	trainings, err := app.client.Trainings(cmd.Context())
	if err != nil {
		return fmt.Errorf("fetch trainings: %w", err)
	}
	return cat.Replace(cmd.Context(), institutions, trainings)
}

package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/templui/cuidador/internal/app"
	"github.com/templui/cuidador/internal/config"
)

func EldersCmd(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "elders",
		Short: "Inspect elder records",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List elders by name",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cfg, func(a *app.App) error {
				elders, err := a.ElderService.List(cmd.Context())
				if err != nil {
					return err
				}

				w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
				fmt.Fprintln(w, "ID\tNAME\tAGE\tUPDATED")
				for _, e := range elders {
					age := "-"
					if e.Age != nil {
						age = fmt.Sprint(*e.Age)
					}
					fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", e.ID, e.Name, age, e.UpdatedAt.Format("2006-01-02 15:04"))
				}
				return w.Flush()
			})
		},
	})

	return cmd
}

package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/templui/cuidador/internal/app"
	"github.com/templui/cuidador/internal/config"
)

func ExportCmd(cfg *config.Config) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write elders, notes and reports to an Excel workbook",
		RunE: func(cmd *cobra.Command, args []string) error {
			if out == "" {
				out = "cuidador-" + time.Now().Format("2006-01-02") + ".xlsx"
			}

			return withApp(cfg, func(a *app.App) error {
				f, err := os.Create(out)
				if err != nil {
					return err
				}

				err = a.ExportService.WriteXLSX(cmd.Context(), f)
				if err != nil {
					_ = f.Close()
					_ = os.Remove(out)
					return err
				}

				err = f.Close()
				if err != nil {
					return err
				}

				fmt.Fprintln(cmd.OutOrStdout(), "wrote", out)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "", "output file (default cuidador-<date>.xlsx)")
	return cmd
}

func withApp(cfg *config.Config, fn func(a *app.App) error) error {
	a, err := app.New(cfg)
	if err != nil {
		return err
	}
	defer func() {
		closeErr := a.Close()
		if closeErr != nil {
			fmt.Fprintln(os.Stderr, "failed to close app:", closeErr)
		}
	}()

	return fn(a)
}

package cli

import (
	"fmt"
	"os"

	"github.com/ogurasousui/employee-directory/internal/adapters/export"
	"github.com/spf13/cobra"
)

func newExportCmd(app *App) *cobra.Command {
	var (
		q      queryFlags
		format string
		out    string
	)
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the filtered directory to CSV or XLSX",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			exporter, err := export.ForFormat(format)
			if err != nil {
				return err
			}
			if out == "" {
				out = "employees." + format
			}

			s, err := app.open(nil, nil)
			if err != nil {
				return err
			}
			defer s.close()

			if err := q.apply(s.orch); err != nil {
				return err
			}
			if err := s.orch.Load(cmd.Context()); err != nil {
				printNotification(cmd.ErrOrStderr(), s.orch)
				return err
			}

			f, err := os.Create(out)
			if err != nil {
				return fmt.Errorf("create %s: %w", out, err)
			}
			defer func() {
				if cerr := f.Close(); cerr != nil && err == nil {
					err = fmt.Errorf("close %s: %w", out, cerr)
				}
			}()

			if err := s.orch.Export(cmd.Context(), f, exporter); err != nil {
				printNotification(cmd.ErrOrStderr(), s.orch)
				return err
			}
			printNotification(cmd.OutOrStdout(), s.orch)
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d employees to %s\n", len(s.orch.View()), out)
			return nil
		},
	}
	q.bind(cmd)
	cmd.Flags().StringVar(&format, "format", export.FormatCSV, "csv or xlsx")
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file (default employees.<format>)")
	return cmd
}

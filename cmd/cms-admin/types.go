package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

// NewTypesCommand inspects content types
func NewTypesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "types",
		Short: "Inspect content types",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List content types and their fields",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, cleanup, err := serviceFromFlags(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			types, err := svc.ListContentTypes(cmd.Context())
			if err != nil {
				return err
			}
			if jsonOutput(cmd) {
				return printJSON(cmd, types)
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "SLUG\tNAME\tFIELDS\tLISTABLE\tDEFAULT STATUS")
			for _, ct := range types {
				fmt.Fprintf(w, "%s\t%s\t%d\t%t\t%s\n", ct.Slug, ct.Name, len(ct.Fields), ct.IsListable, ct.DefaultStatus)
			}
			return w.Flush()
		},
	})

	return cmd
}

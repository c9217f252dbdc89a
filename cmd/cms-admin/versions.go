package main

import (
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

// NewVersionsCommand inspects the version history of an entry
func NewVersionsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "versions",
		Short: "Inspect content version history",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list <content-id>",
		Short: "List the versions of an entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := uuid.Parse(args[0])
			if err != nil {
				return fmt.Errorf("invalid content id: %w", err)
			}
			svc, cleanup, err := serviceFromFlags(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			versions, err := svc.ListVersions(cmd.Context(), id)
			if err != nil {
				return err
			}
			if jsonOutput(cmd) {
				return printJSON(cmd, versions)
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "VERSION\tSTATUS\tTITLE\tCREATED\tNOTES")
			for _, v := range versions {
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n", v.VersionNumber, v.Status, v.Title, v.CreatedAt.Format("2006-01-02 15:04:05"), v.Notes)
			}
			return w.Flush()
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "diff <content-id> <version-a> <version-b>",
		Short: "Compare two versions of an entry",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := uuid.Parse(args[0])
			if err != nil {
				return fmt.Errorf("invalid content id: %w", err)
			}
			a, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid version %q", args[1])
			}
			b, err := strconv.Atoi(args[2])
			if err != nil {
				return fmt.Errorf("invalid version %q", args[2])
			}
			svc, cleanup, err := serviceFromFlags(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			cmp, err := svc.CompareVersions(cmd.Context(), id, a, b)
			if err != nil {
				return err
			}
			if jsonOutput(cmd) {
				return printJSON(cmd, cmp)
			}

			out := cmd.OutOrStdout()
			if cmp.TitleA != cmp.TitleB {
				fmt.Fprintf(out, "title: %q -> %q\n", cmp.TitleA, cmp.TitleB)
			}
			if cmp.StatusA != cmp.StatusB {
				fmt.Fprintf(out, "status: %s -> %s\n", cmp.StatusA, cmp.StatusB)
			}
			for _, f := range cmp.Fields {
				if !f.Changed {
					continue
				}
				fmt.Fprintf(out, "%s: %v -> %v\n", f.FieldKey, f.ValueA, f.ValueB)
			}
			return nil
		},
	})

	return cmd
}

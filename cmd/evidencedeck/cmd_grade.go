package main

import (
	"fmt"

	"github.com/Sachithra-228/evidencedeck/internal/dataset"
	"github.com/Sachithra-228/evidencedeck/internal/verdict"
	"github.com/spf13/cobra"
)

func newGradeCommand(a *app) *cobra.Command {
	var write bool

	cmd := &cobra.Command{
		Use:   "grade [cases-file]",
		Short: "Recompute pass/fail from actual and expected output",
		Long: `Recompute each case's status by comparing its captured actual output with
the expected output, ignoring differences in whitespace.

Cases without actual output keep their status. Changes are listed; use
--write to save them back to the case file.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var override string
			if len(args) == 1 {
				override = args[0]
			}
			cfg, err := a.config()
			if err != nil {
				return err
			}
			path := casesPath(cfg, override)

			cases, err := dataset.Load(path)
			if err != nil {
				return err
			}
			updated, changes := verdict.Regrade(cases)

			out := cmd.OutOrStdout()
			for _, c := range changes {
				before := c.Before
				if before == "" {
					before = "(none)"
				}
				fmt.Fprintf(out, "%s: %s -> %s\n", c.ID, before, c.After) //nolint:errcheck
			}
			fmt.Fprintf(out, "%d of %d case(s) changed\n", len(changes), len(cases)) //nolint:errcheck

			if !write || len(changes) == 0 {
				return nil
			}
			if err := dataset.Save(path, updated); err != nil {
				return err
			}
			fmt.Fprintf(out, "Updated %s\n", path) //nolint:errcheck
			return nil
		},
	}

	cmd.Flags().BoolVarP(&write, "write", "w", false, "Write the new statuses back to the case file")

	return cmd
}

package main

import (
	"fmt"

	"github.com/Sachithra-228/evidencedeck/internal/media"
	"github.com/Sachithra-228/evidencedeck/internal/spinner"
	"github.com/Sachithra-228/evidencedeck/internal/validation"
	"github.com/spf13/cobra"
)

func newValidateCommand(a *app) *cobra.Command {
	var (
		mediaPath string
		workers   int
		skipMedia bool
		strict    bool
	)

	cmd := &cobra.Command{
		Use:   "validate [cases-file]",
		Short: "Lint a case file and check that its media exists",
		Long: `Lint a case file against the case schema and check that every screenshot
and video the gallery would show is present in the media store.

Findings are warnings: the gallery still loads a file that fails the lint.
Use --strict to exit with code 1 when anything is reported.`,
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
			out := cmd.OutOrStdout()

			warnings, err := validation.ValidateCaseFile(path)
			if err != nil {
				return err
			}
			for _, w := range warnings {
				fmt.Fprintf(out, "⚠️  %s\n", w) //nolint:errcheck
			}

			var missing []media.Missing
			if !skipMedia {
				_, store, artifacts, err := a.loadArtifacts(path)
				if err != nil {
					return err
				}
				mediaStore, err := media.Open(cfg.Media, mediaDir(cfg, mediaPath))
				if err != nil {
					return fmt.Errorf("failed to open media store: %w", err)
				}
				if !cmd.Flags().Changed("workers") {
					workers = cfg.Media.Workers
				}

				sp := spinner.New(cmd.ErrOrStderr()).Start(fmt.Sprintf("Checking media for %d artifacts...", len(artifacts)))
				missing, err = media.Check(cmd.Context(), mediaStore, artifacts, store.Info().Options.Layout, workers)
				sp.Stop()
				if err != nil {
					return fmt.Errorf("media check failed: %w", err)
				}
				for _, m := range missing {
					fmt.Fprintf(out, "❌ %s: %s missing (%s)\n", m.ID, m.Kind, m.Key) //nolint:errcheck
				}
			}

			if len(warnings) == 0 && len(missing) == 0 {
				fmt.Fprintf(out, "✅ %s is valid\n", path) //nolint:errcheck
				return nil
			}
			fmt.Fprintf(out, "%d lint warning(s), %d missing media file(s)\n", len(warnings), len(missing)) //nolint:errcheck
			if strict {
				return &TestFailureError{
					Message: fmt.Sprintf("validation found %d warning(s) and %d missing media file(s)", len(warnings), len(missing)),
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&mediaPath, "media", "", "Media directory for the file backend (overrides paths.media)")
	cmd.Flags().IntVar(&workers, "workers", media.DefaultWorkers, "Concurrent media lookups")
	cmd.Flags().BoolVar(&skipMedia, "skip-media", false, "Only lint the case file")
	cmd.Flags().BoolVar(&strict, "strict", false, "Exit with code 1 when anything is reported")

	return cmd
}

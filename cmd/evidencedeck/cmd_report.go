package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/Sachithra-228/evidencedeck/internal/gallery"
	"github.com/Sachithra-228/evidencedeck/internal/reporting"
	"github.com/spf13/cobra"
)

const (
	formatJUnit    = "junit"
	formatMarkdown = "markdown"
	formatHTML     = "html"
	formatText     = "text"
)

func newReportCommand(a *app) *cobra.Command {
	var (
		cases  string
		format string
		output string
		status string
		strict bool
	)

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Export the gallery as JUnit XML, Markdown, HTML or text",
		Long: `Export the captured evidence as a report.

Formats:
  junit     JUnit XML, one testsuite per suite name
  markdown  summary table suitable for a pull request comment
  html      the Markdown report rendered as a standalone page
  text      a short plain-text summary

Totals always cover the whole case file; --status only narrows the listed
cases. Use --strict to exit with code 1 when any case failed.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			format = strings.ToLower(format)
			switch format {
			case formatJUnit, formatMarkdown, formatHTML, formatText:
			default:
				return fmt.Errorf("unsupported format %q (want junit, markdown, html or text)", format)
			}
			filter, err := gallery.ParseStatusFilter(status)
			if err != nil {
				return err
			}

			_, store, artifacts, err := a.loadArtifacts(cases)
			if err != nil {
				return err
			}
			totals, err := store.Totals()
			if err != nil {
				return err
			}
			listed := gallery.Filter(artifacts, filter, gallery.AllTypes())

			toFile := output != "" && output != "-"
			var data []byte
			switch format {
			case formatJUnit:
				if toFile {
					if err := reporting.WriteJUnitXML(listed, output); err != nil {
						return fmt.Errorf("failed to write report: %w", err)
					}
					break
				}
				data, err = reporting.MarshalJUnitXML(listed)
			case formatMarkdown:
				data = []byte(reporting.FormatMarkdown(listed, totals))
			case formatHTML:
				data, err = reporting.RenderHTML(store.Info().Options.Suite, reporting.FormatMarkdown(listed, totals))
			case formatText:
				data = []byte(reporting.FormatSummaryReport(listed, totals))
			}
			if err != nil {
				return err
			}

			if !toFile {
				if _, err := cmd.OutOrStdout().Write(data); err != nil {
					return err
				}
			} else {
				if format != formatJUnit {
					if err := os.WriteFile(output, data, 0o644); err != nil {
						return fmt.Errorf("failed to write report: %w", err)
					}
				}
				fmt.Fprintf(cmd.ErrOrStderr(), "Report written to %s\n", output) //nolint:errcheck
			}

			if strict && totals.Failed > 0 {
				return &TestFailureError{
					Message: fmt.Sprintf("%d of %d cases failed", totals.Failed, totals.Total),
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&cases, "cases", "", "Case file to report on (overrides paths.cases)")
	cmd.Flags().StringVarP(&format, "format", "f", formatMarkdown, "Output format: junit, markdown, html or text")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Write the report to a file instead of stdout")
	cmd.Flags().StringVar(&status, "status", "all", "List only cases with this status: all, failed, passed or flaky")
	cmd.Flags().BoolVar(&strict, "strict", false, "Exit with code 1 when any case failed")

	return cmd
}

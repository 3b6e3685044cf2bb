package main

import (
	"fmt"
	"log/slog"

	"github.com/Sachithra-228/evidencedeck/internal/dataset"
	"github.com/Sachithra-228/evidencedeck/internal/models"
	"github.com/Sachithra-228/evidencedeck/internal/projectconfig"
	"github.com/Sachithra-228/evidencedeck/internal/projection"
	"github.com/Sachithra-228/evidencedeck/internal/webapi"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var version = "dev"

// app carries the global flags every subcommand needs.
type app struct {
	configPath string
}

func newRootCommand() *cobra.Command {
	a := &app{}
	cmd := &cobra.Command{
		Use:   "evidencedeck",
		Short: "evidencedeck - review captured end-to-end test evidence",
		Long: `evidencedeck turns the cases, screenshots and videos captured by a browser
test suite into a filterable gallery.

Serve the gallery in a browser, page through it in the terminal, lint the
capture output, or export it as JUnit XML, Markdown or HTML.`,
		Version:      version,
		SilenceUsage: true,
	}

	debugLogging := cmd.PersistentFlags().Bool("debug", false, "Enable debug logging")
	cmd.PersistentFlags().StringVar(&a.configPath, "config", "", "Path to .evidencedeck.yaml (default: search upward from the working directory)")
	cmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		if *debugLogging {
			slog.SetLogLoggerLevel(slog.LevelDebug)
		}
		// A missing .env is normal.
		_ = godotenv.Load()
	}

	cmd.AddCommand(newServeCommand(a))
	cmd.AddCommand(newBrowseCommand(a))
	cmd.AddCommand(newValidateCommand(a))
	cmd.AddCommand(newReportCommand(a))
	cmd.AddCommand(newGradeCommand(a))

	return cmd
}

func execute() error {
	rootCmd := newRootCommand()
	return rootCmd.Execute()
}

// config loads the project configuration named by --config, or the nearest
// .evidencedeck.yaml above the working directory.
func (a *app) config() (*projectconfig.ProjectConfig, error) {
	if a.configPath != "" {
		return projectconfig.LoadFile(a.configPath)
	}
	return projectconfig.Load(".")
}

// projectionOptions builds the artifact metadata settings from cfg.
func projectionOptions(cfg *projectconfig.ProjectConfig) (projection.Options, error) {
	epoch, err := cfg.Timeline.EpochTime()
	if err != nil {
		return projection.Options{}, err
	}
	layout := projection.DefaultLayout()
	layout.BaseURL = cfg.Server.BaseURL
	return projection.Options{
		Suite:    cfg.Display.Suite,
		SpecPath: cfg.Display.SpecPath,
		Browser:  cfg.Display.Browser,
		Epoch:    epoch,
		Spacing:  cfg.Timeline.Spacing(),
		Layout:   layout,
	}, nil
}

// casesPath returns override when set, else the configured case file.
func casesPath(cfg *projectconfig.ProjectConfig, override string) string {
	if override != "" {
		return override
	}
	return cfg.ResolvePath(cfg.Paths.Cases)
}

// mediaDir returns override when set, else the configured media directory.
func mediaDir(cfg *projectconfig.ProjectConfig, override string) string {
	if override != "" {
		return override
	}
	return cfg.ResolvePath(cfg.Paths.Media)
}

// loadArtifacts resolves configuration and projects the case file. Unlike
// serve, a missing case file is an error here. The returned store holds the
// projected collection for totals and options.
func (a *app) loadArtifacts(casesOverride string) (*projectconfig.ProjectConfig, *webapi.FileStore, []models.Artifact, error) {
	cfg, err := a.config()
	if err != nil {
		return nil, nil, nil, err
	}
	opts, err := projectionOptions(cfg)
	if err != nil {
		return nil, nil, nil, err
	}
	path := casesPath(cfg, casesOverride)
	cases, err := dataset.Load(path)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to load cases from %s: %w", path, err)
	}
	artifacts := projection.Project(cases, opts)
	return cfg, webapi.NewMemoryStore(artifacts, opts), artifacts, nil
}

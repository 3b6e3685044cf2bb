package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/Sachithra-228/evidencedeck/internal/display"
	"github.com/Sachithra-228/evidencedeck/internal/gallery"
	"github.com/Sachithra-228/evidencedeck/internal/models"
	"github.com/Sachithra-228/evidencedeck/internal/wizard"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func newBrowseCommand(a *app) *cobra.Command {
	var (
		cases       string
		status      string
		types       string
		interactive bool
	)

	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Page through the evidence gallery in the terminal",
		Long: `Page through the evidence gallery in the terminal.

The gallery is printed as a list of cards with the totals bar on top. Type
commands at the prompt to filter, open and step through artifacts; type ?
for the list of commands.

Use --interactive to pick the starting filters from a form.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			initial, err := initialState(status, types)
			if err != nil {
				return err
			}

			in := browseInput(cmd.InOrStdin())
			if interactive {
				initial, err = wizard.RunFilterWizard(in, cmd.OutOrStdout(), initial)
				if err != nil {
					return err
				}
			}

			_, _, artifacts, err := a.loadArtifacts(cases)
			if err != nil {
				return err
			}

			g := gallery.New(artifacts)
			applyFilters(g, initial)
			return runBrowseLoop(in, cmd.OutOrStdout(), g)
		},
	}

	cmd.Flags().StringVar(&cases, "cases", "", "Case file to browse (overrides paths.cases)")
	cmd.Flags().StringVar(&status, "status", "all", "Initial status filter: all, failed, passed or flaky")
	cmd.Flags().StringVar(&types, "type", "all", "Initial media types, comma-separated: screenshot, video or all")
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "Choose the initial filters from a form")

	return cmd
}

// browseInput returns the reader shared by the filter form and the prompt.
// Piped input is handed out one line per Read so neither consumer buffers
// lines meant for the other.
func browseInput(in io.Reader) io.Reader {
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return f
	}
	return &lineReader{r: bufio.NewReader(in)}
}

type lineReader struct {
	r       *bufio.Reader
	pending []byte
}

func (l *lineReader) Read(p []byte) (int, error) {
	if len(l.pending) == 0 {
		line, err := l.r.ReadSlice('\n')
		if len(line) == 0 {
			return 0, err
		}
		l.pending = line
	}
	n := copy(p, l.pending)
	l.pending = l.pending[n:]
	return n, nil
}

func initialState(status, types string) (gallery.State, error) {
	f, err := gallery.ParseStatusFilter(status)
	if err != nil {
		return gallery.State{}, err
	}
	ts, err := gallery.ParseTypeSet(types)
	if err != nil {
		return gallery.State{}, err
	}
	return gallery.State{Status: f, Types: ts}, nil
}

// applyFilters moves g to the filters in want using ordinary intents.
func applyFilters(g *gallery.Gallery, want gallery.State) {
	g.SetStatusFilter(want.Status)
	g.SetTypeFilterAll()
	var hide []models.MediaKind
	for _, k := range gallery.MediaKinds {
		if !want.Types.Has(k) {
			hide = append(hide, k)
		}
	}
	for _, k := range hide {
		g.ToggleTypeFilter(k)
	}
}

// runBrowseLoop renders g and reads one command per line from in until the
// user quits or input ends.
func runBrowseLoop(in io.Reader, out io.Writer, g *gallery.Gallery) error {
	scanner := bufio.NewScanner(in)
	for {
		display.Render(out, g.View(), g.State())
		fmt.Fprint(out, "> ") //nolint:errcheck

		if !scanner.Scan() {
			fmt.Fprintln(out) //nolint:errcheck
			return scanner.Err()
		}

		intent, quit, err := display.ParseCommand(scanner.Text())
		switch {
		case errors.Is(err, display.ErrHelp):
			fmt.Fprintln(out, display.Help) //nolint:errcheck
		case err != nil:
			fmt.Fprintf(out, "error: %v\n", err) //nolint:errcheck
		case quit:
			return nil
		case intent != nil:
			g.Dispatch(intent)
		}
	}
}

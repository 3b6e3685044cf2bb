// Package wizard asks for the initial gallery filters with an interactive
// form.
package wizard

import (
	"fmt"
	"io"
	"os"

	"github.com/Sachithra-228/evidencedeck/internal/gallery"
	"github.com/Sachithra-228/evidencedeck/internal/models"
	"github.com/charmbracelet/huh"
	"golang.org/x/term"
)

// FilterChoice holds the answers collected by RunFilterWizard.
type FilterChoice struct {
	Status string
	Kinds  []string
}

// State converts the answers into a gallery state with nothing open.
func (c FilterChoice) State() (gallery.State, error) {
	status, err := gallery.ParseStatusFilter(c.Status)
	if err != nil {
		return gallery.State{}, err
	}
	if err := validateKinds(c.Kinds); err != nil {
		return gallery.State{}, err
	}
	kinds := make([]models.MediaKind, len(c.Kinds))
	for i, k := range c.Kinds {
		kinds[i] = models.MediaKind(k)
	}
	types, err := gallery.TypesOf(kinds...)
	if err != nil {
		return gallery.State{}, err
	}
	return gallery.State{Status: status, Types: types}, nil
}

func validateKinds(kinds []string) error {
	if len(kinds) == 0 {
		return fmt.Errorf("pick at least one media type")
	}
	return nil
}

// RunFilterWizard runs a huh form asking for a status filter and the media
// types to show. initial seeds the form's answers.
func RunFilterWizard(in io.Reader, out io.Writer, initial gallery.State) (gallery.State, error) {
	choice := FilterChoice{Status: string(initial.Status)}
	if choice.Status == "" {
		choice.Status = string(gallery.FilterAll)
	}
	for _, k := range initial.Types.Kinds() {
		choice.Kinds = append(choice.Kinds, string(k))
	}

	statusOptions := make([]huh.Option[string], 0, len(gallery.StatusFilters))
	for _, f := range gallery.StatusFilters {
		statusOptions = append(statusOptions, huh.NewOption(f.Label(), string(f)))
	}
	kindOptions := make([]huh.Option[string], 0, len(gallery.MediaKinds))
	for _, k := range gallery.MediaKinds {
		kindOptions = append(kindOptions, huh.NewOption(k.Label(), string(k)))
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Status").
				Description("Which results to review").
				Options(statusOptions...).
				Value(&choice.Status),
			huh.NewMultiSelect[string]().
				Title("Media types").
				Description("Captured media to include").
				Options(kindOptions...).
				Value(&choice.Kinds).
				Validate(validateKinds),
		),
	).
		WithInput(in).
		WithOutput(out)

	// Use accessible mode for non-TTY input (e.g., tests, piped input).
	if f, ok := in.(*os.File); !ok || !term.IsTerminal(int(f.Fd())) {
		form = form.WithAccessible(true)
	}

	if err := form.Run(); err != nil {
		return gallery.State{}, fmt.Errorf("filter wizard failed: %w", err)
	}
	return choice.State()
}

package display

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Sachithra-228/evidencedeck/internal/gallery"
	"github.com/Sachithra-228/evidencedeck/internal/models"
)

// Help lists the browse prompt commands.
const Help = `commands:
  n, l, next, right   next artifact
  p, h, prev, left    previous artifact
  o <id>, open <id>   open an artifact
  c, close, esc       close the lightbox
  s <status>          filter by all, failed, passed or flaky
  t <kind>            toggle screenshot or video
  t all               show every media kind
  ?, help             show this help
  q, quit             leave`

// ErrHelp is returned by ParseCommand when the user asked for help.
var ErrHelp = errors.New("help requested")

// ParseCommand turns one prompt line into an intent. quit is true when the
// user wants to leave. An empty line yields no intent and no error.
func ParseCommand(line string) (intent gallery.Intent, quit bool, err error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil, false, nil
	}
	cmd, args := strings.ToLower(fields[0]), fields[1:]

	switch cmd {
	case "q", "quit", "exit":
		return nil, true, nil
	case "?", "help":
		return nil, false, ErrHelp
	case "n", "next", "l", "right":
		return gallery.Next{}, false, nil
	case "p", "prev", "h", "left":
		return gallery.Prev{}, false, nil
	case "c", "close", "esc":
		return gallery.Close{}, false, nil
	case "o", "open":
		if len(args) != 1 {
			return nil, false, fmt.Errorf("usage: open <id>")
		}
		return gallery.Open{ID: args[0]}, false, nil
	case "s", "status":
		if len(args) != 1 {
			return nil, false, fmt.Errorf("usage: s <all|failed|passed|flaky>")
		}
		f, err := gallery.ParseStatusFilter(args[0])
		if err != nil {
			return nil, false, err
		}
		return gallery.SetStatusFilter{Value: f}, false, nil
	case "t", "type":
		if len(args) != 1 {
			return nil, false, fmt.Errorf("usage: t <screenshot|video|all>")
		}
		kind := strings.ToLower(args[0])
		if kind == "all" {
			return gallery.SelectAllTypes{}, false, nil
		}
		for _, k := range gallery.MediaKinds {
			if string(k) == kind {
				return gallery.ToggleType{Kind: models.MediaKind(kind)}, false, nil
			}
		}
		return nil, false, fmt.Errorf("unknown media kind %q", args[0])
	default:
		return nil, false, fmt.Errorf("unknown command %q (try ?)", fields[0])
	}
}

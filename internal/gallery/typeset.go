package gallery

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/Sachithra-228/evidencedeck/internal/models"
)

// MediaKinds lists the kinds a TypeSet can hold, in display order.
var MediaKinds = []models.MediaKind{models.MediaScreenshot, models.MediaVideo}

// TypeSet is the set of media kinds a gallery shows. It is never empty: the
// zero value holds every kind, and removing the last member is ignored.
type TypeSet struct {
	// hidden has one bit per kind that was toggled off. Toggle never lets
	// every bit be set.
	hidden uint8
}

func kindBit(k models.MediaKind) uint8 {
	switch k {
	case models.MediaScreenshot:
		return 1
	case models.MediaVideo:
		return 2
	default:
		return 0
	}
}

// AllTypes returns the set holding every media kind.
func AllTypes() TypeSet {
	return TypeSet{}
}

// TypesOf returns the set holding exactly kinds. An empty kinds list, or one
// naming an unknown kind, is an error.
func TypesOf(kinds ...models.MediaKind) (TypeSet, error) {
	if len(kinds) == 0 {
		return TypeSet{}, fmt.Errorf("type filter must include at least one media kind")
	}
	var shown uint8
	for _, k := range kinds {
		b := kindBit(k)
		if b == 0 {
			return TypeSet{}, fmt.Errorf("unknown media kind %q", k)
		}
		shown |= b
	}
	return TypeSet{hidden: allBits &^ shown}, nil
}

const allBits uint8 = 1 | 2

// ParseTypeSet parses a comma-separated list such as "screenshot,video".
// An empty string or "all" selects every kind.
func ParseTypeSet(s string) (TypeSet, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "all") {
		return AllTypes(), nil
	}
	var kinds []models.MediaKind
	for _, part := range strings.Split(s, ",") {
		part = strings.ToLower(strings.TrimSpace(part))
		if part == "" {
			continue
		}
		kinds = append(kinds, models.MediaKind(part))
	}
	return TypesOf(kinds...)
}

// Has reports whether k is in the set.
func (s TypeSet) Has(k models.MediaKind) bool {
	b := kindBit(k)
	return b != 0 && s.hidden&b == 0
}

// Toggle flips membership of k. Removing the only remaining member is a
// no-op, as is toggling an unknown kind.
func (s TypeSet) Toggle(k models.MediaKind) TypeSet {
	b := kindBit(k)
	if b == 0 {
		return s
	}
	next := TypeSet{hidden: s.hidden ^ b}
	if next.hidden&allBits == allBits {
		return s
	}
	return next
}

// Len returns the number of kinds in the set.
func (s TypeSet) Len() int {
	n := 0
	for _, k := range MediaKinds {
		if s.Has(k) {
			n++
		}
	}
	return n
}

// IsAll reports whether every media kind is selected.
func (s TypeSet) IsAll() bool {
	return s.Len() == len(MediaKinds)
}

// Kinds returns the members in display order.
func (s TypeSet) Kinds() []models.MediaKind {
	kinds := make([]models.MediaKind, 0, len(MediaKinds))
	for _, k := range MediaKinds {
		if s.Has(k) {
			kinds = append(kinds, k)
		}
	}
	return kinds
}

// String returns the members joined by commas.
func (s TypeSet) String() string {
	parts := make([]string, 0, len(MediaKinds))
	for _, k := range s.Kinds() {
		parts = append(parts, string(k))
	}
	return strings.Join(parts, ",")
}

// MarshalJSON encodes the set as an array of kind names.
func (s TypeSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Kinds())
}

// UnmarshalJSON decodes an array of kind names. An empty array selects every
// kind so a decoded set can never be empty.
func (s *TypeSet) UnmarshalJSON(data []byte) error {
	var kinds []models.MediaKind
	if err := json.Unmarshal(data, &kinds); err != nil {
		return fmt.Errorf("type filter: %w", err)
	}
	if len(kinds) == 0 {
		*s = AllTypes()
		return nil
	}
	set, err := TypesOf(kinds...)
	if err != nil {
		return err
	}
	*s = set
	return nil
}

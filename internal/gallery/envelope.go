package gallery

import (
	"fmt"

	"github.com/Sachithra-228/evidencedeck/internal/models"
)

// Intent type names used on the wire.
const (
	IntentSetStatusFilter  = "setStatusFilter"
	IntentToggleTypeFilter = "toggleTypeFilter"
	IntentSetTypeFilterAll = "setTypeFilterAll"
	IntentOpen             = "open"
	IntentClose            = "close"
	IntentNext             = "next"
	IntentPrev             = "prev"
	IntentKey              = "key"
)

// Envelope is the JSON form of an Intent.
type Envelope struct {
	Type   string `json:"type"`
	Status string `json:"status,omitempty"`
	Kind   string `json:"kind,omitempty"`
	ID     string `json:"id,omitempty"`
	Key    string `json:"key,omitempty"`
}

// Intent decodes the envelope.
func (e Envelope) Intent() (Intent, error) {
	switch e.Type {
	case IntentSetStatusFilter:
		f, err := ParseStatusFilter(e.Status)
		if err != nil {
			return nil, err
		}
		return SetStatusFilter{Value: f}, nil
	case IntentToggleTypeFilter:
		kind := models.MediaKind(e.Kind)
		if kindBit(kind) == 0 {
			return nil, fmt.Errorf("unknown media kind %q", e.Kind)
		}
		return ToggleType{Kind: kind}, nil
	case IntentSetTypeFilterAll:
		return SelectAllTypes{}, nil
	case IntentOpen:
		return Open{ID: e.ID}, nil
	case IntentClose:
		return Close{}, nil
	case IntentNext:
		return Next{}, nil
	case IntentPrev:
		return Prev{}, nil
	case IntentKey:
		intent, ok := KeyIntent(e.Key)
		if !ok {
			return nil, fmt.Errorf("unmapped key %q", e.Key)
		}
		return intent, nil
	default:
		return nil, fmt.Errorf("unknown intent type %q", e.Type)
	}
}

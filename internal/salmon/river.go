package salmon

import (
	"errors"
	"fmt"
	"strings"
)

// River identifies one monitored river on the upstream site.
type River string

// Rivers lists every monitored river in processing order.
var Rivers = []River{
	"byskealven",
	"kalixalven",
	"linaalven",
	"pitealven-fallfors",
	"pitealven-sikfors",
	"ricklean",
	"ranealven",
	"tornealven",
	"aby-alv",
	"angesan",
}

// ErrUnknownRiver is returned when a river name is not in Rivers.
var ErrUnknownRiver = errors.New("unknown river")

// IsKnown reports whether r is one of the monitored rivers.
func (r River) IsKnown() bool {
	for _, known := range Rivers {
		if r == known {
			return true
		}
	}
	return false
}

// ParseRivers validates names and returns the selected rivers in processing order.
// Duplicates are collapsed. An empty input selects all rivers.
func ParseRivers(names []string) ([]River, error) {
	if len(names) == 0 {
		return append([]River(nil), Rivers...), nil
	}

	selected := make(map[River]bool, len(names))
	for _, name := range names {
		r := River(strings.ToLower(strings.TrimSpace(name)))
		if !r.IsKnown() {
			return nil, fmt.Errorf("%w: %q", ErrUnknownRiver, name)
		}
		selected[r] = true
	}

	rivers := make([]River, 0, len(selected))
	for _, r := range Rivers {
		if selected[r] {
			rivers = append(rivers, r)
		}
	}
	return rivers, nil
}

// Index returns the position of r in Rivers, or -1.
func (r River) Index() int {
	for i, known := range Rivers {
		if r == known {
			return i
		}
	}
	return -1
}

package world

import (
	"fmt"
	"strings"
)

// Kind selects which population a proximity query searches.
type Kind int

const (
	KindCell Kind = iota + 1
	KindActor
	KindZone
)

func (k Kind) String() string {
	switch k {
	case KindCell:
		return "cell"
	case KindActor:
		return "actor"
	case KindZone:
		return "zone"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

func (k Kind) valid() bool { return k >= KindCell && k <= KindZone }

func checkKind(k Kind) error {
	if !k.valid() {
		return fmt.Errorf("%v: %w", k, ErrInvalidKind)
	}
	return nil
}

// ParseKind accepts "cell" (or "square"), "actor" and "zone", case-insensitive.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "cell", "square":
		return KindCell, nil
	case "actor":
		return KindActor, nil
	case "zone":
		return KindZone, nil
	}
	return 0, fmt.Errorf("parse kind %q: %w", s, ErrInvalidKind)
}

// Containment selects how CellsInCircle decides that a cell belongs to a circle.
type Containment int

const (
	ContainWithin   Containment = iota // cell lies entirely inside the circle
	ContainOverlap                     // cell overlaps the circle
	ContainCentroid                    // cell centroid lies inside the circle
)

func (c Containment) String() string {
	switch c {
	case ContainWithin:
		return "within"
	case ContainOverlap:
		return "overlap"
	case ContainCentroid:
		return "centroid"
	}
	return fmt.Sprintf("Containment(%d)", int(c))
}

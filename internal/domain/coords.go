package domain

import (
	"fmt"
)

// Coords is a zero-based cell position: X is the column, Y is the row.
type Coords struct {
	X int
	Y int
}

var UnsetCoords = Coords{X: -1, Y: -1}

func (c Coords) String() string {
	return fmt.Sprintf("(%d, %d)", c.X, c.Y)
}

// Shift returns the coordinate i cells away from c along the orientation axis.
func (c Coords) Shift(o Orientation, i int) Coords {
	if o == Vertical {
		return Coords{X: c.X, Y: c.Y + i}
	}
	return Coords{X: c.X + i, Y: c.Y}
}

type Orientation uint8

const (
	Horizontal = Orientation(iota)
	Vertical
	UnknownOrientation
)

func (o Orientation) String() string {
	switch o {
	case Horizontal:
		return "horizontal"
	case Vertical:
		return "vertical"
	default:
		return "unknown"
	}
}

func (o Orientation) IsValid() bool {
	return o == Horizontal || o == Vertical
}

type SegmentStatus uint8

const (
	Intact = SegmentStatus(iota)
	Damaged
	Destroyed
)

func (s SegmentStatus) String() string {
	switch s {
	case Intact:
		return "intact"
	case Damaged:
		return "damaged"
	case Destroyed:
		return "destroyed"
	default:
		return "unknown"
	}
}

// health is the share of ship health a segment in this status still holds.
func (s SegmentStatus) health() int {
	switch s {
	case Intact:
		return 2
	case Damaged:
		return 1
	default:
		return 0
	}
}

type CellStatus uint8

const (
	CellUnknown = CellStatus(iota)
	CellEmpty
	CellShip
)

func (s CellStatus) String() string {
	switch s {
	case CellUnknown:
		return "unknown"
	case CellEmpty:
		return "empty"
	case CellShip:
		return "ship"
	default:
		return "invalid"
	}
}

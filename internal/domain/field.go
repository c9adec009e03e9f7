package domain

import (
	"github.com/pkg/errors"
)

const (
	MinFieldSize = 3
	MaxFieldSize = 25
)

// Cell is one grid slot. Segment is meaningful only while Occupied is set;
// NearShip marks a free cell that touches a placed ship.
type Cell struct {
	Occupied bool
	NearShip bool
	Status   CellStatus
	Missed   bool
	Segment  SegmentRef
}

// Field is a height x width grid indexed [y][x]. It owns no ships: occupied
// cells refer into the ShipManager of the same side.
type Field struct {
	width  int
	height int
	cells  [][]Cell
}

type AttackOutcome struct {
	Coords  Coords
	Hit     bool
	Segment SegmentRef
	Status  SegmentStatus
}

func NewField(width, height int) (*Field, error) {
	if width < MinFieldSize || width > MaxFieldSize || height < MinFieldSize || height > MaxFieldSize {
		return nil, errors.WithMessagef(ErrInvalidConfiguration, "field size %dx%d", width, height)
	}
	cells := make([][]Cell, height)
	for y := range cells {
		cells[y] = make([]Cell, width)
	}
	return &Field{
		width:  width,
		height: height,
		cells:  cells,
	}, nil
}

func (f *Field) Width() int {
	return f.width
}

func (f *Field) Height() int {
	return f.height
}

func (f *Field) InBounds(c Coords) bool {
	return c.X >= 0 && c.X < f.width && c.Y >= 0 && c.Y < f.height
}

func (f *Field) CanPlace(origin Coords, orientation Orientation, length int) bool {
	if !orientation.IsValid() || length < MinShipLength || length > MaxShipLength {
		return false
	}
	for i := 0; i < length; i++ {
		c := origin.Shift(orientation, i)
		if !f.InBounds(c) {
			return false
		}
		cell := f.cells[c.Y][c.X]
		if cell.Occupied || cell.NearShip {
			return false
		}
	}
	return true
}

// PlaceShip puts an unplaced ship on the field and fences it with a one-cell
// border that later placements may not use.
func (f *Field) PlaceShip(ship *Ship, origin Coords, orientation Orientation) error {
	if ship.Placed() {
		return errors.WithMessage(ErrShipPlacement, "ship is already placed")
	}
	if !f.CanPlace(origin, orientation, ship.Length()) {
		return errors.WithMessagef(ErrShipPlacement, "length %d at %s %s", ship.Length(), origin, orientation)
	}
	ship.AssignPlacement(orientation, origin)
	for i, seg := range ship.segments {
		cell := &f.cells[seg.Coords.Y][seg.Coords.X]
		cell.Occupied = true
		cell.NearShip = false
		cell.Segment = SegmentRef{Ship: ship.ID(), Index: i}
	}
	end := origin.Shift(orientation, ship.Length()-1)
	for y := origin.Y - 1; y <= end.Y+1; y++ {
		for x := origin.X - 1; x <= end.X+1; x++ {
			c := Coords{X: x, Y: y}
			if f.InBounds(c) && !f.cells[y][x].Occupied {
				f.cells[y][x].NearShip = true
			}
		}
	}
	return nil
}

// Attack shoots a single cell. Hitting an occupied cell deals one point of
// damage every time, so repeated attacks keep wearing the segment down.
func (f *Field) Attack(ships *ShipManager, c Coords) (AttackOutcome, error) {
	return f.strike(ships, c, 1)
}

func (f *Field) strike(ships *ShipManager, c Coords, damage int) (AttackOutcome, error) {
	if !f.InBounds(c) {
		return AttackOutcome{}, errors.WithMessagef(ErrOutOfBounds, "attack %s", c)
	}
	cell := &f.cells[c.Y][c.X]
	if !cell.Occupied {
		cell.Status = CellEmpty
		cell.Missed = true
		return AttackOutcome{Coords: c}, nil
	}
	ship, err := ships.Ship(cell.Segment.Ship)
	if err != nil {
		return AttackOutcome{}, errors.WithMessagef(err, "resolve segment at %s", c)
	}
	if err := ship.DamageSegment(cell.Segment.Index, damage); err != nil {
		return AttackOutcome{}, errors.WithMessagef(err, "damage segment at %s", c)
	}
	cell.Status = CellShip
	seg, _ := ship.Segment(cell.Segment.Index)
	return AttackOutcome{
		Coords:  c,
		Hit:     true,
		Segment: cell.Segment,
		Status:  seg.Status,
	}, nil
}

func (f *Field) Cell(c Coords) (Cell, error) {
	if !f.InBounds(c) {
		return Cell{}, errors.WithMessagef(ErrOutOfBounds, "cell %s", c)
	}
	return f.cells[c.Y][c.X], nil
}

func (f *Field) CellStatus(c Coords) (CellStatus, error) {
	cell, err := f.Cell(c)
	if err != nil {
		return CellUnknown, err
	}
	return cell.Status, nil
}

func (f *Field) SetCellStatus(c Coords, status CellStatus) error {
	if !f.InBounds(c) {
		return errors.WithMessagef(ErrOutOfBounds, "cell %s", c)
	}
	f.cells[c.Y][c.X].Status = status
	return nil
}

func (f *Field) SetMissed(c Coords, missed bool) error {
	if !f.InBounds(c) {
		return errors.WithMessagef(ErrOutOfBounds, "cell %s", c)
	}
	f.cells[c.Y][c.X].Missed = missed
	return nil
}

func (f *Field) IsMissed(c Coords) (bool, error) {
	cell, err := f.Cell(c)
	if err != nil {
		return false, err
	}
	return cell.Missed, nil
}

func (f *Field) IsOccupied(c Coords) (bool, error) {
	cell, err := f.Cell(c)
	if err != nil {
		return false, err
	}
	return cell.Occupied, nil
}

// SegmentAt returns the reference stored in an occupied cell.
func (f *Field) SegmentAt(c Coords) (SegmentRef, bool, error) {
	cell, err := f.Cell(c)
	if err != nil {
		return SegmentRef{}, false, err
	}
	return cell.Segment, cell.Occupied, nil
}

func (f *Field) IsDestroyedAt(ships *ShipManager, c Coords) (bool, error) {
	ref, ok, err := f.SegmentAt(c)
	if err != nil || !ok {
		return false, err
	}
	ship, err := ships.Ship(ref.Ship)
	if err != nil {
		return false, errors.WithMessagef(err, "resolve segment at %s", c)
	}
	seg, err := ship.Segment(ref.Index)
	if err != nil {
		return false, errors.WithMessagef(err, "resolve segment at %s", c)
	}
	return seg.Status == Destroyed, nil
}

func (f *Field) Clone() *Field {
	cells := make([][]Cell, f.height)
	for y := range f.cells {
		cells[y] = append([]Cell(nil), f.cells[y]...)
	}
	return &Field{
		width:  f.width,
		height: f.height,
		cells:  cells,
	}
}

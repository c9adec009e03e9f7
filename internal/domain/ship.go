package domain

import (
	"github.com/pkg/errors"
)

const (
	MinShipLength = 1
	MaxShipLength = 4
)

// Segment is one independently damageable slot of a ship. Ship holds the id
// of the owning ship inside its ShipManager.
type Segment struct {
	Coords Coords
	Status SegmentStatus
	Ship   int
}

// SegmentRef addresses a segment by owning ship id and segment index.
type SegmentRef struct {
	Ship  int
	Index int
}

type Ship struct {
	id          int
	length      int
	orientation Orientation
	origin      Coords
	maxHealth   int
	health      int
	segments    []Segment
}

func NewShip(length int) (Ship, error) {
	if length < MinShipLength || length > MaxShipLength {
		return Ship{}, errors.WithMessagef(ErrInvalidConfiguration, "ship length %d", length)
	}
	s := Ship{
		length:      length,
		orientation: UnknownOrientation,
		origin:      UnsetCoords,
		maxHealth:   2 * length,
		segments:    make([]Segment, length),
	}
	for i := range s.segments {
		s.segments[i] = Segment{Coords: UnsetCoords, Status: Intact}
	}
	s.recalculateHealth()
	return s, nil
}

func (s *Ship) ID() int {
	return s.id
}

func (s *Ship) setID(id int) {
	s.id = id
	for i := range s.segments {
		s.segments[i].Ship = id
	}
}

func (s *Ship) Length() int {
	return s.length
}

func (s *Ship) Orientation() Orientation {
	return s.orientation
}

func (s *Ship) Origin() Coords {
	return s.origin
}

func (s *Ship) MaxHealth() int {
	return s.maxHealth
}

func (s *Ship) Health() int {
	return s.health
}

func (s *Ship) Placed() bool {
	return s.orientation != UnknownOrientation
}

// AssignPlacement materializes fresh intact segments laid out from origin
// along the orientation axis.
func (s *Ship) AssignPlacement(orientation Orientation, origin Coords) {
	s.orientation = orientation
	s.origin = origin
	s.segments = make([]Segment, s.length)
	for i := range s.segments {
		s.segments[i] = Segment{
			Coords: origin.Shift(orientation, i),
			Status: Intact,
			Ship:   s.id,
		}
	}
	s.recalculateHealth()
}

// DamageSegment moves the segment one way along intact -> damaged ->
// destroyed. Two or more points of damage destroy an intact segment at once.
func (s *Ship) DamageSegment(index int, amount int) error {
	if index < 0 || index >= len(s.segments) {
		return errors.WithMessagef(ErrIndexOutOfRange, "segment %d of ship with length %d", index, s.length)
	}
	seg := &s.segments[index]
	switch seg.Status {
	case Destroyed:
		return nil
	case Damaged:
		seg.Status = Destroyed
	case Intact:
		if amount >= 2 {
			seg.Status = Destroyed
		} else {
			seg.Status = Damaged
		}
	}
	s.recalculateHealth()
	return nil
}

func (s *Ship) recalculateHealth() {
	health := 0
	for _, seg := range s.segments {
		health += seg.Status.health()
	}
	s.health = health
}

func (s *Ship) IsAlive() bool {
	for _, seg := range s.segments {
		if seg.Status != Destroyed {
			return true
		}
	}
	return false
}

func (s *Ship) IsDestroyed() bool {
	return s.health == 0
}

func (s *Ship) IsUnharmed() bool {
	return s.health == s.maxHealth
}

func (s *Ship) Segment(index int) (Segment, error) {
	if index < 0 || index >= len(s.segments) {
		return Segment{}, errors.WithMessagef(ErrIndexOutOfRange, "segment %d of ship with length %d", index, s.length)
	}
	return s.segments[index], nil
}

func (s *Ship) Segments() []Segment {
	segments := make([]Segment, len(s.segments))
	copy(segments, s.segments)
	return segments
}

func (s *Ship) clone() Ship {
	c := *s
	c.segments = s.Segments()
	return c
}

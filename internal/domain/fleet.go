package domain

import (
	"github.com/pkg/errors"
)

// ShipManager owns every ship of one side. Ships live in an arena and never
// move, so their ids stay valid for the manager's life; the free and active
// pools only hold ids.
type ShipManager struct {
	ships  []Ship
	free   []int
	active []int
}

func NewShipManager(sizes []int) (*ShipManager, error) {
	m := &ShipManager{
		ships:  make([]Ship, 0, len(sizes)),
		free:   make([]int, 0, len(sizes)),
		active: make([]int, 0, len(sizes)),
	}
	for _, size := range sizes {
		ship, err := NewShip(size)
		if err != nil {
			return nil, errors.WithMessage(err, "new ship")
		}
		ship.setID(len(m.ships))
		m.ships = append(m.ships, ship)
		m.free = append(m.free, ship.id)
	}
	return m, nil
}

// Activate moves the free ship at freeIndex to the end of the active pool.
func (m *ShipManager) Activate(freeIndex int) error {
	if freeIndex < 0 || freeIndex >= len(m.free) {
		return errors.WithMessagef(ErrIndexOutOfRange, "free ship %d of %d", freeIndex, len(m.free))
	}
	id := m.free[freeIndex]
	m.free = append(m.free[:freeIndex], m.free[freeIndex+1:]...)
	m.active = append(m.active, id)
	return nil
}

func (m *ShipManager) FreeShip(index int) (*Ship, error) {
	if index < 0 || index >= len(m.free) {
		return nil, errors.WithMessagef(ErrIndexOutOfRange, "free ship %d of %d", index, len(m.free))
	}
	return &m.ships[m.free[index]], nil
}

func (m *ShipManager) ActiveShip(index int) (*Ship, error) {
	if index < 0 || index >= len(m.active) {
		return nil, errors.WithMessagef(ErrIndexOutOfRange, "active ship %d of %d", index, len(m.active))
	}
	return &m.ships[m.active[index]], nil
}

// Ship resolves a ship by its arena id, as stored in segments and cells.
func (m *ShipManager) Ship(id int) (*Ship, error) {
	if id < 0 || id >= len(m.ships) {
		return nil, errors.WithMessagef(ErrIndexOutOfRange, "ship id %d", id)
	}
	return &m.ships[id], nil
}

func (m *ShipManager) FreeCount() int {
	return len(m.free)
}

func (m *ShipManager) ActiveCount() int {
	return len(m.active)
}

func (m *ShipManager) AliveCount() int {
	count := 0
	for _, id := range m.active {
		if m.ships[id].IsAlive() {
			count++
		}
	}
	return count
}

func (m *ShipManager) DestroyedCount() int {
	return len(m.active) - m.AliveCount()
}

func (m *ShipManager) ActiveSizes() []int {
	sizes := make([]int, 0, len(m.active))
	for _, id := range m.active {
		sizes = append(sizes, m.ships[id].Length())
	}
	return sizes
}

func (m *ShipManager) Clone() *ShipManager {
	c := &ShipManager{
		ships:  make([]Ship, len(m.ships)),
		free:   append([]int(nil), m.free...),
		active: append([]int(nil), m.active...),
	}
	for i := range m.ships {
		c.ships[i] = m.ships[i].clone()
	}
	return c
}

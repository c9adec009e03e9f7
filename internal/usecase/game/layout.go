package game

import (
	"github.com/kiryu-dev/sea-battle/internal/domain"
	"github.com/pkg/errors"
)

type Placement struct {
	Length      int
	Origin      domain.Coords
	Orientation domain.Orientation
}

// Layout is a field size plus the ships placed on it, in activation order.
type Layout struct {
	Width  int
	Height int
	Ships  []Placement
}

type Layouts struct {
	Player   Layout
	Bot      Layout
	BotReset Layout
}

const defaultFieldSize = 10

func DefaultLayouts() Layouts {
	return Layouts{
		Player: Layout{
			Width:  defaultFieldSize,
			Height: defaultFieldSize,
			Ships: []Placement{
				{Length: 2, Origin: domain.Coords{X: 2, Y: 1}, Orientation: domain.Horizontal},
				{Length: 1, Origin: domain.Coords{X: 3, Y: 4}, Orientation: domain.Horizontal},
			},
		},
		Bot: Layout{
			Width:  defaultFieldSize,
			Height: defaultFieldSize,
			Ships: []Placement{
				{Length: 2, Origin: domain.Coords{X: 6, Y: 3}, Orientation: domain.Horizontal},
				{Length: 1, Origin: domain.Coords{X: 7, Y: 7}, Orientation: domain.Vertical},
			},
		},
		BotReset: Layout{
			Width:  defaultFieldSize,
			Height: defaultFieldSize,
			Ships: []Placement{
				{Length: 2, Origin: domain.Coords{X: 6, Y: 0}, Orientation: domain.Horizontal},
				{Length: 3, Origin: domain.Coords{X: 2, Y: 4}, Orientation: domain.Horizontal},
				{Length: 1, Origin: domain.Coords{X: 7, Y: 9}, Orientation: domain.Vertical},
			},
		},
	}
}

func (l Layout) sizes() []int {
	sizes := make([]int, 0, len(l.Ships))
	for _, p := range l.Ships {
		sizes = append(sizes, p.Length)
	}
	return sizes
}

// Build creates a field and a ship manager with every ship of the layout
// placed and activated.
func (l Layout) Build() (*domain.Field, *domain.ShipManager, error) {
	field, err := domain.NewField(l.Width, l.Height)
	if err != nil {
		return nil, nil, errors.WithMessage(err, "new field")
	}
	ships, err := domain.NewShipManager(l.sizes())
	if err != nil {
		return nil, nil, errors.WithMessage(err, "new ship manager")
	}
	for i, p := range l.Ships {
		ship, err := ships.FreeShip(0)
		if err != nil {
			return nil, nil, errors.WithMessagef(err, "get free ship %d", i)
		}
		if err := field.PlaceShip(ship, p.Origin, p.Orientation); err != nil {
			return nil, nil, errors.WithMessagef(err, "place ship %d", i)
		}
		if err := ships.Activate(0); err != nil {
			return nil, nil, errors.WithMessagef(err, "activate ship %d", i)
		}
	}
	return field, ships, nil
}

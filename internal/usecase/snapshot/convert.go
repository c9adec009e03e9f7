package snapshot

import (
	"math/rand"

	"github.com/kiryu-dev/sea-battle/internal/domain"
	"github.com/kiryu-dev/sea-battle/internal/usecase/game"
	"github.com/pkg/errors"
)

// ToSnapshot flattens the game into its persisted form.
func ToSnapshot(g *game.Game) domain.GameState {
	queue := g.Abilities().Queue()
	names := make([]string, 0, len(queue))
	for _, kind := range queue {
		names = append(names, kind.String())
	}
	return domain.GameState{
		RoundCounter:         g.RoundCounter(),
		IsPlayerStep:         g.IsPlayerStep(),
		IsPlayerUseAbility:   g.IsPlayerUseAbility(),
		IsPlayerDoAttack:     g.IsPlayerDoAttack(),
		PlayerFieldWidth:     g.PlayerField().Width(),
		PlayerFieldHeight:    g.PlayerField().Height(),
		PlayerField:          fieldToMatrix(g.PlayerField()),
		BotFieldWidth:        g.BotField().Width(),
		BotFieldHeight:       g.BotField().Height(),
		BotField:             fieldToMatrix(g.BotField()),
		PlayerShipData:       shipsToRecords(g.PlayerShips()),
		BotShipData:          shipsToRecords(g.BotShips()),
		PlayerAbilityManager: names,
	}
}

func fieldToMatrix(field *domain.Field) [][]int {
	matrix := make([][]int, field.Height())
	for y := range matrix {
		matrix[y] = make([]int, field.Width())
		for x := range matrix[y] {
			status, _ := field.CellStatus(domain.Coords{X: x, Y: y})
			matrix[y][x] = int(status)
		}
	}
	return matrix
}

func shipsToRecords(ships *domain.ShipManager) []domain.ShipRecord {
	records := make([]domain.ShipRecord, 0, ships.ActiveCount())
	for i := 0; i < ships.ActiveCount(); i++ {
		ship, _ := ships.ActiveShip(i)
		origin := [2]int{ship.Origin().X, ship.Origin().Y}
		orientation := int(ship.Orientation())
		segments := make([]domain.SegmentRecord, 0, ship.Length())
		for _, seg := range ship.Segments() {
			segments = append(segments, domain.SegmentRecord{Status: int(seg.Status)})
		}
		records = append(records, domain.ShipRecord{
			Coords:      &origin,
			Orientation: &orientation,
			Segments:    segments,
		})
	}
	return records
}

// FromSnapshot builds a brand new game from a persisted state. Ships are
// placed again and their damage is replayed through attacks, so every cell
// and segment link is derived from the records.
func FromSnapshot(state domain.GameState, rng *rand.Rand, opts ...game.Option) (*game.Game, error) {
	playerField, playerShips, err := restoreSide(state.PlayerFieldWidth, state.PlayerFieldHeight,
		state.PlayerField, state.PlayerShipData)
	if err != nil {
		return nil, errors.WithMessage(err, "restore player side")
	}
	botField, botShips, err := restoreSide(state.BotFieldWidth, state.BotFieldHeight,
		state.BotField, state.BotShipData)
	if err != nil {
		return nil, errors.WithMessage(err, "restore bot side")
	}
	abilities, err := restoreAbilities(state.PlayerAbilityManager, rng)
	if err != nil {
		return nil, errors.WithMessage(err, "restore abilities")
	}
	return game.Restore(game.Parts{
		PlayerField:        playerField,
		BotField:           botField,
		PlayerShips:        playerShips,
		BotShips:           botShips,
		Abilities:          abilities,
		RoundCounter:       state.RoundCounter,
		IsPlayerStep:       state.IsPlayerStep,
		IsPlayerUseAbility: state.IsPlayerUseAbility,
		IsPlayerDoAttack:   state.IsPlayerDoAttack,
	}, rng, opts...), nil
}

// restoreSide places the ships and replays their damage first, then lays the
// saved statuses over the grid. Bombardment damages segments without marking
// their cells, so replayed attacks must not decide what the cells show.
func restoreSide(width, height int, matrix [][]int, records []domain.ShipRecord) (*domain.Field, *domain.ShipManager, error) {
	field, err := domain.NewField(width, height)
	if err != nil {
		return nil, nil, errors.WithMessage(err, "new field")
	}
	if err := validateMatrix(width, height, matrix); err != nil {
		return nil, nil, errors.WithMessage(err, "restore field")
	}
	ships, err := restoreShips(field, records)
	if err != nil {
		return nil, nil, errors.WithMessage(err, "restore ships")
	}
	if err := applyMatrix(field, matrix); err != nil {
		return nil, nil, errors.WithMessage(err, "restore field")
	}
	return field, ships, nil
}

func validateMatrix(width, height int, matrix [][]int) error {
	if len(matrix) != height {
		return errors.WithMessagef(domain.ErrSchema, "field has %d rows, want %d", len(matrix), height)
	}
	for y, row := range matrix {
		if len(row) != width {
			return errors.WithMessagef(domain.ErrSchema, "field row %d has %d cells, want %d", y, len(row), width)
		}
		for x, code := range row {
			if code < int(domain.CellUnknown) || code > int(domain.CellShip) {
				return errors.WithMessagef(domain.ErrSchema, "cell status %d at (%d, %d)", code, x, y)
			}
		}
	}
	return nil
}

func applyMatrix(field *domain.Field, matrix [][]int) error {
	for y, row := range matrix {
		for x, code := range row {
			c := domain.Coords{X: x, Y: y}
			status := domain.CellStatus(code)
			if err := field.SetCellStatus(c, status); err != nil {
				return err
			}
			if err := field.SetMissed(c, status == domain.CellEmpty); err != nil {
				return err
			}
		}
	}
	return nil
}

func restoreShips(field *domain.Field, records []domain.ShipRecord) (*domain.ShipManager, error) {
	sizes := make([]int, 0, len(records))
	for i, record := range records {
		if record.Coords == nil || record.Orientation == nil || record.Segments == nil {
			return nil, errors.WithMessagef(domain.ErrSchema, "ship %d lacks coords, orientation or segments", i)
		}
		if o := *record.Orientation; o != int(domain.Horizontal) && o != int(domain.Vertical) {
			return nil, errors.WithMessagef(domain.ErrSchema, "ship %d orientation %d", i, *record.Orientation)
		}
		for j, seg := range record.Segments {
			if seg.Status < int(domain.Intact) || seg.Status > int(domain.Destroyed) {
				return nil, errors.WithMessagef(domain.ErrSchema, "ship %d segment %d status %d", i, j, seg.Status)
			}
		}
		sizes = append(sizes, len(record.Segments))
	}
	ships, err := domain.NewShipManager(sizes)
	if err != nil {
		return nil, errors.WithMessage(err, "new ship manager")
	}
	for i, record := range records {
		origin := domain.Coords{X: record.Coords[0], Y: record.Coords[1]}
		orientation := domain.Orientation(*record.Orientation)
		ship, err := ships.FreeShip(0)
		if err != nil {
			return nil, errors.WithMessagef(err, "get free ship %d", i)
		}
		if err := field.PlaceShip(ship, origin, orientation); err != nil {
			return nil, errors.WithMessagef(err, "place ship %d", i)
		}
		if err := ships.Activate(0); err != nil {
			return nil, errors.WithMessagef(err, "activate ship %d", i)
		}
		for j, seg := range record.Segments {
			hits := 0
			switch domain.SegmentStatus(seg.Status) {
			case domain.Damaged:
				hits = 1
			case domain.Destroyed:
				hits = 2
			}
			target := origin.Shift(orientation, j)
			for ; hits > 0; hits-- {
				if _, err := field.Attack(ships, target); err != nil {
					return nil, errors.WithMessagef(err, "replay damage of ship %d segment %d", i, j)
				}
			}
		}
	}
	return ships, nil
}

func restoreAbilities(names []string, rng *rand.Rand) (*domain.AbilityManager, error) {
	abilities := domain.NewAbilityManager(rng)
	for _, name := range names {
		kind, err := domain.ParseAbilityKind(name)
		if err != nil {
			return nil, err
		}
		abilities.Add(kind)
	}
	return abilities, nil
}

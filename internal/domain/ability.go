package domain

import (
	"math/rand"

	"github.com/pkg/errors"
)

type AbilityKind uint8

const (
	DoubleDamage = AbilityKind(iota)
	Scanner
	Bombardment
)

var abilityNames = map[AbilityKind]string{
	DoubleDamage: "DoubleDamage",
	Scanner:      "Scanner",
	Bombardment:  "Bombardment",
}

// String returns the name the kind is persisted under.
func (k AbilityKind) String() string {
	if name, ok := abilityNames[k]; ok {
		return name
	}
	return "Unknown"
}

func ParseAbilityKind(name string) (AbilityKind, error) {
	for kind, n := range abilityNames {
		if n == name {
			return kind, nil
		}
	}
	return 0, errors.WithMessagef(ErrUnknownAbilityKind, "'%s'", name)
}

const scannerSpan = 2

// AbilityEffect describes what an applied ability did. Detected is filled by
// the scanner only.
type AbilityEffect struct {
	Kind     AbilityKind
	Target   Coords
	Detected []Coords
	Outcome  *AttackOutcome
}

// ApplyAbility runs the effect of kind against the opposing side.
func ApplyAbility(kind AbilityKind, rng *rand.Rand, field *Field, ships *ShipManager, target Coords) (AbilityEffect, error) {
	switch kind {
	case DoubleDamage:
		return applyDoubleDamage(field, ships, target)
	case Scanner:
		return applyScanner(field, target), nil
	case Bombardment:
		return applyBombardment(rng, ships, target)
	default:
		return AbilityEffect{}, errors.WithMessagef(ErrUnknownAbilityKind, "kind %d", kind)
	}
}

// validateTarget rejects a target the ability cannot use before anything is
// consumed.
func validateTarget(kind AbilityKind, field *Field, target Coords) error {
	if kind == DoubleDamage && !field.InBounds(target) {
		return errors.WithMessagef(ErrOutOfBounds, "target %s", target)
	}
	return nil
}

func applyDoubleDamage(field *Field, ships *ShipManager, target Coords) (AbilityEffect, error) {
	outcome, err := field.strike(ships, target, 2)
	if err != nil {
		return AbilityEffect{}, errors.WithMessage(err, "double damage")
	}
	return AbilityEffect{Kind: DoubleDamage, Target: target, Outcome: &outcome}, nil
}

func applyScanner(field *Field, target Coords) AbilityEffect {
	effect := AbilityEffect{Kind: Scanner, Target: target}
	for y := target.Y; y < target.Y+scannerSpan; y++ {
		for x := target.X; x < target.X+scannerSpan; x++ {
			c := Coords{X: x, Y: y}
			if field.InBounds(c) && field.cells[y][x].Occupied {
				effect.Detected = append(effect.Detected, c)
			}
		}
	}
	return effect
}

// applyBombardment hits a random segment of a random active ship. It makes at
// most length attempts to find a segment that is not destroyed yet, so it can
// miss a ship that is nearly sunk.
func applyBombardment(rng *rand.Rand, ships *ShipManager, target Coords) (AbilityEffect, error) {
	effect := AbilityEffect{Kind: Bombardment, Target: target}
	if ships.ActiveCount() == 0 {
		return effect, nil
	}
	ship, err := ships.ActiveShip(rng.Intn(ships.ActiveCount()))
	if err != nil {
		return AbilityEffect{}, errors.WithMessage(err, "bombardment")
	}
	for attempt := 0; attempt < ship.Length(); attempt++ {
		index := rng.Intn(ship.Length())
		seg := ship.segments[index]
		if seg.Status == Destroyed {
			continue
		}
		if err := ship.DamageSegment(index, 1); err != nil {
			return AbilityEffect{}, errors.WithMessage(err, "bombardment")
		}
		effect.Outcome = &AttackOutcome{
			Coords:  seg.Coords,
			Hit:     true,
			Segment: SegmentRef{Ship: ship.ID(), Index: index},
			Status:  ship.segments[index].Status,
		}
		break
	}
	return effect, nil
}

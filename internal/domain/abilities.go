package domain

import (
	"math/rand"

	"github.com/pkg/errors"
)

// AbilityManager keeps granted abilities in arrival order. Every queue entry
// is its own one-shot instance of a kind.
type AbilityManager struct {
	queue   []AbilityKind
	catalog []AbilityKind
	rng     *rand.Rand
}

func NewAbilityManager(rng *rand.Rand) *AbilityManager {
	return &AbilityManager{
		catalog: []AbilityKind{DoubleDamage, Scanner, Bombardment},
		rng:     rng,
	}
}

func (m *AbilityManager) GrantRandom() {
	if len(m.catalog) == 0 {
		return
	}
	m.Add(m.catalog[m.rng.Intn(len(m.catalog))])
}

func (m *AbilityManager) Add(kind AbilityKind) {
	m.queue = append(m.queue, kind)
}

// Apply consumes the oldest ability and runs it against the opposing side.
func (m *AbilityManager) Apply(field *Field, ships *ShipManager, target Coords) (AbilityEffect, error) {
	if len(m.queue) == 0 {
		return AbilityEffect{}, ErrNoAvailableAbilities
	}
	kind := m.queue[0]
	if err := validateTarget(kind, field, target); err != nil {
		return AbilityEffect{}, errors.WithMessagef(err, "apply %s", kind)
	}
	m.queue = m.queue[1:]
	effect, err := ApplyAbility(kind, m.rng, field, ships, target)
	if err != nil {
		return AbilityEffect{}, errors.WithMessagef(err, "apply %s", kind)
	}
	return effect, nil
}

// Peek returns the kind Apply would consume next.
func (m *AbilityManager) Peek() (AbilityKind, bool) {
	if len(m.queue) == 0 {
		return 0, false
	}
	return m.queue[0], true
}

func (m *AbilityManager) Len() int {
	return len(m.queue)
}

func (m *AbilityManager) Queue() []AbilityKind {
	return append([]AbilityKind(nil), m.queue...)
}

// Clone copies the queue; the clone shares the random source.
func (m *AbilityManager) Clone() *AbilityManager {
	return &AbilityManager{
		queue:   m.Queue(),
		catalog: append([]AbilityKind(nil), m.catalog...),
		rng:     m.rng,
	}
}

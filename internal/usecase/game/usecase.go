package game

import (
	"math/rand"

	"github.com/kiryu-dev/sea-battle/internal/domain"
	"github.com/pkg/errors"
)

type Phase byte

const (
	Idle = Phase(iota)
	PlayerTurn
	BotTurn
	RoundWon
	RoundLost
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case PlayerTurn:
		return "player turn"
	case BotTurn:
		return "bot turn"
	case RoundWon:
		return "round won"
	case RoundLost:
		return "round lost"
	default:
		return "unknown"
	}
}

// Game is one session: both sides, the player's abilities and the turn
// flags. Only the player receives abilities.
type Game struct {
	playerField *domain.Field
	botField    *domain.Field
	playerShips *domain.ShipManager
	botShips    *domain.ShipManager
	abilities   *domain.AbilityManager
	rng         *rand.Rand
	botReset    Layout

	roundCounter       int
	isPlayerStep       bool
	isPlayerUseAbility bool
	isPlayerDoAttack   bool
	phase              Phase
	botAliveAtStart    int
}

type options struct {
	layouts Layouts
}

type Option func(o *options)

func WithLayouts(layouts Layouts) Option {
	return func(o *options) {
		o.layouts = layouts
	}
}

func WithBotReset(layout Layout) Option {
	return func(o *options) {
		o.layouts.BotReset = layout
	}
}

func newOptions(opts []Option) options {
	o := options{layouts: DefaultLayouts()}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// New starts a fresh game with the configured layouts and one random ability
// already granted to the player.
func New(rng *rand.Rand, opts ...Option) (*Game, error) {
	o := newOptions(opts)
	playerField, playerShips, err := o.layouts.Player.Build()
	if err != nil {
		return nil, errors.WithMessage(err, "build player side")
	}
	botField, botShips, err := o.layouts.Bot.Build()
	if err != nil {
		return nil, errors.WithMessage(err, "build bot side")
	}
	abilities := domain.NewAbilityManager(rng)
	abilities.GrantRandom()
	return &Game{
		playerField:  playerField,
		botField:     botField,
		playerShips:  playerShips,
		botShips:     botShips,
		abilities:    abilities,
		rng:          rng,
		botReset:     o.layouts.BotReset,
		isPlayerStep: true,
	}, nil
}

// Parts is everything a restored game is assembled from.
type Parts struct {
	PlayerField        *domain.Field
	BotField           *domain.Field
	PlayerShips        *domain.ShipManager
	BotShips           *domain.ShipManager
	Abilities          *domain.AbilityManager
	RoundCounter       int
	IsPlayerStep       bool
	IsPlayerUseAbility bool
	IsPlayerDoAttack   bool
}

// Restore assembles a game from already rebuilt parts. The game waits for
// the next BeginPlayerTurn.
func Restore(parts Parts, rng *rand.Rand, opts ...Option) *Game {
	o := newOptions(opts)
	return &Game{
		playerField:        parts.PlayerField,
		botField:           parts.BotField,
		playerShips:        parts.PlayerShips,
		botShips:           parts.BotShips,
		abilities:          parts.Abilities,
		rng:                rng,
		botReset:           o.layouts.BotReset,
		roundCounter:       parts.RoundCounter,
		isPlayerStep:       parts.IsPlayerStep,
		isPlayerUseAbility: parts.IsPlayerUseAbility,
		isPlayerDoAttack:   parts.IsPlayerDoAttack,
		phase:              Idle,
	}
}

func (g *Game) BeginPlayerTurn() error {
	if g.phase != Idle {
		return errors.WithMessagef(ErrUnexpectedPhase, "begin player turn in '%s'", g.phase)
	}
	g.roundCounter++
	g.isPlayerStep = true
	g.isPlayerUseAbility = false
	g.isPlayerDoAttack = false
	g.botAliveAtStart = g.botShips.AliveCount()
	g.phase = PlayerTurn
	return nil
}

// UseAbility applies the oldest queued ability to the bot side. It is
// optional, allowed once per turn and only before the attack.
func (g *Game) UseAbility(target domain.Coords) (domain.AbilityEffect, error) {
	if g.phase != PlayerTurn {
		return domain.AbilityEffect{}, errors.WithMessagef(ErrUnexpectedPhase, "use ability in '%s'", g.phase)
	}
	if g.isPlayerUseAbility {
		return domain.AbilityEffect{}, ErrAbilityAlreadyUsed
	}
	if g.isPlayerDoAttack {
		return domain.AbilityEffect{}, ErrAttackAlreadyMade
	}
	effect, err := g.abilities.Apply(g.botField, g.botShips, target)
	if err != nil {
		return domain.AbilityEffect{}, errors.WithMessage(err, "apply ability")
	}
	g.isPlayerUseAbility = true
	return effect, nil
}

type PlayerAttackResult struct {
	Outcome   domain.AttackOutcome
	Destroyed int
	Granted   []domain.AbilityKind
}

// PlayerAttack makes the mandatory attack of the turn. An out of bounds
// target leaves the turn open so the caller can supply another one. Every
// bot ship sunk this turn, by the attack or by an ability, grants one random
// ability.
func (g *Game) PlayerAttack(target domain.Coords) (PlayerAttackResult, error) {
	if g.phase != PlayerTurn {
		return PlayerAttackResult{}, errors.WithMessagef(ErrUnexpectedPhase, "player attack in '%s'", g.phase)
	}
	if g.isPlayerDoAttack {
		return PlayerAttackResult{}, ErrAttackAlreadyMade
	}
	outcome, err := g.botField.Attack(g.botShips, target)
	if err != nil {
		return PlayerAttackResult{}, errors.WithMessage(err, "attack bot field")
	}
	g.isPlayerDoAttack = true
	result := PlayerAttackResult{Outcome: outcome}
	alive := g.botShips.AliveCount()
	if destroyed := g.botAliveAtStart - alive; destroyed > 0 {
		result.Destroyed = destroyed
		before := g.abilities.Len()
		for i := 0; i < destroyed; i++ {
			g.abilities.GrantRandom()
		}
		result.Granted = g.abilities.Queue()[before:]
	}
	g.botAliveAtStart = alive
	g.isPlayerStep = false
	if alive == 0 {
		g.phase = RoundWon
		return result, nil
	}
	g.phase = BotTurn
	return result, nil
}

// BotTurn attacks a uniformly random cell of the player field.
func (g *Game) BotTurn() (domain.AttackOutcome, error) {
	if g.phase != BotTurn {
		return domain.AttackOutcome{}, errors.WithMessagef(ErrUnexpectedPhase, "bot turn in '%s'", g.phase)
	}
	target := domain.Coords{
		X: g.rng.Intn(g.playerField.Width()),
		Y: g.rng.Intn(g.playerField.Height()),
	}
	outcome, err := g.playerField.Attack(g.playerShips, target)
	if err != nil {
		return domain.AttackOutcome{}, errors.WithMessage(err, "attack player field")
	}
	if g.playerShips.AliveCount() == 0 {
		g.phase = RoundLost
		return outcome, nil
	}
	g.isPlayerStep = true
	g.isPlayerDoAttack = false
	g.phase = Idle
	return outcome, nil
}

// ResetBot restocks the bot side with the reset layout after a won round.
func (g *Game) ResetBot() error {
	if g.phase != RoundWon {
		return errors.WithMessagef(ErrUnexpectedPhase, "reset bot in '%s'", g.phase)
	}
	field, ships, err := g.botReset.Build()
	if err != nil {
		return errors.WithMessage(err, "build bot side")
	}
	g.botField = field
	g.botShips = ships
	g.isPlayerStep = true
	g.phase = Idle
	return nil
}

func (g *Game) Clone() *Game {
	c := *g
	c.playerField = g.playerField.Clone()
	c.botField = g.botField.Clone()
	c.playerShips = g.playerShips.Clone()
	c.botShips = g.botShips.Clone()
	c.abilities = g.abilities.Clone()
	c.botReset.Ships = append([]Placement(nil), g.botReset.Ships...)
	return &c
}

func (g *Game) PlayerField() *domain.Field {
	return g.playerField
}

func (g *Game) BotField() *domain.Field {
	return g.botField
}

func (g *Game) PlayerShips() *domain.ShipManager {
	return g.playerShips
}

func (g *Game) BotShips() *domain.ShipManager {
	return g.botShips
}

func (g *Game) Abilities() *domain.AbilityManager {
	return g.abilities
}

func (g *Game) Phase() Phase {
	return g.phase
}

func (g *Game) RoundCounter() int {
	return g.roundCounter
}

func (g *Game) IsPlayerStep() bool {
	return g.isPlayerStep
}

func (g *Game) IsPlayerUseAbility() bool {
	return g.isPlayerUseAbility
}

func (g *Game) IsPlayerDoAttack() bool {
	return g.isPlayerDoAttack
}

package game_test

import (
	"math/rand"
	"testing"

	"github.com/kiryu-dev/sea-battle/internal/domain"
	"github.com/kiryu-dev/sea-battle/internal/usecase/game"
	"github.com/stretchr/testify/require"
)

func newRand() *rand.Rand {
	return rand.New(rand.NewSource(42))
}

func newGame(t *testing.T, opts ...game.Option) *game.Game {
	t.Helper()
	g, err := game.New(newRand(), opts...)
	require.NoError(t, err)
	return g
}

// playTurn runs one full turn without abilities and returns the attack result.
func playTurn(t *testing.T, g *game.Game, target domain.Coords) game.PlayerAttackResult {
	t.Helper()
	require.NoError(t, g.BeginPlayerTurn())
	result, err := g.PlayerAttack(target)
	require.NoError(t, err)
	if g.Phase() == game.BotTurn {
		_, err := g.BotTurn()
		require.NoError(t, err)
	}
	return result
}

func TestNew(t *testing.T) {
	g := newGame(t)
	require.Equal(t, game.Idle, g.Phase())
	require.Equal(t, 0, g.RoundCounter())
	require.True(t, g.IsPlayerStep())
	require.False(t, g.IsPlayerUseAbility())
	require.False(t, g.IsPlayerDoAttack())
	require.Equal(t, 1, g.Abilities().Len())
	require.Equal(t, 2, g.PlayerShips().AliveCount())
	require.Equal(t, 2, g.BotShips().AliveCount())

	ref, ok, err := g.PlayerField().SegmentAt(domain.Coords{X: 3, Y: 1})
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, 1, ref.Index)
}

func TestNew_InvalidLayout(t *testing.T) {
	layouts := game.DefaultLayouts()
	layouts.Bot.Width = 1
	_, err := game.New(newRand(), game.WithLayouts(layouts))
	require.ErrorIs(t, err, domain.ErrInvalidConfiguration)
}

func TestGame_WinRoundAndResetBot(t *testing.T) {
	g := newGame(t)
	targets := []domain.Coords{
		{X: 6, Y: 3}, {X: 6, Y: 3},
		{X: 7, Y: 3}, {X: 7, Y: 3},
		{X: 7, Y: 7},
	}
	for i, target := range targets {
		result := playTurn(t, g, target)
		require.True(t, result.Outcome.Hit)
		if i == 3 {
			require.Equal(t, 1, result.Destroyed)
			require.Len(t, result.Granted, 1)
		} else {
			require.Zero(t, result.Destroyed)
			require.Empty(t, result.Granted)
		}
		require.Equal(t, game.Idle, g.Phase())
	}
	require.Equal(t, 1, g.BotShips().AliveCount())
	require.Equal(t, 2, g.Abilities().Len())

	require.NoError(t, g.BeginPlayerTurn())
	result, err := g.PlayerAttack(domain.Coords{X: 7, Y: 7})
	require.NoError(t, err)
	require.Equal(t, domain.Destroyed, result.Outcome.Status)
	require.Equal(t, 1, result.Destroyed)
	require.Equal(t, game.RoundWon, g.Phase())
	require.Equal(t, 0, g.BotShips().AliveCount())
	require.Equal(t, 3, g.Abilities().Len())
	require.Equal(t, 6, g.RoundCounter())

	_, err = g.BotTurn()
	require.ErrorIs(t, err, game.ErrUnexpectedPhase)

	require.NoError(t, g.ResetBot())
	require.Equal(t, game.Idle, g.Phase())
	require.Equal(t, 3, g.BotShips().AliveCount())
	require.Equal(t, []int{2, 3, 1}, g.BotShips().ActiveSizes())
	for i := 0; i < g.BotShips().ActiveCount(); i++ {
		ship, err := g.BotShips().ActiveShip(i)
		require.NoError(t, err)
		require.True(t, ship.IsUnharmed())
	}
	status, err := g.BotField().CellStatus(domain.Coords{X: 6, Y: 3})
	require.NoError(t, err)
	require.Equal(t, domain.CellUnknown, status)
	require.NoError(t, g.BeginPlayerTurn())
}

func TestGame_RoundLost(t *testing.T) {
	layouts := game.DefaultLayouts()
	layouts.Player = game.Layout{
		Width:  3,
		Height: 3,
		Ships:  []game.Placement{{Length: 1, Origin: domain.Coords{X: 1, Y: 1}, Orientation: domain.Horizontal}},
	}
	g := newGame(t, game.WithLayouts(layouts))

	for i := 0; i < 5000 && g.Phase() != game.RoundLost; i++ {
		require.NoError(t, g.BeginPlayerTurn())
		_, err := g.PlayerAttack(domain.Coords{X: 0, Y: 0})
		require.NoError(t, err)
		require.Equal(t, game.BotTurn, g.Phase())
		_, err = g.BotTurn()
		require.NoError(t, err)
	}
	require.Equal(t, game.RoundLost, g.Phase())
	require.Equal(t, 0, g.PlayerShips().AliveCount())
	require.ErrorIs(t, g.BeginPlayerTurn(), game.ErrUnexpectedPhase)
	require.ErrorIs(t, g.ResetBot(), game.ErrUnexpectedPhase)
}

func TestGame_PhaseChecks(t *testing.T) {
	g := newGame(t)
	_, err := g.UseAbility(domain.Coords{})
	require.ErrorIs(t, err, game.ErrUnexpectedPhase)
	_, err = g.PlayerAttack(domain.Coords{})
	require.ErrorIs(t, err, game.ErrUnexpectedPhase)
	_, err = g.BotTurn()
	require.ErrorIs(t, err, game.ErrUnexpectedPhase)
	require.ErrorIs(t, g.ResetBot(), game.ErrUnexpectedPhase)

	require.NoError(t, g.BeginPlayerTurn())
	require.ErrorIs(t, g.BeginPlayerTurn(), game.ErrUnexpectedPhase)
	require.Equal(t, game.PlayerTurn, g.Phase())
}

func TestGame_AttackOutOfBoundsKeepsTurnOpen(t *testing.T) {
	g := newGame(t)
	require.NoError(t, g.BeginPlayerTurn())

	_, err := g.PlayerAttack(domain.Coords{X: 10, Y: 0})
	require.ErrorIs(t, err, domain.ErrOutOfBounds)
	require.Equal(t, game.PlayerTurn, g.Phase())
	require.False(t, g.IsPlayerDoAttack())

	_, err = g.PlayerAttack(domain.Coords{X: 0, Y: 0})
	require.NoError(t, err)
	require.True(t, g.IsPlayerDoAttack())
	require.False(t, g.IsPlayerStep())
	require.Equal(t, game.BotTurn, g.Phase())
}

// restoreWith builds a game whose ability queue holds exactly kinds.
func restoreWith(t *testing.T, kinds ...domain.AbilityKind) *game.Game {
	t.Helper()
	layouts := game.DefaultLayouts()
	playerField, playerShips, err := layouts.Player.Build()
	require.NoError(t, err)
	botField, botShips, err := layouts.Bot.Build()
	require.NoError(t, err)
	rng := newRand()
	abilities := domain.NewAbilityManager(rng)
	for _, kind := range kinds {
		abilities.Add(kind)
	}
	return game.Restore(game.Parts{
		PlayerField:  playerField,
		BotField:     botField,
		PlayerShips:  playerShips,
		BotShips:     botShips,
		Abilities:    abilities,
		IsPlayerStep: true,
	}, rng)
}

func TestGame_UseAbilityOncePerTurn(t *testing.T) {
	g := restoreWith(t, domain.Scanner, domain.Scanner)
	require.NoError(t, g.BeginPlayerTurn())

	effect, err := g.UseAbility(domain.Coords{X: 6, Y: 3})
	require.NoError(t, err)
	require.Equal(t, []domain.Coords{{X: 6, Y: 3}, {X: 7, Y: 3}}, effect.Detected)
	require.True(t, g.IsPlayerUseAbility())

	_, err = g.UseAbility(domain.Coords{X: 0, Y: 0})
	require.ErrorIs(t, err, game.ErrAbilityAlreadyUsed)
	require.Equal(t, 1, g.Abilities().Len())
}

func TestGame_UseAbilityAfterAttack(t *testing.T) {
	g := restoreWith(t, domain.Scanner)
	require.NoError(t, g.BeginPlayerTurn())
	g2 := g.Clone()

	_, err := g.PlayerAttack(domain.Coords{X: 0, Y: 0})
	require.NoError(t, err)
	_, err = g.UseAbility(domain.Coords{X: 0, Y: 0})
	require.ErrorIs(t, err, game.ErrUnexpectedPhase)

	_, err = g2.UseAbility(domain.Coords{X: 0, Y: 0})
	require.NoError(t, err)
}

func TestGame_UseAbilityEmptyQueue(t *testing.T) {
	g := restoreWith(t)
	require.NoError(t, g.BeginPlayerTurn())

	_, err := g.UseAbility(domain.Coords{X: 0, Y: 0})
	require.ErrorIs(t, err, domain.ErrNoAvailableAbilities)
	require.False(t, g.IsPlayerUseAbility())

	_, err = g.PlayerAttack(domain.Coords{X: 0, Y: 0})
	require.NoError(t, err)
}

func TestGame_AbilityKillGrantsAbility(t *testing.T) {
	g := restoreWith(t, domain.DoubleDamage)
	require.NoError(t, g.BeginPlayerTurn())

	effect, err := g.UseAbility(domain.Coords{X: 7, Y: 7})
	require.NoError(t, err)
	require.Equal(t, domain.Destroyed, effect.Outcome.Status)
	require.Equal(t, 0, g.Abilities().Len())

	result, err := g.PlayerAttack(domain.Coords{X: 0, Y: 0})
	require.NoError(t, err)
	require.False(t, result.Outcome.Hit)
	require.Equal(t, 1, result.Destroyed)
	require.Len(t, result.Granted, 1)
	require.Equal(t, 1, g.Abilities().Len())
}

func TestGame_RestoreStartsIdle(t *testing.T) {
	g := restoreWith(t, domain.Bombardment)
	require.Equal(t, game.Idle, g.Phase())
	require.Equal(t, []domain.AbilityKind{domain.Bombardment}, g.Abilities().Queue())
	require.NoError(t, g.BeginPlayerTurn())
	require.Equal(t, 1, g.RoundCounter())
}

func TestGame_Clone(t *testing.T) {
	g := newGame(t)
	clone := g.Clone()
	require.NoError(t, clone.BeginPlayerTurn())
	_, err := clone.PlayerAttack(domain.Coords{X: 6, Y: 3})
	require.NoError(t, err)

	require.Equal(t, game.Idle, g.Phase())
	require.Equal(t, 0, g.RoundCounter())
	ship, err := g.BotShips().ActiveShip(0)
	require.NoError(t, err)
	require.True(t, ship.IsUnharmed())
	status, err := g.BotField().CellStatus(domain.Coords{X: 6, Y: 3})
	require.NoError(t, err)
	require.Equal(t, domain.CellUnknown, status)
}

package snapshot_test

import (
	"context"
	"testing"

	"github.com/kiryu-dev/sea-battle/internal/domain"
	"github.com/kiryu-dev/sea-battle/internal/usecase/game"
	"github.com/kiryu-dev/sea-battle/internal/usecase/snapshot"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type memoryRepository struct {
	states map[string]domain.GameState
}

func newMemoryRepository() *memoryRepository {
	return &memoryRepository{states: make(map[string]domain.GameState)}
}

func (r *memoryRepository) Save(_ context.Context, name string, state domain.GameState) error {
	r.states[name] = state
	return nil
}

func (r *memoryRepository) Load(_ context.Context, name string) (domain.GameState, error) {
	state, ok := r.states[name]
	if !ok {
		return domain.GameState{}, domain.ErrFileAccess
	}
	return state, nil
}

func TestUseCase_SaveLoad(t *testing.T) {
	repo := newMemoryRepository()
	uc := snapshot.New(repo, newRand(), zap.NewNop())

	g, err := game.New(newRand())
	require.NoError(t, err)
	require.NoError(t, g.BeginPlayerTurn())
	_, err = g.PlayerAttack(domain.Coords{X: 6, Y: 3})
	require.NoError(t, err)

	require.NoError(t, uc.Save(context.Background(), g, "first"))
	loaded, err := uc.Load(context.Background(), "first")
	require.NoError(t, err)
	require.Equal(t, snapshot.ToSnapshot(g), snapshot.ToSnapshot(loaded))
	require.Equal(t, game.Idle, loaded.Phase())
}

func TestUseCase_LoadFailures(t *testing.T) {
	repo := newMemoryRepository()
	uc := snapshot.New(repo, newRand(), zap.NewNop())

	g, err := uc.Load(context.Background(), "missing")
	require.ErrorIs(t, err, domain.ErrFileAccess)
	require.Nil(t, g)

	state := validState(t)
	state.PlayerAbilityManager = []string{"Nope"}
	repo.states["broken"] = state
	g, err = uc.Load(context.Background(), "broken")
	require.ErrorIs(t, err, domain.ErrUnknownAbilityKind)
	require.Nil(t, g)
}

func TestUseCase_LoadUsesBotReset(t *testing.T) {
	repo := newMemoryRepository()
	reset := game.Layout{
		Width:  5,
		Height: 5,
		Ships:  []game.Placement{{Length: 1, Origin: domain.Coords{X: 0, Y: 0}, Orientation: domain.Horizontal}},
	}
	uc := snapshot.New(repo, newRand(), zap.NewNop(), game.WithBotReset(reset))

	state := validState(t)
	for _, record := range state.BotShipData {
		for i := range record.Segments {
			record.Segments[i].Status = int(domain.Destroyed)
		}
	}
	repo.states["won"] = state
	g, err := uc.Load(context.Background(), "won")
	require.NoError(t, err)
	require.Equal(t, 0, g.BotShips().AliveCount())

	require.NoError(t, g.BeginPlayerTurn())
	_, err = g.PlayerAttack(domain.Coords{X: 0, Y: 0})
	require.NoError(t, err)
	require.Equal(t, game.RoundWon, g.Phase())
	require.NoError(t, g.ResetBot())
	require.Equal(t, 5, g.BotField().Width())
	require.Equal(t, []int{1}, g.BotShips().ActiveSizes())
}

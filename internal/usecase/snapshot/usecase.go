package snapshot

import (
	"context"
	"math/rand"

	"github.com/kiryu-dev/sea-battle/internal/domain"
	"github.com/kiryu-dev/sea-battle/internal/usecase/game"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

type useCase struct {
	repo   domain.StateRepository
	rng    *rand.Rand
	opts   []game.Option
	logger *zap.Logger
}

func New(repo domain.StateRepository, rng *rand.Rand, logger *zap.Logger, opts ...game.Option) useCase {
	return useCase{
		repo:   repo,
		rng:    rng,
		opts:   opts,
		logger: logger,
	}
}

func (u useCase) Save(ctx context.Context, g *game.Game, name string) error {
	state := ToSnapshot(g)
	if err := u.repo.Save(ctx, name, state); err != nil {
		return errors.WithMessagef(err, "save game state '%s'", name)
	}
	u.logger.Info("game saved",
		zap.String("name", name),
		zap.Int("round", state.RoundCounter),
		zap.Strings("abilities", state.PlayerAbilityManager),
	)
	return nil
}

// Load reads a saved state and builds a new game from it. On failure nothing
// is returned, so the caller keeps playing the game it already has.
func (u useCase) Load(ctx context.Context, name string) (*game.Game, error) {
	state, err := u.repo.Load(ctx, name)
	if err != nil {
		return nil, errors.WithMessagef(err, "load game state '%s'", name)
	}
	g, err := FromSnapshot(state, u.rng, u.opts...)
	if err != nil {
		u.logger.Warn("saved game rejected", zap.String("name", name), zap.Error(err))
		return nil, errors.WithMessagef(err, "restore game state '%s'", name)
	}
	u.logger.Info("game loaded",
		zap.String("name", name),
		zap.Int("round", g.RoundCounter()),
		zap.Int("player ships alive", g.PlayerShips().AliveCount()),
		zap.Int("bot ships alive", g.BotShips().AliveCount()),
	)
	return g, nil
}

package console

import (
	"bufio"
	"context"
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/kiryu-dev/sea-battle/internal/domain"
	"github.com/kiryu-dev/sea-battle/internal/usecase/game"
	"github.com/pkg/errors"
	"go.uber.org/atomic"
	"go.uber.org/zap"
)

type Snapshots interface {
	Save(ctx context.Context, g *game.Game, name string) error
	Load(ctx context.Context, name string) (*game.Game, error)
}

type NewGameFunc func() (*game.Game, error)

type session struct {
	id        string
	scanner   *bufio.Scanner
	out       io.Writer
	game      *game.Game
	newGame   NewGameFunc
	snapshots Snapshots
	logger    *zap.Logger
	finished  *atomic.Bool
}

func New(in io.Reader, out io.Writer, newGame NewGameFunc, snapshots Snapshots, logger *zap.Logger) *session {
	id := uuid.NewString()
	return &session{
		id:        id,
		scanner:   bufio.NewScanner(in),
		out:       out,
		newGame:   newGame,
		snapshots: snapshots,
		logger:    logger.With(zap.String("session", id)),
		finished:  atomic.NewBool(false),
	}
}

func (s *session) ID() string {
	return s.id
}

// Finished reports whether Run has returned. Safe to call from any goroutine.
func (s *session) Finished() bool {
	return s.finished.Load()
}

// Game returns the game currently played, nil before Run starts one.
func (s *session) Game() *game.Game {
	return s.game
}

// Run plays games until the player declines a new one, the input ends or ctx
// is cancelled.
func (s *session) Run(ctx context.Context) error {
	defer s.finished.Store(true)
	if err := s.start(ctx); err != nil {
		return err
	}
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		switch s.game.Phase() {
		case game.Idle:
			if err := s.playerTurn(ctx); err != nil {
				return errors.WithMessage(err, "player turn")
			}
		case game.RoundWon:
			fmt.Fprintln(s.out, "You won the round! Restocking the enemy...")
			s.logger.Info("round won", zap.Int("round", s.game.RoundCounter()))
			if err := s.game.ResetBot(); err != nil {
				return errors.WithMessage(err, "reset bot")
			}
			s.renderFields()
		case game.RoundLost:
			s.logger.Info("round lost", zap.Int("round", s.game.RoundCounter()))
			again, err := s.askYesNo("Game over! Play again?")
			if err != nil {
				return err
			}
			if !again {
				return nil
			}
			if err := s.startNew(); err != nil {
				return err
			}
		default:
			return errors.WithMessagef(game.ErrUnexpectedPhase, "'%s' between turns", s.game.Phase())
		}
	}
}

func (s *session) start(ctx context.Context) error {
	load, err := s.askYesNo("Load a saved game?")
	if err != nil {
		return err
	}
	if load {
		loaded, err := s.load(ctx)
		if err != nil {
			return err
		}
		if loaded {
			s.renderFields()
			return nil
		}
	}
	return s.startNew()
}

func (s *session) startNew() error {
	g, err := s.newGame()
	if err != nil {
		return errors.WithMessage(err, "new game")
	}
	s.game = g
	s.logger.Info("new game started")
	s.renderFields()
	return nil
}

func (s *session) playerTurn(ctx context.Context) error {
	load, err := s.askYesNo("Load a saved game?")
	if err != nil {
		return err
	}
	if load {
		loaded, err := s.load(ctx)
		if err != nil {
			return err
		}
		if loaded {
			s.renderFields()
			return nil
		}
	}
	save, err := s.askYesNo("Save the game?")
	if err != nil {
		return err
	}
	if save {
		if err := s.save(ctx); err != nil {
			return err
		}
	}
	if err := s.game.BeginPlayerTurn(); err != nil {
		return errors.WithMessage(err, "begin player turn")
	}
	fmt.Fprintf(s.out, "\nRound %d\n", s.game.RoundCounter())
	renderAbilities(s.out, s.game.Abilities().Queue())
	if err := s.offerAbility(); err != nil {
		return err
	}
	if err := s.attack(); err != nil {
		return err
	}
	if s.game.Phase() != game.BotTurn {
		return nil
	}
	outcome, err := s.game.BotTurn()
	if err != nil {
		return errors.WithMessage(err, "bot turn")
	}
	renderOutcome(s.out, "Enemy attack", outcome)
	s.renderFields()
	return nil
}

func (s *session) offerAbility() error {
	use, err := s.askYesNo("Use an ability?")
	if err != nil || !use {
		return err
	}
	target, err := s.askCoords("Ability target")
	if err != nil {
		return err
	}
	effect, err := s.game.UseAbility(target)
	switch {
	case errors.Is(err, domain.ErrNoAvailableAbilities), errors.Is(err, domain.ErrOutOfBounds):
		fmt.Fprintf(s.out, "Ability failed: %v\n", err)
		return nil
	case err != nil:
		return errors.WithMessage(err, "use ability")
	}
	s.logger.Debug("ability used", zap.Stringer("kind", effect.Kind), zap.Stringer("target", target))
	renderEffect(s.out, effect)
	return nil
}

func (s *session) attack() error {
	for {
		target, err := s.askCoords("Attack")
		if err != nil {
			return err
		}
		result, err := s.game.PlayerAttack(target)
		switch {
		case errors.Is(err, domain.ErrOutOfBounds):
			fmt.Fprintln(s.out, "Attack out of field bounds. Check attack coordinates.")
			continue
		case err != nil:
			return errors.WithMessage(err, "player attack")
		}
		renderOutcome(s.out, "Your attack", result.Outcome)
		for _, kind := range result.Granted {
			fmt.Fprintf(s.out, "Enemy ship destroyed! New ability: %s\n", kind)
		}
		return nil
	}
}

func (s *session) save(ctx context.Context) error {
	name, err := s.readLine("File name: ")
	if err != nil {
		return err
	}
	if name == "" {
		name = "save-" + uuid.NewString()
	}
	if err := s.snapshots.Save(ctx, s.game, name); err != nil {
		s.logger.Warn("save failed", zap.String("name", name), zap.Error(err))
		fmt.Fprintf(s.out, "Failed to save the game: %v\n", err)
		return nil
	}
	fmt.Fprintf(s.out, "Game saved to %s\n", name)
	return nil
}

// load replaces the current game on success. Failures are reported and the
// current game, if any, stays as it was.
func (s *session) load(ctx context.Context) (bool, error) {
	name, err := s.readLine("File name: ")
	if err != nil {
		return false, err
	}
	g, err := s.snapshots.Load(ctx, name)
	if err != nil {
		s.logger.Warn("load failed", zap.String("name", name), zap.Error(err))
		fmt.Fprintf(s.out, "Failed to load the game: %v\n", err)
		return false, nil
	}
	s.game = g
	fmt.Fprintf(s.out, "Game loaded from %s\n", name)
	return true, nil
}

func (s *session) renderFields() {
	fmt.Fprintln(s.out, "Player field:")
	renderField(s.out, s.game.PlayerField(), s.game.PlayerShips(), true)
	fmt.Fprintln(s.out, "Enemy field:")
	renderField(s.out, s.game.BotField(), s.game.BotShips(), false)
}

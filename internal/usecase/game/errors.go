package game

import (
	"github.com/pkg/errors"
)

var (
	ErrUnexpectedPhase    = errors.New("unexpected game phase")
	ErrAbilityAlreadyUsed = errors.New("ability is already used this turn")
	ErrAttackAlreadyMade  = errors.New("attack is already made this turn")
)

package domain

import (
	"github.com/pkg/errors"
)

var (
	ErrInvalidConfiguration = errors.New("invalid configuration")
	ErrShipPlacement        = errors.New("invalid ship placement, ships are too close or overlapping")
	ErrOutOfBounds          = errors.New("coordinates are out of field bounds")
	ErrIndexOutOfRange      = errors.New("index out of range")
	ErrNoAvailableAbilities = errors.New("no available abilities to apply")
	ErrSchema               = errors.New("invalid game state schema")
	ErrUnknownAbilityKind   = errors.New("unknown ability kind")
	ErrFileAccess           = errors.New("file access failed")
)

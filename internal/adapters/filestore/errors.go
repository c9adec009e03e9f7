package filestore

import (
	"fmt"

	"github.com/kiryu-dev/sea-battle/internal/domain"
)

// accessError reports an I/O failure on a save file. It matches
// domain.ErrFileAccess and unwraps to the underlying cause.
type accessError struct {
	op   string
	path string
	err  error
}

func (e *accessError) Error() string {
	return fmt.Sprintf("%s '%s': %v", e.op, e.path, e.err)
}

func (e *accessError) Unwrap() error {
	return e.err
}

func (e *accessError) Is(target error) bool {
	return target == domain.ErrFileAccess
}

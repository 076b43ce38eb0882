package repos

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	pkgerrors "github.com/openbims/bims-backend/internal/pkg/errors"
)

// translateCreate maps duplicate-key violations to the retryable conflict
// sentinel so callers never see a raw driver error for an ID collision.
func translateCreate(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return fmt.Errorf("%w: %v", pkgerrors.ErrConflict, err)
	}
	return err
}

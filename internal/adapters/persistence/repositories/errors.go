package repositories

import (
	"errors"
	"fmt"

	"carconnect/internal/core/domain"

	"gorm.io/gorm"
)

// translateWrite maps unique-key violations to domain.ErrDuplicateEntry.
// The driver error is only translated when gorm runs with TranslateError.
func translateWrite(err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return fmt.Errorf("%w: %v", domain.ErrDuplicateEntry, err)
	}
	return err
}

package implementation

import (
	"errors"

	"marketplace-billing-be/internal/dto"

	"gorm.io/gorm"
)

// translateError maps gorm constraint violations onto domain error kinds so
// services never inspect driver errors. Unique violations surface as
// StateConflictError: they back the one-current-subscription-per-org and
// one-invoice-per-period guarantees.
func translateError(err error, resource string) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return dto.NewStateConflictError("%s already exists", resource)
	}
	return err
}

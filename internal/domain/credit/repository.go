package credit

import (
	"context"

	"github.com/google/uuid"
)

type CreditRepository interface {
	Save(ctx context.Context, credit *Credit) error

	// FindByCreditCode returns the credit together with its fully
	// materialized owning customer.
	FindByCreditCode(ctx context.Context, creditCode uuid.UUID) (*Credit, error)

	FindAllByCustomer(ctx context.Context, customerID int64) ([]*Credit, error)

	CountByStatus(ctx context.Context) (map[CreditStatus]int64, error)
}

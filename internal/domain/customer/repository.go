package customer

import (
	"context"
)

type CustomerRepository interface {
	// Save inserts when the customer has no ID yet and updates otherwise.
	// Uniqueness violations on cpf or email surface from the store as
	// apperrors.ErrAlreadyExists; they are never pre-checked.
	Save(ctx context.Context, customer *Customer) error

	FindByID(ctx context.Context, customerID int64) (*Customer, error)

	Delete(ctx context.Context, customerID int64) error
}

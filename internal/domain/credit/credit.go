package credit

import (
	"fmt"
	"math"
	"time"

	"credit-engine/internal/domain/customer"
	"credit-engine/internal/pkg/apperrors"

	"github.com/google/uuid"
)

type Money = float64

const (
	MinInstallments = 1
	MaxInstallments = 48
)

type CreditStatus string

const (
	StatusInProgress CreditStatus = "IN_PROGRESS"
	StatusApproved   CreditStatus = "APPROVED"
	StatusRejected   CreditStatus = "REJECTED"
)

// Credit is a single credit line owned by exactly one customer. CreditCode
// is the external handle; the numeric ID never leaves the service.
type Credit struct {
	ID                   int64
	CreditCode           uuid.UUID
	CreditValue          Money
	DayFirstInstallment  time.Time
	NumberOfInstallments int
	Status               CreditStatus
	CustomerID           int64
	Customer             *customer.Customer
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

type InstallmentEntry struct {
	Number    int
	DueDate   time.Time
	DueAmount Money
}

func NewCredit(creditValue Money, dayFirstInstallment time.Time, numberOfInstallments int, customerID int64) (*Credit, error) {
	if creditValue <= 0 {
		return nil, fmt.Errorf("%w: credit value must be positive", apperrors.ErrInvalidArgument)
	}
	if !dayFirstInstallment.After(time.Now()) {
		return nil, fmt.Errorf("%w: day of first installment must be in the future", apperrors.ErrInvalidArgument)
	}
	if numberOfInstallments < MinInstallments || numberOfInstallments > MaxInstallments {
		return nil, fmt.Errorf("%w: number of installments must be between %d and %d",
			apperrors.ErrInvalidArgument, MinInstallments, MaxInstallments)
	}

	return &Credit{
		CreditCode:           uuid.New(),
		CreditValue:          creditValue,
		DayFirstInstallment:  dayFirstInstallment,
		NumberOfInstallments: numberOfInstallments,
		Status:               StatusInProgress,
		CustomerID:           customerID,
	}, nil
}

// ValueAvailable is the net amount still owed across outstanding
// installments. Nothing marks installments as realized yet, so it equals
// the full credit value.
func (c *Credit) ValueAvailable() Money {
	return c.CreditValue
}

// Schedule derives the installment plan: equal monthly installments from
// DayFirstInstallment, with the final entry absorbing rounding drift so the
// total matches the credit value exactly.
func (c *Credit) Schedule() ([]InstallmentEntry, error) {
	if c.NumberOfInstallments <= 0 || c.CreditValue <= 0 {
		return nil, fmt.Errorf("%w: invalid credit terms for schedule generation", apperrors.ErrInvalidArgument)
	}

	installment := roundTo(c.CreditValue/float64(c.NumberOfInstallments), 2)

	schedule := make([]InstallmentEntry, 0, c.NumberOfInstallments)
	accumulated := 0.0

	for n := 1; n <= c.NumberOfInstallments; n++ {
		dueDate := c.DayFirstInstallment.AddDate(0, n-1, 0)

		amount := installment
		if n == c.NumberOfInstallments {
			amount = roundTo(c.CreditValue-accumulated, 2)
			if amount < 0 {
				amount = 0
			}
		}

		schedule = append(schedule, InstallmentEntry{
			Number:    n,
			DueDate:   dueDate,
			DueAmount: amount,
		})
		accumulated += amount
	}

	if math.Abs(roundTo(accumulated, 2)-roundTo(c.CreditValue, 2)) > 0.01 {
		return nil, fmt.Errorf("%w: schedule generation failed sanity check - total %.2f != credit value %.2f",
			apperrors.ErrInternalServer, accumulated, c.CreditValue)
	}

	return schedule, nil
}

func roundTo(n float64, decimals int) float64 {
	pow := math.Pow(10, float64(decimals))
	return math.Round(n*pow) / pow
}

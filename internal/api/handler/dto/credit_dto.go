package dto

import (
	"time"

	"credit-engine/internal/domain/credit"
	"credit-engine/internal/pkg/apperrors"

	"github.com/shopspring/decimal"
)

const dateLayout = "2006-01-02"

type CreateCreditRequest struct {
	CreditValue          float64 `json:"creditValue"`
	DayFirstOfInstallment string `json:"dayFirstOfInstallment"`
	NumberOfInstallments int     `json:"numberOfInstallments"`
	CustomerID           int64   `json:"customerId"`
}

func (r *CreateCreditRequest) Validate() error {
	var errs apperrors.ValidationErrors

	if r.CreditValue <= 0 {
		errs = append(errs, &apperrors.ValidationError{Field: "creditValue", Message: "Invalid input"})
	}
	if day, err := time.Parse(dateLayout, r.DayFirstOfInstallment); err != nil {
		errs = append(errs, &apperrors.ValidationError{Field: "dayFirstOfInstallment", Message: "invalid date format (use YYYY-MM-DD)"})
	} else if !day.After(time.Now()) {
		errs = append(errs, &apperrors.ValidationError{Field: "dayFirstOfInstallment", Message: "must be a future date"})
	}
	if r.NumberOfInstallments < credit.MinInstallments || r.NumberOfInstallments > credit.MaxInstallments {
		errs = append(errs, &apperrors.ValidationError{Field: "numberOfInstallments", Message: "must be between 1 and 48"})
	}
	if r.CustomerID <= 0 {
		errs = append(errs, &apperrors.ValidationError{Field: "customerId", Message: "Invalid input"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

func (r *CreateCreditRequest) ToEntity() (*credit.Credit, error) {
	day, err := time.Parse(dateLayout, r.DayFirstOfInstallment)
	if err != nil {
		return nil, err
	}
	return credit.NewCredit(r.CreditValue, day, r.NumberOfInstallments, r.CustomerID)
}

// CreditListItem is the lightweight list-view shape; detail fields are
// deliberately suppressed.
type CreditListItem struct {
	CreditCode           string `json:"creditCode"`
	CreditValue          string `json:"creditValue"`
	NumberOfInstallments int    `json:"numberOfInstallments"`
}

func NewCreditListItem(cr *credit.Credit) CreditListItem {
	return CreditListItem{
		CreditCode:           cr.CreditCode.String(),
		CreditValue:          formatMoney(cr.CreditValue),
		NumberOfInstallments: cr.NumberOfInstallments,
	}
}

type CreditView struct {
	CreditCode           string `json:"creditCode"`
	CreditValue          string `json:"creditValue"`
	CreditValueAvailable string `json:"creditValueAvailable"`
	DayFirstInstallment  string `json:"dayFirstInstallment"`
	NumberOfInstallments int    `json:"numberOfInstallments"`
	Status               string `json:"status"`
	EmailCustomer        string `json:"emailCustomer"`
	IncomeCustomer       string `json:"incomeCustomer"`
}

func NewCreditView(cr *credit.Credit) CreditView {
	view := CreditView{
		CreditCode:           cr.CreditCode.String(),
		CreditValue:          formatMoney(cr.CreditValue),
		CreditValueAvailable: formatMoney(cr.ValueAvailable()),
		DayFirstInstallment:  cr.DayFirstInstallment.Format(dateLayout),
		NumberOfInstallments: cr.NumberOfInstallments,
		Status:               string(cr.Status),
	}
	if cr.Customer != nil {
		view.EmailCustomer = cr.Customer.Email
		view.IncomeCustomer = formatMoney(cr.Customer.Income)
	}
	return view
}

func formatMoney(m credit.Money) string {
	return decimal.NewFromFloat(m).StringFixed(2)
}

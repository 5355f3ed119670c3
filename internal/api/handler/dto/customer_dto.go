package dto

import (
	"strings"

	"credit-engine/internal/domain/customer"
	"credit-engine/internal/pkg/apperrors"
)

type CreateCustomerRequest struct {
	FirstName string  `json:"firstName"`
	LastName  string  `json:"lastName"`
	CPF       string  `json:"cpf"`
	Email     string  `json:"email"`
	Password  string  `json:"password"`
	ZipCode   string  `json:"zipCode"`
	Street    string  `json:"street"`
	Income    float64 `json:"income"`
}

func (r *CreateCustomerRequest) Validate() error {
	var errs apperrors.ValidationErrors

	if strings.TrimSpace(r.FirstName) == "" {
		errs = append(errs, &apperrors.ValidationError{Field: "firstName", Message: "must not be empty"})
	}
	if strings.TrimSpace(r.LastName) == "" {
		errs = append(errs, &apperrors.ValidationError{Field: "lastName", Message: "must not be empty"})
	}
	if cpf := strings.TrimSpace(r.CPF); cpf == "" {
		errs = append(errs, &apperrors.ValidationError{Field: "cpf", Message: "must not be empty"})
	} else if !isCPF(cpf) {
		errs = append(errs, &apperrors.ValidationError{Field: "cpf", Message: "invalid CPF"})
	}
	if email := strings.TrimSpace(r.Email); email == "" {
		errs = append(errs, &apperrors.ValidationError{Field: "email", Message: "must not be empty"})
	} else if !strings.Contains(email, "@") {
		errs = append(errs, &apperrors.ValidationError{Field: "email", Message: "must be a well-formed email address"})
	}
	if r.Password == "" {
		errs = append(errs, &apperrors.ValidationError{Field: "password", Message: "must not be empty"})
	}
	if strings.TrimSpace(r.ZipCode) == "" {
		errs = append(errs, &apperrors.ValidationError{Field: "zipCode", Message: "must not be empty"})
	}
	if strings.TrimSpace(r.Street) == "" {
		errs = append(errs, &apperrors.ValidationError{Field: "street", Message: "must not be empty"})
	}
	if r.Income < 0 {
		errs = append(errs, &apperrors.ValidationError{Field: "income", Message: "must not be negative"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

func (r *CreateCustomerRequest) ToEntity() *customer.Customer {
	return customer.NewCustomer(
		strings.TrimSpace(r.FirstName),
		strings.TrimSpace(r.LastName),
		strings.TrimSpace(r.CPF),
		strings.TrimSpace(r.Email),
		r.Password,
		customer.Address{
			ZipCode: strings.TrimSpace(r.ZipCode),
			Street:  strings.TrimSpace(r.Street),
		},
		r.Income,
	)
}

// isCPF accepts the national tax id as eleven digits, with or without the
// usual punctuation.
func isCPF(s string) bool {
	digits := 0
	for _, c := range s {
		switch {
		case c >= '0' && c <= '9':
			digits++
		case c == '.' || c == '-':
		default:
			return false
		}
	}
	return digits == 11
}

type UpdateCustomerRequest struct {
	FirstName *string  `json:"firstName,omitempty"`
	LastName  *string  `json:"lastName,omitempty"`
	Income    *float64 `json:"income,omitempty"`
	ZipCode   *string  `json:"zipCode,omitempty"`
	Street    *string  `json:"street,omitempty"`
}

func (r *UpdateCustomerRequest) Validate() error {
	var errs apperrors.ValidationErrors

	if r.FirstName != nil && strings.TrimSpace(*r.FirstName) == "" {
		errs = append(errs, &apperrors.ValidationError{Field: "firstName", Message: "must not be empty"})
	}
	if r.LastName != nil && strings.TrimSpace(*r.LastName) == "" {
		errs = append(errs, &apperrors.ValidationError{Field: "lastName", Message: "must not be empty"})
	}
	if r.Income != nil && *r.Income < 0 {
		errs = append(errs, &apperrors.ValidationError{Field: "income", Message: "must not be negative"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

func (r *UpdateCustomerRequest) ToUpdate() customer.Update {
	return customer.Update{
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Income:    r.Income,
		ZipCode:   r.ZipCode,
		Street:    r.Street,
	}
}

type CustomerView struct {
	ID        int64   `json:"id"`
	FirstName string  `json:"firstName"`
	LastName  string  `json:"lastName"`
	CPF       string  `json:"cpf"`
	Email     string  `json:"email"`
	Income    float64 `json:"income"`
	ZipCode   string  `json:"zipCode"`
	Street    string  `json:"street"`
}

func NewCustomerView(cust *customer.Customer) CustomerView {
	if cust == nil {
		return CustomerView{}
	}
	return CustomerView{
		ID:        cust.ID,
		FirstName: cust.FirstName,
		LastName:  cust.LastName,
		CPF:       cust.CPF,
		Email:     cust.Email,
		Income:    cust.Income,
		ZipCode:   cust.Address.ZipCode,
		Street:    cust.Address.Street,
	}
}

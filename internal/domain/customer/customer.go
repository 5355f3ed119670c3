package customer

import "time"

// Address is a value object owned entirely by its Customer. It has no
// identity of its own and is stored inline on the customers row.
type Address struct {
	ZipCode string `json:"zipCode"`
	Street  string `json:"street"`
}

type Customer struct {
	ID        int64     `json:"id"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	CPF       string    `json:"cpf"`
	Email     string    `json:"email"`
	Password  string    `json:"-"`
	Address   Address   `json:"address"`
	Income    float64   `json:"income"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func NewCustomer(firstName, lastName, cpf, email, password string, address Address, income float64) *Customer {
	return &Customer{
		FirstName: firstName,
		LastName:  lastName,
		CPF:       cpf,
		Email:     email,
		Password:  password,
		Address:   address,
		Income:    income,
	}
}

func (c *Customer) FullName() string {
	return c.FirstName + " " + c.LastName
}

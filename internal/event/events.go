package event

import (
	"context"
	"time"
)

type CustomerEventPayload struct {
	CustomerID int64     `json:"customerId"`
	FirstName  string    `json:"firstName"`
	LastName   string    `json:"lastName"`
	CPF        string    `json:"cpf"`
	Email      string    `json:"email"`
	CreateDate time.Time `json:"createDate"`
}

type CustomerCreatedEvent struct {
	Timestamp time.Time            `json:"timestamp"`
	Payload   CustomerEventPayload `json:"payload"`
}

type CreditEventPayload struct {
	CreditID             int64     `json:"creditId"`
	CreditCode           string    `json:"creditCode"`
	CreditValue          string    `json:"creditValue"`
	NumberOfInstallments int       `json:"numberOfInstallments"`
	Status               string    `json:"status"`
	CustomerID           int64     `json:"customerId"`
	CreateDate           time.Time `json:"createDate"`
}

type CreditCreatedEvent struct {
	Timestamp time.Time          `json:"timestamp"`
	Payload   CreditEventPayload `json:"payload"`
}

type EventPublisher interface {
	PublishCustomerCreated(ctx context.Context, event CustomerCreatedEvent) error
	PublishCreditCreated(ctx context.Context, event CreditCreatedEvent) error
}

// NoopPublisher is used when messaging is disabled in configuration.
type NoopPublisher struct{}

func NewNoopPublisher() *NoopPublisher { return &NoopPublisher{} }

func (*NoopPublisher) PublishCustomerCreated(context.Context, CustomerCreatedEvent) error {
	return nil
}

func (*NoopPublisher) PublishCreditCreated(context.Context, CreditCreatedEvent) error {
	return nil
}

var _ EventPublisher = (*NoopPublisher)(nil)

package customer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"credit-engine/internal/event"
	"credit-engine/internal/infrastructure/monitoring"
	"credit-engine/internal/pkg/apperrors"
)

const customerNotFound = "Customer not found by repository"

// Update carries the fields a PATCH may change. Nil pointers leave the
// stored value untouched.
type Update struct {
	FirstName *string
	LastName  *string
	Income    *float64
	ZipCode   *string
	Street    *string
}

type CustomerService interface {
	CreateCustomer(ctx context.Context, cust *Customer) (*Customer, error)
	GetCustomer(ctx context.Context, customerID int64) (*Customer, error)
	UpdateCustomer(ctx context.Context, customerID int64, upd Update) (*Customer, error)
	DeleteCustomer(ctx context.Context, customerID int64) error
}

var _ CustomerService = (*customerService)(nil)

type customerService struct {
	repo   CustomerRepository
	pub    event.EventPublisher
	logger *slog.Logger
}

func NewCustomerService(repo CustomerRepository, eventPublisher event.EventPublisher, logger *slog.Logger) CustomerService {
	if repo == nil {
		panic("customer repository cannot be nil")
	}
	if eventPublisher == nil {
		eventPublisher = event.NewNoopPublisher()
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
		logger.Warn("Warning: No logger provided to NewCustomerService, using default stderr handler")
	}

	return &customerService{
		repo:   repo,
		pub:    eventPublisher,
		logger: logger.With(slog.String("component", "customerService")),
	}
}

func (s *customerService) CreateCustomer(ctx context.Context, cust *Customer) (*Customer, error) {
	s.logger.InfoContext(ctx, "Attempting to create new customer", slog.String("email", cust.Email))

	// Uniqueness of cpf and email is the store's job; a violation propagates
	// untouched so the error mapper can turn it into a conflict.
	if err := s.repo.Save(ctx, cust); err != nil {
		s.logger.ErrorContext(ctx, "Repository failed to save new customer", slog.Any("error", err))
		return nil, err
	}

	monitoring.Business.CustomersCreatedTotal.Inc()
	s.logger.InfoContext(ctx, "Successfully saved new customer, publishing creation event", slog.Int64("customerID", cust.ID))

	createdEvent := event.CustomerCreatedEvent{
		Timestamp: time.Now(),
		Payload: event.CustomerEventPayload{
			CustomerID: cust.ID,
			FirstName:  cust.FirstName,
			LastName:   cust.LastName,
			CPF:        cust.CPF,
			Email:      cust.Email,
			CreateDate: cust.CreatedAt,
		},
	}
	if pubErr := s.pub.PublishCustomerCreated(ctx, createdEvent); pubErr != nil {
		s.logger.ErrorContext(ctx, "Customer created, but FAILED to publish creation event", slog.Any("error", pubErr))
	}

	return cust, nil
}

func (s *customerService) GetCustomer(ctx context.Context, customerID int64) (*Customer, error) {
	s.logger.InfoContext(ctx, "Attempting to get customer by ID", slog.Int64("customerID", customerID))

	cust, err := s.repo.FindByID(ctx, customerID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			s.logger.WarnContext(ctx, customerNotFound, slog.Int64("customerID", customerID))
			// Absence is always a reported failure, never a nil result.
			return nil, fmt.Errorf("%w: Id %d not found", apperrors.ErrNotFound, customerID)
		}
		s.logger.ErrorContext(ctx, "Repository error finding customer", slog.Any("error", err))
		return nil, fmt.Errorf("failed to get customer %d: %w", customerID, err)
	}

	return cust, nil
}

func (s *customerService) UpdateCustomer(ctx context.Context, customerID int64, upd Update) (*Customer, error) {
	s.logger.InfoContext(ctx, "Attempting to update customer", slog.Int64("customerID", customerID))

	cust, err := s.GetCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}

	if upd.FirstName != nil {
		cust.FirstName = *upd.FirstName
	}
	if upd.LastName != nil {
		cust.LastName = *upd.LastName
	}
	if upd.Income != nil {
		cust.Income = *upd.Income
	}
	if upd.ZipCode != nil {
		cust.Address.ZipCode = *upd.ZipCode
	}
	if upd.Street != nil {
		cust.Address.Street = *upd.Street
	}

	if err := s.repo.Save(ctx, cust); err != nil {
		s.logger.ErrorContext(ctx, "Repository failed to save updated customer", slog.Any("error", err))
		return nil, err
	}

	s.logger.InfoContext(ctx, "Successfully updated customer", slog.Int64("customerID", customerID))
	return cust, nil
}

func (s *customerService) DeleteCustomer(ctx context.Context, customerID int64) error {
	s.logger.InfoContext(ctx, "Attempting to delete customer", slog.Int64("customerID", customerID))

	// Resolve first so deletion of an unknown id fails the same way a read
	// does.
	cust, err := s.GetCustomer(ctx, customerID)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, cust.ID); err != nil {
		s.logger.ErrorContext(ctx, "Repository failed to delete customer", slog.Any("error", err))
		return err
	}

	s.logger.InfoContext(ctx, "Successfully deleted customer", slog.Int64("customerID", customerID))
	return nil
}

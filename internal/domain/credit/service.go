package credit

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"credit-engine/internal/domain/customer"
	"credit-engine/internal/event"
	"credit-engine/internal/infrastructure/monitoring"
	"credit-engine/internal/pkg/apperrors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CreditService interface {
	// CreateCredit resolves the owning customer by credit.CustomerID,
	// overwrites the customer reference with the resolved record, and
	// persists. A missing CustomerID is an internal invariant failure; an
	// unknown one propagates the customer service's not-found error.
	CreateCredit(ctx context.Context, cr *Credit) (*Credit, error)

	// ListByCustomer never fails on an unknown customer id; an id with no
	// credits yields an empty slice.
	ListByCustomer(ctx context.Context, customerID int64) ([]*Credit, error)

	// GetByCreditCode enforces that only the owning customer can fetch a
	// credit by its code.
	GetByCreditCode(ctx context.Context, customerID int64, creditCode uuid.UUID) (*Credit, error)
}

var _ CreditService = (*creditService)(nil)

type creditService struct {
	repo            CreditRepository
	customerService customer.CustomerService
	pub             event.EventPublisher
	logger          *slog.Logger
}

func NewCreditService(repo CreditRepository, customerService customer.CustomerService, eventPublisher event.EventPublisher, logger *slog.Logger) CreditService {
	if repo == nil {
		panic("credit repository cannot be nil")
	}
	if customerService == nil {
		panic("customer service cannot be nil")
	}
	if eventPublisher == nil {
		eventPublisher = event.NewNoopPublisher()
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
		logger.Warn("Warning: No logger provided to NewCreditService, using default stderr handler")
	}

	return &creditService{
		repo:            repo,
		customerService: customerService,
		pub:             eventPublisher,
		logger:          logger.With(slog.String("component", "creditService")),
	}
}

func (s *creditService) CreateCredit(ctx context.Context, cr *Credit) (*Credit, error) {
	s.logger.InfoContext(ctx, "Attempting to create new credit", slog.Int64("customerID", cr.CustomerID))

	if cr.CustomerID == 0 {
		s.logger.ErrorContext(ctx, "Credit submitted without a customer id")
		return nil, fmt.Errorf("%w: credit has no customer id", apperrors.ErrInternalServer)
	}

	// Resolve the full customer record; a credit can never reference a
	// customer id that does not exist.
	owner, err := s.customerService.GetCustomer(ctx, cr.CustomerID)
	if err != nil {
		s.logger.WarnContext(ctx, "Failed to resolve owning customer", slog.Any("error", err))
		return nil, err
	}
	cr.Customer = owner

	if err := s.repo.Save(ctx, cr); err != nil {
		s.logger.ErrorContext(ctx, "Repository failed to save new credit", slog.Any("error", err))
		return nil, err
	}

	monitoring.Business.CreditsCreatedTotal.Inc()
	s.logger.InfoContext(ctx, "Successfully saved new credit, publishing creation event",
		slog.String("creditCode", cr.CreditCode.String()))

	createdEvent := event.CreditCreatedEvent{
		Timestamp: time.Now(),
		Payload: event.CreditEventPayload{
			CreditID:             cr.ID,
			CreditCode:           cr.CreditCode.String(),
			CreditValue:          decimal.NewFromFloat(cr.CreditValue).StringFixed(2),
			NumberOfInstallments: cr.NumberOfInstallments,
			Status:               string(cr.Status),
			CustomerID:           cr.CustomerID,
			CreateDate:           cr.CreatedAt,
		},
	}
	if pubErr := s.pub.PublishCreditCreated(ctx, createdEvent); pubErr != nil {
		s.logger.ErrorContext(ctx, "Credit created, but FAILED to publish creation event", slog.Any("error", pubErr))
	}

	return cr, nil
}

func (s *creditService) ListByCustomer(ctx context.Context, customerID int64) ([]*Credit, error) {
	s.logger.InfoContext(ctx, "Listing credits by customer", slog.Int64("customerID", customerID))

	credits, err := s.repo.FindAllByCustomer(ctx, customerID)
	if err != nil {
		s.logger.ErrorContext(ctx, "Repository error listing credits", slog.Any("error", err))
		return nil, fmt.Errorf("failed to list credits for customer %d: %w", customerID, err)
	}

	return credits, nil
}

func (s *creditService) GetByCreditCode(ctx context.Context, customerID int64, creditCode uuid.UUID) (*Credit, error) {
	s.logger.InfoContext(ctx, "Attempting to get credit by code",
		slog.Int64("customerID", customerID), slog.String("creditCode", creditCode.String()))

	cr, err := s.repo.FindByCreditCode(ctx, creditCode)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			s.logger.WarnContext(ctx, "Credit not found by repository")
			return nil, fmt.Errorf("%w: Creditcode %s not found", apperrors.ErrNotFound, creditCode)
		}
		s.logger.ErrorContext(ctx, "Repository error finding credit by code", slog.Any("error", err))
		return nil, fmt.Errorf("failed to get credit %s: %w", creditCode, err)
	}

	if cr.CustomerID != customerID {
		// Deliberately vague towards the caller; the log keeps the detail.
		s.logger.WarnContext(ctx, "Ownership check failed for credit",
			slog.Int64("ownerID", cr.CustomerID), slog.Int64("requestedBy", customerID))
		return nil, fmt.Errorf("%w: Contact admin", apperrors.ErrOwnership)
	}

	return cr, nil
}

package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"credit-engine/internal/domain/credit"
	"credit-engine/internal/domain/customer"
	"credit-engine/internal/pkg/apperrors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pashagolub/pgxmock/v4"
)

type DBPool interface {
	Begin(ctx context.Context) (pgx.Tx, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Acquire(ctx context.Context) (*pgxpool.Conn, error)
	Close()
}

var _ DBPool = (*pgxpool.Pool)(nil)

var _ DBPool = (pgxmock.PgxPoolIface)(nil)

var errMsgFormat = "%w: %w"

type CreditRepository struct {
	db     DBPool
	logger *slog.Logger
}

var _ credit.CreditRepository = (*CreditRepository)(nil)

func NewCreditRepository(db DBPool, logger *slog.Logger) *CreditRepository {
	if db == nil {
		panic("DBPool cannot be nil for CreditRepository")
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
		logger.Warn("Warning: No logger provided to NewCreditRepository, using default stderr handler")
	}
	return &CreditRepository{db: db, logger: logger.With("component", "CreditRepository")}
}

func (r *CreditRepository) Save(ctx context.Context, cr *credit.Credit) error {
	if cr == nil {
		return fmt.Errorf("%w: credit cannot be nil", apperrors.ErrInvalidArgument)
	}

	r.logger.InfoContext(ctx, "Attempting to insert new credit", slog.String("creditCode", cr.CreditCode.String()))

	query := `
        INSERT INTO credits (credit_code, credit_value, day_first_installment, number_of_installments, status, customer_id, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
        RETURNING id, created_at, updated_at`

	err := r.db.QueryRow(ctx, query,
		cr.CreditCode,
		cr.CreditValue,
		cr.DayFirstInstallment,
		cr.NumberOfInstallments,
		cr.Status,
		cr.CustomerID,
	).Scan(
		&cr.ID,
		&cr.CreatedAt,
		&cr.UpdatedAt,
	)

	if err != nil {
		translatedErr := translateDBError(err, r.logger)
		if errors.Is(translatedErr, apperrors.ErrAlreadyExists) {
			r.logger.WarnContext(ctx, "Failed to insert credit due to unique constraint violation", slog.Any("error", err))
			return translatedErr
		}
		r.logger.ErrorContext(ctx, "Failed to insert credit", slog.Any("error", err))
		return fmt.Errorf("%w: failed to insert credit: %w", apperrors.ErrDatabase, err)
	}

	r.logger.InfoContext(ctx, "Credit inserted successfully", slog.Int64("creditID", cr.ID))
	return nil
}

func (r *CreditRepository) FindByCreditCode(ctx context.Context, creditCode uuid.UUID) (*credit.Credit, error) {
	r.logger.InfoContext(ctx, "Attempting to find credit by code", slog.String("creditCode", creditCode.String()))

	// The owning customer rides along so callers never see a half-filled
	// credit.
	query := `
        SELECT c.id, c.credit_code, c.credit_value, c.day_first_installment, c.number_of_installments, c.status, c.customer_id, c.created_at, c.updated_at,
               cu.id, cu.first_name, cu.last_name, cu.cpf, cu.email, cu.password, cu.zip_code, cu.street, cu.income, cu.created_at, cu.updated_at
        FROM credits c
        JOIN customers cu ON cu.id = c.customer_id
        WHERE c.credit_code = $1`

	var cr credit.Credit
	var owner customer.Customer
	err := r.db.QueryRow(ctx, query, creditCode).Scan(
		&cr.ID,
		&cr.CreditCode,
		&cr.CreditValue,
		&cr.DayFirstInstallment,
		&cr.NumberOfInstallments,
		&cr.Status,
		&cr.CustomerID,
		&cr.CreatedAt,
		&cr.UpdatedAt,
		&owner.ID,
		&owner.FirstName,
		&owner.LastName,
		&owner.CPF,
		&owner.Email,
		&owner.Password,
		&owner.Address.ZipCode,
		&owner.Address.Street,
		&owner.Income,
		&owner.CreatedAt,
		&owner.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.WarnContext(ctx, "Credit not found")
			return nil, apperrors.ErrNotFound
		}
		r.logger.ErrorContext(ctx, "Failed to query/scan credit by code", slog.Any("error", err))
		return nil, fmt.Errorf("%w: failed to get credit by code: %w", apperrors.ErrDatabase, err)
	}

	cr.Customer = &owner
	r.logger.InfoContext(ctx, "Credit found successfully", slog.Int64("creditID", cr.ID))
	return &cr, nil
}

func (r *CreditRepository) FindAllByCustomer(ctx context.Context, customerID int64) ([]*credit.Credit, error) {
	r.logger.InfoContext(ctx, "Attempting to find credits by customer", slog.Int64("customerID", customerID))

	query := `
        SELECT id, credit_code, credit_value, day_first_installment, number_of_installments, status, customer_id, created_at, updated_at
        FROM credits
        WHERE customer_id = $1
        ORDER BY id ASC`

	rows, err := r.db.Query(ctx, query, customerID)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to query credits", slog.Any("error", err))
		return nil, fmt.Errorf("%w: failed to query credits: %w", apperrors.ErrDatabase, err)
	}
	defer rows.Close()

	credits := make([]*credit.Credit, 0)
	for rows.Next() {
		var cr credit.Credit
		err := rows.Scan(
			&cr.ID,
			&cr.CreditCode,
			&cr.CreditValue,
			&cr.DayFirstInstallment,
			&cr.NumberOfInstallments,
			&cr.Status,
			&cr.CustomerID,
			&cr.CreatedAt,
			&cr.UpdatedAt,
		)
		if err != nil {
			r.logger.ErrorContext(ctx, "Failed to scan credit row", slog.Any("error", err))
			return nil, fmt.Errorf("%w: failed to scan credit row: %w", apperrors.ErrDatabase, err)
		}
		credits = append(credits, &cr)
	}

	if err = rows.Err(); err != nil {
		r.logger.ErrorContext(ctx, "Error iterating credit rows", slog.Any("error", err))
		return nil, fmt.Errorf("%w: error iterating credit rows: %w", apperrors.ErrDatabase, err)
	}

	r.logger.InfoContext(ctx, "Finished finding credits", slog.Int("count", len(credits)))
	return credits, nil
}

func (r *CreditRepository) CountByStatus(ctx context.Context) (map[credit.CreditStatus]int64, error) {
	r.logger.DebugContext(ctx, "Counting credits by status")

	query := `SELECT status, COUNT(*) FROM credits GROUP BY status`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to count credits by status", slog.Any("error", err))
		return nil, fmt.Errorf("%w: failed to count credits by status: %w", apperrors.ErrDatabase, err)
	}
	defer rows.Close()

	counts := make(map[credit.CreditStatus]int64)
	for rows.Next() {
		var status credit.CreditStatus
		var count int64
		if err := rows.Scan(&status, &count); err != nil {
			r.logger.ErrorContext(ctx, "Failed to scan status count row", slog.Any("error", err))
			return nil, fmt.Errorf("%w: failed to scan status count row: %w", apperrors.ErrDatabase, err)
		}
		counts[status] = count
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: error iterating status count rows: %w", apperrors.ErrDatabase, err)
	}

	return counts, nil
}

func translateDBError(err error, contextLogger *slog.Logger) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return apperrors.ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "23505" {
			contextLogger.Warn("Database unique constraint violation", "detail", pgErr.Detail, "constraint", pgErr.ConstraintName)
			return fmt.Errorf("%w: %s", apperrors.ErrAlreadyExists, pgErr.ConstraintName)
		}

		contextLogger.Error("PostgreSQL specific error", "code", pgErr.Code, "message", pgErr.Message, "detail", pgErr.Detail)
		return fmt.Errorf("%w: db error code %s", apperrors.ErrDatabase, pgErr.Code)
	}

	contextLogger.Error("Generic database error", "error", err)
	return fmt.Errorf(errMsgFormat, apperrors.ErrDatabase, err)
}

package batch

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"credit-engine/internal/domain/credit"
	"credit-engine/internal/infrastructure/monitoring"
)

// CreditStatusReportJob counts credits per status and refreshes the
// credit_engine_credits_by_status gauge so dashboards track the pipeline
// without querying the database directly.
type CreditStatusReportJob struct {
	creditRepo credit.CreditRepository
	logger     *slog.Logger
}

func NewCreditStatusReportJob(creditRepo credit.CreditRepository, logger *slog.Logger) *CreditStatusReportJob {
	if creditRepo == nil || logger == nil {
		panic("CreditStatusReportJob dependencies cannot be nil")
	}
	return &CreditStatusReportJob{
		creditRepo: creditRepo,
		logger:     logger.With("job", "CreditStatusReport"),
	}
}

func (j *CreditStatusReportJob) Run(ctx context.Context) error {
	startTime := time.Now()
	j.logger.InfoContext(ctx, "Starting credit status report job.")

	counts, err := j.creditRepo.CountByStatus(ctx)
	if err != nil {
		j.logger.ErrorContext(ctx, "Failed to count credits by status, aborting job.", slog.Any("error", err))
		return fmt.Errorf("cannot run job, failed to count credits: %w", err)
	}

	var total int64
	for _, status := range []credit.CreditStatus{credit.StatusInProgress, credit.StatusApproved, credit.StatusRejected} {
		count := counts[status]
		monitoring.Business.CreditsByStatus.WithLabelValues(string(status)).Set(float64(count))
		total += count
	}

	j.logger.InfoContext(ctx, "Credit status report job finished.",
		slog.Int64("in_progress", counts[credit.StatusInProgress]),
		slog.Int64("approved", counts[credit.StatusApproved]),
		slog.Int64("rejected", counts[credit.StatusRejected]),
		slog.Int64("total", total),
		slog.Duration("duration", time.Since(startTime)))
	return nil
}

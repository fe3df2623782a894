package usecase

import (
	"context"
	"encoding/json"
	"time"

	"github.com/rs/zerolog"

	"github.com/duepay/payables/internal/domain"
	"github.com/duepay/payables/internal/infrastructure/metrics"
)

func scheduleCacheKey(tenantID string) string {
	return "schedule:" + tenantID
}

// ScheduleUseCase derives the visible occurrence list for a tenant. The
// expansion itself is pure domain logic; this layer supplies the consistent
// store snapshot and an optional short-lived cache in front of it.
type ScheduleUseCase struct {
	accountRepo AccountRepository
	paymentRepo PaymentRepository
	cache       Cache
	cacheTTL    time.Duration
	metrics     *metrics.Metrics
	logger      zerolog.Logger
}

// NewScheduleUseCase creates a new ScheduleUseCase. cache may be nil.
func NewScheduleUseCase(
	accountRepo AccountRepository,
	paymentRepo PaymentRepository,
	cache Cache,
	cacheTTL time.Duration,
	m *metrics.Metrics,
	logger zerolog.Logger,
) *ScheduleUseCase {
	return &ScheduleUseCase{
		accountRepo: accountRepo,
		paymentRepo: paymentRepo,
		cache:       cache,
		cacheTTL:    cacheTTL,
		metrics:     m,
		logger:      logger,
	}
}

type cachedSchedule struct {
	AsOf        string               `json:"as_of"`
	Occurrences []*domain.Occurrence `json:"occurrences"`
}

// ListOpenOccurrences expands all of a tenant's accounts against their
// payment history as of the given date. asOf is explicit so the result is
// reproducible; callers normally pass time.Now().
func (uc *ScheduleUseCase) ListOpenOccurrences(ctx context.Context, tenantID string, asOf time.Time) ([]*domain.Occurrence, error) {
	asOfDate := domain.DateOnly(asOf)

	if cached, ok := uc.fromCache(ctx, tenantID, asOfDate); ok {
		if uc.metrics != nil {
			uc.metrics.ScheduleCacheHits.Inc()
		}

		return cached, nil
	}

	if uc.cache != nil && uc.metrics != nil {
		uc.metrics.ScheduleCacheMisses.Inc()
	}

	accounts, err := uc.accountRepo.List(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	payments, err := uc.paymentRepo.List(ctx, tenantID, PaymentFilter{})
	if err != nil {
		return nil, err
	}

	occurrences := domain.ExpandOccurrences(accounts, payments, asOfDate)

	if uc.metrics != nil {
		uc.metrics.OccurrencesExpanded.Add(float64(len(occurrences)))
	}

	uc.toCache(ctx, tenantID, asOfDate, occurrences)

	return occurrences, nil
}

// GetSchedule returns the occurrences grouped for presentation.
func (uc *ScheduleUseCase) GetSchedule(ctx context.Context, tenantID string, asOf time.Time) (domain.Schedule, error) {
	occurrences, err := uc.ListOpenOccurrences(ctx, tenantID, asOf)
	if err != nil {
		return domain.Schedule{}, err
	}

	return domain.GroupOccurrences(occurrences), nil
}

// Invalidate drops the cached schedule for a tenant.
func (uc *ScheduleUseCase) Invalidate(ctx context.Context, tenantID string) {
	if uc.cache == nil {
		return
	}

	if err := uc.cache.Delete(ctx, scheduleCacheKey(tenantID)); err != nil {
		uc.logger.Warn().Err(err).Str("tenant_id", tenantID).Msg("schedule cache invalidation failed")
	}
}

func (uc *ScheduleUseCase) fromCache(ctx context.Context, tenantID string, asOfDate time.Time) ([]*domain.Occurrence, bool) {
	if uc.cache == nil {
		return nil, false
	}

	data, err := uc.cache.Get(ctx, scheduleCacheKey(tenantID))
	if err != nil {
		return nil, false
	}

	var entry cachedSchedule
	if err := json.Unmarshal(data, &entry); err != nil {
		return nil, false
	}

	// The cached expansion is only valid for the same calendar date.
	if entry.AsOf != asOfDate.Format("2006-01-02") {
		return nil, false
	}

	return entry.Occurrences, true
}

func (uc *ScheduleUseCase) toCache(ctx context.Context, tenantID string, asOfDate time.Time, occurrences []*domain.Occurrence) {
	if uc.cache == nil {
		return
	}

	data, err := json.Marshal(cachedSchedule{
		AsOf:        asOfDate.Format("2006-01-02"),
		Occurrences: occurrences,
	})
	if err != nil {
		return
	}

	if err := uc.cache.Set(ctx, scheduleCacheKey(tenantID), data, uc.cacheTTL); err != nil {
		uc.logger.Warn().Err(err).Str("tenant_id", tenantID).Msg("schedule cache write failed")
	}
}

package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"strconv"

	"golang.org/x/sync/singleflight"

	"mortgage-calculator/amortization"
	"mortgage-calculator/domain"
	"mortgage-calculator/repository"
)

type MortgageService struct {
	repo   repository.CalculationRepository
	cache  repository.CacheRepository
	logger *slog.Logger
	group  singleflight.Group
}

// NewMortgageService creates a MortgageService backed by the given history and cache.
func NewMortgageService(
	repo repository.CalculationRepository,
	cache repository.CacheRepository,
	logger *slog.Logger,
) *MortgageService {
	if logger == nil {
		logger = slog.Default()
	}
	return &MortgageService{
		repo:   repo,
		cache:  cache,
		logger: logger.With(slog.String("component", "mortgage_service")),
	}
}

// Validate checks the loan parameters against the ranges the calculator supports.
func (s *MortgageService) Validate(p domain.LoanParameters) error {
	if math.IsNaN(p.Principal) || p.Principal < MinPrincipal || p.Principal > MaxPrincipal {
		return &domain.InvalidParameterError{
			Field:  "principal",
			Value:  p.Principal,
			Reason: fmt.Sprintf("must be between %.0f and %.0f", MinPrincipal, MaxPrincipal),
		}
	}
	if math.IsNaN(p.AnnualRatePercent) || p.AnnualRatePercent < MinInterestRate || p.AnnualRatePercent > MaxInterestRate {
		return &domain.InvalidParameterError{
			Field:  "annual_rate",
			Value:  p.AnnualRatePercent,
			Reason: fmt.Sprintf("must be between %.0f and %.0f percent", MinInterestRate, MaxInterestRate),
		}
	}
	if p.TermYears < MinTermYears || p.TermYears > MaxTermYears {
		return &domain.InvalidParameterError{
			Field:  "term_years",
			Value:  p.TermYears,
			Reason: fmt.Sprintf("must be between %d and %d", MinTermYears, MaxTermYears),
		}
	}
	return nil
}

// Calculate returns the payment, summary and schedule for the loan.
// Results are memoized per exact input tuple.
func (s *MortgageService) Calculate(
	ctx context.Context,
	params domain.LoanParameters,
) (domain.Calculation, error) {
	if err := s.Validate(params); err != nil {
		return domain.Calculation{}, err
	}

	key := CacheKey(params)
	if calc, ok := s.fromCache(ctx, key); ok {
		return calc, nil
	}

	// The result is shared with other callers, so one caller's cancellation
	// must not abort the cache write or history save.
	v, err, shared := s.group.Do(key, func() (any, error) {
		return s.compute(context.WithoutCancel(ctx), key, params)
	})
	if err != nil {
		return domain.Calculation{}, err
	}
	if shared {
		s.logger.DebugContext(ctx, "calculation shared between concurrent callers", slog.String("key", key))
	}
	return v.(domain.Calculation), nil
}

func (s *MortgageService) compute(
	ctx context.Context,
	key string,
	params domain.LoanParameters,
) (domain.Calculation, error) {
	schedule, err := amortization.BuildSchedule(params)
	if err != nil {
		return domain.Calculation{}, fmt.Errorf("build schedule: %w", err)
	}

	calc := domain.Calculation{
		Parameters: params,
		Summary:    amortization.Summarize(schedule, params.Principal),
		Schedule:   schedule,
	}

	s.logger.InfoContext(ctx, "mortgage calculated",
		slog.Float64("principal", params.Principal),
		slog.Float64("annual_rate", params.AnnualRatePercent),
		slog.Int("term_years", params.TermYears),
		slog.Float64("monthly_payment", calc.Summary.MonthlyPayment),
	)

	s.toCache(ctx, key, calc)

	// History is best effort.
	if err := s.repo.Save(ctx, params, calc.Summary); err != nil {
		s.logger.WarnContext(ctx, "failed to save calculation", slog.String("error", err.Error()))
	}

	return calc, nil
}

func (s *MortgageService) fromCache(ctx context.Context, key string) (domain.Calculation, bool) {
	raw, ok := s.cache.Get(ctx, key)
	if !ok {
		return domain.Calculation{}, false
	}

	var calc domain.Calculation
	if err := json.Unmarshal([]byte(raw), &calc); err != nil {
		s.logger.WarnContext(ctx, "discarding unreadable cache entry",
			slog.String("key", key),
			slog.String("error", err.Error()),
		)
		return domain.Calculation{}, false
	}
	return calc, true
}

func (s *MortgageService) toCache(ctx context.Context, key string, calc domain.Calculation) {
	payload, err := json.Marshal(calc)
	if err != nil {
		s.logger.WarnContext(ctx, "failed to encode calculation for cache", slog.String("error", err.Error()))
		return
	}
	if err := s.cache.Set(ctx, key, string(payload)); err != nil {
		s.logger.WarnContext(ctx, "failed to cache calculation",
			slog.String("key", key),
			slog.String("error", err.Error()),
		)
	}
}

// History lists stored calculations, newest first.
func (s *MortgageService) History(ctx context.Context, limit int) ([]domain.CalculationRecord, error) {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	if limit > MaxHistoryLimit {
		limit = MaxHistoryLimit
	}

	records, err := s.repo.List(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("list calculations: %w", err)
	}
	return records, nil
}

// CacheKey identifies a parameter set exactly; any change yields a different key.
func CacheKey(p domain.LoanParameters) string {
	return fmt.Sprintf("%s:%s:%s:%d",
		cacheKeyPrefix,
		strconv.FormatFloat(p.Principal, 'g', -1, 64),
		strconv.FormatFloat(p.AnnualRatePercent, 'g', -1, 64),
		p.TermYears,
	)
}

package repository

import (
	"context"
	"sync"
	"time"

	"mortgage-calculator/domain"
)

// CalculationRepositoryMemory is an in-memory implementation of CalculationRepository.
type CalculationRepositoryMemory struct {
	mu     sync.Mutex
	data   []domain.CalculationRecord
	nextID int64
	now    func() time.Time
}

// NewCalculationRepositoryMemory creates a new in-memory calculation repository.
func NewCalculationRepositoryMemory() *CalculationRepositoryMemory {
	return &CalculationRepositoryMemory{
		data: []domain.CalculationRecord{},
		now:  time.Now,
	}
}

// Save stores the calculation summary in memory.
func (r *CalculationRepositoryMemory) Save(
	_ context.Context,
	params domain.LoanParameters,
	summary domain.Summary,
) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	r.data = append(r.data, domain.CalculationRecord{
		ID:         r.nextID,
		Parameters: params,
		Summary:    summary,
		CreatedAt:  r.now().UTC(),
	})
	return nil
}

func (r *CalculationRepositoryMemory) List(_ context.Context, limit int) ([]domain.CalculationRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > len(r.data) {
		limit = len(r.data)
	}

	out := make([]domain.CalculationRecord, 0, limit)
	for i := len(r.data) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, r.data[i])
	}
	return out, nil
}

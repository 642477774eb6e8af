package repository

import (
	"context"

	"mortgage-calculator/domain"
)

// CalculationRepository keeps a history of computed mortgages.
type CalculationRepository interface {
	Save(ctx context.Context, params domain.LoanParameters, summary domain.Summary) error
	// List returns at most limit records, newest first.
	List(ctx context.Context, limit int) ([]domain.CalculationRecord, error)
}

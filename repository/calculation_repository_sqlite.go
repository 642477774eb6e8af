package repository

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"

	"mortgage-calculator/domain"

	_ "modernc.org/sqlite"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

const defaultListLimit = 50

type CalculationRepositorySQLite struct {
	db  *sql.DB
	now func() time.Time
}

func NewCalculationRepositorySQLite(dbPath string) (*CalculationRepositorySQLite, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &CalculationRepositorySQLite{db: db, now: time.Now}, nil
}

// RunMigrations applies the embedded schema migrations to the database at dbPath.
func RunMigrations(dbPath string) error {
	// Separate connection so closing the migrator does not close the repository's pool.
	migrateDB, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return fmt.Errorf("open migration database: %w", err)
	}
	defer migrateDB.Close()

	driver, err := sqlite.WithInstance(migrateDB, &sqlite.Config{})
	if err != nil {
		return fmt.Errorf("create sqlite driver: %w", err)
	}

	d, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("create iofs source: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", d, "sqlite", driver)
	if err != nil {
		return fmt.Errorf("create migrate instance: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("run migrations: %w", err)
	}
	return nil
}

func (r *CalculationRepositorySQLite) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

func (r *CalculationRepositorySQLite) Save(
	ctx context.Context,
	params domain.LoanParameters,
	summary domain.Summary,
) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO calculations (
			principal, annual_rate, term_years,
			monthly_payment, num_payments, total_paid, total_interest, interest_ratio,
			created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		params.Principal, params.AnnualRatePercent, params.TermYears,
		summary.MonthlyPayment, summary.NumPayments, summary.TotalPaid, summary.TotalInterest, summary.InterestToPrincipalPercent,
		r.now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("insert calculation: %w", err)
	}
	return nil
}

func (r *CalculationRepositorySQLite) List(ctx context.Context, limit int) ([]domain.CalculationRecord, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, principal, annual_rate, term_years,
			monthly_payment, num_payments, total_paid, total_interest, interest_ratio,
			created_at
		FROM calculations
		ORDER BY id DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query calculations: %w", err)
	}
	defer rows.Close()

	out := []domain.CalculationRecord{}
	for rows.Next() {
		var (
			rec       domain.CalculationRecord
			createdAt string
		)
		if err := rows.Scan(
			&rec.ID,
			&rec.Parameters.Principal,
			&rec.Parameters.AnnualRatePercent,
			&rec.Parameters.TermYears,
			&rec.Summary.MonthlyPayment,
			&rec.Summary.NumPayments,
			&rec.Summary.TotalPaid,
			&rec.Summary.TotalInterest,
			&rec.Summary.InterestToPrincipalPercent,
			&createdAt,
		); err != nil {
			return nil, fmt.Errorf("scan calculation: %w", err)
		}

		rec.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt)
		if err != nil {
			return nil, fmt.Errorf("parse created_at %q: %w", createdAt, err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate calculations: %w", err)
	}
	return out, nil
}

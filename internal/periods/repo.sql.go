package periods

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

type repository struct {
	pool *pgxpool.Pool
}

// NewRepository returns the PostgreSQL-backed period catalogue.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

const listPeriodsSQL = `
SELECT label, value, start_date, end_date
FROM reporting_periods
ORDER BY start_date DESC, value`

func (r *repository) ListPeriods(ctx context.Context) ([]ReportingPeriod, error) {
	rows, err := r.pool.Query(ctx, listPeriodsSQL)
	if err != nil {
		return nil, fmt.Errorf("periods: list: %w", err)
	}
	defer rows.Close()

	out := make([]ReportingPeriod, 0)
	for rows.Next() {
		var p ReportingPeriod
		if err := rows.Scan(&p.Label, &p.Value, &p.StartDate, &p.EndDate); err != nil {
			return nil, fmt.Errorf("periods: scan: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

package periods

import "context"

// Repository lists the period catalogue.
type Repository interface {
	ListPeriods(ctx context.Context) ([]ReportingPeriod, error)
}

package periods

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
)

// Service serves the period catalogue.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService wires the periods service.
func NewService(repo Repository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{repo: repo, logger: logger}
}

// List returns the catalogue with quarterly periods first, newest first within
// each group, matching how the selector presents them.
func (s *Service) List(ctx context.Context) ([]ReportingPeriod, error) {
	if s == nil || s.repo == nil {
		return nil, errors.New("periods: service not initialised")
	}
	list, err := s.repo.ListPeriods(ctx)
	if err != nil {
		return nil, fmt.Errorf("periods: load catalogue: %w", err)
	}
	sort.SliceStable(list, func(i, j int) bool {
		if list[i].IsQuarterly() != list[j].IsQuarterly() {
			return list[i].IsQuarterly()
		}
		return list[i].StartDate > list[j].StartDate
	})
	return list, nil
}

package vat

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/vatlens/vatlens/internal/platform/httpx"
)

var quarterPattern = regexp.MustCompile(`^Q[1-4]-\d{4}$`)

// PeriodData bundles one period's invoice snapshot with its derived summary.
// The invoice lists go back to the caller unmodified for display and export.
type PeriodData struct {
	Period    string            `json:"period"`
	Summary   VatPeriodSummary  `json:"summary"`
	Sales     []SalesInvoice    `json:"salesInvoices"`
	Purchases []PurchaseInvoice `json:"purchaseInvoices"`
}

// Service orchestrates invoice retrieval, boundary validation and the rollup.
type Service struct {
	repo   Repository
	cache  *Cache
	logger *slog.Logger
}

// NewService wires the VAT service.
func NewService(repo Repository, cache *Cache, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{repo: repo, cache: cache, logger: logger}
}

// ValidatePeriodKey accepts quarterly keys like "Q1-2025" and month codes
// like "2025-01".
func ValidatePeriodKey(period string) error {
	period = strings.TrimSpace(period)
	if period == "" {
		return fmt.Errorf("%w: reporting period required", httpx.ErrValidation)
	}
	if quarterPattern.MatchString(period) {
		return nil
	}
	if _, err := time.Parse("2006-01", period); err == nil {
		return nil
	}
	return fmt.Errorf("%w: invalid reporting period %q", httpx.ErrValidation, period)
}

// PeriodData fetches the period snapshot and computes its summary. Sales and
// purchases load concurrently; the snapshot is validated before aggregation.
func (s *Service) PeriodData(ctx context.Context, period string) (PeriodData, error) {
	if s == nil || s.repo == nil {
		return PeriodData{}, errors.New("vat: service not initialised")
	}
	if err := ValidatePeriodKey(period); err != nil {
		return PeriodData{}, err
	}

	var (
		sales     []SalesInvoice
		purchases []PurchaseInvoice
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		sales, err = s.repo.ListSalesInvoices(gctx, period)
		return err
	})
	g.Go(func() error {
		var err error
		purchases, err = s.repo.ListPurchaseInvoices(gctx, period)
		return err
	})
	if err := g.Wait(); err != nil {
		return PeriodData{}, fmt.Errorf("vat: load period %s: %w", period, err)
	}

	if err := ValidateSalesInvoices(sales); err != nil {
		return PeriodData{}, err
	}
	if err := ValidatePurchaseInvoices(purchases); err != nil {
		return PeriodData{}, err
	}

	// Derive the rollup status for purchases where upstream left it unset.
	for i := range purchases {
		if purchases[i].OverallClaimableStatus == "" {
			purchases[i].OverallClaimableStatus = DeriveOverallStatus(purchases[i].LineItems)
		}
	}

	summary, warnings := BuildPeriodSummary(period, sales, purchases)
	for _, warning := range warnings {
		s.logger.Warn("claimable VAT integrity", slog.String("period", period), slog.String("detail", warning))
	}

	return PeriodData{Period: period, Summary: summary, Sales: sales, Purchases: purchases}, nil
}

// Summary returns the period summary, memoized in the cache when one is
// configured. Cache misses compute through PeriodData.
func (s *Service) Summary(ctx context.Context, period string) (VatPeriodSummary, error) {
	if err := ValidatePeriodKey(period); err != nil {
		return VatPeriodSummary{}, err
	}
	key, err := s.cache.SummaryKey(ctx, period)
	if err != nil {
		return VatPeriodSummary{}, err
	}
	return s.cache.FetchSummary(ctx, key, func(ctx context.Context) (VatPeriodSummary, error) {
		data, err := s.PeriodData(ctx, period)
		if err != nil {
			return VatPeriodSummary{}, err
		}
		return data.Summary, nil
	})
}

// InvalidateSummaries drops every memoized summary.
func (s *Service) InvalidateSummaries(ctx context.Context) error {
	return s.cache.Bump(ctx)
}

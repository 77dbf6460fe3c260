package report

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/report"
	"github.com/storefront/backend/internal/domain/shared"
)

const (
	defaultPeriodDays = 30
	defaultTopN       = 5
	maxPeriodDays     = 366
	maxTopN           = 50
)

// PeriodInput selects the reporting window. Zero values fall back
// to the last 30 days.
type PeriodInput struct {
	StartDate time.Time `form:"start_date" time_format:"2006-01-02"`
	EndDate   time.Time `form:"end_date" time_format:"2006-01-02"`
	TopN      int       `form:"top_n"`
}

// Dashboard bundles everything the admin dashboard shows
type Dashboard struct {
	Summary     *report.RevenueSummary     `json:"summary"`
	DailyTrend  []report.DailyRevenueTrend `json:"daily_trend"`
	TopProducts []report.TopProduct        `json:"top_products"`
	Profit      *report.ProfitSummary      `json:"profit"`
}

// DashboardService serves the admin revenue dashboard
type DashboardService struct {
	repo report.Repository
}

// NewDashboardService creates a new DashboardService
func NewDashboardService(repo report.Repository) *DashboardService {
	return &DashboardService{repo: repo}
}

// GetDashboard assembles the full dashboard for the period
func (s *DashboardService) GetDashboard(ctx context.Context, tenantID uuid.UUID, input PeriodInput) (*Dashboard, error) {
	filter, err := s.buildFilter(tenantID, input)
	if err != nil {
		return nil, err
	}

	summary, err := s.repo.GetRevenueSummary(ctx, filter)
	if err != nil {
		return nil, err
	}
	trend, err := s.repo.GetDailyRevenueTrend(ctx, filter)
	if err != nil {
		return nil, err
	}
	top, err := s.repo.GetTopProducts(ctx, filter)
	if err != nil {
		return nil, err
	}
	profit, err := s.repo.GetProfitSummary(ctx, filter)
	if err != nil {
		return nil, err
	}

	return &Dashboard{
		Summary:     summary,
		DailyTrend:  trend,
		TopProducts: top,
		Profit:      profit,
	}, nil
}

// GetRevenueSummary returns only the headline figures
func (s *DashboardService) GetRevenueSummary(ctx context.Context, tenantID uuid.UUID, input PeriodInput) (*report.RevenueSummary, error) {
	filter, err := s.buildFilter(tenantID, input)
	if err != nil {
		return nil, err
	}
	return s.repo.GetRevenueSummary(ctx, filter)
}

// GetTopProducts returns only the product ranking
func (s *DashboardService) GetTopProducts(ctx context.Context, tenantID uuid.UUID, input PeriodInput) ([]report.TopProduct, error) {
	filter, err := s.buildFilter(tenantID, input)
	if err != nil {
		return nil, err
	}
	return s.repo.GetTopProducts(ctx, filter)
}

func (s *DashboardService) buildFilter(tenantID uuid.UUID, input PeriodInput) (report.Filter, error) {
	end := input.EndDate
	if end.IsZero() {
		end = time.Now()
	}
	start := input.StartDate
	if start.IsZero() {
		start = end.AddDate(0, 0, -defaultPeriodDays)
	}
	if !start.Before(end) {
		return report.Filter{}, shared.NewDomainError("INVALID_PERIOD", "Period start must be before its end")
	}
	if end.Sub(start) > maxPeriodDays*24*time.Hour {
		return report.Filter{}, shared.NewDomainError("INVALID_PERIOD", "Period cannot exceed one year")
	}

	topN := input.TopN
	if topN <= 0 {
		topN = defaultTopN
	}
	if topN > maxTopN {
		topN = maxTopN
	}

	return report.Filter{
		TenantID:  tenantID,
		StartDate: start,
		EndDate:   end,
		TopN:      topN,
	}, nil
}

package persistence

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/storefront/backend/internal/domain/identity"
	"github.com/storefront/backend/internal/domain/report"
	"gorm.io/gorm"
)

// GormRevenueReportRepository implements report.Repository using GORM
type GormRevenueReportRepository struct {
	db *gorm.DB
}

// NewGormRevenueReportRepository creates a new GormRevenueReportRepository
func NewGormRevenueReportRepository(db *gorm.DB) *GormRevenueReportRepository {
	return &GormRevenueReportRepository{db: db}
}

// GetRevenueSummary returns the headline dashboard figures for the
// period. Cancelled orders are excluded from every figure.
func (r *GormRevenueReportRepository) GetRevenueSummary(ctx context.Context, filter report.Filter) (*report.RevenueSummary, error) {
	type summaryResult struct {
		TotalRevenue decimal.Decimal
		OrderCount   int64
		UnitsSold    int64
	}

	// An order's total equals the sum of its item amounts, so the
	// item join can serve revenue without double counting
	var result summaryResult
	err := r.db.WithContext(ctx).
		Table("orders o").
		Select(`
			COALESCE(SUM(oi.amount), 0) as total_revenue,
			COUNT(DISTINCT o.id) as order_count,
			COALESCE(SUM(oi.quantity), 0) as units_sold
		`).
		Joins("LEFT JOIN order_items oi ON oi.order_id = o.id").
		Where("o.tenant_id = ?", filter.TenantID).
		Where("o.placed_at BETWEEN ? AND ?", filter.StartDate, filter.EndDate).
		Where("o.status <> ?", "cancelled").
		Scan(&result).Error
	if err != nil {
		return nil, err
	}

	var activeShoppers int64
	err = r.db.WithContext(ctx).
		Model(&identity.User{}).
		Where("tenant_id = ? AND is_active = ? AND is_staff = ?", filter.TenantID, true, false).
		Count(&activeShoppers).Error
	if err != nil {
		return nil, err
	}

	var avgOrderValue decimal.Decimal
	if result.OrderCount > 0 {
		avgOrderValue = result.TotalRevenue.Div(decimal.NewFromInt(result.OrderCount)).Round(2)
	}

	return &report.RevenueSummary{
		PeriodStart:    filter.StartDate,
		PeriodEnd:      filter.EndDate,
		TotalRevenue:   result.TotalRevenue,
		OrderCount:     result.OrderCount,
		UnitsSold:      result.UnitsSold,
		AvgOrderValue:  avgOrderValue,
		ActiveShoppers: activeShoppers,
	}, nil
}

// GetDailyRevenueTrend returns per-day revenue for the period
func (r *GormRevenueReportRepository) GetDailyRevenueTrend(ctx context.Context, filter report.Filter) ([]report.DailyRevenueTrend, error) {
	type dailyResult struct {
		Date       time.Time
		OrderCount int64
		Revenue    decimal.Decimal
		UnitsSold  int64
	}

	var results []dailyResult
	err := r.db.WithContext(ctx).
		Table("orders o").
		Select(`
			DATE(o.placed_at) as date,
			COUNT(DISTINCT o.id) as order_count,
			COALESCE(SUM(oi.amount), 0) as revenue,
			COALESCE(SUM(oi.quantity), 0) as units_sold
		`).
		Joins("LEFT JOIN order_items oi ON oi.order_id = o.id").
		Where("o.tenant_id = ?", filter.TenantID).
		Where("o.placed_at BETWEEN ? AND ?", filter.StartDate, filter.EndDate).
		Where("o.status <> ?", "cancelled").
		Group("DATE(o.placed_at)").
		Order("date ASC").
		Scan(&results).Error
	if err != nil {
		return nil, err
	}

	trends := make([]report.DailyRevenueTrend, len(results))
	for i, row := range results {
		trends[i] = report.DailyRevenueTrend{
			Date:       row.Date,
			OrderCount: row.OrderCount,
			Revenue:    row.Revenue,
			UnitsSold:  row.UnitsSold,
		}
	}
	return trends, nil
}

// GetTopProducts ranks products by revenue for the period
func (r *GormRevenueReportRepository) GetTopProducts(ctx context.Context, filter report.Filter) ([]report.TopProduct, error) {
	topN := filter.TopN
	if topN <= 0 {
		topN = 5
	}

	var results []report.TopProduct
	err := r.db.WithContext(ctx).
		Table("order_items oi").
		Select(`
			oi.product_id,
			MAX(oi.product_name) as product_name,
			COALESCE(SUM(oi.quantity), 0) as units_sold,
			COALESCE(SUM(oi.amount), 0) as revenue
		`).
		Joins("JOIN orders o ON o.id = oi.order_id").
		Where("o.tenant_id = ?", filter.TenantID).
		Where("o.placed_at BETWEEN ? AND ?", filter.StartDate, filter.EndDate).
		Where("o.status <> ?", "cancelled").
		Group("oi.product_id").
		Order("revenue DESC").
		Limit(topN).
		Scan(&results).Error
	if err != nil {
		return nil, err
	}

	for i := range results {
		results[i].Rank = i + 1
	}
	return results, nil
}

// GetProfitSummary compares revenue to the average unit cost of the
// variants sold, taken from received purchase orders
func (r *GormRevenueReportRepository) GetProfitSummary(ctx context.Context, filter report.Filter) (*report.ProfitSummary, error) {
	var revenue decimal.Decimal
	err := r.db.WithContext(ctx).
		Table("orders").
		Select("COALESCE(SUM(total_amount), 0)").
		Where("tenant_id = ?", filter.TenantID).
		Where("placed_at BETWEEN ? AND ?", filter.StartDate, filter.EndDate).
		Where("status <> ?", "cancelled").
		Scan(&revenue).Error
	if err != nil {
		return nil, err
	}

	var costOfGoods decimal.Decimal
	err = r.db.WithContext(ctx).
		Table("order_items oi").
		Select("COALESCE(SUM(oi.quantity * vc.avg_cost), 0)").
		Joins("JOIN orders o ON o.id = oi.order_id").
		Joins(`JOIN (
			SELECT poi.variant_id, AVG(poi.unit_cost) as avg_cost
			FROM purchase_order_items poi
			JOIN purchase_orders po ON po.id = poi.purchase_order_id
			WHERE po.tenant_id = ? AND po.status = ?
			GROUP BY poi.variant_id
		) vc ON vc.variant_id = oi.variant_id`, filter.TenantID, "received").
		Where("o.tenant_id = ?", filter.TenantID).
		Where("o.placed_at BETWEEN ? AND ?", filter.StartDate, filter.EndDate).
		Where("o.status <> ?", "cancelled").
		Scan(&costOfGoods).Error
	if err != nil {
		return nil, err
	}

	grossProfit := revenue.Sub(costOfGoods)
	var profitMargin decimal.Decimal
	if !revenue.IsZero() {
		profitMargin = grossProfit.Div(revenue).Mul(decimal.NewFromInt(100)).Round(2)
	}

	return &report.ProfitSummary{
		PeriodStart:  filter.StartDate,
		PeriodEnd:    filter.EndDate,
		Revenue:      revenue,
		CostOfGoods:  costOfGoods,
		GrossProfit:  grossProfit,
		ProfitMargin: profitMargin,
	}, nil
}

var _ report.Repository = (*GormRevenueReportRepository)(nil)

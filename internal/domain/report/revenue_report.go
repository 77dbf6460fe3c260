package report

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RevenueSummary is the admin dashboard headline read model.
// Cancelled orders are excluded from every figure.
type RevenueSummary struct {
	PeriodStart    time.Time       `json:"period_start"`
	PeriodEnd      time.Time       `json:"period_end"`
	TotalRevenue   decimal.Decimal `json:"total_revenue"`
	OrderCount     int64           `json:"order_count"`
	UnitsSold      int64           `json:"units_sold"`
	AvgOrderValue  decimal.Decimal `json:"avg_order_value"`
	ActiveShoppers int64           `json:"active_shoppers"` // Active non-staff accounts
}

// DailyRevenueTrend is one day of the dashboard revenue chart
type DailyRevenueTrend struct {
	Date       time.Time       `json:"date"`
	OrderCount int64           `json:"order_count"`
	Revenue    decimal.Decimal `json:"revenue"`
	UnitsSold  int64           `json:"units_sold"`
}

// TopProduct ranks products by revenue over a period
type TopProduct struct {
	Rank        int             `json:"rank"`
	ProductID   uuid.UUID       `json:"product_id"`
	ProductName string          `json:"product_name"`
	UnitsSold   int64           `json:"units_sold"`
	Revenue     decimal.Decimal `json:"revenue"`
}

// ProfitSummary compares revenue against the purchase order cost
// basis of the units sold
type ProfitSummary struct {
	PeriodStart  time.Time       `json:"period_start"`
	PeriodEnd    time.Time       `json:"period_end"`
	Revenue      decimal.Decimal `json:"revenue"`
	CostOfGoods  decimal.Decimal `json:"cost_of_goods"`
	GrossProfit  decimal.Decimal `json:"gross_profit"`
	ProfitMargin decimal.Decimal `json:"profit_margin"` // Percentage
}

// Filter defines the reporting period and ranking size
type Filter struct {
	TenantID  uuid.UUID `json:"-"`
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
	TopN      int       `json:"top_n,omitempty"`
}

// Repository defines the interface for dashboard queries
type Repository interface {
	// GetRevenueSummary returns the headline figures for the period
	GetRevenueSummary(ctx context.Context, filter Filter) (*RevenueSummary, error)

	// GetDailyRevenueTrend returns per-day revenue for the period
	GetDailyRevenueTrend(ctx context.Context, filter Filter) ([]DailyRevenueTrend, error)

	// GetTopProducts ranks products by revenue for the period
	GetTopProducts(ctx context.Context, filter Filter) ([]TopProduct, error)

	// GetProfitSummary compares revenue to average unit cost
	GetProfitSummary(ctx context.Context, filter Filter) (*ProfitSummary, error)
}

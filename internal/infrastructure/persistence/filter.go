package persistence

import (
	"github.com/storefront/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// applySort applies validated ordering from the filter. Column names
// go through the whitelist so request input never reaches the ORDER BY
// clause verbatim.
func applySort(query *gorm.DB, filter shared.Filter, allowedFields map[string]bool, defaultField string) *gorm.DB {
	field := ValidateSortField(filter.OrderBy, allowedFields, defaultField)
	return query.Order(field + " " + ValidateSortOrder(filter.OrderDir))
}

// applyPagination applies page/page-size offsets from the filter
func applyPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}
	return query
}

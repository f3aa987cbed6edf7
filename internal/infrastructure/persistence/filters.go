package persistence

import (
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/marketry/backend/internal/domain/shared"
)

// applyFilter applies field filters, ordering and pagination to a query
func applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}
	return query
}

// applyFilterWithoutPagination applies field filters and ordering only,
// for use with count queries
func applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	for field, value := range filter.Filters {
		query = query.Where(fmt.Sprintf("%s = ?", field), value)
	}

	if filter.OrderBy != "" {
		dir := "ASC"
		if strings.EqualFold(filter.OrderDir, "desc") {
			dir = "DESC"
		}
		query = query.Order(fmt.Sprintf("%s %s", filter.OrderBy, dir))
	}
	return query
}

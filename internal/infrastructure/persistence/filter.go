package persistence

import (
	"strings"

	"github.com/receipts/backend/internal/domain/shared"
	"gorm.io/gorm"
)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// paginate applies a normalized offset/limit
func paginate(page shared.Pagination) func(*gorm.DB) *gorm.DB {
	p := page.Normalize()
	return func(db *gorm.DB) *gorm.DB {
		return db.Offset(p.Offset).Limit(p.Limit)
	}
}

// contains is a case-sensitive substring match; a nil or empty keyword is a no-op
func contains(column string, keyword *string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if keyword == nil || *keyword == "" {
			return db
		}
		return db.Where(column+` LIKE ? ESCAPE '\'`, "%"+likeEscaper.Replace(*keyword)+"%")
	}
}

// equals is an exact match; a nil value is a no-op
func equals[T any](column string, value *T) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if value == nil {
			return db
		}
		return db.Where(column+" = ?", *value)
	}
}

// sameAs matches value exactly, treating nil as NULL
func sameAs[T any](column string, value *T) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if value == nil {
			return db.Where(column + " IS NULL")
		}
		return db.Where(column+" = ?", *value)
	}
}

// within keeps rows whose column falls in the inclusive day range; an open range is a no-op
func within(column string, dates shared.DateRange) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		start, end, ok := dates.Bounds()
		if !ok {
			return db
		}
		return db.Where(column+" >= ? AND "+column+" <= ?", start, end)
	}
}

// findPage counts the rows matched by build and loads one page of them.
// build is called twice so the count and the page never share statement state.
func findPage[T any](build func() *gorm.DB, page shared.Pagination, order string, dest *[]T) (int64, error) {
	var total int64
	if err := build().Count(&total).Error; err != nil {
		return 0, translateError(err)
	}
	if err := build().Scopes(paginate(page)).Order(order).Find(dest).Error; err != nil {
		return 0, translateError(err)
	}
	return total, nil
}

func exists(query *gorm.DB) (bool, error) {
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, translateError(err)
	}
	return count > 0, nil
}

package models

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

// Price is a decimal amount that keeps every digit in storage.
type Price struct {
	decimal.Decimal
}

// NewPrice wraps d.
func NewPrice(d decimal.Decimal) Price {
	return Price{Decimal: d}
}

// GormDBDataType picks the column type per dialect. SQLite would coerce a
// NUMERIC column to an 8 byte float, so the digits are kept as TEXT there.
func (Price) GormDBDataType(db *gorm.DB, field *schema.Field) string {
	if db.Dialector.Name() == "sqlite" {
		return "text"
	}
	return "numeric"
}

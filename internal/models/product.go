package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product represents a single inventory item.
//
// Records are hard-deleted, so there is no gorm.DeletedAt here.
type Product struct {
	ID            uint            `json:"id" gorm:"primaryKey;autoIncrement"`
	Name          string          `json:"name" gorm:"type:varchar(255);not null"`
	Price         Price           `json:"price" gorm:"not null"`
	Quantity      int             `json:"quantity" gorm:"not null;default:0"`
	SupplierName  string          `json:"supplier_name" gorm:"type:varchar(255);not null"`
	SupplierPhone string          `json:"supplier_phone" gorm:"type:varchar(64);not null"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// ProductChanges holds already validated values to be written.
type ProductChanges struct {
	Name          *string
	Price         *decimal.Decimal
	Quantity      *int
	SupplierName  *string
	SupplierPhone *string
}

// Empty reports whether no field is set.
func (c ProductChanges) Empty() bool {
	return c.Name == nil && c.Price == nil && c.Quantity == nil && c.SupplierName == nil && c.SupplierPhone == nil
}

// Apply copies every set field onto p.
func (c ProductChanges) Apply(p *Product) {
	if c.Name != nil {
		p.Name = *c.Name
	}
	if c.Price != nil {
		p.Price = NewPrice(*c.Price)
	}
	if c.Quantity != nil {
		p.Quantity = *c.Quantity
	}
	if c.SupplierName != nil {
		p.SupplierName = *c.SupplierName
	}
	if c.SupplierPhone != nil {
		p.SupplierPhone = *c.SupplierPhone
	}
}

// Columns returns the set fields keyed by column name.
func (c ProductChanges) Columns() map[string]interface{} {
	cols := make(map[string]interface{})
	if c.Name != nil {
		cols["name"] = *c.Name
	}
	if c.Price != nil {
		cols["price"] = *c.Price
	}
	if c.Quantity != nil {
		cols["quantity"] = *c.Quantity
	}
	if c.SupplierName != nil {
		cols["supplier_name"] = *c.SupplierName
	}
	if c.SupplierPhone != nil {
		cols["supplier_phone"] = *c.SupplierPhone
	}
	return cols
}

// Sortable product columns.
const (
	SortByID           = "id"
	SortByName         = "name"
	SortByPrice        = "price"
	SortByQuantity     = "quantity"
	SortBySupplierName = "supplier_name"
)

// ProductFilter narrows and orders a product listing. The zero value
// lists everything ordered by id.
type ProductFilter struct {
	Name    string `query:"name" validate:"omitempty,max=255"`
	InStock bool   `query:"in_stock"`
	SortBy  string `query:"sort" validate:"omitempty,oneof=id name price quantity supplier_name"`
	Order   string `query:"order" validate:"omitempty,oneof=asc desc"`
	Limit   int    `query:"limit" validate:"gte=0"`
	Offset  int    `query:"offset" validate:"gte=0"`
}

// Descending reports whether the filter asks for reverse order.
func (f ProductFilter) Descending() bool {
	return f.Order == "desc"
}

// SortColumn returns the column to order by, defaulting to id.
func (f ProductFilter) SortColumn() string {
	switch f.SortBy {
	case SortByName, SortByPrice, SortByQuantity, SortBySupplierName:
		return f.SortBy
	default:
		return SortByID
	}
}

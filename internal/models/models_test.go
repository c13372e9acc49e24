package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductInputUnmarshal(t *testing.T) {
	var in ProductInput
	err := json.Unmarshal([]byte(`{"name":"Widget","price":4.99,"quantity":5,"supplier_name":null}`), &in)
	require.NoError(t, err)

	require.NotNil(t, in.Name)
	assert.Equal(t, "Widget", *in.Name)
	require.NotNil(t, in.Price)
	assert.Equal(t, "4.99", *in.Price)
	require.NotNil(t, in.Quantity)
	assert.Equal(t, "5", *in.Quantity)
	assert.Nil(t, in.SupplierName)
	assert.Nil(t, in.SupplierPhone)

	err = json.Unmarshal([]byte(`{"quantity":true}`), &in)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "quantity")
}

func TestProductChanges(t *testing.T) {
	assert.True(t, ProductChanges{}.Empty())
	assert.Empty(t, ProductChanges{}.Columns())

	name := "Gadget"
	price := decimal.RequireFromString("9.90")
	changes := ProductChanges{Name: &name, Price: &price}
	assert.False(t, changes.Empty())
	assert.Equal(t, map[string]interface{}{"name": "Gadget", "price": price}, changes.Columns())

	p := Product{ID: 3, Name: "Widget", Quantity: 7, SupplierName: "Acme"}
	changes.Apply(&p)
	assert.Equal(t, uint(3), p.ID)
	assert.Equal(t, "Gadget", p.Name)
	assert.True(t, price.Equal(p.Price.Decimal))
	assert.Equal(t, 7, p.Quantity)
	assert.Equal(t, "Acme", p.SupplierName)
}

func TestProductFilterSortColumn(t *testing.T) {
	assert.Equal(t, SortByID, ProductFilter{}.SortColumn())
	assert.Equal(t, SortByPrice, ProductFilter{SortBy: "price"}.SortColumn())
	assert.Equal(t, SortByID, ProductFilter{SortBy: "id; DROP TABLE products"}.SortColumn())
	assert.True(t, ProductFilter{Order: "desc"}.Descending())
	assert.False(t, ProductFilter{Order: "asc"}.Descending())
}

func TestErrorsMatchSentinels(t *testing.T) {
	wrapped := fmt.Errorf("lookup: %w", &NotFoundError{ID: 4})
	assert.True(t, errors.Is(wrapped, ErrNotFound))
	assert.False(t, errors.Is(wrapped, ErrAlreadyZero))
	assert.Equal(t, "lookup: product with ID 4 not found", wrapped.Error())

	assert.True(t, errors.Is(&AlreadyZeroError{ID: 1}, ErrAlreadyZero))

	verr := &ValidationError{Field: "price", Reason: "must not be negative"}
	assert.True(t, errors.Is(verr, ErrValidation))
	assert.Equal(t, "invalid price: must not be negative", verr.Error())
}

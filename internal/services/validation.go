package services

import (
	"reflect"
	"strconv"
	"strings"

	"inventory/internal/models"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var validate = newValidator()

// newValidator reports struct fields by their query parameter name.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		if name := fld.Tag.Get("query"); name != "" {
			return name
		}
		return fld.Name
	})
	return v
}

// productField is one business field in validation order.
type productField struct {
	name  string
	value *string
	check func(raw string, changes *models.ProductChanges) *models.ValidationError
}

func validateRequired(field, raw string) *models.ValidationError {
	if err := validate.Var(raw, "required"); err != nil {
		return &models.ValidationError{Field: field, Reason: "must not be empty"}
	}
	return nil
}

func validateNonNegative(field string, n interface{}) *models.ValidationError {
	if err := validate.Var(n, "gte=0"); err != nil {
		return &models.ValidationError{Field: field, Reason: "must not be negative"}
	}
	return nil
}

func productFields(input models.ProductInput) []productField {
	return []productField{
		{name: "name", value: input.Name, check: func(raw string, c *models.ProductChanges) *models.ValidationError {
			if verr := validateRequired("name", raw); verr != nil {
				return verr
			}
			c.Name = &raw
			return nil
		}},
		{name: "price", value: input.Price, check: func(raw string, c *models.ProductChanges) *models.ValidationError {
			if verr := validateRequired("price", raw); verr != nil {
				return verr
			}
			price, err := decimal.NewFromString(raw)
			if err != nil {
				return &models.ValidationError{Field: "price", Reason: "must be a number"}
			}
			if price.IsNegative() {
				return &models.ValidationError{Field: "price", Reason: "must not be negative"}
			}
			c.Price = &price
			return nil
		}},
		{name: "quantity", value: input.Quantity, check: func(raw string, c *models.ProductChanges) *models.ValidationError {
			if verr := validateRequired("quantity", raw); verr != nil {
				return verr
			}
			quantity, err := strconv.Atoi(raw)
			if err != nil {
				return &models.ValidationError{Field: "quantity", Reason: "must be a whole number"}
			}
			if verr := validateNonNegative("quantity", quantity); verr != nil {
				return verr
			}
			c.Quantity = &quantity
			return nil
		}},
		{name: "supplier_name", value: input.SupplierName, check: func(raw string, c *models.ProductChanges) *models.ValidationError {
			if verr := validateRequired("supplier_name", raw); verr != nil {
				return verr
			}
			c.SupplierName = &raw
			return nil
		}},
		{name: "supplier_phone", value: input.SupplierPhone, check: func(raw string, c *models.ProductChanges) *models.ValidationError {
			if verr := validateRequired("supplier_phone", raw); verr != nil {
				return verr
			}
			c.SupplierPhone = &raw
			return nil
		}},
	}
}

// ValidateProductInput checks the supplied fields of input in the order
// name, price, quantity, supplier_name, supplier_phone and stops at the
// first failure. With requireAll set, an unsupplied field is a failure
// too. Values are trimmed before they are checked.
func ValidateProductInput(input models.ProductInput, requireAll bool) (models.ProductChanges, error) {
	var changes models.ProductChanges
	for _, f := range productFields(input) {
		if f.value == nil {
			if requireAll {
				return models.ProductChanges{}, &models.ValidationError{Field: f.name, Reason: "is required"}
			}
			continue
		}
		if verr := f.check(strings.TrimSpace(*f.value), &changes); verr != nil {
			return models.ProductChanges{}, verr
		}
	}
	return changes, nil
}

// ValidateFilter checks the listing parameters.
func ValidateFilter(filter models.ProductFilter) error {
	if err := validate.Struct(filter); err != nil {
		if verrs, ok := err.(validator.ValidationErrors); ok && len(verrs) > 0 {
			return &models.ValidationError{Field: verrs[0].Field(), Reason: "failed on the '" + verrs[0].Tag() + "' rule"}
		}
		return err
	}
	return nil
}

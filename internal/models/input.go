package models

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// ProductInput carries candidate field values as entered by a front-end.
// A nil field means "not supplied"; on update it keeps the stored value.
type ProductInput struct {
	Name          *string `json:"name"`
	Price         *string `json:"price"`
	Quantity      *string `json:"quantity"`
	SupplierName  *string `json:"supplier_name"`
	SupplierPhone *string `json:"supplier_phone"`
}

// UnmarshalJSON accepts each field as a JSON string or number, so both
// {"quantity":"5"} and {"quantity":5} work. null counts as not supplied.
func (in *ProductInput) UnmarshalJSON(data []byte) error {
	var raw map[string]interface{}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&raw); err != nil {
		return err
	}

	var out ProductInput
	targets := []struct {
		key string
		dst **string
	}{
		{"name", &out.Name},
		{"price", &out.Price},
		{"quantity", &out.Quantity},
		{"supplier_name", &out.SupplierName},
		{"supplier_phone", &out.SupplierPhone},
	}
	for _, t := range targets {
		v, ok := raw[t.key]
		if !ok || v == nil {
			continue
		}
		var s string
		switch val := v.(type) {
		case string:
			s = val
		case json.Number:
			s = val.String()
		default:
			return fmt.Errorf("field %q must be a string or a number", t.key)
		}
		*t.dst = &s
	}

	*in = out
	return nil
}

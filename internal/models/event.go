package models

import "time"

// Product event actions.
const (
	ActionInserted = "inserted"
	ActionUpdated  = "updated"
	ActionSold     = "sold"
	ActionDeleted  = "deleted"
	ActionCleared  = "cleared"
)

// ProductEvent describes a committed change to the product table.
type ProductEvent struct {
	ID         string    `json:"id"`
	Action     string    `json:"action"`
	ProductID  uint      `json:"product_id,omitempty"`
	Quantity   *int      `json:"quantity,omitempty"`
	Affected   int64     `json:"affected,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

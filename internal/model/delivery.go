package model

import (
	"time"

	"github.com/google/uuid"
)

// Delivery is one logged delivery event. TotalValue is computed when the
// record is written and stored as is; readers never recompute it.
type Delivery struct {
	ID              uuid.UUID  `json:"id"`
	CourierID       uuid.UUID  `json:"courier_id"`
	Date            time.Time  `json:"date"`
	PackageCount    int        `json:"package_count"`
	AdditionalValue float64    `json:"additional_value"`
	TotalValue      float64    `json:"total_value"`
	Paid            bool       `json:"paid"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       *time.Time `json:"updated_at,omitempty"`
}

type DeliveryFilter struct {
	CourierID *uuid.UUID
	Range     DateRange
	Paid      *bool
}

package model

import (
	"time"

	"github.com/google/uuid"
)

type Summary struct {
	Count           int     `json:"count"`
	TotalPackages   int     `json:"total_packages"`
	TotalValue      float64 `json:"total_value"`
	TotalAdditional float64 `json:"total_additional"`
}

type BiweeklyTotal struct {
	Packages int     `json:"packages"`
	Value    float64 `json:"value"`
}

type DateGroup struct {
	Date       string     `json:"date"`
	Deliveries []Delivery `json:"deliveries"`
}

// DeliveryReport is the derived view behind the summary screen and the
// PDF/XLSX exports. Courier is nil when every courier is included.
type DeliveryReport struct {
	Courier     *Courier    `json:"courier,omitempty"`
	Period      DateRange   `json:"period"`
	Summary     Summary     `json:"summary"`
	Groups      []DateGroup `json:"groups"`
	Couriers    []Courier   `json:"-"`
	GeneratedAt time.Time   `json:"generated_at"`
}

type CourierTotals struct {
	CourierID   uuid.UUID `json:"courier_id"`
	CourierName string    `json:"courier_name"`
	Orphaned    bool      `json:"orphaned,omitempty"`
	Summary     Summary   `json:"summary"`
	PaidValue   float64   `json:"paid_value"`
	UnpaidValue float64   `json:"unpaid_value"`
}

type FortnightReport struct {
	Year    int       `json:"year"`
	Month   int       `json:"month"`
	Half    Half      `json:"half"`
	Period  DateRange `json:"period"`
	Summary Summary   `json:"summary"`
}

type PayrollClosing struct {
	ID              uuid.UUID `json:"id"`
	CourierID       uuid.UUID `json:"courier_id"`
	PeriodStart     time.Time `json:"period_start"`
	PeriodEnd       time.Time `json:"period_end"`
	DeliveryCount   int       `json:"delivery_count"`
	TotalPackages   int       `json:"total_packages"`
	TotalValue      float64   `json:"total_value"`
	TotalAdditional float64   `json:"total_additional"`
	PaidValue       float64   `json:"paid_value"`
	UnpaidValue     float64   `json:"unpaid_value"`
	ClosedAt        time.Time `json:"closed_at"`
}

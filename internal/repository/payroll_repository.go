package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nurpe/courier-payroll/internal/model"
)

type PayrollRepository struct {
	db *gorm.DB
}

func NewPayrollRepository(db *gorm.DB) *PayrollRepository {
	return &PayrollRepository{db: db}
}

// UpsertClosings stores one row per courier and period. Closing the same
// period twice replaces the earlier figures.
func (r *PayrollRepository) UpsertClosings(ctx context.Context, closings []model.PayrollClosing) error {
	if len(closings) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, c := range closings {
			if err := tx.Exec(`
				INSERT INTO payroll_closings (
					courier_id,
					period_start,
					period_end,
					delivery_count,
					total_packages,
					total_value,
					total_additional,
					paid_value,
					unpaid_value,
					closed_at
				) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
				ON CONFLICT (courier_id, period_start, period_end) DO UPDATE SET
					delivery_count = EXCLUDED.delivery_count,
					total_packages = EXCLUDED.total_packages,
					total_value = EXCLUDED.total_value,
					total_additional = EXCLUDED.total_additional,
					paid_value = EXCLUDED.paid_value,
					unpaid_value = EXCLUDED.unpaid_value,
					closed_at = EXCLUDED.closed_at
			`,
				c.CourierID,
				c.PeriodStart,
				c.PeriodEnd,
				c.DeliveryCount,
				c.TotalPackages,
				c.TotalValue,
				c.TotalAdditional,
				c.PaidValue,
				c.UnpaidValue,
				c.ClosedAt,
			).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *PayrollRepository) ListClosings(ctx context.Context, courierID *uuid.UUID) ([]model.PayrollClosing, error) {
	query := `
		SELECT
			id,
			courier_id,
			period_start,
			period_end,
			delivery_count,
			total_packages,
			total_value,
			total_additional,
			paid_value,
			unpaid_value,
			closed_at
		FROM payroll_closings
	`
	args := []interface{}{}
	if courierID != nil {
		query += " WHERE courier_id = ?"
		args = append(args, *courierID)
	}
	query += " ORDER BY period_start DESC, courier_id ASC"

	var closings []model.PayrollClosing
	if err := r.db.WithContext(ctx).Raw(query, args...).Scan(&closings).Error; err != nil {
		return nil, err
	}
	return closings, nil
}

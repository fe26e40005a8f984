package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nurpe/courier-payroll/internal/model"
)

const deliveryColumns = `
	id,
	courier_id,
	date,
	package_count,
	additional_value,
	total_value,
	paid,
	created_at,
	updated_at
`

type DeliveryRepository struct {
	db *gorm.DB
}

func NewDeliveryRepository(db *gorm.DB) *DeliveryRepository {
	return &DeliveryRepository{db: db}
}

func (r *DeliveryRepository) Create(ctx context.Context, d model.Delivery) (*model.Delivery, error) {
	var saved model.Delivery
	err := r.db.WithContext(ctx).Raw(`
		INSERT INTO deliveries (
			courier_id,
			date,
			package_count,
			additional_value,
			total_value,
			paid,
			created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?)
		RETURNING`+deliveryColumns,
		d.CourierID,
		d.Date,
		d.PackageCount,
		d.AdditionalValue,
		d.TotalValue,
		d.Paid,
		d.CreatedAt,
	).Scan(&saved).Error
	if err != nil {
		return nil, err
	}
	return &saved, nil
}

func (r *DeliveryRepository) List(ctx context.Context, filter model.DeliveryFilter) ([]model.Delivery, error) {
	query := `SELECT` + deliveryColumns + `FROM deliveries WHERE 1 = 1`
	args := []interface{}{}

	if filter.CourierID != nil {
		query += " AND courier_id = ?"
		args = append(args, *filter.CourierID)
	}
	if !filter.Range.Start.IsZero() {
		query += " AND date >= ?"
		args = append(args, dateOnly(filter.Range.Start))
	}
	if !filter.Range.End.IsZero() {
		query += " AND date <= ?"
		args = append(args, dateOnly(filter.Range.End))
	}
	if filter.Paid != nil {
		query += " AND paid = ?"
		args = append(args, *filter.Paid)
	}
	query += " ORDER BY date ASC, created_at ASC"

	var deliveries []model.Delivery
	if err := r.db.WithContext(ctx).Raw(query, args...).Scan(&deliveries).Error; err != nil {
		return nil, err
	}
	return deliveries, nil
}

func (r *DeliveryRepository) Get(ctx context.Context, id uuid.UUID) (*model.Delivery, error) {
	var d model.Delivery
	if err := r.db.WithContext(ctx).Raw(`SELECT`+deliveryColumns+`FROM deliveries WHERE id = ? LIMIT 1`, id).
		Scan(&d).Error; err != nil {
		return nil, err
	}
	if d.ID == uuid.Nil {
		return nil, gorm.ErrRecordNotFound
	}
	return &d, nil
}

// Update rewrites every editable column. TotalValue must already match the
// new package count and additional value.
func (r *DeliveryRepository) Update(ctx context.Context, d model.Delivery) (*model.Delivery, error) {
	var saved model.Delivery
	err := r.db.WithContext(ctx).Raw(`
		UPDATE deliveries
		SET
			courier_id = ?,
			date = ?,
			package_count = ?,
			additional_value = ?,
			total_value = ?,
			paid = ?,
			updated_at = ?
		WHERE id = ?
		RETURNING`+deliveryColumns,
		d.CourierID,
		d.Date,
		d.PackageCount,
		d.AdditionalValue,
		d.TotalValue,
		d.Paid,
		d.UpdatedAt,
		d.ID,
	).Scan(&saved).Error
	if err != nil {
		return nil, err
	}
	if saved.ID == uuid.Nil {
		return nil, gorm.ErrRecordNotFound
	}
	return &saved, nil
}

func (r *DeliveryRepository) SetPaid(ctx context.Context, id uuid.UUID, paid bool, updatedAt time.Time) (*model.Delivery, error) {
	var saved model.Delivery
	err := r.db.WithContext(ctx).Raw(`
		UPDATE deliveries
		SET paid = ?, updated_at = ?
		WHERE id = ?
		RETURNING`+deliveryColumns,
		paid, updatedAt, id,
	).Scan(&saved).Error
	if err != nil {
		return nil, err
	}
	if saved.ID == uuid.Nil {
		return nil, gorm.ErrRecordNotFound
	}
	return &saved, nil
}

func (r *DeliveryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Exec(`DELETE FROM deliveries WHERE id = ?`, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

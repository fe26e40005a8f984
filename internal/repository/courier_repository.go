package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nurpe/courier-payroll/internal/model"
)

type CourierRepository struct {
	db *gorm.DB
}

func NewCourierRepository(db *gorm.DB) *CourierRepository {
	return &CourierRepository{db: db}
}

func (r *CourierRepository) Create(ctx context.Context, courier model.Courier) (*model.Courier, error) {
	var saved model.Courier
	err := r.db.WithContext(ctx).Raw(`
		INSERT INTO couriers (name, created_at)
		VALUES (?, ?)
		RETURNING id, name, created_at, updated_at
	`, courier.Name, courier.CreatedAt).Scan(&saved).Error
	if err != nil {
		return nil, err
	}
	return &saved, nil
}

func (r *CourierRepository) List(ctx context.Context) ([]model.Courier, error) {
	var couriers []model.Courier
	if err := r.db.WithContext(ctx).Raw(`
		SELECT id, name, created_at, updated_at
		FROM couriers
		ORDER BY name ASC, created_at ASC
	`).Scan(&couriers).Error; err != nil {
		return nil, err
	}
	return couriers, nil
}

func (r *CourierRepository) Get(ctx context.Context, id uuid.UUID) (*model.Courier, error) {
	var courier model.Courier
	if err := r.db.WithContext(ctx).Raw(`
		SELECT id, name, created_at, updated_at
		FROM couriers
		WHERE id = ?
		LIMIT 1
	`, id).Scan(&courier).Error; err != nil {
		return nil, err
	}
	if courier.ID == uuid.Nil {
		return nil, gorm.ErrRecordNotFound
	}
	return &courier, nil
}

func (r *CourierRepository) Rename(ctx context.Context, id uuid.UUID, name string, updatedAt time.Time) (*model.Courier, error) {
	var saved model.Courier
	err := r.db.WithContext(ctx).Raw(`
		UPDATE couriers
		SET name = ?, updated_at = ?
		WHERE id = ?
		RETURNING id, name, created_at, updated_at
	`, name, updatedAt, id).Scan(&saved).Error
	if err != nil {
		return nil, err
	}
	if saved.ID == uuid.Nil {
		return nil, gorm.ErrRecordNotFound
	}
	return &saved, nil
}

func (r *CourierRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Exec(`DELETE FROM couriers WHERE id = ?`, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/nurpe/courier-payroll/internal/model"
)

type CourierStore interface {
	Create(ctx context.Context, courier model.Courier) (*model.Courier, error)
	List(ctx context.Context) ([]model.Courier, error)
	Get(ctx context.Context, id uuid.UUID) (*model.Courier, error)
	Rename(ctx context.Context, id uuid.UUID, name string, updatedAt time.Time) (*model.Courier, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type DeliveryStore interface {
	Create(ctx context.Context, d model.Delivery) (*model.Delivery, error)
	List(ctx context.Context, filter model.DeliveryFilter) ([]model.Delivery, error)
	Get(ctx context.Context, id uuid.UUID) (*model.Delivery, error)
	Update(ctx context.Context, d model.Delivery) (*model.Delivery, error)
	SetPaid(ctx context.Context, id uuid.UUID, paid bool, updatedAt time.Time) (*model.Delivery, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type PayrollStore interface {
	UpsertClosings(ctx context.Context, closings []model.PayrollClosing) error
	ListClosings(ctx context.Context, courierID *uuid.UUID) ([]model.PayrollClosing, error)
}

type Clock func() time.Time

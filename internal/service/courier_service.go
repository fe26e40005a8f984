package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nurpe/courier-payroll/internal/model"
)

type CourierService struct {
	couriers CourierStore
	now      Clock
}

func NewCourierService(couriers CourierStore, now Clock) *CourierService {
	return &CourierService{couriers: couriers, now: now}
}

func (s *CourierService) Register(ctx context.Context, name string) (*model.Courier, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: courier name is required", ErrInvalidInput)
	}
	return s.couriers.Create(ctx, model.Courier{
		Name:      name,
		CreatedAt: s.now().UTC(),
	})
}

func (s *CourierService) List(ctx context.Context) ([]model.Courier, error) {
	return s.couriers.List(ctx)
}

func (s *CourierService) Get(ctx context.Context, id uuid.UUID) (*model.Courier, error) {
	courier, err := s.couriers.Get(ctx, id)
	if err != nil {
		return nil, translate(err)
	}
	return courier, nil
}

func (s *CourierService) Rename(ctx context.Context, id uuid.UUID, name string) (*model.Courier, error) {
	if id == uuid.Nil {
		return nil, fmt.Errorf("%w: courier id is required", ErrInvalidInput)
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: courier name is required", ErrInvalidInput)
	}
	courier, err := s.couriers.Rename(ctx, id, name, s.now().UTC())
	if err != nil {
		return nil, translate(err)
	}
	return courier, nil
}

// Delete removes the courier only. Its deliveries stay and show up as
// orphaned in reports.
func (s *CourierService) Delete(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return fmt.Errorf("%w: courier id is required", ErrInvalidInput)
	}
	return translate(s.couriers.Delete(ctx, id))
}

func translate(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

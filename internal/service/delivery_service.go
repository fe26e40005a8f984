package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/nurpe/courier-payroll/internal/earnings"
	"github.com/nurpe/courier-payroll/internal/model"
)

type DeliveryService struct {
	deliveries DeliveryStore
	couriers   CourierStore
	now        Clock
}

// DeliveryInput carries already coerced form values. A nil PackageCount
// means the field was left empty; a nil Paid keeps the current flag.
type DeliveryInput struct {
	CourierID       uuid.UUID
	Date            time.Time
	PackageCount    *int
	AdditionalValue float64
	Paid            *bool
}

func NewDeliveryService(deliveries DeliveryStore, couriers CourierStore, now Clock) *DeliveryService {
	return &DeliveryService{deliveries: deliveries, couriers: couriers, now: now}
}

func (s *DeliveryService) Create(ctx context.Context, input DeliveryInput) (*model.Delivery, error) {
	if err := s.validate(ctx, input); err != nil {
		return nil, err
	}

	d := model.Delivery{
		CourierID:       input.CourierID,
		Date:            earnings.DateOnly(input.Date),
		PackageCount:    *input.PackageCount,
		AdditionalValue: input.AdditionalValue,
		TotalValue:      earnings.ComputeTotalValue(*input.PackageCount, input.AdditionalValue),
		CreatedAt:       s.now().UTC(),
	}
	if input.Paid != nil {
		d.Paid = *input.Paid
	}
	return s.deliveries.Create(ctx, d)
}

func (s *DeliveryService) Get(ctx context.Context, id uuid.UUID) (*model.Delivery, error) {
	d, err := s.deliveries.Get(ctx, id)
	if err != nil {
		return nil, translate(err)
	}
	return d, nil
}

func (s *DeliveryService) List(ctx context.Context, filter model.DeliveryFilter) ([]model.Delivery, error) {
	if !filter.Range.Start.IsZero() && !filter.Range.End.IsZero() &&
		earnings.DateOnly(filter.Range.Start).After(earnings.DateOnly(filter.Range.End)) {
		return nil, fmt.Errorf("%w: from must be before or equal to to", ErrInvalidInput)
	}
	return s.deliveries.List(ctx, filter)
}

// Update replaces the editable fields and recomputes the total value.
func (s *DeliveryService) Update(ctx context.Context, id uuid.UUID, input DeliveryInput) (*model.Delivery, error) {
	if id == uuid.Nil {
		return nil, fmt.Errorf("%w: delivery id is required", ErrInvalidInput)
	}
	current, err := s.deliveries.Get(ctx, id)
	if err != nil {
		return nil, translate(err)
	}
	if err := s.validate(ctx, input); err != nil {
		return nil, err
	}

	now := s.now().UTC()
	updated := *current
	updated.CourierID = input.CourierID
	updated.Date = earnings.DateOnly(input.Date)
	updated.PackageCount = *input.PackageCount
	updated.AdditionalValue = input.AdditionalValue
	updated.TotalValue = earnings.ComputeTotalValue(updated.PackageCount, updated.AdditionalValue)
	updated.UpdatedAt = &now
	if input.Paid != nil {
		updated.Paid = *input.Paid
	}

	saved, err := s.deliveries.Update(ctx, updated)
	if err != nil {
		return nil, translate(err)
	}
	return saved, nil
}

func (s *DeliveryService) TogglePaid(ctx context.Context, id uuid.UUID) (*model.Delivery, error) {
	if id == uuid.Nil {
		return nil, fmt.Errorf("%w: delivery id is required", ErrInvalidInput)
	}
	current, err := s.deliveries.Get(ctx, id)
	if err != nil {
		return nil, translate(err)
	}
	saved, err := s.deliveries.SetPaid(ctx, id, !current.Paid, s.now().UTC())
	if err != nil {
		return nil, translate(err)
	}
	return saved, nil
}

func (s *DeliveryService) Delete(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return fmt.Errorf("%w: delivery id is required", ErrInvalidInput)
	}
	return translate(s.deliveries.Delete(ctx, id))
}

func (s *DeliveryService) validate(ctx context.Context, input DeliveryInput) error {
	if input.CourierID == uuid.Nil {
		return fmt.Errorf("%w: courier_id is required", ErrInvalidInput)
	}
	if input.PackageCount == nil {
		return fmt.Errorf("%w: package_count is required", ErrInvalidInput)
	}
	if *input.PackageCount < 0 {
		return fmt.Errorf("%w: package_count must not be negative", ErrInvalidInput)
	}
	if input.AdditionalValue < 0 {
		return fmt.Errorf("%w: additional_value must not be negative", ErrInvalidInput)
	}
	if input.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	if _, err := s.couriers.Get(ctx, input.CourierID); err != nil {
		return translate(err)
	}
	return nil
}

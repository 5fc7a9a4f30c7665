package orderrepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/core/ports"
	"ordering/internal/pkg/errs"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// ErrDuplicateOrder is returned by Add when an order with the same id or tracking id is
// already stored.
var ErrDuplicateOrder = errors.New("order already exists")

const uniqueViolation = "23505"

// GormOrderRepository implements ports.OrderRepository using GORM.
type GormOrderRepository struct {
	db *gorm.DB
}

func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// Add inserts the order with its address and items and returns it at version 1.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) (*order.Order, error) {
	if err := aggregate.Validate(); err != nil {
		return nil, err
	}
	if err := aggregate.ID().Validate(); err != nil {
		return nil, fmt.Errorf("add order: %w", err)
	}

	dto := fromDomain(aggregate)
	dto.Version = 1
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateOrder, aggregate.ID())
		}
		return nil, err
	}

	return toDomain(dto)
}

// Update writes status and failure messages when the stored version still equals the
// aggregate's version, and advances the version by one.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := OrderDTO{
		Status:          aggregate.Status().String(),
		Paid:            aggregate.HasBeenPaid(),
		FailureMessages: aggregate.FailureMessages(),
		Version:         aggregate.Version() + 1,
		UpdatedAt:       time.Now().UTC(),
	}

	result := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Select("status", "paid", "failure_messages", "version", "updated_at").
		Where("id = ? AND version = ?", aggregate.ID().Raw(), aggregate.Version()).
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		var count int64
		if err := r.db.WithContext(ctx).Model(&OrderDTO{}).Where("id = ?", aggregate.ID().Raw()).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return errs.NewObjectNotFoundError("orderId", aggregate.ID().String())
		}
		return fmt.Errorf("%w: order %s at version %d", ports.ErrConcurrentModification, aggregate.ID(), aggregate.Version())
	}

	return nil
}

func (r *GormOrderRepository) Get(ctx context.Context, id kernel.OrderID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	return r.first(ctx, "orderId", id.String(), "id = ?", id.Raw())
}

func (r *GormOrderRepository) FindByTrackingID(ctx context.Context, trackingID kernel.TrackingID) (*order.Order, error) {
	if err := trackingID.Validate(); err != nil {
		return nil, err
	}
	return r.first(ctx, "trackingId", trackingID.String(), "tracking_id = ?", trackingID.Raw())
}

func (r *GormOrderRepository) first(ctx context.Context, param, value string, query string, args ...any) (*order.Order, error) {
	var dto OrderDTO
	err := r.db.WithContext(ctx).
		Preload("Address").
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("position") }).
		Where(query, args...).
		First(&dto).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError(param, value)
		}
		return nil, err
	}

	return toDomain(dto)
}

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

package restaurantrepo

import (
	"context"
	"errors"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/restaurant"
	"ordering/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormRestaurantRepository implements ports.RestaurantRepository using GORM.
type GormRestaurantRepository struct {
	db *gorm.DB
}

func NewGormRestaurantRepository(db *gorm.DB) *GormRestaurantRepository {
	return &GormRestaurantRepository{db: db}
}

// FindRestaurantInformation loads the restaurant and the available catalog entries among
// productIDs.
func (r *GormRestaurantRepository) FindRestaurantInformation(
	ctx context.Context,
	restaurantID kernel.RestaurantID,
	productIDs []kernel.ProductID,
) (*restaurant.Restaurant, error) {
	if err := restaurantID.Validate(); err != nil {
		return nil, err
	}

	var dto RestaurantDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", restaurantID.Raw()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("restaurantId", restaurantID.String())
		}
		return nil, err
	}

	var products []ProductDTO
	if len(productIDs) > 0 {
		ids := make([]uuid.UUID, 0, len(productIDs))
		for _, id := range productIDs {
			ids = append(ids, id.Raw())
		}

		if err := r.db.WithContext(ctx).
			Where("restaurant_id = ? AND available = ? AND id IN ?", dto.ID, true, ids).
			Find(&products).Error; err != nil {
			return nil, err
		}
	}

	return toDomain(dto, products)
}

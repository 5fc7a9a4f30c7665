package outboxrepo

import (
	"context"
	"time"

	"ordering/internal/core/ports"
	"ordering/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormOutboxRepository implements ports.OutboxRepository using GORM.
type GormOutboxRepository struct {
	db *gorm.DB
}

func NewGormOutboxRepository(db *gorm.DB) *GormOutboxRepository {
	return &GormOutboxRepository{db: db}
}

func (r *GormOutboxRepository) Add(ctx context.Context, msg ports.Message) error {
	dto, err := fromMessage(msg)
	if err != nil {
		return errs.NewValueIsInvalidErrorWithCause("messageId", err)
	}
	return r.db.WithContext(ctx).Create(&dto).Error
}

// GetPending returns unpublished messages by sequence. On Postgres the rows stay locked until
// the surrounding transaction ends, so concurrent dispatchers never deliver a row twice and
// wait for each other instead of overtaking messages of the same key.
func (r *GormOutboxRepository) GetPending(ctx context.Context, limit int) ([]ports.Message, error) {
	if limit <= 0 {
		return nil, errs.NewValueIsInvalidError("limit")
	}

	query := r.db.WithContext(ctx)
	if r.db.Dialector.Name() == "postgres" {
		query = query.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var dtos []MessageDTO
	if err := query.
		Where("published_at IS NULL").
		Order("sequence").
		Limit(limit).
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	messages := make([]ports.Message, 0, len(dtos))
	for _, dto := range dtos {
		messages = append(messages, toMessage(dto))
	}
	return messages, nil
}

func (r *GormOutboxRepository) MarkPublished(ctx context.Context, ids ...string) error {
	if len(ids) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Model(&MessageDTO{}).
		Where("message_id IN ?", ids).
		Update("published_at", time.Now().UTC()).Error
}

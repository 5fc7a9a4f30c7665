// Package outboxrepo stores encoded order events in the outbox table and stages them through
// ports.EventPublisher inside the order's transaction.
package outboxrepo

import (
	"time"

	"ordering/internal/core/ports"

	"github.com/google/uuid"
)

// MessageDTO is an outbox row. Sequence orders the rows; PublishedAt stays nil until the
// dispatcher delivered the message.
type MessageDTO struct {
	Sequence    int64      `gorm:"primaryKey;autoIncrement"`
	MessageID   uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex"`
	Channel     string     `gorm:"type:varchar(64);not null"`
	Key         string     `gorm:"column:message_key;type:varchar(64);not null;index"`
	Kind        string     `gorm:"type:varchar(32);not null"`
	Payload     string     `gorm:"type:text;not null"`
	CreatedAt   time.Time  `gorm:"not null"`
	PublishedAt *time.Time `gorm:"index"`
}

func (MessageDTO) TableName() string {
	return "outbox_messages"
}

func fromMessage(msg ports.Message) (MessageDTO, error) {
	id, err := uuid.Parse(msg.ID)
	if err != nil {
		return MessageDTO{}, err
	}
	return MessageDTO{
		MessageID: id,
		Channel:   string(msg.Channel),
		Key:       msg.Key,
		Kind:      msg.Kind,
		Payload:   string(msg.Payload),
		CreatedAt: msg.CreatedAt.UTC(),
	}, nil
}

func toMessage(dto MessageDTO) ports.Message {
	return ports.Message{
		ID:        dto.MessageID.String(),
		Sequence:  dto.Sequence,
		Channel:   ports.Channel(dto.Channel),
		Key:       dto.Key,
		Kind:      dto.Kind,
		Payload:   []byte(dto.Payload),
		CreatedAt: dto.CreatedAt,
	}
}

package postgrestest

import (
	"context"

	"ordering/internal/adapters/out/postgres"

	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Container is a disposable PostgreSQL server with the service schema applied.
type Container struct {
	container *tcpostgres.PostgresContainer
	DB        *gorm.DB
}

// StartContainer runs postgres:15-alpine and migrates it.
func StartContainer(ctx context.Context) (*Container, error) {
	container, err := tcpostgres.Run(ctx,
		"postgres:15-alpine",
		tcpostgres.WithDatabase("testdb"),
		tcpostgres.WithUsername("testuser"),
		tcpostgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2)),
	)
	if err != nil {
		return nil, err
	}

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		_ = container.Terminate(ctx)
		return nil, err
	}

	db, err := gorm.Open(gormpostgres.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Discard,
	})
	if err != nil {
		_ = container.Terminate(ctx)
		return nil, err
	}

	if err := postgres.Migrate(db); err != nil {
		_ = container.Terminate(ctx)
		return nil, err
	}

	return &Container{container: container, DB: db}, nil
}

// Truncate empties every table.
func (c *Container) Truncate() error {
	return c.DB.Exec(`TRUNCATE TABLE outbox_messages, order_items, order_addresses, orders,
		restaurant_products, restaurants, customers RESTART IDENTITY CASCADE`).Error
}

func (c *Container) Terminate(ctx context.Context) error {
	return c.container.Terminate(ctx)
}

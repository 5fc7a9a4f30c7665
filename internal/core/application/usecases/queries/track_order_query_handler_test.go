package queries_test

import (
	"testing"

	"ordering/internal/adapters/out/postgres/orderrepo"
	"ordering/internal/adapters/out/postgres/postgrestest"
	"ordering/internal/core/application/usecases/queries"
	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/core/domain/model/order"
	"ordering/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func storeOrder(t *testing.T, db *gorm.DB, mutate func(o *order.Order)) *order.Order {
	t.Helper()

	repo := orderrepo.NewGormOrderRepository(db)
	saved, err := repo.Add(t.Context(), postgrestest.NewPendingOrder(t, postgrestest.NewProduct(t, "pizza", "5.00")))
	require.NoError(t, err)

	if mutate != nil {
		mutate(saved)
		require.NoError(t, repo.Update(t.Context(), saved))
	}
	return saved
}

func track(t *testing.T, db *gorm.DB, trackingID kernel.TrackingID) (queries.TrackOrderQueryResponse, error) {
	t.Helper()

	query, err := queries.NewTrackOrderQuery(trackingID)
	require.NoError(t, err)
	return queries.NewTrackOrderQueryHandler(db).Handle(t.Context(), query)
}

func TestTrackOrderQueryHandler_Handle(t *testing.T) {
	t.Run("should return a pending order without failure messages", func(t *testing.T) {
		db := postgrestest.NewSQLite(t)
		saved := storeOrder(t, db, nil)

		resp, err := track(t, db, saved.TrackingID())
		require.NoError(t, err)
		assert.Equal(t, saved.TrackingID().String(), resp.OrderTrackingID)
		assert.Equal(t, order.Pending, resp.OrderStatus)
		assert.Empty(t, resp.FailureMessages)
		assert.NotNil(t, resp.FailureMessages)
	})

	t.Run("should return the status and failure messages of a cancelling order", func(t *testing.T) {
		db := postgrestest.NewSQLite(t)
		saved := storeOrder(t, db, func(o *order.Order) {
			require.NoError(t, o.Pay())
			require.NoError(t, o.InitCancel([]string{"insufficient stock"}))
		})

		resp, err := track(t, db, saved.TrackingID())
		require.NoError(t, err)
		assert.Equal(t, order.Cancelling, resp.OrderStatus)
		assert.Equal(t, []string{"insufficient stock"}, resp.FailureMessages)
	})

	t.Run("should return not found for an unknown tracking id", func(t *testing.T) {
		db := postgrestest.NewSQLite(t)
		storeOrder(t, db, nil)

		_, err := track(t, db, kernel.NewTrackingID())
		require.ErrorIs(t, err, queries.ErrOrderNotFound)
		require.ErrorIs(t, err, errs.ErrObjectNotFound)
	})

	t.Run("should reject a query that was not constructed", func(t *testing.T) {
		db := postgrestest.NewSQLite(t)

		_, err := queries.NewTrackOrderQueryHandler(db).Handle(t.Context(), queries.TrackOrderQuery{})
		require.ErrorIs(t, err, queries.ErrTrackOrderQueryIsNotConstructed)
	})
}

package queries_test

import (
	"testing"

	"ordering/internal/core/application/usecases/queries"
	"ordering/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTrackOrderQuery(t *testing.T) {
	t.Run("should create a query for a valid tracking id", func(t *testing.T) {
		trackingID := kernel.NewTrackingID()

		query, err := queries.NewTrackOrderQuery(trackingID)
		require.NoError(t, err)
		require.NoError(t, query.Validate())
		assert.Equal(t, trackingID, query.TrackingID())
	})

	t.Run("should reject the zero tracking id", func(t *testing.T) {
		_, err := queries.NewTrackOrderQuery(kernel.TrackingID{})
		require.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
	})

	t.Run("should report a zero value query as not constructed", func(t *testing.T) {
		require.ErrorIs(t, queries.TrackOrderQuery{}.Validate(), queries.ErrTrackOrderQueryIsNotConstructed)
	})
}

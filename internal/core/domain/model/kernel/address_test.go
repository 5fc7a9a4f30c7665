package kernel_test

import (
	"testing"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStreetAddress(t *testing.T) {
	t.Run("should create a valid address", func(t *testing.T) {
		id := kernel.NewUUID()

		addr, err := kernel.NewStreetAddress(id, "street_1", "1000AB", "Amsterdam")

		require.NoError(t, err)
		require.NoError(t, addr.Validate())
		assert.Equal(t, id, addr.ID())
		assert.Equal(t, "street_1", addr.Street())
		assert.Equal(t, "1000AB", addr.PostalCode())
		assert.Equal(t, "Amsterdam", addr.City())
	})

	t.Run("should report every missing part", func(t *testing.T) {
		_, err := kernel.NewStreetAddress(kernel.UUID{}, " ", "", "")

		require.Error(t, err)
		assert.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
		assert.Contains(t, err.Error(), "street")
		assert.Contains(t, err.Error(), "postalCode")
		assert.Contains(t, err.Error(), "city")
	})

	t.Run("zero value is not constructed", func(t *testing.T) {
		var addr kernel.StreetAddress

		assert.Equal(t, kernel.ErrStreetAddressIsNotConstructed, addr.Validate())
	})
}

func TestStreetAddress_IsEqual(t *testing.T) {
	a, err := kernel.NewStreetAddress(kernel.NewUUID(), "street_1", "1000AB", "Amsterdam")
	require.NoError(t, err)
	b, err := kernel.NewStreetAddress(kernel.NewUUID(), "street_1", "1000AB", "Amsterdam")
	require.NoError(t, err)
	c, err := kernel.NewStreetAddress(a.ID(), "street_2", "1000AB", "Amsterdam")
	require.NoError(t, err)

	assert.True(t, a.IsEqual(b))
	assert.False(t, a.IsEqual(c))
}

package customer_test

import (
	"testing"

	"ordering/internal/core/domain/model/customer"
	"ordering/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCustomer(t *testing.T) {
	t.Run("should create customer with valid id", func(t *testing.T) {
		id := kernel.CustomerID{UUID: kernel.NewUUID()}

		c, err := customer.NewCustomer(id)

		require.NoError(t, err)
		require.NoError(t, c.Validate())
		assert.Equal(t, id, c.ID())
	})

	t.Run("should reject zero id", func(t *testing.T) {
		_, err := customer.NewCustomer(kernel.CustomerID{})

		assert.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
	})

	t.Run("zero value is not constructed", func(t *testing.T) {
		var c customer.Customer

		assert.Equal(t, customer.ErrCustomerIsNotConstructed, c.Validate())
	})
}

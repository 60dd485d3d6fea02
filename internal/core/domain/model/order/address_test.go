package order_test

import (
	"testing"

	"storefront/internal/core/domain/model/order"
	"storefront/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewShippingAddress(t *testing.T) {
	t.Run("should trim surrounding whitespace", func(t *testing.T) {
		a := order.NewShippingAddress("  An ", "\t1 Le Loi", "HCMC ", " 700000", " VN ")

		assert.Equal(t, "An", a.Name())
		assert.Equal(t, "1 Le Loi", a.AddressLine())
		assert.Equal(t, "HCMC", a.City())
		assert.Equal(t, "700000", a.PostalCode())
		assert.Equal(t, "VN", a.Country())
		assert.True(t, a.IsComplete())
	})

	t.Run("should treat whitespace-only fields as missing", func(t *testing.T) {
		a := order.NewShippingAddress("An", "   ", "HCMC", "700000", "VN")

		assert.False(t, a.IsComplete())
	})
}

func TestShippingAddress_Validate(t *testing.T) {
	t.Run("should accept a complete address in the supported country", func(t *testing.T) {
		assert.NoError(t, hanoiAddress().Validate("VN"))
	})

	t.Run("should list every missing field", func(t *testing.T) {
		err := order.NewShippingAddress("", "", "Hanoi", "", "VN").Validate("VN")

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
		assert.Contains(t, err.Error(), "name")
		assert.Contains(t, err.Error(), "address")
		assert.Contains(t, err.Error(), "postalCode")
		assert.NotContains(t, err.Error(), "city")
	})

	t.Run("should reject another country", func(t *testing.T) {
		err := order.NewShippingAddress("Jo", "1 Main St", "Austin", "73301", "US").Validate("VN")

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Contains(t, err.Error(), `"US" is not supported`)
	})

	t.Run("should compare countries case-sensitively", func(t *testing.T) {
		err := order.NewShippingAddress("An", "1 Le Loi", "HCMC", "700000", "vn").Validate("VN")

		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

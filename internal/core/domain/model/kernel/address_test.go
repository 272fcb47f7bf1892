package kernel_test

import (
	"testing"

	"foodorder/internal/core/domain/model/kernel"
	"foodorder/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAddress(t *testing.T) {
	t.Run("trims and keeps all parts", func(t *testing.T) {
		a, err := kernel.NewAddress(" 1 Main St ", "Springfield", "IL", "62701")

		require.NoError(t, err)
		assert.Equal(t, "1 Main St", a.Street())
		assert.Equal(t, "Springfield", a.City())
		assert.Equal(t, "IL", a.State())
		assert.Equal(t, "62701", a.Zip())
	})

	t.Run("reports every missing part", func(t *testing.T) {
		_, err := kernel.NewAddress("1 Main St", "  ", "", "62701")

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
		assert.Contains(t, err.Error(), "city")
		assert.Contains(t, err.Error(), "state")
		assert.NotContains(t, err.Error(), "street")
	})

	t.Run("zero value is invalid", func(t *testing.T) {
		require.Error(t, kernel.Address{}.Validate())
	})
}

package inventory

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStockMovement(t *testing.T) {
	t.Run("creates inbound movement", func(t *testing.T) {
		loc := uuid.New()
		m, err := NewStockMovement(uuid.New(), uuid.New(), &loc, MovementIn, 3, "refund", "RF-2026-00001", uuid.New())
		require.NoError(t, err)
		assert.Equal(t, 3, m.Delta())
		assert.Equal(t, "RF-2026-00001", m.Reference)
	})

	t.Run("outbound delta is negative", func(t *testing.T) {
		m, err := NewStockMovement(uuid.New(), uuid.New(), nil, MovementOut, 2, "", "S-1", uuid.New())
		require.NoError(t, err)
		assert.Equal(t, -2, m.Delta())
	})

	t.Run("rejects bad input", func(t *testing.T) {
		_, err := NewStockMovement(uuid.New(), uuid.Nil, nil, MovementIn, 1, "", "R", uuid.New())
		assert.Error(t, err)
		_, err = NewStockMovement(uuid.New(), uuid.New(), nil, MovementIn, 0, "", "R", uuid.New())
		assert.Error(t, err)
		_, err = NewStockMovement(uuid.New(), uuid.New(), nil, MovementType("transfer"), 1, "", "R", uuid.New())
		assert.Error(t, err)
		_, err = NewStockMovement(uuid.New(), uuid.New(), nil, MovementIn, 1, "", "", uuid.New())
		assert.Error(t, err)
	})
}

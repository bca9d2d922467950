package storage

import (
	"testing"

	"github.com/pawdoc/petshop/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCartCodec(t *testing.T) {
	t.Run("RoundTrip", func(t *testing.T) {
		items := []domain.CartItem{
			{ProductID: 1, Code: "ABC123", Name: "Dog Leash",
				Price: 150, Stock: 5, Quantity: 2},
			{ProductID: 9, Name: "Catnip", Price: 190, Stock: 4, Quantity: 1},
		}

		payload, err := encodeItems(items)
		require.NoError(t, err)

		got := decodeItems("test", payload)
		assert.Equal(t, items, got)
	})

	t.Run("NilEncodesAsEmptyArray", func(t *testing.T) {
		payload, err := encodeItems(nil)
		require.NoError(t, err)
		assert.JSONEq(t, `[]`, string(payload))
	})

	t.Run("CorruptPayloadIsEmptyCart", func(t *testing.T) {
		assert.Nil(t, decodeItems("test", []byte(`{"not":"an array"`)))
		assert.Nil(t, decodeItems("test", []byte(`42`)))
		assert.Nil(t, decodeItems("test", nil))
	})
}

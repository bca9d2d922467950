package kafka

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/pawdoc/petshop/internal/core/domain"
	"github.com/pawdoc/petshop/pkg/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/twmb/franz-go/pkg/kgo"
)

type fakeProducerClient struct {
	records []*kgo.Record
	err     error
}

func (c *fakeProducerClient) ProduceSync(
	ctx context.Context, rs ...*kgo.Record,
) kgo.ProduceResults {
	c.records = append(c.records, rs...)
	if c.err != nil {
		return kgo.ProduceResults{{Err: c.err}}
	}
	return kgo.ProduceResults{{Record: rs[0]}}
}

func (c *fakeProducerClient) Close() {}

type jsonFreeEncoder struct {
	err error
}

func (e jsonFreeEncoder) Encode(v any) ([]byte, error) {
	if e.err != nil {
		return nil, e.err
	}
	s := v.(schema.CartEventV1)
	return []byte(s.Code), nil
}

func testEvent() domain.CartEvent {
	return domain.CartEvent{
		Kind:       domain.CartEventAdded,
		ProductID:  7,
		Code:       "ABC123",
		Name:       "Dog Leash",
		Quantity:   2,
		UnitPrice:  150.0,
		Subtotal:   300.0,
		OccurredAt: time.UnixMilli(time.Now().UnixMilli()),
	}
}

func TestCartEventsProducer(t *testing.T) {

	t.Run("ProducesKeyedByCode", func(t *testing.T) {
		cl := &fakeProducerClient{}
		p := CartEventsProducer{cl, jsonFreeEncoder{}}

		err := p.ProduceCartEvent(t.Context(), testEvent())
		require.NoError(t, err)

		require.Len(t, cl.records, 1)
		assert.Equal(t, []byte("ABC123"), cl.records[0].Key)
	})

	t.Run("ProduceError", func(t *testing.T) {
		produceErr := errors.New("broker unavailable")
		cl := &fakeProducerClient{err: produceErr}
		p := CartEventsProducer{cl, jsonFreeEncoder{}}

		err := p.ProduceCartEvent(t.Context(), testEvent())
		require.Error(t, err)
		assert.ErrorIs(t, err, produceErr)
	})

	t.Run("EncodeError", func(t *testing.T) {
		encodeErr := errors.New("schema mismatch")
		cl := &fakeProducerClient{}
		p := CartEventsProducer{cl, jsonFreeEncoder{err: encodeErr}}

		err := p.ProduceCartEvent(t.Context(), testEvent())
		require.Error(t, err)
		assert.ErrorIs(t, err, encodeErr)
		assert.Empty(t, cl.records)
	})

	t.Run("CanceledContext", func(t *testing.T) {
		ctx, cancel := context.WithCancel(t.Context())
		cancel()

		cl := &fakeProducerClient{}
		p := CartEventsProducer{cl, jsonFreeEncoder{}}

		err := p.ProduceCartEvent(ctx, testEvent())
		require.Error(t, err)
		assert.Empty(t, cl.records)
	})

	t.Run("SchemaRoundTrip", func(t *testing.T) {
		evt := testEvent()
		assert.Equal(t, evt, schemaV1ToCartEvent(cartEventToSchemaV1(evt)))
	})
}

func TestAddCountCodec(t *testing.T) {

	t.Run("RoundTrip", func(t *testing.T) {
		codec := AddCountCodec{}

		data, err := codec.Encode(AddCount(42))
		require.NoError(t, err)

		v, err := codec.Decode(data)
		require.NoError(t, err)
		assert.Equal(t, AddCount(42), v)
	})

	t.Run("InvalidValueType", func(t *testing.T) {
		_, err := AddCountCodec{}.Encode("not a count")
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInvalidValueType)
	})

	t.Run("InvalidPayload", func(t *testing.T) {
		_, err := AddCountCodec{}.Decode([]byte("NaN"))
		require.Error(t, err)
	})
}

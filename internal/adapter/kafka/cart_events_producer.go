package kafka

import (
	"context"
	"log/slog"
	"time"

	"github.com/pawdoc/petshop/internal/core/domain"
	"github.com/pawdoc/petshop/internal/core/port"
	"github.com/pawdoc/petshop/pkg/schema"
	"github.com/twmb/franz-go/pkg/kgo"
)

var _ port.CartEventsProducer = (*CartEventsProducer)(nil)

// A CartEventsProducer publishes cart mutations keyed by product code.
type CartEventsProducer struct {
	cl      ProducerClient
	encoder Encoder
}

func NewCartEventsProducer(opts ...ProducerOpt) (CartEventsProducer, error) {
	const op = "NewCartEventsProducer"

	if len(opts) != 2 {
		panic(opErr(ErrTooFewOpts, op)) // develop mistake
	}

	var options producerOpts
	for _, opt := range opts {
		if err := opt(&options); err != nil {
			return CartEventsProducer{}, opErr(err, op)
		}
	}
	return CartEventsProducer{options.cl, options.encoder}, nil
}

func (p CartEventsProducer) Close() {
	const op = "CartEventsProducer.Close"
	log := slog.With("op", op)
	log.Info("closing producer...")
	p.cl.Close()
	log.Info("producer is closed")
}

func (p CartEventsProducer) ProduceCartEvent(
	ctx context.Context, evt domain.CartEvent,
) error {
	const op = "CartEventsProducer.ProduceCartEvent"

	if err := ctx.Err(); err != nil {
		return opErr(err, op)
	}

	r, err := p.createRecord(evt)
	if err != nil {
		return opErr(err, op)
	}

	res := p.cl.ProduceSync(ctx, r)
	if err := res.FirstErr(); err != nil {
		return opErr(err, op)
	}
	return nil
}

func (p CartEventsProducer) createRecord(
	evt domain.CartEvent,
) (*kgo.Record, error) {
	const op = "CartEventsProducer.createRecord"

	s := cartEventToSchemaV1(evt)
	v, err := p.encoder.Encode(s)
	if err != nil {
		return nil, opErr(err, op)
	}
	return &kgo.Record{Key: []byte(s.Code), Value: v}, nil
}

func cartEventToSchemaV1(evt domain.CartEvent) (s schema.CartEventV1) {
	s.Event = string(evt.Kind)
	s.ProductID = evt.ProductID
	s.Code = evt.Code
	s.Name = evt.Name
	s.Quantity = evt.Quantity
	s.UnitPrice = evt.UnitPrice
	s.Subtotal = evt.Subtotal
	s.OccurredAt = evt.OccurredAt.UnixMilli()
	return s
}

func schemaV1ToCartEvent(s schema.CartEventV1) (evt domain.CartEvent) {
	evt.Kind = domain.CartEventKind(s.Event)
	evt.ProductID = s.ProductID
	evt.Code = s.Code
	evt.Name = s.Name
	evt.Quantity = s.Quantity
	evt.UnitPrice = s.UnitPrice
	evt.Subtotal = s.Subtotal
	evt.OccurredAt = time.UnixMilli(s.OccurredAt)
	return evt
}

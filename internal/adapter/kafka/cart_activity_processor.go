package kafka

import (
	"context"
	"log/slog"
	"strconv"

	"github.com/lovoo/goka"
	"github.com/pawdoc/petshop/internal/core/domain"
	"github.com/pawdoc/petshop/pkg/schema"
)

// A CartEventCodec is the goka codec over the avro cart-event serde.
type CartEventCodec struct {
	serde Serde
}

func NewCartEventCodec(s Serde) CartEventCodec {
	return CartEventCodec{s}
}

func (c CartEventCodec) Encode(v any) ([]byte, error) {
	const op = "CartEventCodec.Encode"
	if _, ok := v.(schema.CartEventV1); !ok {
		return nil, opErr(ErrInvalidValueType, op)
	}
	return c.serde.Encode(v)
}

func (c CartEventCodec) Decode(data []byte) (any, error) {
	const op = "CartEventCodec.Decode"
	var s schema.CartEventV1
	err := c.serde.Decode(data, &s)
	if err != nil {
		return nil, opErr(err, op)
	}
	return s, nil
}

type AddCount int64

type AddCountCodec struct{}

func (AddCountCodec) Encode(v any) ([]byte, error) {
	const op = "AddCountCodec.Encode"
	cv, ok := v.(AddCount)
	if !ok {
		return nil, opErr(ErrInvalidValueType, op)
	}
	return strconv.AppendInt([]byte(nil), int64(cv), 10), nil
}

func (AddCountCodec) Decode(data []byte) (any, error) {
	const op = "AddCountCodec.Decode"
	iv, err := strconv.ParseInt(string(data), 10, 64)
	if err != nil {
		return nil, opErr(err, op)
	}
	return AddCount(iv), nil
}

// A CartActivityProcessor folds the cart-events stream into a per
// product-code counter of add-to-cart actions (the group table the
// trending view reads).
type CartActivityProcessor struct {
	gp *goka.Processor
}

func NewCartActivityProcessor(
	seedBrokers []string, stream, group string, cartEventSerde Serde,
) (CartActivityProcessor, error) {
	const op = "NewCartActivityProcessor"

	p := CartActivityProcessor{}

	gg := goka.DefineGroup(goka.Group(group),
		goka.Input(goka.Stream(stream), NewCartEventCodec(cartEventSerde), processCartEvent),
		goka.Persist(AddCountCodec{}),
	)

	gp, err := goka.NewProcessor(seedBrokers, gg, withNonlogProcOpt())
	if err != nil {
		return CartActivityProcessor{}, opErr(err, op)
	}

	p.gp = gp
	return p, nil
}

func processCartEvent(ctx goka.Context, msg any) {
	evt, ok := msg.(schema.CartEventV1)
	if !ok {
		return
	}
	if evt.Event != string(domain.CartEventAdded) {
		return
	}

	var count AddCount
	if v := ctx.Value(); v != nil {
		count = v.(AddCount)
	}
	ctx.SetValue(count + 1)
}

func (p CartActivityProcessor) Run(ctx context.Context) {
	const op = "CartActivityProcessor.Run"
	log := slog.With("op", op)

	err := p.gp.Run(ctx)
	if err != nil {
		log.Error("stopped", "err", err)
		return
	}
	log.Info("stopped")
}

func (p CartActivityProcessor) Close() {
	const op = "CartActivityProcessor.Close"
	log := slog.With("op", op)

	log.Info("closing processor...")
	p.gp.Stop()
	log.Info("processor is closed")
}

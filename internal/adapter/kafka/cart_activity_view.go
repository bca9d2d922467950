package kafka

import (
	"context"
	"errors"
	"log/slog"

	"github.com/lovoo/goka"
	"github.com/pawdoc/petshop/internal/core/port"
)

// ErrNoActivity is returned when a product has never been added to a
// cart (the group table has no entry for its code).
var ErrNoActivity = errors.New("no activity recorded")

var _ port.ActivityReader = (*CartActivityView)(nil)

// A CartActivityView reads the add-counter group table built by
// [CartActivityProcessor].
type CartActivityView struct {
	gv *goka.View
}

func NewCartActivityView(
	seedBrokers []string, group string,
) (CartActivityView, error) {
	const op = "NewCartActivityView"

	gv, err := goka.NewView(
		seedBrokers,
		goka.GroupTable(goka.Group(group)),
		AddCountCodec{},
	)
	if err != nil {
		return CartActivityView{}, opErr(err, op)
	}
	return CartActivityView{gv}, nil
}

func (v CartActivityView) Run(ctx context.Context) {
	const op = "CartActivityView.Run"
	log := slog.With("op", op)

	err := v.gv.Run(ctx)
	if err != nil {
		log.Error("unexpected fail on run", "err", err)
	}
}

func (v CartActivityView) ProductAdds(code string) (int64, error) {
	const op = "CartActivityView.ProductAdds"

	val, err := v.gv.Get(code)
	if err != nil {
		return 0, opErr(err, op)
	}
	if val == nil {
		return 0, opErr(ErrNoActivity, op)
	}

	count, ok := val.(AddCount)
	if !ok {
		return 0, opErr(ErrInvalidValueType, op)
	}
	return int64(count), nil
}

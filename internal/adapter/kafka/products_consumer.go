package kafka

import (
	"context"
	"log/slog"
	"time"

	"github.com/niksmo/storefront-session/internal/core/domain"
	"github.com/niksmo/storefront-session/internal/core/port"
	"github.com/niksmo/storefront-session/pkg/schema"
	"github.com/twmb/franz-go/pkg/kgo"
)

// A ProductsConsumer consumes catalog records from the platform
// then sends them to the core service for the read model.
type ProductsConsumer struct {
	opPrefix string
	consumer consumer
	saver    port.ProductsSaver
	decoder  Decoder
}

func NewProductsConsumer(opts ...ConsumerOpt) (pc ProductsConsumer, err error) {
	const op = "NewProductsConsumer"

	var options consumerOpts
	if err := options.apply(opts...); err != nil {
		return pc, opErr(err, op)
	}

	opPrefix := "ProductsConsumer"

	pc.opPrefix = opPrefix
	pc.saver = options.productsSaver
	pc.decoder = options.decoder

	pc.consumer = consumer{
		opPrefix:      opPrefix,
		parent:        pc,
		cl:            options.cl,
		slowDownTimer: time.NewTimer(0),
	}

	return pc, nil
}

func (c ProductsConsumer) Run(ctx context.Context) {
	c.consumer.run(ctx)
}

func (c ProductsConsumer) Close() {
	c.consumer.close()
}

func (c ProductsConsumer) processFetches(
	ctx context.Context, fetches kgo.Fetches,
) error {
	const op = "processFetches"

	values := c.toDomain(fetches)
	if len(values) == 0 {
		return nil
	}

	err := c.saver.SaveProducts(ctx, values)
	if err != nil {
		return opErr(err, c.opPrefix, op)
	}
	return nil
}

func (c ProductsConsumer) toDomain(
	fetches kgo.Fetches,
) (vs []domain.Product) {
	const op = "toDomain"
	log := slog.With("op", makeOp(c.opPrefix, op))

	fetches.EachRecord(func(r *kgo.Record) {
		v, err := c.decodeRecValue(r)
		if err != nil {
			log.Error(
				"failed to decode value",
				"err", opErr(err, c.opPrefix, op),
			)
			return
		}
		vs = append(vs, v)
	})
	return vs
}

func (c ProductsConsumer) decodeRecValue(
	r *kgo.Record,
) (domain.Product, error) {
	var s schema.ProductV1
	err := c.decoder.Decode(r.Value, &s)
	if err != nil {
		return domain.Product{}, err
	}
	return schemaV1ToProduct(s), nil
}

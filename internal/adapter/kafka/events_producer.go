package kafka

import (
	"context"

	"github.com/niksmo/storefront-session/internal/core/domain"
	"github.com/niksmo/storefront-session/internal/core/port"
	"github.com/twmb/franz-go/pkg/kgo"
)

var _ port.EventsProducer = (*EventsProducer)(nil)

// An EventsProducer produces [domain.ShopperEvent] records keyed by
// session id, so one session's events stay ordered per partition.
type EventsProducer struct {
	producer producer
	encoder  Encoder
	opPrefix string
}

func NewEventsProducer(opts ...ProducerOpt) (EventsProducer, error) {
	const op = "NewEventsProducer"

	if len(opts) != 2 {
		panic(opErr(ErrTooFewOpts, op)) // develop mistake
	}

	var options producerOpts
	for _, opt := range opts {
		if err := opt(&options); err != nil {
			return EventsProducer{}, opErr(err, op)
		}
	}

	opPrefix := "EventsProducer"
	p := producer{
		opPrefix: opPrefix,
		cl:       options.cl,
	}

	return EventsProducer{
		producer: p,
		encoder:  options.encoder,
		opPrefix: opPrefix,
	}, nil
}

func (p EventsProducer) Close() {
	p.producer.close()
}

func (p EventsProducer) ProduceEvent(
	ctx context.Context, v domain.ShopperEvent,
) error {
	const op = "ProduceEvent"

	if err := ctx.Err(); err != nil {
		return opErr(err, p.opPrefix, op)
	}

	r, err := p.createRecord(v)
	if err != nil {
		return opErr(err, p.opPrefix, op)
	}

	if err := p.producer.produce(ctx, r); err != nil {
		return opErr(err, p.opPrefix, op)
	}

	return nil
}

func (p EventsProducer) createRecord(
	v domain.ShopperEvent,
) (*kgo.Record, error) {
	const op = "createRecord"

	s := eventToSchemaV1(v)
	b, err := p.encoder.Encode(s)
	if err != nil {
		return nil, opErr(err, p.opPrefix, op)
	}

	msgKey := []byte(s.SessionID)
	return &kgo.Record{Key: msgKey, Value: b}, nil
}

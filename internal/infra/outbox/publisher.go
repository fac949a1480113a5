package outbox

import (
	"context"
	"strings"
	"time"

	"github.com/segmentio/kafka-go"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-booking/internal/models"
)

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
}

type Publisher struct {
	db        *gorm.DB
	repo      *Repository
	log       *zap.Logger
	brokers   []string
	pollEvery time.Duration
	batchSize int
}

type PublisherConfig struct {
	Brokers   string
	PollEvery time.Duration
	BatchSize int
}

func NewPublisher(db *gorm.DB, repo *Repository, log *zap.Logger, cfg PublisherConfig) *Publisher {
	if cfg.PollEvery <= 0 {
		cfg.PollEvery = 2 * time.Second
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 50
	}
	return &Publisher{
		db:        db,
		repo:      repo,
		log:       log,
		brokers:   SplitBrokers(cfg.Brokers),
		pollEvery: cfg.PollEvery,
		batchSize: cfg.BatchSize,
	}
}

func (p *Publisher) Enabled() bool {
	return len(p.brokers) > 0
}

// Run polls the outbox until ctx is cancelled. Events stay in the table
// when Kafka is not configured.
func (p *Publisher) Run(ctx context.Context) {
	if !p.Enabled() {
		fields := []zap.Field{}
		if n, err := p.repo.CountUnpublished(ctx); err == nil {
			fields = append(fields, zap.Int64("backlog", n))
		}
		p.log.Warn("outbox publisher disabled (no kafka brokers configured)", fields...)
		return
	}

	writer := &kafka.Writer{
		Addr:     kafka.TCP(p.brokers...),
		Balancer: &kafka.Hash{},
	}
	defer writer.Close()

	ticker := time.NewTicker(p.pollEvery)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := p.publishBatch(ctx, writer); err != nil {
				p.log.Error("outbox publish failed", zap.Error(err))
			}
		}
	}
}

func (p *Publisher) publishBatch(ctx context.Context, writer messageWriter) error {
	return p.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		events, err := p.repo.FetchUnpublished(ctx, tx, p.batchSize)
		if err != nil || len(events) == 0 {
			return err
		}

		msgs := make([]kafka.Message, 0, len(events))
		ids := make([]uint, 0, len(events))
		for _, ev := range events {
			msgs = append(msgs, toMessage(ctx, ev))
			ids = append(ids, ev.ID)
		}
		if err := writer.WriteMessages(ctx, msgs...); err != nil {
			return err
		}

		p.log.Debug("outbox batch published", zap.Int("count", len(ids)))
		return p.repo.MarkPublished(ctx, tx, ids, time.Now())
	})
}

// toMessage keys by aggregate id so all events of one appointment land on
// the same partition, in order.
func toMessage(ctx context.Context, ev models.OutboxEvent) kafka.Message {
	msg := kafka.Message{
		Topic: ev.EventType,
		Key:   []byte(ev.AggregateID),
		Value: []byte(ev.Payload),
		Headers: []kafka.Header{
			{Key: "event_id", Value: []byte(ev.EventID.String())},
			{Key: "event_type", Value: []byte(ev.EventType)},
		},
	}
	carrier := headerCarrier{headers: &msg.Headers}
	otel.GetTextMapPropagator().Inject(ctx, carrier)
	return msg
}

func SplitBrokers(raw string) []string {
	var brokers []string
	for _, b := range strings.Split(raw, ",") {
		b = strings.TrimSpace(b)
		if b != "" {
			brokers = append(brokers, b)
		}
	}
	return brokers
}

type headerCarrier struct {
	headers *[]kafka.Header
}

func (c headerCarrier) Get(key string) string {
	for _, h := range *c.headers {
		if h.Key == key {
			return string(h.Value)
		}
	}
	return ""
}

func (c headerCarrier) Keys() []string {
	keys := make([]string, 0, len(*c.headers))
	for _, h := range *c.headers {
		keys = append(keys, h.Key)
	}
	return keys
}

func (c headerCarrier) Set(key, value string) {
	for i := range *c.headers {
		if (*c.headers)[i].Key == key {
			(*c.headers)[i].Value = []byte(value)
			return
		}
	}
	*c.headers = append(*c.headers, kafka.Header{Key: key, Value: []byte(value)})
}

var _ propagation.TextMapCarrier = headerCarrier{}

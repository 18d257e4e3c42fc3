package events

import (
	"context"
	"encoding/json"
	"github.com/pkg/errors"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
	"time"
)

var ErrPublisherBusy = errors.New("event publisher buffer is full")

// 非同步寫入Kafka，Publish不會阻塞請求
type KafkaPublisher struct {
	writer   *kafka.Writer
	producer string
	logger   *zap.Logger
	inbox    chan kafka.Message
	done     chan struct{}
}

func NewKafkaPublisher(brokers []string, topic, producer string, buffer int, logger *zap.Logger) *KafkaPublisher {
	if topic == "" {
		topic = TopicOrderCreated
	}
	return &KafkaPublisher{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireAll,
		},
		producer: producer,
		logger:   logger,
		inbox:    make(chan kafka.Message, buffer),
		done:     make(chan struct{}),
	}
}

func (p *KafkaPublisher) Start() {
	go func() {
		defer close(p.done)
		for m := range p.inbox {
			if err := p.writer.WriteMessages(context.Background(), m); err != nil {
				p.logger.Error("write kafka message failed",
					zap.String("topic", p.writer.Topic),
					zap.ByteString("key", m.Key),
					zap.Error(err))
			}
		}
	}()
}

func (p *KafkaPublisher) PublishOrderCreated(ctx context.Context, event OrderCreated) error {
	envelope, err := NewEnvelope(EventOrderCreated, p.producer, event)
	if err != nil {
		return errors.Wrap(err, "build order created envelope")
	}
	value, err := json.Marshal(envelope)
	if err != nil {
		return errors.Wrap(err, "marshal order created envelope")
	}

	msg := kafka.Message{
		Key:   event.Key(),
		Value: value,
		Time:  time.Now(),
		Headers: []kafka.Header{
			{Key: "x-event-type", Value: []byte(EventOrderCreated)},
		},
	}

	select {
	case p.inbox <- msg:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	default:
		return ErrPublisherBusy
	}
}

// 送出剩餘訊息後關閉writer
func (p *KafkaPublisher) Close() error {
	close(p.inbox)
	<-p.done
	return p.writer.Close()
}

package repository

import (
	"context"

	"DataHub/internal/domain/models"
	domrepo "DataHub/internal/domain/repository"
	pkgkafka "DataHub/pkg/kafka"
)

var _ domrepo.EventPublisher = (*KafkaPublisher)(nil)

// KafkaPublisher implements EventPublisher on a Kafka topic, keyed by store key.
type KafkaPublisher struct {
	producer *pkgkafka.Producer
	topic    string
}

func NewKafkaPublisher(producer *pkgkafka.Producer, topic string) *KafkaPublisher {
	return &KafkaPublisher{producer: producer, topic: topic}
}

func (p *KafkaPublisher) PublishChange(ctx context.Context, ev *models.ChangeEvent) error {
	return p.producer.Publish(ctx, p.topic, []byte(ev.Key), ev)
}

// PublishChanges sends events in a single batch.
func (p *KafkaPublisher) PublishChanges(ctx context.Context, events []*models.ChangeEvent) error {
	if len(events) == 0 {
		return nil
	}
	msgs := make([]pkgkafka.Message, len(events))
	for i, ev := range events {
		msgs[i] = pkgkafka.Message{Key: []byte(ev.Key), Value: ev}
	}
	return p.producer.PublishBatch(ctx, p.topic, msgs)
}

func (p *KafkaPublisher) Close() error {
	if p.producer != nil {
		return p.producer.Close()
	}
	return nil
}

// NopPublisher drops every event.
type NopPublisher struct{}

func (NopPublisher) PublishChange(context.Context, *models.ChangeEvent) error { return nil }
func (NopPublisher) Close() error                                             { return nil }

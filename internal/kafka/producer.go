package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/marcosvbalencar/portfolio-advisor/internal/models"
)

// Producer handles publishing plan events to Kafka
type Producer struct {
	writer *kafka.Writer
	topic  string
}

// NewProducer creates a new Kafka producer
func NewProducer(brokers []string, topic string) *Producer {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.LeastBytes{},
		BatchTimeout: 10 * time.Millisecond,
	}

	return &Producer{
		writer: writer,
		topic:  topic,
	}
}

// PublishPlanGenerated publishes a plan generated event keyed by client
func (p *Producer) PublishPlanGenerated(ctx context.Context, clientID string, plan *models.RebalancingPlan) error {
	event := models.PlanEvent{
		EventType: "PLAN_GENERATED",
		ClientID:  clientID,
		Plan:      plan,
		Timestamp: time.Now(),
	}
	return p.publish(ctx, clientID, event)
}

func (p *Producer) publish(ctx context.Context, key string, event models.PlanEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(key),
		Value: data,
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("failed to write message to kafka: %w", err)
	}

	return nil
}

// Close closes the Kafka producer
func (p *Producer) Close() error {
	return p.writer.Close()
}

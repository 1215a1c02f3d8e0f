package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/marcosvbalencar/portfolio-advisor/internal/models"
)

// MarketPriceRepository defines the interface for price snapshot storage
type MarketPriceRepository interface {
	SaveMarketPrices(prices []models.MarketPrice, asOf time.Time) error
}

// Consumer handles consuming price snapshot events from Kafka and storing
// them for later advice runs
type Consumer struct {
	reader *kafka.Reader
	repo   MarketPriceRepository
}

// NewConsumer creates a new Kafka consumer for price events
func NewConsumer(brokers []string, topic, groupID string, repo MarketPriceRepository) *Consumer {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:        brokers,
		Topic:          topic,
		GroupID:        groupID,
		MinBytes:       10e3, // 10KB
		MaxBytes:       10e6, // 10MB
		MaxWait:        1 * time.Second,
		StartOffset:    kafka.FirstOffset,
		CommitInterval: time.Second,
	})

	return &Consumer{
		reader: reader,
		repo:   repo,
	}
}

// Start begins consuming messages from Kafka
func (c *Consumer) Start(ctx context.Context) error {
	log.Printf("Starting Kafka consumer for topic: %s", c.reader.Config().Topic)

	for {
		select {
		case <-ctx.Done():
			log.Println("Kafka consumer shutting down...")
			return c.reader.Close()
		default:
			msg, err := c.reader.ReadMessage(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return nil // Context cancelled, normal shutdown
				}
				log.Printf("Error reading message: %v", err)
				continue
			}

			if err := c.processMessage(msg); err != nil {
				log.Printf("Error processing message: %v", err)
				// Continue processing other messages
			}
		}
	}
}

// processMessage handles a single Kafka message
func (c *Consumer) processMessage(msg kafka.Message) error {
	log.Printf("Received message from partition %d offset %d: key=%s",
		msg.Partition, msg.Offset, string(msg.Key))

	var event models.PriceEvent
	if err := json.Unmarshal(msg.Value, &event); err != nil {
		return fmt.Errorf("failed to unmarshal price event: %w", err)
	}

	// Only process PRICE_UPDATED events
	if event.EventType != "PRICE_UPDATED" {
		log.Printf("Ignoring event type: %s", event.EventType)
		return nil
	}

	if len(event.Prices) == 0 {
		log.Printf("Price event with no prices, skipping")
		return nil
	}

	asOf, err := parseAsOf(event)
	if err != nil {
		return err
	}

	// Rows without a ticker carry no usable signal
	prices := make([]models.MarketPrice, 0, len(event.Prices))
	for _, p := range event.Prices {
		if p.Ticker == "" {
			continue
		}
		prices = append(prices, p)
	}

	if err := c.repo.SaveMarketPrices(prices, asOf); err != nil {
		return fmt.Errorf("failed to save market prices: %w", err)
	}

	log.Printf("Saved %d market prices as of %s", len(prices), asOf.Format("2006-01-02"))
	return nil
}

func parseAsOf(event models.PriceEvent) (time.Time, error) {
	if event.AsOf == "" {
		return event.Timestamp.Truncate(24 * time.Hour), nil
	}
	asOf, err := time.Parse("2006-01-02", event.AsOf)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid as_of date %q: %w", event.AsOf, err)
	}
	return asOf, nil
}

// Close closes the Kafka consumer
func (c *Consumer) Close() error {
	return c.reader.Close()
}

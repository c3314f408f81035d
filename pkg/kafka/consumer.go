package kafka

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/twmb/franz-go/pkg/kgo"
)

// ErrClosed is returned by Next once the consumer has been closed.
var ErrClosed = errors.New("kafka: consumer closed")

// Message represents a generic Kafka message
type Message struct {
	Key       []byte
	Value     []byte
	Topic     string
	Partition int32
	Offset    int64
	Timestamp time.Time
}

// Consumer wraps a franz-go client behind a blocking next-message iterator.
// Offsets are autocommitted; the service is pass-through and does not need
// redelivery guarantees.
type Consumer struct {
	client  *kgo.Client
	logger  *logrus.Logger
	topic   string
	groupID string
	pending []*kgo.Record
	closeFn sync.Once
}

// NewConsumer creates a new Kafka consumer subscribed to a single topic
func NewConsumer(brokers []string, topic, groupID, clientID string, logger *logrus.Logger) (*Consumer, error) {
	opts := []kgo.Opt{
		kgo.SeedBrokers(brokers...),
		kgo.ConsumeTopics(topic),
		kgo.ConsumerGroup(groupID),
		kgo.ClientID(clientID),
		kgo.ConsumeResetOffset(kgo.NewOffset().AtStart()),
	}

	client, err := kgo.NewClient(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create kafka client: %w", err)
	}

	return &Consumer{
		client:  client,
		logger:  logger,
		topic:   topic,
		groupID: groupID,
	}, nil
}

// Next blocks until the next message is available and returns it. It returns
// ctx.Err() on cancellation and ErrClosed once the client has been closed.
// Transient fetch errors are logged and polling continues.
func (c *Consumer) Next(ctx context.Context) (Message, error) {
	for len(c.pending) == 0 {
		fetches := c.client.PollFetches(ctx)
		if err := ctx.Err(); err != nil {
			return Message{}, err
		}
		if fetches.IsClientClosed() {
			return Message{}, ErrClosed
		}
		if errs := fetches.Errors(); len(errs) > 0 {
			for _, fe := range errs {
				c.logger.WithError(fe.Err).WithFields(logrus.Fields{
					"topic":     fe.Topic,
					"partition": fe.Partition,
				}).Error("errors while polling")
			}
		}

		iter := fetches.RecordIter()
		for !iter.Done() {
			c.pending = append(c.pending, iter.Next())
		}
	}

	record := c.pending[0]
	c.pending = c.pending[1:]

	return Message{
		Key:       record.Key,
		Value:     record.Value,
		Topic:     record.Topic,
		Partition: record.Partition,
		Offset:    record.Offset,
		Timestamp: record.Timestamp,
	}, nil
}

// Close closes the underlying client. Safe to call more than once.
func (c *Consumer) Close() error {
	c.closeFn.Do(func() {
		c.client.Close()
	})
	return nil
}

// Topic returns the subscribed topic
func (c *Consumer) Topic() string {
	return c.topic
}

// HealthCheck pings the broker
func (c *Consumer) HealthCheck() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := c.client.Ping(ctx); err != nil {
		return fmt.Errorf("kafka health check failed: %w", err)
	}
	return nil
}

// GetClient returns the underlying franz-go client
func (c *Consumer) GetClient() *kgo.Client {
	return c.client
}

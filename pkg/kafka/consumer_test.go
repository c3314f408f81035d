package kafka

import (
	"context"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/twmb/franz-go/pkg/kgo"
)

func TestNextDrainsPendingInOrder(t *testing.T) {
	logger := logrus.New()
	now := time.Now()

	consumer := &Consumer{
		logger: logger,
		topic:  "project_json",
		pending: []*kgo.Record{
			{Topic: "project_json", Partition: 0, Offset: 0, Value: []byte(`{"sentiment":0.5}`), Timestamp: now},
			{Topic: "project_json", Partition: 0, Offset: 1, Value: []byte(`{"sentiment":0.6}`), Timestamp: now},
			{Topic: "project_json", Partition: 1, Offset: 0, Value: []byte(`{"sentiment":0.7}`), Timestamp: now},
		},
	}

	expected := []struct {
		partition int32
		offset    int64
	}{
		{0, 0},
		{0, 1},
		{1, 0},
	}

	for i, want := range expected {
		msg, err := consumer.Next(context.Background())
		if err != nil {
			t.Fatalf("Next() error = %v", err)
		}
		if msg.Partition != want.partition || msg.Offset != want.offset {
			t.Fatalf("message %d = %d:%d, want %d:%d", i, msg.Partition, msg.Offset, want.partition, want.offset)
		}
		if msg.Topic != "project_json" {
			t.Fatalf("message %d topic = %q", i, msg.Topic)
		}
		if len(msg.Value) == 0 {
			t.Fatalf("message %d has empty value", i)
		}
	}

	if len(consumer.pending) != 0 {
		t.Fatalf("pending = %d records, want 0", len(consumer.pending))
	}
}

func TestTopic(t *testing.T) {
	consumer := &Consumer{topic: "project_json"}
	if got := consumer.Topic(); got != "project_json" {
		t.Fatalf("Topic() = %q", got)
	}
}

// Package consumer drives the consume → decode → accumulate → render cycle.
package consumer

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/mokeyzz1/buzzline-04-moses/internal/decoder"
	"github.com/mokeyzz1/buzzline-04-moses/internal/series"
	"github.com/mokeyzz1/buzzline-04-moses/pkg/kafka"
	"github.com/mokeyzz1/buzzline-04-moses/pkg/logging"
)

// State is the loop's position in its lifecycle. Exposed for observability;
// the loop itself is single-threaded.
type State int32

const (
	StateConnecting State = iota
	StatePolling
	StateProcessing
	StateRendering
	StateDraining
	StateClosed
)

func (s State) String() string {
	switch s {
	case StateConnecting:
		return "connecting"
	case StatePolling:
		return "polling"
	case StateProcessing:
		return "processing"
	case StateRendering:
		return "rendering"
	case StateDraining:
		return "draining"
	case StateClosed:
		return "closed"
	default:
		return "unknown"
	}
}

// Source yields successive raw messages from the stream. Next blocks until a
// message is available; Close releases the handle and is safe to call once at
// shutdown.
type Source interface {
	Next(ctx context.Context) (kafka.Message, error)
	Close() error
}

// Renderer redraws the chart from the full series and finalizes the surface
// once the loop is done.
type Renderer interface {
	Render(points []series.Point) error
	Finish() error
}

// Metrics holds the Prometheus metrics the loop reports
type Metrics struct {
	Messages       *prometheus.CounterVec // labelled by status
	RenderDuration *prometheus.HistogramVec
	SeriesPoints   *prometheus.GaugeVec
	KafkaMessages  *prometheus.CounterVec
	KafkaDuration  *prometheus.HistogramVec
}

// Loop owns the store and renderer and walks the state machine
// Connecting → Polling → Processing → Rendering → Draining → Closed.
// One message is fully processed before the next is requested.
type Loop struct {
	source   Source
	store    *series.Store
	renderer Renderer
	logger   logging.Logger
	metrics  *Metrics
	topic    string

	state atomic.Int32
}

// NewLoop creates a loop over an already-acquired source handle
func NewLoop(source Source, store *series.Store, renderer Renderer, logger logging.Logger, metrics *Metrics, topic string) *Loop {
	l := &Loop{
		source:   source,
		store:    store,
		renderer: renderer,
		logger:   logger,
		metrics:  metrics,
		topic:    topic,
	}
	l.state.Store(int32(StateConnecting))
	return l
}

// State returns the loop's current lifecycle state
func (l *Loop) State() State {
	return State(l.state.Load())
}

func (l *Loop) setState(s State) {
	l.state.Store(int32(s))
}

// Run consumes messages until ctx is cancelled or a fatal error occurs.
// Per-message decode failures are logged and skipped; only a source-level or
// render failure terminates the loop. The source handle is released exactly
// once on every exit path, and the surface is finalized so the last frame
// remains as the final static chart.
func (l *Loop) Run(ctx context.Context) (err error) {
	defer func() {
		l.setState(StateDraining)
		if cerr := l.source.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close source: %w", cerr)
		}
		if ferr := l.renderer.Finish(); ferr != nil {
			l.logger.WithError(ferr).Warn("Failed to finalize chart surface")
		}
		l.setState(StateClosed)
		l.logger.WithField("topic", l.topic).Info("Kafka consumer closed")
	}()

	for {
		l.setState(StatePolling)
		pollStart := time.Now()
		msg, nerr := l.source.Next(ctx)
		if nerr != nil {
			if errors.Is(nerr, context.Canceled) || errors.Is(nerr, context.DeadlineExceeded) {
				l.logger.Warn("Consumer interrupted by shutdown signal")
				return nil
			}
			l.logger.WithError(nerr).Error("Error while consuming messages")
			return fmt.Errorf("consume: %w", nerr)
		}
		if l.metrics != nil {
			l.metrics.KafkaMessages.WithLabelValues(msg.Topic, "consume", "ok").Inc()
			l.metrics.KafkaDuration.WithLabelValues("consume").Observe(time.Since(pollStart).Seconds())
		}

		l.setState(StateProcessing)
		l.logger.WithFields(logging.Fields{
			"partition": msg.Partition,
			"offset":    msg.Offset,
		}).Debugf("Received message: %s", msg.Value)
		if l.metrics != nil {
			l.metrics.Messages.WithLabelValues("received").Inc()
		}

		point, derr := decoder.Decode(msg.Value)
		if derr != nil {
			l.logDecodeFailure(msg, derr)
			continue
		}

		l.store.Append(point)
		l.logger.WithFields(logging.Fields{
			"timestamp": point.Timestamp,
			"sentiment": point.Sentiment,
		}).Info("Appended point to sentiment series")
		if l.metrics != nil {
			l.metrics.Messages.WithLabelValues("accepted").Inc()
			l.metrics.SeriesPoints.WithLabelValues().Set(float64(l.store.Len()))
		}

		l.setState(StateRendering)
		renderStart := time.Now()
		if rerr := l.renderer.Render(l.store.Points()); rerr != nil {
			// The chart is the primary artifact; a dead surface is fatal.
			l.logger.WithError(rerr).Error("Chart render failed")
			return fmt.Errorf("render: %w", rerr)
		}
		if l.metrics != nil {
			l.metrics.RenderDuration.WithLabelValues().Observe(time.Since(renderStart).Seconds())
		}
	}
}

func (l *Loop) logDecodeFailure(msg kafka.Message, err error) {
	fields := logging.Fields{
		"partition": msg.Partition,
		"offset":    msg.Offset,
	}

	var parseErr *decoder.ParseError
	var validationErr *decoder.ValidationError
	switch {
	case errors.As(err, &parseErr):
		l.logger.WithError(err).WithFields(fields).Error("Invalid JSON message, skipping")
		if l.metrics != nil {
			l.metrics.Messages.WithLabelValues("parse_error").Inc()
		}
	case errors.As(err, &validationErr):
		l.logger.WithError(err).WithFields(fields).Info("Message missing required fields, skipping")
		if l.metrics != nil {
			l.metrics.Messages.WithLabelValues("validation_error").Inc()
		}
	default:
		l.logger.WithError(err).WithFields(fields).Error("Error processing message, skipping")
		if l.metrics != nil {
			l.metrics.Messages.WithLabelValues("error").Inc()
		}
	}
}

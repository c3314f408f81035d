package main

import (
	"context"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/mokeyzz1/buzzline-04-moses/internal/consumer"
	"github.com/mokeyzz1/buzzline-04-moses/internal/handlers"
	"github.com/mokeyzz1/buzzline-04-moses/internal/render"
	"github.com/mokeyzz1/buzzline-04-moses/internal/series"
	"github.com/mokeyzz1/buzzline-04-moses/pkg/config"
	"github.com/mokeyzz1/buzzline-04-moses/pkg/kafka"
	"github.com/mokeyzz1/buzzline-04-moses/pkg/logging"
	"github.com/mokeyzz1/buzzline-04-moses/pkg/monitoring"
	"github.com/mokeyzz1/buzzline-04-moses/pkg/server"
	"github.com/mokeyzz1/buzzline-04-moses/pkg/version"
)

func main() {
	// Setup logger
	logger := logging.NewLoggerWithService("trendline")

	// Load environment variables
	config.LoadEnv(logger)

	logger.Info("Starting Trendline (Real-Time Sentiment Trend)")

	topic := config.GetEnv("PROJECT_TOPIC", "project_json")
	groupID := config.GetEnv("PROJECT_CONSUMER_GROUP_ID", "project_group")
	brokersEnv := config.GetEnv("KAFKA_BROKERS", "localhost:9092")
	clientID := config.GetEnv("KAFKA_CLIENT_ID", "trendline")
	chartPath := config.GetEnv("CHART_PATH", "sentiment_trend.png")
	renderPause := config.GetEnvDuration("RENDER_PAUSE", 10*time.Millisecond)

	logger.WithFields(logging.Fields{
		"topic":    topic,
		"group_id": groupID,
	}).Info("Kafka consumer configuration")

	// Surfaces: PNG file on disk plus the in-memory frame behind the dashboard
	memSurface := render.NewMemorySurface()
	surface := render.MultiSurface{render.NewFileSurface(chartPath), memSurface}
	renderer := render.NewRenderer(surface, renderPause)

	store := series.NewStore()

	// Setup Kafka consumer
	brokers := strings.Split(brokersEnv, ",")
	source, err := kafka.NewConsumer(brokers, topic, groupID, clientID, logger)
	if err != nil {
		logger.WithError(err).Fatal("Failed to create Kafka consumer")
	}

	// Setup monitoring
	healthChecker := monitoring.NewHealthChecker("trendline", version.Version)
	metricsCollector := monitoring.NewMetricsCollector("trendline", version.Version, version.GitCommit)

	metrics := &consumer.Metrics{
		Messages:       metricsCollector.NewCounter("messages_total", "Messages processed by status", []string{"status"}),
		RenderDuration: metricsCollector.NewHistogram("render_duration_seconds", "Chart render time", nil, nil),
		SeriesPoints:   metricsCollector.NewGauge("series_points", "Points accumulated in the sentiment series", nil),
	}
	metrics.KafkaMessages, metrics.KafkaDuration = metricsCollector.CreateKafkaMetrics()

	healthChecker.AddCheck("kafka", monitoring.KafkaConsumerHealthCheck(source.GetClient()))
	healthChecker.AddCheck("surface", monitoring.SurfaceHealthCheck(memSurface))
	healthChecker.AddCheck("config", monitoring.ConfigurationHealthCheck(map[string]string{
		"KAFKA_BROKERS":             brokersEnv,
		"PROJECT_TOPIC":             topic,
		"PROJECT_CONSUMER_GROUP_ID": groupID,
	}))

	loop := consumer.NewLoop(source, store, renderer, logger, metrics, topic)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Dashboard and ops endpoints
	router := server.SetupServiceRouter(logger, "trendline", healthChecker, metricsCollector)
	router.GET("/", handlers.Dashboard(memSurface))
	router.GET("/chart.png", handlers.ChartPNG(memSurface))

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- server.Start(ctx, server.DefaultConfig("trendline", "8080"), router, logger)
	}()

	logger.WithField("topic", topic).Info("Polling messages from Kafka")

	runErr := loop.Run(ctx)

	// Stop the HTTP server as well
	stop()
	if err := <-serverErr; err != nil {
		logger.WithError(err).Error("HTTP server error")
	}

	if runErr != nil {
		logger.WithError(runErr).Fatal("Consumer loop failed")
	}

	logger.WithFields(logging.Fields{
		"topic":    topic,
		"group_id": groupID,
		"chart":    chartPath,
	}).Info("Trendline stopped; final chart written")
}

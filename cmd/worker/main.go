package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog"

	"github.com/tabibi/patient-api/internal/config"
	"github.com/tabibi/patient-api/internal/email"
	"github.com/tabibi/patient-api/internal/repository/postgres"
	notifierworker "github.com/tabibi/patient-api/internal/worker"
	"github.com/tabibi/patient-api/pkg/logger"
	redisbroker "github.com/tabibi/patient-api/pkg/messaging/redis"
	"github.com/tabibi/patient-api/pkg/metrics"
	"github.com/tabibi/patient-api/pkg/worker"
)

// workerConfig holds the environment-driven knobs specific to the worker
// process. Shared settings (database, redis, smtp) come from the same config
// loader the API uses.
type workerConfig struct {
	BatchSize    int           `envconfig:"OUTBOX_BATCH_SIZE" default:"50"`
	PollInterval time.Duration `envconfig:"OUTBOX_POLL_INTERVAL" default:"5s"`
	RetryDelay   time.Duration `envconfig:"OUTBOX_RETRY_DELAY" default:"1m"`
}

func main() {
	log := logger.NewLogger(nil)

	var wcfg workerConfig
	if err := envconfig.Process("", &wcfg); err != nil {
		log.Fatal(err, "Failed to load worker configuration")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err, "Failed to load configuration")
	}

	db, err := postgres.NewDB(cfg.Database)
	if err != nil {
		log.Fatal(err, "Failed to connect to database")
	}
	defer db.Close()

	zl := zerolog.New(os.Stdout).With().Timestamp().Logger()
	broker, err := redisbroker.NewRedisBroker(redisbroker.Config{
		URL:          cfg.Redis.URL,
		MaxRetries:   3,
		RetryBackoff: 100 * time.Millisecond,
		PoolSize:     10,
		MinIdleConns: 2,
	}, &zl)
	if err != nil {
		log.Fatal(err, "Failed to connect to Redis")
	}
	defer broker.Close()

	m := metrics.NewMetrics("patient_api", "worker")

	processor := worker.NewOutboxProcessor(
		postgres.NewOutboxRepository(db),
		broker,
		worker.OutboxProcessorConfig{
			BatchSize:    wcfg.BatchSize,
			PollInterval: wcfg.PollInterval,
			RetryDelay:   wcfg.RetryDelay,
		},
		log,
		m,
	)

	notifier := notifierworker.NewNotifier(
		broker,
		email.NewSMTPService(email.SMTPConfig{
			Host:     cfg.SMTP.Host,
			Port:     cfg.SMTP.Port,
			Username: cfg.SMTP.Username,
			Password: cfg.SMTP.Password,
			From:     cfg.SMTP.From,
		}),
		log,
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go processor.Start(ctx)
	go func() {
		if err := notifier.Start(ctx); err != nil {
			log.Error(err, "Notifier stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down worker")
	cancel()
	time.Sleep(time.Second)
}

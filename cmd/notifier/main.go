package main

import (
	"context"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/dimasfh/storefront/internal/config"
	"github.com/dimasfh/storefront/internal/kafkax"
	"github.com/dimasfh/storefront/internal/logging"
	"github.com/dimasfh/storefront/internal/notify"
	"github.com/dimasfh/storefront/internal/orders"
	"github.com/dimasfh/storefront/internal/redisx"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	log := logging.MustNew(cfg.ServiceName+"-notifier", cfg.Env)
	defer func() { _ = log.Sync() }()
	zap.ReplaceGlobals(log)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	rdb := redisx.New(cfg.RedisAddr)
	defer rdb.Close()

	worker := &notify.Worker{
		Redis:  rdb,
		Mailer: &notify.LogMailer{Log: log},
		Log:    log,
	}

	group := getenv("NOTIFIER_GROUP", "notifier-svc")
	workers := mustAtoi(os.Getenv("NOTIFIER_WORKERS"), 4)
	cons := kafkax.NewConsumer(cfg.KafkaBrokers, group, orders.TopicOrderEvents, workers, log)

	go func() {
		log.Info("notifier consumer started",
			zap.String("group", group),
			zap.String("topic", orders.TopicOrderEvents),
			zap.Int("workers", workers))
		if err := cons.Start(ctx, worker.HandleOrderEvent); err != nil {
			log.Error("consumer exit", zap.Error(err))
			cancel()
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	log.Info("shutting down notifier")
	cancel()
	time.Sleep(500 * time.Millisecond)
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func mustAtoi(s string, def int) int {
	if s == "" {
		return def
	}
	i, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return i
}

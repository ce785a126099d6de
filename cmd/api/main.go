package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dimasfh/storefront/internal/analytics"
	"github.com/dimasfh/storefront/internal/authz"
	"github.com/dimasfh/storefront/internal/config"
	"github.com/dimasfh/storefront/internal/httpx"
	"github.com/dimasfh/storefront/internal/kafkax"
	"github.com/dimasfh/storefront/internal/logging"
	"github.com/dimasfh/storefront/internal/metrics"
	"github.com/dimasfh/storefront/internal/mongox"
	"github.com/dimasfh/storefront/internal/notify"
	"github.com/dimasfh/storefront/internal/orders"
	"github.com/dimasfh/storefront/internal/payments"
	"github.com/dimasfh/storefront/internal/redisx"
	"github.com/dimasfh/storefront/internal/settlement"
	"github.com/dimasfh/storefront/internal/store"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	log := logging.MustNew(cfg.ServiceName, cfg.Env)
	defer func() { _ = log.Sync() }()
	zap.ReplaceGlobals(log)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Mongo
	db, err := mongox.Connect(ctx, cfg.MongoURI, cfg.MongoDatabase)
	if err != nil {
		log.Fatal("mongo connect", zap.Error(err))
	}
	defer func() { _ = db.Client().Disconnect(context.Background()) }()

	st := store.New(db)
	if err := st.EnsureIndexes(ctx); err != nil {
		log.Fatal("ensure indexes", zap.Error(err))
	}

	// Redis
	rdb := redisx.New(cfg.RedisAddr)
	defer rdb.Close()

	// Kafka producer for notification events
	prod := kafkax.NewProducer(cfg.KafkaBrokers, orders.TopicOrderEvents, 1024, log)
	prod.Start(ctx)
	dispatcher := &notify.Dispatcher{Producer: prod, Service: cfg.ServiceName}

	// Stripe
	gateway := payments.NewStripeGateway(cfg.StripeSecretKey)

	// Services
	paySvc := &payments.Service{Gateway: gateway}
	settleSvc := &settlement.Service{
		Gateway:  gateway,
		Store:    st,
		Redis:    rdb,
		Notifier: dispatcher,
	}
	orderSvc := &orders.Service{Store: st, Notifier: dispatcher}
	analyticsSvc := &analytics.Service{Source: st}

	// Router & handlers
	m := metrics.New("storefront")
	router := httpx.NewRouter(log, m)
	(&httpx.PaymentsHandler{Service: paySvc, Metrics: m}).Register(router)
	(&httpx.OrdersHandler{Settler: settleSvc, Store: st, Redis: rdb, Metrics: m}).Register(router)
	(&httpx.AdminHandler{
		Orders:    orderSvc,
		Analytics: analyticsSvc,
		Authz:     authz.NewTokenChecker(cfg.AdminTokens),
	}).Register(router)
	(&httpx.WebhookHandler{SigningSecret: cfg.StripeWebhookSecret}).Register(router)

	srv := &http.Server{Addr: cfg.HTTPAddr, Handler: router}

	go func() {
		log.Info("http listening", zap.String("addr", cfg.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("listen", zap.Error(err))
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	log.Info("shutting down")

	ctx2, cancel2 := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel2()
	_ = srv.Shutdown(ctx2)
	prod.Close()      // close inbox -> flush & close writer
	cancel()          // stop producer loop
	prod.WaitClosed() // drain
}

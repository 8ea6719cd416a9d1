package main

import (
	"context"
	"errors"
	"github.com/ariefcatur/go-bbq-preorder/internal/catalog"
	"github.com/ariefcatur/go-bbq-preorder/internal/checkout"
	"github.com/ariefcatur/go-bbq-preorder/internal/config"
	"github.com/ariefcatur/go-bbq-preorder/internal/httpx"
	kafkax "github.com/ariefcatur/go-bbq-preorder/internal/kafka"
	"github.com/ariefcatur/go-bbq-preorder/internal/logger"
	"github.com/ariefcatur/go-bbq-preorder/internal/orders"
	"github.com/ariefcatur/go-bbq-preorder/internal/payments"
	"github.com/ariefcatur/go-bbq-preorder/internal/postgres"
	"github.com/ariefcatur/go-bbq-preorder/internal/redisx"
	"github.com/ariefcatur/go-bbq-preorder/internal/relay"
	"github.com/ariefcatur/go-bbq-preorder/internal/session"
	"github.com/joho/godotenv"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	log := logger.New(logger.Options{Service: cfg.ServiceName, Env: cfg.AppEnv, Level: cfg.LogLevel})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	loc, err := cfg.Location()
	if err != nil {
		log.Error("invalid store timezone", "tz", cfg.Timezone, "err", err)
		os.Exit(1)
	}

	menu := loadMenu(ctx, cfg, log)

	// Redis
	rdb := redisx.New(cfg.RedisAddr)
	defer rdb.Close()

	// Kafka producer
	var events kafkax.Publisher = kafkax.Discard{Log: log}
	var prod *kafkax.Producer
	if len(cfg.KafkaBrokers) > 0 {
		prod = kafkax.NewProducer(cfg.KafkaBrokers, orders.TopicCheckout, 1024, log)
		prod.Start(ctx)
		events = prod
	} else {
		log.Warn("KAFKA_BROKERS not set, checkout events are not published")
	}

	if !cfg.SquareConfigured() {
		log.Warn("square credentials not set, online payments are disabled")
	}

	var mailer relay.Mailer
	m, err := relay.NewSMTPMailer(relay.SMTPConfig{
		Host: cfg.SMTPHost,
		Port: cfg.SMTPPort,
		User: cfg.SMTPUser,
		Pass: cfg.SMTPPass,
		From: cfg.FromEmail,
	})
	if err != nil {
		log.Warn("SMTP not configured, running in preview mode: orders are logged, not sent", "err", err)
	} else {
		mailer = m
	}

	svc := &checkout.Service{
		Menu:     menu,
		Policy:   orders.NewPolicy(loc),
		Payments: payments.NewSquare(cfg.SquareAccessToken, cfg.SquareLocationID, cfg.SquareEnvironment),
		Relay:    relay.New(mailer, cfg.OrderToMail, log),
		Sessions: session.NewRedisStore(rdb),
		Events:   events,
		Producer: cfg.ServiceName,
		Log:      log,

		CaptureTimeout: cfg.CaptureTimeout,
	}

	router := httpx.NewRouter()
	h := &httpx.StorefrontHandler{Checkout: svc, Menu: menu, Log: log}
	h.Register(router)

	srv := &http.Server{Addr: cfg.HTTPAddr, Handler: router, ReadHeaderTimeout: 10 * time.Second}

	// graceful shutdown
	go func() {
		log.Info("HTTP listening", "addr", cfg.HTTPAddr, "menu_items", menu.Len(), "timezone", loc.String())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("listen", "err", err)
			os.Exit(1)
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	log.Info("shutting down...")

	// in-flight captures finish before the producer closes
	ctx2, cancel2 := context.WithTimeout(context.Background(), cfg.CaptureTimeout+5*time.Second)
	defer cancel2()
	_ = srv.Shutdown(ctx2)
	if prod != nil {
		prod.Close()
		cancel()
		prod.WaitClosed()
	}
}

// loadMenu reads the menu from Postgres when a DSN is set and falls back to the
// built-in menu otherwise.
func loadMenu(ctx context.Context, cfg config.Config, log *slog.Logger) *catalog.Catalog {
	if cfg.PostgresDSN == "" {
		return catalog.Default()
	}
	db, err := postgres.Connect(ctx, cfg.PostgresDSN, cfg.ServiceName)
	if err != nil {
		log.Error("db connect", "err", err)
		os.Exit(1)
	}
	defer db.Close()

	menu, err := catalog.Load(ctx, db)
	if err != nil {
		log.Error("load menu", "err", err)
		os.Exit(1)
	}
	return menu
}

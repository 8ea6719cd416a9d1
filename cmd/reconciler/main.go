package main

import (
	"context"
	"github.com/ariefcatur/go-bbq-preorder/internal/config"
	kafkax "github.com/ariefcatur/go-bbq-preorder/internal/kafka"
	"github.com/ariefcatur/go-bbq-preorder/internal/logger"
	"github.com/ariefcatur/go-bbq-preorder/internal/orders"
	"github.com/ariefcatur/go-bbq-preorder/internal/reconcile"
	"github.com/ariefcatur/go-bbq-preorder/internal/redisx"
	"github.com/joho/godotenv"
	"os"
	"os/signal"
	"sync"
	"syscall"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	name := cfg.ServiceName + "-reconciler"
	log := logger.New(logger.Options{Service: name, Env: cfg.AppEnv, Level: cfg.LogLevel})

	if len(cfg.KafkaBrokers) == 0 {
		log.Error("KAFKA_BROKERS is required")
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Redis
	rdb := redisx.New(cfg.RedisAddr)
	defer rdb.Close()

	svc := &reconcile.Service{
		Redis:       rdb,
		Grace:       cfg.ReconGrace,
		Log:         log,
		ServiceName: name,
	}

	workers := cfg.ReconWorkers
	cons := kafkax.NewConsumer(cfg.KafkaBrokers, cfg.ReconGroup, orders.TopicCheckout, workers, log)

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		log.Info("reconciler consumer started", "group", cfg.ReconGroup, "topic", orders.TopicCheckout, "workers", workers)
		if err := cons.Start(ctx, svc.HandleEvent); err != nil {
			log.Error("consumer exit", "err", err)
			cancel()
		}
	}()
	go func() {
		defer wg.Done()
		svc.Run(ctx, cfg.ReconSweepInterval)
	}()

	// graceful shutdown
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-sig:
	case <-ctx.Done():
	}
	log.Info("shutting down reconciler...")
	cancel()
	wg.Wait()
}

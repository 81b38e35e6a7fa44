package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/maisonnoir/storefront/internal/config"
	kafkax "github.com/maisonnoir/storefront/internal/kafka"
	"github.com/maisonnoir/storefront/internal/redisx"
	"github.com/maisonnoir/storefront/internal/revalidate"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	rdb := redisx.New(cfg.RedisAddr)
	defer rdb.Close()

	group := getenv("REVALIDATOR_GROUP", "revalidator")
	workers := mustAtoi(os.Getenv("REVALIDATOR_WORKERS"), "4")
	cons := kafkax.NewConsumer(cfg.KafkaBrokers, group, revalidate.Topic, workers)

	inv := &revalidate.Invalidator{Redis: rdb, ServiceName: cfg.ServiceName + "-revalidator"}

	go func() {
		log.Printf("revalidator started: group=%s topic=%s workers=%d", group, revalidate.Topic, workers)
		if err := cons.Start(ctx, inv.Handle); err != nil {
			log.Printf("consumer exit: %v", err)
			cancel()
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	log.Println("shutting down revalidator...")
	cancel()
	time.Sleep(500 * time.Millisecond)
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func mustAtoi(s, def string) int {
	if s == "" {
		s = def
	}
	i, err := strconv.Atoi(s)
	if err != nil {
		return 1
	}
	return i
}

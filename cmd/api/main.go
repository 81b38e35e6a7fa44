package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/maisonnoir/storefront/internal/auth"
	"github.com/maisonnoir/storefront/internal/catalog"
	"github.com/maisonnoir/storefront/internal/config"
	"github.com/maisonnoir/storefront/internal/httpx"
	kafkax "github.com/maisonnoir/storefront/internal/kafka"
	"github.com/maisonnoir/storefront/internal/media"
	"github.com/maisonnoir/storefront/internal/orders"
	"github.com/maisonnoir/storefront/internal/payments"
	"github.com/maisonnoir/storefront/internal/postgres"
	"github.com/maisonnoir/storefront/internal/redisx"
	"github.com/maisonnoir/storefront/internal/revalidate"
	"github.com/maisonnoir/storefront/internal/stats"
	"github.com/maisonnoir/storefront/internal/users"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// DB
	db, err := postgres.Connect(ctx, cfg.PostgresDSN)
	if err != nil {
		log.Fatalf("db connect: %v", err)
	}
	defer db.Close()

	// Redis
	rdb := redisx.New(cfg.RedisAddr)
	defer rdb.Close()

	// Kafka producers
	revalProd := kafkax.NewProducer(cfg.KafkaBrokers, revalidate.Topic, 1024)
	revalProd.Start(ctx)
	createdProd := kafkax.NewProducer(cfg.KafkaBrokers, orders.TopicOrderCreated, 1024)
	createdProd.Start(ctx)
	statusProd := kafkax.NewProducer(cfg.KafkaBrokers, orders.TopicOrderStatusChanged, 1024)
	statusProd.Start(ctx)

	reval := &revalidate.Publisher{Producer: revalProd, Service: cfg.ServiceName}

	// Services
	productSvc := &catalog.ProductService{Store: &catalog.ProductRepo{DB: db}, Reval: reval}
	categorySvc := &catalog.CategoryService{Store: &catalog.CategoryRepo{DB: db}, Reval: reval}
	collectionSvc := &catalog.CollectionService{Store: &catalog.CollectionRepo{DB: db}, Reval: reval}
	slideSvc := &catalog.HeroSlideService{Store: &catalog.HeroSlideRepo{DB: db}, Reval: reval}

	orderSvc := &orders.Service{
		Store:           &orders.Repo{DB: db},
		Intents:         payments.NewStripe(cfg.StripeKey),
		Reval:           reval,
		ProducerCreated: createdProd,
		ProducerStatus:  statusProd,
		ServiceName:     cfg.ServiceName,
		Currency:        cfg.Currency,
	}

	authSvc := &auth.Service{
		Users:      &users.Repo{DB: db},
		Sessions:   &auth.RedisSessions{RDB: rdb},
		SessionTTL: cfg.SessionTTL,
	}

	statsSvc := &stats.Service{Repo: &stats.PGRepo{DB: db}, Redis: rdb}

	mediaStore := &media.DiskStore{Dir: cfg.MediaDir, BaseURL: cfg.MediaBaseURL}

	// Router
	guard := &httpx.Guard{Auth: authSvc}
	router := httpx.NewRouter()
	httpx.ServeMedia(router, cfg.MediaBaseURL, cfg.MediaDir)

	(&httpx.AuthHandler{Auth: authSvc}).Register(router)
	(&httpx.CatalogHandler{
		Products:    productSvc,
		Categories:  categorySvc,
		Collections: collectionSvc,
		Slides:      slideSvc,
	}).Register(router)
	(&httpx.OrdersHandler{
		Orders:        orderSvc,
		Guard:         guard,
		WebhookSecret: os.Getenv("STRIPE_WEBHOOK_SECRET"),
	}).Register(router)
	(&httpx.AdminHandler{
		Guard:       guard,
		Products:    productSvc,
		Categories:  categorySvc,
		Collections: collectionSvc,
		Slides:      slideSvc,
		Orders:      orderSvc,
		Stats:       statsSvc,
		Media:       mediaStore,
	}).Register(router)

	srv := &http.Server{Addr: cfg.HTTPAddr, Handler: router}

	go func() {
		log.Printf("HTTP listening at %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %v", err)
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	log.Println("shutting down...")

	ctx2, cancel2 := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel2()
	_ = srv.Shutdown(ctx2)

	revalProd.Close()
	createdProd.Close()
	statusProd.Close()
	cancel()
	revalProd.WaitClosed()
	createdProd.WaitClosed()
	statusProd.WaitClosed()
}

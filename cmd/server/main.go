package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	appointmentrepo "github.com/Pageblan/Carepulse/internal/appointment/repository"
	appointmentsvc "github.com/Pageblan/Carepulse/internal/appointment/service"
	"github.com/Pageblan/Carepulse/internal/cart"
	"github.com/Pageblan/Carepulse/internal/catalog/cache"
	catalogrepo "github.com/Pageblan/Carepulse/internal/catalog/repository"
	catalogsvc "github.com/Pageblan/Carepulse/internal/catalog/service"
	"github.com/Pageblan/Carepulse/internal/checkout"
	"github.com/Pageblan/Carepulse/internal/events"
	h "github.com/Pageblan/Carepulse/internal/http"
	"github.com/Pageblan/Carepulse/internal/images"
	"github.com/Pageblan/Carepulse/internal/mongodb"
	"github.com/Pageblan/Carepulse/internal/news"
	"github.com/Pageblan/Carepulse/internal/notify"
	"github.com/Pageblan/Carepulse/internal/payment"
	"github.com/Pageblan/Carepulse/internal/session"
	"github.com/Pageblan/Carepulse/pkg/logger"
)

type Config struct {
	HTTPPort string
	Env      string
	LogLevel string

	MongoURI  string
	MongoDB   string
	RedisAddr string

	KafkaBrokers []string

	PaymentAPIURL    string
	PaymentSecretKey string
	Currency         string
	ShippingRate     string

	NewsAPIKey string

	StorageProjectID string
	StorageAPIKey    string

	RequestTimeout  time.Duration
	CheckoutTimeout time.Duration
	SessionTTL      time.Duration
	ShutdownTimeout time.Duration
}

func loadConfig() *Config {
	cfg := &Config{
		HTTPPort: getEnv("HTTP_PORT", "8080"),
		Env:      getEnv("APP_ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),

		MongoURI:  getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:   getEnv("MONGO_DB", "carepulse"),
		RedisAddr: getEnv("REDIS_ADDR", "localhost:6379"),

		PaymentAPIURL:    getEnv("PAYMENT_API_URL", "https://api.stripe.com"),
		PaymentSecretKey: getEnv("PAYMENT_SECRET_KEY", ""),
		Currency:         getEnv("PAYMENT_CURRENCY", "kes"),
		ShippingRate:     getEnv("PAYMENT_SHIPPING_RATE", "shr_standard"),

		NewsAPIKey: getEnv("NEWS_API_KEY", ""),

		StorageProjectID: getEnv("STORAGE_PROJECT_ID", ""),
		StorageAPIKey:    getEnv("STORAGE_API_KEY", ""),

		RequestTimeout:  30 * time.Second,
		CheckoutTimeout: 15 * time.Second,
		SessionTTL:      session.DefaultTTL,
		ShutdownTimeout: 10 * time.Second,
	}

	if brokers := getEnv("KAFKA_BROKERS", ""); brokers != "" {
		cfg.KafkaBrokers = strings.Split(brokers, ",")
	}
	return cfg
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func main() {
	cfg := loadConfig()

	logger.New(logger.Options{
		Service: "carepulse",
		Env:     cfg.Env,
		Level:   cfg.LogLevel,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := mongodb.Connect(ctx, cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		log.Fatalf("Failed to connect to mongodb: %v", err)
	}
	defer func() {
		if err := db.Client().Disconnect(context.Background()); err != nil {
			log.Printf("mongodb disconnect error: %v", err)
		}
	}()

	redisClient := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	defer redisClient.Close()

	medicineRepo := catalogrepo.NewMongoRepository(db)
	if err := medicineRepo.CreateIndexes(ctx); err != nil {
		log.Printf("failed to create medicine indexes: %v", err)
	}
	medicineCache := cache.NewRedisCache(redisClient)
	catalogService := catalogsvc.NewCatalogService(medicineRepo, medicineCache)

	appointmentRepo := appointmentrepo.NewMongoRepository(db)
	if err := appointmentRepo.CreateIndexes(ctx); err != nil {
		log.Printf("failed to create appointment indexes: %v", err)
	}
	appointmentService := appointmentsvc.NewAppointmentService(appointmentRepo)

	paymentClient := payment.NewClient(cfg.PaymentAPIURL, cfg.PaymentSecretKey)
	newsClient := news.NewClient(cfg.NewsAPIKey)
	imageFetcher := images.NewFetcher(cfg.StorageProjectID, cfg.StorageAPIKey)

	var publisher events.Publisher = events.Nop{}
	if len(cfg.KafkaBrokers) > 0 {
		kafkaPublisher := events.NewKafkaPublisher(cfg.KafkaBrokers...)
		defer kafkaPublisher.Close()
		publisher = kafkaPublisher
	}

	// Each browser session gets its own cart and checkout flow.
	builder := checkout.NewBuilder(cfg.Currency, cfg.ShippingRate)
	sessions := session.NewManager(cfg.SessionTTL, func(id string) *session.Session {
		notifier := notify.Log{}
		return &session.Session{
			ID:       id,
			Cart:     cart.NewStore(notifier),
			Checkout: checkout.NewController(paymentClient, builder, cfg.CheckoutTimeout, notifier),
		}
	})
	defer sessions.Close()

	router := h.NewRouter(h.RouterConfig{
		Sessions:       sessions,
		Cart:           h.NewCartHandler(catalogService, cfg.RequestTimeout),
		Checkout:       h.NewCheckoutHandler(publisher, cfg.Currency),
		Medicines:      h.NewMedicineHandler(catalogService, imageFetcher, cfg.RequestTimeout),
		Appointments:   h.NewAppointmentHandler(appointmentService, cfg.RequestTimeout),
		News:           h.NewNewsHandler(newsClient, cfg.RequestTimeout),
		RequestTimeout: cfg.RequestTimeout,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		slog.Info("server starting", "port", cfg.HTTPPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("server forced to shutdown: %v", err)
	}

	slog.Info("server exited")
}

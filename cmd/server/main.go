package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	"toolfacturer-backend/internal/adapter/handler"
	"toolfacturer-backend/internal/adapter/payment"
	"toolfacturer-backend/internal/adapter/storage"
	"toolfacturer-backend/internal/config"
	"toolfacturer-backend/internal/core/service"
	"toolfacturer-backend/internal/port"
	"toolfacturer-backend/internal/token"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	store, client := openStore(cfg)

	var processor port.PaymentProcessor = payment.Disabled{}
	if cfg.StripeSecretKey != "" {
		processor = payment.NewStripeProcessor(cfg.StripeSecretKey)
	} else {
		log.Println("STRIPE_SECRET_KEY not set, payment intents are disabled")
	}

	tokens := token.NewService(cfg.TokenSecret, cfg.TokenTTL)
	users := service.NewUserService(store, tokens)
	h := handler.New(
		service.NewCatalogService(store, store),
		users,
		service.NewOrderService(store, store),
		service.NewReviewService(store),
		service.NewPaymentService(processor, cfg.Currency),
	)

	httpServer := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: handler.NewRouter(h, tokens, users, cfg.CORSOrigins),
	}

	go func() {
		log.Printf("listening on port %s", cfg.Port)
		if err := httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("HTTP server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("HTTP shutdown: %v", err)
	}
	log.Println("HTTP server stopped")

	if client != nil {
		if err := client.Disconnect(shutdownCtx); err != nil {
			log.Printf("mongo disconnect: %v", err)
		}
		log.Println("mongo connection closed")
	}
}

// openStore returns the configured store. The mongo client is nil for the
// in-memory driver.
func openStore(cfg *config.Config) (storage.Store, *mongo.Client) {
	if cfg.StoreDriver == config.DriverMemory {
		log.Println("using in-memory store, data is lost on exit")
		return storage.NewMemoryStore(), nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	log.Printf("connecting to MongoDB database %q", cfg.MongoDB)
	client, err := storage.Connect(ctx, cfg.MongoURL)
	if err != nil {
		log.Fatal(err)
	}
	store := storage.NewMongoStore(client.Database(cfg.MongoDB))
	if err := store.EnsureIndexes(ctx); err != nil {
		log.Fatal(err)
	}
	log.Println("connected to mongo")
	return store, client
}

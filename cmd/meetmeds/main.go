// cmd/meetmeds/main.go
package main

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/meetmeds/storefront/internal/adapters/memory"
	"github.com/meetmeds/storefront/internal/adapters/mongo"
	"github.com/meetmeds/storefront/internal/adapters/redis"
	"github.com/meetmeds/storefront/internal/application"
	"github.com/meetmeds/storefront/internal/config"
	"github.com/meetmeds/storefront/internal/domain"
	"github.com/meetmeds/storefront/internal/ports"
	"github.com/meetmeds/storefront/internal/viewstate"
	"github.com/meetmeds/storefront/pkg/logger"
	"github.com/meetmeds/storefront/pkg/shutdown"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("failed to load env variables", err)
	}
	cfg := config.Load()

	zlog, err := logger.New(cfg.Env)
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer zlog.Sync()

	ctx, cancel := shutdown.WithSignals(context.Background())
	defer cancel()

	connectCtx, connectCancel := context.WithTimeout(ctx, 10*time.Second)
	defer connectCancel()
	client, err := mongo.Connect(connectCtx, cfg.MongoURI)
	if err != nil {
		zlog.Fatal("failed to connect to MongoDB", zap.Error(err))
	}
	defer client.Disconnect(context.Background())
	remote := mongo.NewRemoteStore(client.Database(cfg.MongoDatabase))

	rcache := redis.NewStore(cfg.RedisAddr, cfg.RedisUsername, cfg.RedisPassword, cfg.RedisDB)
	var cache localStore = rcache
	if err := rcache.Ping(ctx); err != nil {
		// no cache server around, run on the in-process store instead
		zlog.Warn("redis unavailable, falling back to in-process cache", zap.Error(err))
		cache = memory.NewStore()
	}

	if err := remote.SeedMedicines(ctx, sampleCatalog()); err != nil {
		zlog.Warn("catalog seeding failed", zap.Error(err))
	}

	authSvc := application.NewAuthService(remote, cache, zlog)
	catalogSvc := application.NewCatalogService(remote, cache, zlog)
	cartSvc := application.NewCartService(cache, zlog)
	orderSvc := application.NewOrderService(remote, authSvc, zlog)
	userSvc := application.NewUserService(remote, authSvc, zlog)

	catalog := viewstate.NewCatalog(catalogSvc)
	catalog.Start(ctx)
	defer catalog.Stop()

	cart := viewstate.NewCart(cartSvc)
	if err := cart.Start(ctx); err != nil {
		zlog.Fatal("cart subscription failed", zap.Error(err))
	}
	defer cart.Stop()

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case <-catalog.Changes():
				st := catalog.State()
				zlog.Info("catalog state",
					zap.Bool("loading", st.Loading),
					zap.Int("medicines", len(st.Medicines)),
					zap.String("error", st.Error),
				)
			case <-cart.Changes():
				st := cart.State()
				zlog.Info("cart state",
					zap.Int("items", len(st.Items)),
					zap.Float64("total", st.TotalPrice),
				)
			}
		}
	}()

	if user, err := authSvc.CurrentUser(ctx); err == nil && user != nil {
		zlog.Info("session restored", zap.String("uid", user.UID))
		if profile, err := userSvc.Profile(ctx, user.UID); err == nil {
			zlog.Info("profile loaded", zap.String("name", profile.Name), zap.String("email", profile.Email))
		}
		if orders, err := orderSvc.Orders(ctx); err == nil {
			zlog.Info("order history", zap.Int("orders", len(orders)))
		}
	} else {
		zlog.Info("no persisted session")
	}

	<-ctx.Done()
	zlog.Info("shutting down")
}

// localStore is everything the services need from the cache side.
type localStore interface {
	ports.CatalogCachePort
	ports.CartStorePort
	ports.SessionStorePort
}

func sampleCatalog() []domain.Medicine {
	return []domain.Medicine{
		{ID: "med-001", Name: "Paracetamol", Dosage: "500mg", Price: 2.50, Description: "Pain relief and fever reducer", ImageURL: "https://images.meetmeds.dev/paracetamol.png", InStock: true},
		{ID: "med-002", Name: "Ibuprofen", Dosage: "200mg", Price: 3.20, Description: "Anti-inflammatory pain relief", ImageURL: "https://images.meetmeds.dev/ibuprofen.png", InStock: true},
		{ID: "med-003", Name: "Amoxicillin", Dosage: "250mg", Price: 7.80, Description: "Broad spectrum antibiotic", ImageURL: "https://images.meetmeds.dev/amoxicillin.png", InStock: true},
		{ID: "med-004", Name: "Cetirizine", Dosage: "10mg", Price: 4.10, Description: "Antihistamine for allergy relief", ImageURL: "https://images.meetmeds.dev/cetirizine.png", InStock: false},
		{ID: "med-005", Name: "Omeprazole", Dosage: "20mg", Price: 5.60, Description: "Reduces stomach acid production", ImageURL: "https://images.meetmeds.dev/omeprazole.png", InStock: true},
	}
}

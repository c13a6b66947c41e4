package main

import (
	"time"

	account "github.com/Karmugilan015/aution-platform/internal/accountService"
	auction "github.com/Karmugilan015/aution-platform/internal/auctionService"
	"github.com/Karmugilan015/aution-platform/internal/config"
	"github.com/Karmugilan015/aution-platform/internal/repository/sqlite"
	"github.com/Karmugilan015/aution-platform/internal/server"
	"github.com/Karmugilan015/aution-platform/internal/token"
	"github.com/Karmugilan015/aution-platform/utils"
)

// devJWTSecret is used when JWT_SECRET is unset. Fine for local runs, never
// for a real deployment.
const devJWTSecret = "dev-only-insecure-secret"

func main() {
	cfg, err := config.Load()
	if err != nil {
		utils.Fatal("Failed to load configuration", map[string]any{"error": err.Error()})
	}
	utils.SetLevel(cfg.LogLevel)

	secret := cfg.JWTSecret
	if secret == "" {
		secret = devJWTSecret
		utils.Warn("JWT_SECRET not set, using insecure development secret", nil)
	}

	store, err := sqlite.New(cfg.DBPath)
	if err != nil {
		utils.Fatal("Failed to initialize storage", map[string]any{"error": err.Error(), "db_path": cfg.DBPath})
	}
	defer store.Close()
	utils.Info("Storage initialized", map[string]any{"db_path": cfg.DBPath})

	tokens := token.NewJWTManager(secret, cfg.TokenTTL)
	accountSvc := account.NewAccountService(store, tokens)
	auctionSvc := auction.NewAuctionService(store)

	if cfg.SweepInterval > 0 {
		go runSweeper(auctionSvc, cfg.SweepInterval)
	}

	router := server.SetupRouter(accountSvc, auctionSvc, tokens)

	utils.Info("Starting auction server", map[string]any{"addr": cfg.Addr()})
	if err := router.Run(cfg.Addr()); err != nil {
		utils.Fatal("Failed to start server", map[string]any{"error": err.Error()})
	}
}

// runSweeper periodically settles expired auctions. Lazy expiry on access
// remains the contract; this just keeps listings tidy between visits.
func runSweeper(svc *auction.AuctionService, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for range ticker.C {
		closed, err := svc.CloseExpired()
		if err != nil {
			utils.Error("Expiry sweep failed", map[string]any{"error": err.Error()})
			continue
		}
		if closed > 0 {
			utils.Info("Expiry sweep closed auctions", map[string]any{"count": closed})
		}
	}
}

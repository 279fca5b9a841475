package cmd

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"wallet-state/core/config"
	"wallet-state/core/database"
	"wallet-state/core/loader"
	"wallet-state/core/logger"
	"wallet-state/core/middleware/auth"
	"wallet-state/core/middleware/rayid"
	"wallet-state/core/storage"
	"wallet-state/core/stream"
	"wallet-state/feature/orchestrator"
	"wallet-state/feature/relay"
	"wallet-state/feature/snapshot"
	"wallet-state/feature/wallet"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"

	_ "wallet-state/docs/swagger"
)

// @title Wallet State API
// @version 1.0
// @description API serving merged wallet and account state with snapshot hydration.
// @host localhost:8080
// @BasePath /

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the wallet state server",
	Long:  `Starts the HTTP server, restores the persisted snapshot and initializes all enabled features.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()

		// 1. Load Configuration
		cfg, err := config.LoadConfig(configDir)
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}

		// 2. Initialize Logger
		logg, err := logger.New(&cfg.Log)
		if err != nil {
			log.Fatalf("Failed to initialize logger: %v", err)
		}
		defer logg.Sync()
		zap.ReplaceGlobals(logg)

		// 3. Open the snapshot medium
		medium, err := openMedium(ctx, cfg, logg)
		if err != nil {
			logg.Fatal("Failed to open snapshot storage", zap.String("medium", cfg.Storage.Medium), zap.Error(err))
		}
		logg = logg.With(zap.String("medium", cfg.Storage.Medium))

		// 4. Restore the snapshot and icon cache
		sched := stream.NewScheduler()
		store := snapshot.NewStore(ctx, medium, snapshot.StoreOptions{
			Key:       cfg.Hydration.StorageKey,
			Budget:    cfg.Hydration.SnapshotBudget,
			Scheduler: sched,
			Logger:    logg,
		})
		defer store.Close()

		icons := snapshot.NewIconCache(medium, cfg.Hydration.StorageKey, logg)
		icons.Load(ctx)

		// 5. Live sources: one relay per enabled platform
		var relays []*relay.Relay
		var connectors []wallet.Connector
		for _, p := range cfg.Hydration.Platforms {
			r, err := relay.New(wallet.Platform(p), sched, logg)
			if err != nil {
				logg.Fatal("Failed to create relay", zap.String("platform", p), zap.Error(err))
			}
			relays = append(relays, r)
			connectors = append(connectors, r)
		}

		// 6. State orchestrator
		orch, err := orchestrator.New(orchestrator.Options{
			Config:     cfg.Hydration,
			Connectors: connectors,
			Store:      store,
			Icons:      icons,
			Scheduler:  sched,
			Logger:     logg,
		})
		if err != nil {
			logg.Fatal("Failed to create orchestrator", zap.Error(err))
		}
		orch.Start()
		defer orch.Stop()

		// 7. Initialize Fiber App
		app := fiber.New(fiber.Config{
			DisableStartupMessage: true, // We will log our own startup message
		})

		// 8. Initialize Feature Loader
		mgr := loader.NewManager(logg)
		mgr.Register(orchestrator.NewFeature(orch))
		mgr.Register(relay.NewFeature(relays, logg))

		// Middleware Registration
		// 1. RayID (Must be first to trace everything)
		app.Use(rayid.New())

		// 2. Logging Middleware (Zap + RayID)
		app.Use(func(c *fiber.Ctx) error {
			l := logger.WithRayID(logg, c)
			l.Info("Request started",
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.String("ip", c.IP()),
			)
			err := c.Next()
			if err != nil {
				l.Error("Request error", zap.Error(err))
			}
			return err
		})

		// 3. Swagger Documentation (Public)
		app.Get("/swagger/*", swagger.HandlerDefault)

		// 4. Auth (Protect API)
		app.Use(auth.New(auth.Config{ApiKey: cfg.Server.ApiKey}))

		// 9. Load Features
		if err := mgr.LoadAll(app); err != nil {
			logg.Fatal("Failed to load features", zap.Error(err))
		}

		// 10. Start Server
		go func() {
			logg.Info("Starting server",
				zap.String("port", cfg.Server.Port),
				zap.Strings("platforms", cfg.Hydration.Platforms),
				zap.Duration("grace_period", cfg.Hydration.GracePeriod),
			)
			if err := app.Listen(cfg.Server.Address()); err != nil {
				logg.Fatal("Server failed to start", zap.Error(err))
			}
		}()

		// 11. Graceful Shutdown
		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
		logg.Info("Shutting down server...")
		if err := app.ShutdownWithTimeout(cfg.Server.ShutdownTimeout); err != nil {
			logg.Warn("Server shutdown incomplete", zap.Error(err))
		}
	},
}

// openMedium opens the configured snapshot medium. A database connection is
// only made for the sql medium.
func openMedium(ctx context.Context, cfg *config.Config, logg *zap.Logger) (storage.Storage, error) {
	var db *gorm.DB
	if cfg.Storage.Medium == storage.MediumSQL {
		conn, err := database.Connect(cfg.Database)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		db = conn
		logg.Info("Connected to database", zap.String("driver", cfg.Database.Driver))
	}

	return storage.Open(ctx, cfg.Storage, storage.Deps{
		DB:     db,
		Redis:  cfg.Redis,
		Logger: logg,
	})
}

func init() {
	RootCmd.AddCommand(startCmd)
}

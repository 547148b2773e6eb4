package cmd

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/MohamedAbuthar/gas/core/config"
	"github.com/MohamedAbuthar/gas/core/database"
	"github.com/MohamedAbuthar/gas/core/docstore"
	"github.com/MohamedAbuthar/gas/core/loader"
	"github.com/MohamedAbuthar/gas/core/logger"
	"github.com/MohamedAbuthar/gas/core/middleware/auth"
	"github.com/MohamedAbuthar/gas/core/middleware/rayid"
	"github.com/MohamedAbuthar/gas/core/storage"

	"github.com/MohamedAbuthar/gas/feature/attendance"
	"github.com/MohamedAbuthar/gas/feature/dailyupdate"
	"github.com/MohamedAbuthar/gas/feature/member"
	"github.com/MohamedAbuthar/gas/feature/role"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	_ "github.com/MohamedAbuthar/gas/docs/swagger"
)

// @title Gas Agency API
// @version 1.0
// @description API for gas agency daily operations.
// @host localhost:8080
// @BasePath /

// rosterAdapter bridges the member service to the daily-update roster view.
type rosterAdapter struct {
	members *member.Service
}

func (r rosterAdapter) ListActive(ctx context.Context) ([]dailyupdate.RosterMember, error) {
	records, err := r.members.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dailyupdate.RosterMember, 0, len(records))
	for _, rec := range records {
		out = append(out, dailyupdate.RosterMember{ID: rec.ID, Name: rec.Name})
	}
	return out, nil
}

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the gas agency server",
	Long:  `Starts the HTTP server and initializes all enabled features.`,
	Run: func(cmd *cobra.Command, args []string) {
		// 1. Load Configuration
		cfg, err := config.LoadConfig(".")
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

		// 3. Connect to Database
		db, err := database.Connect(cfg.Database)
		if err != nil {
			logg.Fatal("Failed to connect to database", zap.Error(err))
		}
		store, err := docstore.New(db)
		if err != nil {
			logg.Fatal("Failed to initialize document store", zap.Error(err))
		}

		// 4. Initialize Storage
		objects, err := storage.NewClient(cfg.Storage)
		if err != nil {
			logg.Fatal("Failed to create storage client", zap.Error(err))
		}

		// 5. Initialize Fiber App
		app := fiber.New(fiber.Config{
			DisableStartupMessage: true, // We log our own startup message
		})

		// 6. Initialize Feature Loader
		mgr := loader.NewManager()

		members := member.NewFeature(store, logg)
		mgr.Register(members)
		mgr.Register(attendance.NewFeature(store, logg))
		mgr.Register(role.NewFeature(store, logg))
		mgr.Register(dailyupdate.NewFeature(store, objects, cfg.Storage.Bucket,
			rosterAdapter{members: members.Service()}, logg))

		// Middleware Registration
		// RayID first so everything downstream is traceable.
		app.Use(rayid.New())

		// Request logging with Zap + RayID.
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

		// Swagger documentation (public).
		app.Get("/swagger/*", swagger.HandlerDefault)

		// Auth protects everything below.
		app.Use(auth.New(auth.Config{ApiKey: cfg.Server.ApiKey}))

		// 7. Load Features
		if err := mgr.LoadAll(app); err != nil {
			logg.Fatal("Failed to load features", zap.Error(err))
		}

		// 8. Start Server
		go func() {
			logg.Info("Starting server", zap.String("port", cfg.Server.Port))
			if err := app.Listen(":" + cfg.Server.Port); err != nil {
				logg.Fatal("Server failed to start", zap.Error(err))
			}
		}()

		// 9. Graceful Shutdown
		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
		logg.Info("Shutting down server...")
		_ = app.Shutdown()
	},
}

func init() {
	RootCmd.AddCommand(startCmd)
}

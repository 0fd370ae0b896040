package main

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/localnerve/rentdb/internal/config"
	"github.com/localnerve/rentdb/internal/database"
	"github.com/localnerve/rentdb/internal/handlers"
	"github.com/localnerve/rentdb/internal/logging"
	"github.com/localnerve/rentdb/internal/services"

	_ "github.com/localnerve/rentdb/docs/api" // Swagger docs
)

// @title RentDB API
// @version 1.0.0
// @description Property rental data service: properties, tenants, payments, maintenance, contracts and reports
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.url https://github.com/localnerve/rentdb
// @contact.email info@localnerve.com

// @license.name AGPL-3.0
// @license.url https://www.gnu.org/licenses/agpl-3.0.html

// @host localhost:3000
// @BasePath /api
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.New(logging.Options{}).Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	log := logging.New(logging.Options{Level: cfg.LogLevel, Format: cfg.LogFormat})
	fatal := func(msg string, err error) {
		log.Error(msg, "error", err)
		os.Exit(1)
	}

	creds, err := services.NewCredentials(cfg.JWTSecret, cfg.TokenIssuer, cfg.TokenTTL, cfg.BcryptCost)
	if err != nil {
		fatal("invalid credential settings", err)
	}

	db, err := database.Connect(cfg, log)
	if err != nil {
		fatal("failed to connect to database", err)
	}
	defer database.Close(db)

	if err := database.AutoMigrate(db); err != nil {
		fatal("failed to run migrations", err)
	}

	seeded, err := database.SeedAdmin(db, cfg.AdminUsername, cfg.AdminPassword, creds.Hash)
	if err != nil {
		fatal("failed to seed administrator", err)
	}
	if seeded {
		log.Warn("seeded initial administrator, change its password", "username", cfg.AdminUsername)
	}

	if err := os.MkdirAll(cfg.UploadDir, 0o755); err != nil {
		fatal("failed to create upload directory", err)
	}

	app := handlers.NewApp(handlers.Deps{
		Cfg:   cfg,
		DB:    db,
		Creds: creds,
		Log:   log,
		Now:   time.Now,
	}, handlers.AppOptions{Metrics: true, Swagger: true})

	// Graceful shutdown
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		log.Info("gracefully shutting down")
		_ = app.ShutdownWithTimeout(10 * time.Second)
	}()

	log.Info("starting server", "port", cfg.Port, "db_type", cfg.DBType)
	if err := app.Listen(":" + cfg.Port); err != nil {
		fatal("failed to start server", err)
	}

	log.Info("server stopped")
}

package main

import (
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/damianut/public-InterSynergy/internal/config"
	"github.com/damianut/public-InterSynergy/internal/controllers"
	"github.com/damianut/public-InterSynergy/internal/database"
	"github.com/damianut/public-InterSynergy/internal/mailer"
	"github.com/damianut/public-InterSynergy/internal/middleware"
	"github.com/damianut/public-InterSynergy/internal/mirror"
	"github.com/damianut/public-InterSynergy/internal/repositories"
	"github.com/damianut/public-InterSynergy/internal/routes"
	"github.com/damianut/public-InterSynergy/internal/services"
	"github.com/damianut/public-InterSynergy/internal/storage"
	"github.com/gin-gonic/gin"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	setupLogger(&cfg.Logging)

	if err := database.Connect(&cfg.Database); err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}
	defer func() {
		if err := database.Close(); err != nil {
			slog.Error("error closing database", "error", err)
		}
	}()

	if err := database.RunMigrations(&cfg.Database); err != nil {
		log.Fatalf("failed to run migrations: %v", err)
	}

	mail := mailer.New(&cfg.Email)
	candidateMirror := buildMirror(cfg, mail)
	store := storage.NewLocalStorage(cfg.Storage.Path)

	reloginWindow, err := cfg.Auth.GetReloginWindow()
	if err != nil {
		log.Fatalf("invalid relogin_window: %v", err)
	}

	flow := services.FlowContext{
		Users:           repositories.NewUserRepository(database.GetDB()),
		Mailer:          mail,
		Mirror:          candidateMirror,
		Storage:         store,
		BaseURL:         cfg.Server.BaseURL,
		MaxFailedLogins: cfg.Auth.MaxFailedLogins,
		ReloginWindow:   reloginWindow,
	}

	// Initialize services
	authService := services.NewAuthService(flow)
	accountService := services.NewAccountService(flow)
	adminService := services.NewAdminService(flow)
	restService := services.NewRestService(flow)

	// Initialize controllers
	authController := controllers.NewAuthController(authService, accountService)
	adminController := controllers.NewAdminController(adminService)
	restController := controllers.NewRestController(restService)

	// Setup router
	if strings.EqualFold(cfg.Server.Mode, "release") {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()
	routes.SetupRoutes(
		router,
		authController,
		adminController,
		restController,
		middleware.SessionAuth(authService),
		middleware.RequireAdmin(),
	)

	addr := cfg.Server.Host + ":" + strconv.Itoa(cfg.Server.Port)
	go func() {
		slog.Info("server running", "addr", addr)
		if err := router.Run(addr); err != nil && err != http.ErrServerClosed {
			log.Fatalf("failed to run server: %v", err)
		}
	}()

	waitForShutdown()
}

// buildMirror wires the candidate mirror against the secondary database,
// or a no-op when the mirror is disabled or unreachable. An unreachable
// mirror must not keep the account flows down.
func buildMirror(cfg *config.Config, mail mailer.Mailer) mirror.CandidateMirror {
	if !cfg.Mirror.Enabled {
		return mirror.Noop{}
	}
	db, err := database.ConnectMirror(&cfg.Mirror)
	if err != nil {
		slog.Error("mirror database unavailable, mirror disabled", "error", err)
		return mirror.Noop{}
	}
	return mirror.NewSyncer(db, mail, cfg.Mirror.AdminEmail)
}

func setupLogger(cfg *config.LoggingConfig) {
	level := slog.LevelInfo
	switch strings.ToLower(cfg.Level) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	var handler slog.Handler
	if strings.EqualFold(cfg.Format, "json") {
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	} else {
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	}
	slog.SetDefault(slog.New(handler))
}

func waitForShutdown() {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh
	slog.Info("shutting down server")
}

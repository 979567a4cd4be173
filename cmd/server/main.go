package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	_ "foodparadise/docs" // swagger docs

	"github.com/labstack/echo/v4"

	"foodparadise/internal/auth"
	"foodparadise/internal/cache"
	"foodparadise/internal/config"
	"foodparadise/internal/db"
	"foodparadise/internal/events"
	"foodparadise/internal/handler"
	"foodparadise/internal/obs"
	"foodparadise/internal/processor"
	"foodparadise/internal/repository"
	"foodparadise/internal/router"
	"foodparadise/internal/service"
)

// @title Food Paradise API
// @version 1.0
// @description Restaurant ordering backend: menu, carts, checkout, payment settlement and admin stats.
// @host localhost:8080
// @BasePath /
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("config", "error", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.SlogLevel()}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracer, err := obs.InitTracer(ctx, router.ServiceName, cfg.OTLPEndpoint, cfg.Environment)
	if err != nil {
		logger.Error("tracer init", "error", err)
		os.Exit(1)
	}

	gormDB, err := db.Open(cfg.DBDriver, cfg.DBDSN)
	if err != nil {
		logger.Error("database init", "error", err)
		os.Exit(1)
	}
	if cfg.ResetDB {
		logger.Warn("RESET_DB=true detected, dropping all tables")
	}
	if err := db.Migrate(gormDB, cfg.ResetDB); err != nil {
		logger.Error("auto-migrate", "error", err)
		os.Exit(1)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	if err := cacheClient.Ping(ctx); err != nil {
		logger.Warn("redis unavailable, running without cache", "addr", cfg.RedisAddr, "error", err)
	}

	var publisher events.Publisher
	if cfg.AMQPURL != "" {
		p, err := events.NewAMQPPublisher(cfg.AMQPURL, cfg.AMQPExchange)
		if err != nil {
			logger.Warn("rabbitmq unavailable, settlement events disabled", "error", err)
		} else {
			publisher = p
		}
	}

	paymentProcessor, err := processor.New(processor.Options{
		Provider:        cfg.PaymentProvider,
		StripeSecretKey: cfg.StripeSecretKey,
		OmisePublicKey:  cfg.OmisePublicKey,
		OmiseSecretKey:  cfg.OmiseSecretKey,
		OmiseSourceType: cfg.OmiseSourceType,
	})
	if err != nil {
		logger.Error("payment processor init", "error", err)
		os.Exit(1)
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	cartRepo := repository.NewCartRepository(gormDB)
	menuRepo := repository.NewMenuRepository(gormDB)
	paymentRepo := repository.NewPaymentRepository(gormDB)
	statsRepo := repository.NewStatsRepository(gormDB)

	// Initialize services
	tokens := auth.NewTokenService(cfg.JWTSecret, cfg.JWTTTL)
	revocations := auth.NewTokenStore(cacheClient, cfg.JWTTTL)
	userService := service.NewUserService(userRepo, cacheClient, revocations, logger)
	authority := auth.NewAuthority(userService, logger)
	authService := service.NewAuthService(tokens)
	cartService := service.NewCartService(cartRepo)
	menuService := service.NewMenuService(menuRepo, cacheClient, logger)
	checkoutService := service.NewCheckoutService(paymentProcessor, cfg.PaymentCurrency, logger)
	settlementService := service.NewSettlementService(paymentRepo, cartRepo, publisher, service.SettlementOptions{
		Atomic:          cfg.SettlementAtomic,
		DefaultCurrency: cfg.PaymentCurrency,
	}, logger)
	analyticsService := service.NewAnalyticsService(statsRepo, paymentRepo)

	e := echo.New()
	e.HideBanner = true
	router.Register(e, cfg, logger, tokens, revocations, authority, router.Handlers{
		Auth:    handler.NewAuthHandler(authService),
		User:    handler.NewUserHandler(userService),
		Cart:    handler.NewCartHandler(cartService, authority),
		Menu:    handler.NewMenuHandler(menuService),
		Payment: handler.NewPaymentHandler(checkoutService, settlementService),
		Stats:   handler.NewStatsHandler(analyticsService),
		Seed:    handler.NewSeedHandler(menuService),
	})

	go func() {
		addr := ":" + cfg.ServerPort
		logger.Info("starting server", "addr", addr, "swagger", "http://localhost:"+cfg.ServerPort+"/swagger/index.html")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server start", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown", "error", err)
	}
	if publisher != nil {
		if err := publisher.Close(); err != nil {
			logger.Warn("rabbitmq close", "error", err)
		}
	}
	if err := cacheClient.Close(); err != nil {
		logger.Warn("redis close", "error", err)
	}
	if err := db.Close(gormDB); err != nil {
		logger.Warn("database close", "error", err)
	}
	if err := shutdownTracer(shutdownCtx); err != nil {
		logger.Warn("tracer shutdown", "error", err)
	}
	logger.Info("server stopped")
}

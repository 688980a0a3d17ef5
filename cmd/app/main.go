package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"account-pool-service/internal/config"
	pg "account-pool-service/internal/infra/db/postgres"
	"account-pool-service/internal/infra/email"
	"account-pool-service/internal/infra/logging"
	"account-pool-service/internal/infra/metrics"
	red "account-pool-service/internal/infra/redis"
	"account-pool-service/internal/infra/sched"
	"account-pool-service/internal/infra/security"
	"account-pool-service/internal/infra/web"
	"account-pool-service/internal/usecase"
)

const version = "1.0.0"

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ---- CLI flags ----
	cfgPath := flag.String("config", "config.yaml", "path to YAML config file")
	devMode := flag.Bool("dev", false, "enable developer mode (console logging, console mail)")
	flag.Parse()

	cfg, err := config.LoadConfig(*cfgPath, *devMode)
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger := logging.New(cfg.Log, cfg.Runtime.Dev)
	if cfg.Runtime.Dev {
		logger.Info().Msg("developer mode enabled")
	}

	metrics.MustRegister()

	// ---- Postgres ----
	pool, err := pg.NewPgxPool(ctx, cfg.Database.URL, 10)
	if err != nil {
		logger.Fatal().Err(err).Msg("postgres")
	}
	defer pool.Close()

	// ---- Redis ----
	redisClient, err := red.NewClient(ctx, &cfg.Redis)
	if err != nil {
		logger.Fatal().Err(err).Msg("redis")
	}
	defer redisClient.Close()
	rateLimiter := red.NewRateLimiter(redisClient)

	// ---- Mail ----
	mailer, err := email.NewMailer(&cfg.Mail, *logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("mailer")
	}

	// ---- Repositories ----
	txManager := pg.NewTxManager(pool)
	userRepo := pg.NewUserRepo(pool)
	poolRepo := pg.NewPoolAccountRepo(pool)
	codeRepo := pg.NewActivationCodeRepo(pool)
	verificationRepo := pg.NewVerificationCodeRepo(pool)
	checkoutRepo := pg.NewCheckoutRepo(pool)
	publicInfoRepo := pg.NewPublicInfoRepo(pool)
	articleRepo := pg.NewArticleRepo(pool)
	bugReportRepo := pg.NewBugReportRepo(pool)

	// ---- Use cases ----
	hasher := security.NewPasswordHasher()
	tokens := web.NewTokenManager(&cfg.Auth)
	verificationUC := usecase.NewVerificationUseCase(verificationRepo, userRepo, mailer, logger)
	authUC := usecase.NewAuthUseCase(userRepo, verificationUC, hasher, tokens, logger)
	userUC := usecase.NewUserUseCase(userRepo, hasher, logger)
	activationUC := usecase.NewActivationUseCase(userRepo, codeRepo, txManager, logger)
	poolUC := usecase.NewPoolUseCase(userRepo, poolRepo, checkoutRepo, txManager, logger)
	adminUC := usecase.NewAdminUseCase(poolRepo, codeRepo, logger)
	systemUC := usecase.NewSystemUseCase(publicInfoRepo, articleRepo, bugReportRepo, version, logger)

	// ---- HTTP server ----
	srv := web.NewServer(authUC, userUC, activationUC, poolUC, adminUC, systemUC, tokens, rateLimiter, cfg, logger)
	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: srv.Router(),
	}
	go func() {
		logger.Info().Str("addr", server.Addr).Msg("http server listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error().Err(err).Msg("http server error")
		}
	}()

	// ---- Cleanup worker ----
	worker := sched.NewCleanupWorker(cfg.Cleanup.Interval, verificationRepo, pool, logger)
	go func() { _ = worker.Run(ctx) }()

	// ---- Graceful shutdown ----
	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
	<-sigc
	logger.Info().Msg("shutdown requested")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("http server shutdown")
	}
}

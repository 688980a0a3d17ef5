package web

import (
	"net/http"

	"account-pool-service/internal/config"
	"account-pool-service/internal/infra/redis"
	"account-pool-service/internal/usecase"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

// Server owns the HTTP routing for the whole service.
type Server struct {
	authUC     usecase.AuthUseCase
	userUC     usecase.UserUseCase
	activateUC usecase.ActivationUseCase
	poolUC     usecase.PoolUseCase
	adminUC    usecase.AdminUseCase
	systemUC   usecase.SystemUseCase

	tokens  *TokenManager
	limiter *redis.RateLimiter
	cfg     *config.Config
	log     *zerolog.Logger
}

func NewServer(
	authUC usecase.AuthUseCase,
	userUC usecase.UserUseCase,
	activateUC usecase.ActivationUseCase,
	poolUC usecase.PoolUseCase,
	adminUC usecase.AdminUseCase,
	systemUC usecase.SystemUseCase,
	tokens *TokenManager,
	limiter *redis.RateLimiter,
	cfg *config.Config,
	logger *zerolog.Logger,
) *Server {
	return &Server{
		authUC:     authUC,
		userUC:     userUC,
		activateUC: activateUC,
		poolUC:     poolUC,
		adminUC:    adminUC,
		systemUC:   systemUC,
		tokens:     tokens,
		limiter:    limiter,
		cfg:        cfg,
		log:        logger,
	}
}

// Router assembles the full route tree with middleware.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(TraceID())
	r.Use(RequestLog(s.log))
	r.Use(Recover(s.log))
	r.Use(Timeout(s.cfg.Server.RequestTimeout))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	rl := s.cfg.RateLimit
	authLimit := RateLimit(s.limiter, "auth", rl.AuthMax, rl.Window, rl.FailOpen, s.log)
	emailLimit := RateLimit(s.limiter, "email", rl.EmailMax, rl.Window, rl.FailOpen, s.log)

	r.Route("/auth", func(r chi.Router) {
		r.Use(authLimit)
		r.Post("/checkUser", s.handleCheckUser)
		r.With(emailLimit).Post("/register/sendEmailCode", s.handleSendEmailCode)
		r.Post("/emailRegister", s.handleRegister)
		r.Post("/login", s.handleLogin)
		r.Post("/emailResetPassword", s.handleResetPassword)
	})

	r.Route("/user", func(r chi.Router) {
		r.Use(RequireAuth(s.tokens))
		r.Get("/", s.handleUserInfo)
		r.Post("/updatePassword", s.handleUpdatePassword)
		r.Post("/activate", s.handleActivate)
	})

	r.Route("/account-pool", func(r chi.Router) {
		r.Use(RequireAuth(s.tokens))
		r.Get("/get", s.handleGetAccount)
	})

	r.Route("/admin", func(r chi.Router) {
		r.Use(RequireAdminKey(s.cfg.Auth.AdminAPIKey, s.log))
		r.Post("/create-account", s.handleCreateAccount)
		r.Post("/create-activation-code", s.handleCreateActivationCode)
	})

	r.Route("/system", func(r chi.Router) {
		r.Get("/public/info", s.handlePublicInfo)
		r.Get("/article/list/{page}", s.handleArticleList)
		r.Post("/report", s.handleReportBug)
		r.Get("/version", s.handleVersion)
	})

	return r
}

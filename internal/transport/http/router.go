package http

import (
	"net/http"

	"github.com/go-account-api/internal/application/account"
	"github.com/go-account-api/internal/config"
	"github.com/go-account-api/internal/metrics"
	"github.com/go-account-api/internal/transport/http/handler"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// NewRouter builds and returns the application router.
func NewRouter(cfg *config.Config, deps *Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	accountSvc := account.NewService(account.ServiceDeps{
		AccountRepo:      deps.AccountRepo,
		VerificationRepo: deps.VerificationRepo,
		ResetRepo:        deps.ResetRepo,
		Mailer:           deps.Mailer,
		Hasher:           account.NewBcryptHasher(0),
		Collector:        deps.Collector,
		BaseURL:          cfg.AppBaseURL,
		VerificationTTL:  cfg.VerificationTTL,
		ResetTTL:         cfg.ResetTTL,
	})

	healthH := handler.NewHealthHandler()
	accountH := handler.NewAccountHandler(accountSvc)
	verifyH := handler.NewVerifyHandler(accountSvc)
	resetH := handler.NewPasswordResetHandler(accountSvc)

	r.Route("/user", func(r chi.Router) {
		r.Post("/signup", accountH.Signup)
		r.Post("/signin", accountH.SignIn)
		r.Get("/verify/{accountId}/{token}", verifyH.Confirm)
		r.Get("/verified", verifyH.Verified)
		r.Post("/requestResetPassword", resetH.Request)
		r.Post("/resetPassword", resetH.Complete)
	})

	r.Get("/health-check/{action}", healthH.Ping)
	if deps.Gatherer != nil {
		r.Handle("/metrics", metrics.Handler(deps.Gatherer))
	}

	return r
}

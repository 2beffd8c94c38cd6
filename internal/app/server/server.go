package server

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"hrlite/internal/domain/auth"
	"hrlite/internal/domain/leave"
	"hrlite/internal/domain/org"
	"hrlite/internal/domain/reports"
	"hrlite/internal/platform/config"
	"hrlite/internal/platform/crypto"
	"hrlite/internal/platform/db"
	authhandler "hrlite/internal/transport/http/handlers/auth"
	leavehandler "hrlite/internal/transport/http/handlers/leave"
	orghandler "hrlite/internal/transport/http/handlers/org"
	reportshandler "hrlite/internal/transport/http/handlers/reports"
	"hrlite/internal/transport/http/middleware"
)

type App struct {
	Config config.Config
	DB     *pgxpool.Pool
	Router http.Handler
}

func New(ctx context.Context, cfg config.Config) (*App, error) {
	cryptoSvc, err := crypto.New(cfg.DataEncryptionKey)
	if err != nil {
		return nil, err
	}

	pool, err := db.Connect(ctx, cfg)
	if err != nil {
		return nil, err
	}

	if cfg.RunMigrations {
		if err := db.Migrate(ctx, pool, cfg.MigrationsDir); err != nil {
			pool.Close()
			return nil, err
		}
	}

	if cfg.RunSeed {
		if err := db.Seed(ctx, pool, cfg); err != nil {
			pool.Close()
			return nil, err
		}
	}

	codec := auth.NewTokenCodec(cfg.JWTSecret)
	authService := auth.NewService(auth.NewStore(pool), codec, cryptoSvc, cfg.AllowSelfSignup)
	orgStore := org.NewStore(pool)
	leaveStore := leave.NewStore(pool)
	leaveService := leave.NewService(leaveStore, orgStore)
	reportsService := reports.NewService(leaveStore)

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(middleware.SecureHeaders(cfg.Environment == "production"))
	router.Use(middleware.BodyLimit(cfg.MaxBodyBytes))

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	router.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := pool.Ping(ctx); err != nil {
			http.Error(w, "db not ready", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})

	router.Route("/api/v1", func(r chi.Router) {
		authHandler := authhandler.NewHandler(authService)
		r.Post("/auth/register", authHandler.HandleRegister)
		r.Post("/auth/login", authHandler.HandleLogin)

		// Everything else sits behind the authorization gate: a valid
		// bearer token first, a role check where the route demands one.
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth(codec))

			r.Get("/me", authHandler.HandleMe)
			r.Post("/auth/mfa/enroll", authHandler.HandleMFAEnroll)
			r.Post("/auth/mfa/verify", authHandler.HandleMFAVerify)

			orghandler.NewHandler(orgStore).RegisterRoutes(r)
			leavehandler.NewHandler(leaveService).RegisterRoutes(r)
			reportshandler.NewHandler(reportsService).RegisterRoutes(r)
		})
	})

	return &App{Config: cfg, DB: pool, Router: router}, nil
}

func (a *App) Close() {
	a.DB.Close()
}

func Run() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	app, err := New(context.Background(), cfg)
	if err != nil {
		log.Fatalf("startup failed: %v", err)
	}
	defer app.Close()

	log.Printf("server listening on %s", cfg.Addr)
	if err := http.ListenAndServe(cfg.Addr, app.Router); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}

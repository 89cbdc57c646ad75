// Package server wires the dependency graph and defines every route. It is
// the composition root: main.go hands it a Config, and everything from the
// database connection to the handler chain is assembled here.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/doughtobread/server/internal/auth"
	"github.com/doughtobread/server/internal/handler"
	"github.com/doughtobread/server/internal/middleware"
	sqliteRepo "github.com/doughtobread/server/internal/repository/sqlite"
	"github.com/doughtobread/server/internal/service"
)

// Config holds everything the server needs from the environment.
type Config struct {
	Port   int
	DBPath string

	JWTSecret string

	GoogleClientID     string
	GoogleClientSecret string
	GoogleCallbackURL  string
}

// Server owns the router and the database connection; the connection is
// closed during graceful shutdown.
type Server struct {
	router *chi.Mux
	config Config
	logger *slog.Logger
	db     *sqliteRepo.DB
}

func New(cfg Config, logger *slog.Logger) (*Server, error) {
	db, err := sqliteRepo.New(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Server{
		router: chi.NewRouter(),
		config: cfg,
		logger: logger,
		db:     db,
	}

	if err := s.setupRoutes(); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting up routes: %w", err)
	}

	return s, nil
}

func (s *Server) setupRoutes() error {
	s.router.Use(chimiddleware.RequestID)
	s.router.Use(chimiddleware.RealIP)
	s.router.Use(chimiddleware.Recoverer)
	s.router.Use(middleware.Logger(s.logger))

	tokens, err := auth.NewTokenService(s.config.JWTSecret)
	if err != nil {
		return fmt.Errorf("creating token service: %w", err)
	}
	passwords := auth.NewPasswordService()
	google := auth.NewGoogleProvider(
		s.config.GoogleClientID,
		s.config.GoogleClientSecret,
		s.config.GoogleCallbackURL,
	)

	// Services. The sqlite.DB value satisfies every repository interface, so
	// it is passed wherever a repository is expected.
	ledger := service.NewBadgeService(s.db, s.logger)
	auths := service.NewAuthService(s.db, tokens, passwords, s.logger)
	calc := service.NewCalculatorService(s.db, ledger, s.logger)
	quiz := service.NewQuizService(ledger, s.logger)
	budget := service.NewBudgetService(s.db, s.logger)
	poll := service.NewPollService(s.db, s.db, s.logger)
	modules := service.NewModuleService(s.db, s.logger)
	daily, err := service.NewDailyBreadService(s.logger)
	if err != nil {
		return fmt.Errorf("creating daily bread service: %w", err)
	}

	// Handlers.
	authHandler := handler.NewAuthHandler(auths, google, s.logger)
	badgeHandler := handler.NewBadgeHandler(ledger, s.logger)
	calcHandler := handler.NewCalculatorHandler(calc, s.logger)
	quizHandler := handler.NewQuizHandler(quiz, s.logger)
	budgetHandler := handler.NewBudgetHandler(budget, s.logger)
	pollHandler := handler.NewPollHandler(poll, s.logger)
	moduleHandler := handler.NewModuleHandler(modules, s.logger)
	dailyHandler := handler.NewDailyBreadHandler(daily, s.logger)

	s.router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	s.router.Route("/auth", func(r chi.Router) {
		r.Post("/signup", authHandler.HandleSignup)
		r.Post("/login", authHandler.HandleLogin)
		r.Get("/google/login", authHandler.HandleGoogleLogin)
		r.Get("/google/callback", authHandler.HandleGoogleCallback)
		r.Post("/logout", authHandler.HandleLogout)
	})

	s.router.Route("/api", func(r chi.Router) {
		// Public content. Identity is attached when a session cookie is
		// present but is not required.
		r.Group(func(r chi.Router) {
			r.Use(auth.OptionalAuth(tokens))

			r.Get("/modules", moduleHandler.HandleList)
			r.Get("/modules/{id}", moduleHandler.HandleGet)
			r.Get("/daily-bread", dailyHandler.HandleToday)
		})

		// Everything user-scoped requires a valid session.
		r.Group(func(r chi.Router) {
			r.Use(auth.RequireAuth(tokens))

			r.Get("/me", authHandler.HandleMe)
			r.Get("/badges", badgeHandler.HandleList)

			r.Post("/calculator/use", calcHandler.HandleUse)
			r.Get("/calculator/usage", calcHandler.HandleUsage)

			r.Post("/budget/calculate", budgetHandler.HandleCalculate)
			r.Get("/budget/predefined", budgetHandler.HandlePredefined)
			r.Get("/budget/items", budgetHandler.HandleListItems)
			r.Post("/budget/items", budgetHandler.HandleCreateItem)
			r.Put("/budget/items/{id}", budgetHandler.HandleUpdateItem)
			r.Delete("/budget/items/{id}", budgetHandler.HandleDeleteItem)

			r.Get("/quiz", quizHandler.HandleQuestions)
			r.Post("/quiz/grade", quizHandler.HandleGrade)

			r.Get("/poll", pollHandler.HandleGet)
			r.Post("/poll", pollHandler.HandleSubmit)
		})
	})

	return nil
}

// Start runs the server until SIGINT/SIGTERM, then shuts down gracefully:
// stop accepting connections, drain in-flight requests, close the database.
func (s *Server) Start() error {
	defer s.db.Close()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", s.config.Port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("server starting",
			slog.Int("port", s.config.Port),
			slog.String("database", s.config.DBPath),
		)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}

	case sig := <-quit:
		s.logger.Info("shutdown signal received", slog.String("signal", sig.String()))

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		s.logger.Info("server stopped gracefully")
	}

	return nil
}

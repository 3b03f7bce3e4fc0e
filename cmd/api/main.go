package main

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/scott3212/EventCostSplit-sub002/docs"
	"github.com/scott3212/EventCostSplit-sub002/internal/balance"
	"github.com/scott3212/EventCostSplit-sub002/internal/config"
	"github.com/scott3212/EventCostSplit-sub002/internal/database"
	"github.com/scott3212/EventCostSplit-sub002/internal/event"
	"github.com/scott3212/EventCostSplit-sub002/internal/expense"
	"github.com/scott3212/EventCostSplit-sub002/internal/expense/split"
	"github.com/scott3212/EventCostSplit-sub002/internal/payment"
	"github.com/scott3212/EventCostSplit-sub002/internal/user"
	"github.com/scott3212/EventCostSplit-sub002/pkg/logging"
	mw "github.com/scott3212/EventCostSplit-sub002/pkg/middleware"
)

// @title        EventCostSplit API
// @version      1.0
// @description  Cost-splitting ledger for group events.
// @BasePath     /api
func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		slog.Info("No .env file found, using environment variables")
	}

	// Load configuration
	cfg := config.Load()
	logging.Setup(cfg.LogLevel)

	// Initialize database connection
	db, err := database.NewPostgresConnection(cfg.DatabaseURL)
	if err != nil {
		slog.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	slog.Info("Connected to database")

	// Split calculator shared by expense validation and the balance engine
	calculator := split.NewCalculator()
	calculator.Tolerance = cfg.SplitTolerance

	// User feature
	userRepo := user.NewRepository(db)
	userService := user.NewService(userRepo)
	userHandler := user.NewHandler(userService)

	// Event feature
	eventRepo := event.NewRepository(db)
	eventService := event.NewService(eventRepo)
	eventHandler := event.NewHandler(eventService)

	// Expense feature (split rules validated on every write)
	expenseRepo := expense.NewRepository(db)
	expenseService := expense.NewService(expenseRepo, eventRepo, calculator)
	expenseHandler := expense.NewHandler(expenseService)

	// Payment feature
	paymentRepo := payment.NewRepository(db)
	paymentService := payment.NewService(paymentRepo, eventRepo)
	paymentHandler := payment.NewHandler(paymentService)

	// Balance engine (aggregator + planner behind the facade)
	balanceStore := balance.NewRepositoryStore(eventRepo, expenseRepo, paymentRepo, userRepo)
	balanceService := balance.NewService(balanceStore, balance.NewAggregator(calculator), balance.NewPlanner())
	balanceHandler := balance.NewHandler(balanceService)

	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(mw.Metrics)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	// Balance queries for one event live under the event subtree
	eventRoutes := eventHandler.Routes()
	eventRoutes.Get("/{id}/balance", balanceHandler.GetEventBalance)
	eventRoutes.Get("/{id}/settlements", balanceHandler.GetEventSettlements)

	// API routes
	r.Route("/api", func(r chi.Router) {
		r.Mount("/users", userHandler.Routes())
		r.Mount("/events", eventRoutes)
		r.Mount("/expenses", expenseHandler.Routes())
		r.Mount("/payments", paymentHandler.Routes())

		r.Get("/balance", balanceHandler.GetGlobalBalance)
		r.Get("/settlements", balanceHandler.GetGlobalSettlements)
	})

	// Start server
	port := cfg.Port
	if port == "" {
		port = "8080"
	}

	slog.Info("Server starting", "port", port)
	if err := http.ListenAndServe(":"+port, r); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}

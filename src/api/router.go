package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"fintrack-server/src/config"
	"fintrack-server/src/handlers"
	"fintrack-server/src/middleware"
)

func NewRouter(pool *pgxpool.Pool, cfg config.Config) *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.CORSMiddleware)
	r.Use(middleware.RequestLogger)

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("finance tracker API running"))
	})
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})

	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/register", handlers.Register(pool, cfg))
		r.Post("/auth/login", handlers.Login(pool, cfg))
		r.Post("/auth/logout", handlers.Logout())

		// Protected routes
		r.With(middleware.JWTAuthMiddleware(cfg.JWTSecret)).Group(func(r chi.Router) {
			r.Get("/auth/profile", handlers.Profile(pool))

			// Transactions
			r.Get("/transactions", handlers.GetAllTransactions(pool))
			r.Post("/transactions", handlers.CreateTransaction(pool))
			r.Get("/transactions/{id}", handlers.GetTransaction(pool))
			r.Put("/transactions/{id}", handlers.UpdateTransaction(pool))
			r.Delete("/transactions/{id}", handlers.DeleteTransaction(pool))

			// Budgets
			r.Get("/budgets", handlers.GetAllBudgets(pool))
			r.Post("/budgets", handlers.CreateBudget(pool))
			r.Get("/budgets/category/{category}", handlers.GetBudgetByCategory(pool))
			r.Put("/budgets/category/{category}", handlers.UpdateBudgetByCategory(pool))
			r.Delete("/budgets/category/{category}", handlers.DeleteBudgetByCategory(pool))

			// Settings
			r.Get("/settings", handlers.GetSettings(pool))
			r.Put("/settings", handlers.UpdateSettings(pool))
		})
	})

	return r
}

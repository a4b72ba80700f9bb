package httpserver

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"ranchbook/internal/auth"
	"ranchbook/internal/httpserver/handlers"
	"ranchbook/internal/models"
	"ranchbook/internal/storage"
)

func NewRouter(s storage.Store, am *auth.Manager, lg *zap.SugaredLogger) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Recoverer, middleware.Logger)

	r.Post("/api/auth/login", handlers.Login(am, lg))

	r.Group(func(protected chi.Router) {
		protected.Use(am.Authenticate)

		protected.Get("/api/auth/user", handlers.CurrentUser())
		protected.Post("/api/auth/logout", handlers.Logout(am, lg))

		protected.Get("/api/livestock", handlers.ListLivestock(s, lg))
		protected.Get("/api/livestock/stats", handlers.LivestockStats(s, lg))
		protected.Get("/api/transactions", handlers.ListTransactions(s, lg))
		protected.Get("/api/transactions/summary", handlers.FinancialSummary(s, lg))
		protected.Get("/api/inventory", handlers.ListInventory(s, lg))
		protected.Get("/api/inventory/low-stock", handlers.LowStockItems(s, lg))
		protected.Get("/api/partners", handlers.ListPartners(s, lg))
		protected.Get("/api/health-records", handlers.ListHealthRecords(s, lg))
		protected.Get("/api/health-records/upcoming", handlers.UpcomingHealthTasks(s, lg))
		protected.Get("/api/reports/{type}", handlers.Reports(s, lg))
		protected.Get("/api/export/csv/{type}", handlers.ExportCSV(s, lg))

		protected.Group(func(contributors chi.Router) {
			contributors.Use(am.RequireRole(models.RolePartner, models.RoleAdmin, models.RoleOwner))
			contributors.Post("/api/livestock", handlers.CreateLivestock(s, lg))
			contributors.Put("/api/livestock/{id}", handlers.UpdateLivestock(s, lg))
			contributors.Post("/api/transactions", handlers.CreateTransaction(s, lg))
			contributors.Put("/api/transactions/{id}", handlers.UpdateTransaction(s, lg))
			contributors.Post("/api/inventory", handlers.CreateInventoryItem(s, lg))
			contributors.Put("/api/inventory/{id}", handlers.UpdateInventoryItem(s, lg))
			contributors.Post("/api/health-records", handlers.CreateHealthRecord(s, lg))
		})

		protected.Group(func(managers chi.Router) {
			managers.Use(am.RequireRole(models.RoleAdmin, models.RoleOwner))
			managers.Delete("/api/livestock/{id}", handlers.DeleteLivestock(s, lg))
			managers.Delete("/api/transactions/{id}", handlers.DeleteTransaction(s, lg))
			managers.Delete("/api/inventory/{id}", handlers.DeleteInventoryItem(s, lg))
		})

		protected.Group(func(owner chi.Router) {
			owner.Use(am.RequireRole(models.RoleOwner))
			owner.Put("/api/admin/users/{id}/role", handlers.UpdateUserRole(s, lg))
			owner.Delete("/api/admin/users/{id}", handlers.DeactivateUser(s, lg))
			owner.Get("/api/admin/audit", handlers.ListAuditLogs(s, lg))
		})
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })
	return r
}

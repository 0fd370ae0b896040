package handlers

import (
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/rentdb/internal/config"
	"github.com/localnerve/rentdb/internal/middleware"
	"github.com/localnerve/rentdb/internal/models"
	"github.com/localnerve/rentdb/internal/services"
	"gorm.io/gorm"
)

// Deps are the collaborators every route needs
type Deps struct {
	Cfg   *config.Config
	DB    *gorm.DB
	Creds *services.Credentials
	Log   *slog.Logger
	Now   func() time.Time
}

// Register mounts the API under router, usually the /api group
func Register(router fiber.Router, d Deps) {
	auth := &AuthHandler{DB: d.DB, Creds: d.Creds, Log: d.Log}
	users := &UserHandler{DB: d.DB, Creds: d.Creds, Log: d.Log}
	properties := &PropertyHandler{DB: d.DB, Log: d.Log}
	tenants := &TenantHandler{DB: d.DB, Log: d.Log}
	payments := &PaymentHandler{DB: d.DB, Log: d.Log}
	maintenance := &MaintenanceHandler{DB: d.DB, Log: d.Log}
	leases := &ContractHandler{DB: d.DB, Log: d.Log}
	reports := &ReportHandler{DB: d.DB, Log: d.Log, Now: d.Now}
	logs := &LogHandler{DB: d.DB, Log: d.Log}
	health := &HealthHandler{Cfg: d.Cfg, DB: d.DB, Log: d.Log}
	upload := &UploadHandler{Dir: d.Cfg.UploadDir, MaxBytes: int64(d.Cfg.UploadMaxBytes), Log: d.Log}

	// Public
	router.Post("/auth/login", auth.Login)
	router.Get("/health", health.Health)

	authed := middleware.Authenticate(d.Creds, d.DB)
	admin := middleware.RequireRole(models.RoleAdmin)
	selfOrAdmin := middleware.RequireSelfOrRole("id", models.RoleAdmin)

	router.Post("/auth/refresh", authed, auth.Refresh)
	router.Get("/auth/me", authed, auth.Me)

	router.Get("/users", authed, admin, users.ListUsers)
	router.Post("/users", authed, admin, users.CreateUser)
	router.Get("/users/:id", authed, selfOrAdmin, users.GetUser)
	router.Put("/users/:id", authed, selfOrAdmin, users.UpdateUser)
	router.Delete("/users/:id", authed, admin, users.DeleteUser)

	router.Get("/properties", authed, properties.ListProperties)
	router.Post("/properties", authed, properties.CreateProperty)
	router.Delete("/properties", authed, admin, properties.BulkDeleteProperties)
	router.Get("/properties/:id", authed, properties.GetProperty)
	router.Put("/properties/:id", authed, properties.UpdateProperty)
	router.Delete("/properties/:id", authed, properties.DeleteProperty)

	router.Get("/tenants", authed, tenants.ListTenants)
	router.Post("/tenants", authed, tenants.CreateTenant)
	router.Delete("/tenants", authed, admin, tenants.BulkDeleteTenants)
	router.Get("/tenants/:id", authed, tenants.GetTenant)
	router.Put("/tenants/:id", authed, tenants.UpdateTenant)
	router.Delete("/tenants/:id", authed, tenants.DeleteTenant)
	router.Get("/tenants/:id/reminder", authed, tenants.Reminder)

	router.Get("/payments", authed, payments.ListPayments)
	router.Post("/payments", authed, payments.CreatePayment)
	router.Get("/payments/:id", authed, payments.GetPayment)
	router.Put("/payments/:id", authed, payments.UpdatePayment)
	router.Delete("/payments/:id", authed, admin, payments.DeletePayment)

	router.Get("/maintenance", authed, maintenance.ListMaintenance)
	router.Post("/maintenance", authed, maintenance.CreateMaintenance)
	router.Get("/maintenance/:id", authed, maintenance.GetMaintenance)
	router.Put("/maintenance/:id", authed, maintenance.UpdateMaintenance)
	router.Delete("/maintenance/:id", authed, maintenance.DeleteMaintenance)

	router.Get("/contracts", authed, leases.ListContracts)
	router.Post("/contracts", authed, leases.CreateContract)
	router.Get("/contracts/:id", authed, leases.GetContract)
	router.Put("/contracts/:id", authed, leases.UpdateContract)
	router.Delete("/contracts/:id", authed, leases.DeleteContract)

	router.Get("/stats", authed, reports.Stats)
	router.Get("/reports/summary", authed, reports.Summary)
	router.Get("/reports/summary/export", authed, reports.ExportSummary)

	router.Get("/logs", authed, admin, logs.ListOperations)

	router.Post("/upload", authed, upload.Upload)
}

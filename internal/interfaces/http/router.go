package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/farmacia-pro/internal/application/analytics"
	"github.com/tu-usuario/farmacia-pro/internal/application/auth"
	"github.com/tu-usuario/farmacia-pro/internal/application/payments"
	"github.com/tu-usuario/farmacia-pro/internal/application/reports"
	"github.com/tu-usuario/farmacia-pro/internal/application/sales"
	"github.com/tu-usuario/farmacia-pro/internal/application/usecase"
	"github.com/tu-usuario/farmacia-pro/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	MedicineUC  *usecase.MedicineUseCase
	CatalogUC   *usecase.CatalogUseCase
	PurchaseUC  *usecase.PurchaseUseCase
	SaleUC      *sales.CreateSaleUseCase
	PaymentUC   *payments.ReconcileUseCase
	ReportUC    *reports.GenerateUseCase
	ReportPDFUC *reports.PDFUseCase
	DashboardUC *analytics.DashboardUseCase
	AuthUC      *auth.AuthUseCase
	JWTSecret   string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Users (solo admin)
	users := protected.Group("/users", RequireRole(entity.RoleAdmin))
	users.Get("/", authHandler.ListUsers)

	// Medicines y ledger de inventario (protegido)
	medicines := protected.Group("/medicines")
	medicineHandler := NewMedicineHandler(deps.MedicineUC)
	medicines.Post("/", medicineHandler.Create)
	medicines.Get("/", medicineHandler.List)
	medicines.Get("/:id", medicineHandler.GetByID)
	medicines.Put("/:id", medicineHandler.Update)
	medicines.Delete("/:id", RequireRole(entity.RoleAdmin), medicineHandler.Delete)
	medicines.Post("/:id/stock", medicineHandler.AdjustStock)
	medicines.Get("/:id/stock-logs", medicineHandler.ListStockLogsByMedicine)
	protected.Get("/stock-logs", medicineHandler.ListStockLogs)

	// Categorías, proveedores y clientes (protegido)
	catalogHandler := NewCatalogHandler(deps.CatalogUC)
	categories := protected.Group("/categories")
	categories.Post("/", catalogHandler.CreateCategory)
	categories.Get("/", catalogHandler.ListCategories)
	categories.Put("/:id", catalogHandler.UpdateCategory)
	categories.Delete("/:id", RequireRole(entity.RoleAdmin), catalogHandler.DeleteCategory)

	suppliers := protected.Group("/suppliers")
	suppliers.Post("/", catalogHandler.CreateSupplier)
	suppliers.Get("/", catalogHandler.ListSuppliers)
	suppliers.Put("/:id", catalogHandler.UpdateSupplier)
	suppliers.Delete("/:id", RequireRole(entity.RoleAdmin), catalogHandler.DeleteSupplier)

	customers := protected.Group("/customers")
	customers.Post("/", catalogHandler.CreateCustomer)
	customers.Get("/", catalogHandler.ListCustomers)
	customers.Get("/:id", catalogHandler.GetCustomer)
	customers.Put("/:id", catalogHandler.UpdateCustomer)
	customers.Delete("/:id", RequireRole(entity.RoleAdmin), catalogHandler.DeleteCustomer)

	// Purchases (protegido)
	purchases := protected.Group("/purchases")
	purchaseHandler := NewPurchaseHandler(deps.PurchaseUC)
	purchases.Post("/", purchaseHandler.Create)
	purchases.Get("/", purchaseHandler.List)
	purchases.Get("/:id", purchaseHandler.GetByID)
	purchases.Put("/:id", purchaseHandler.Update)
	purchaseItems := protected.Group("/purchase-items")
	purchaseItems.Put("/:id", purchaseHandler.UpdateItem)
	purchaseItems.Delete("/:id", purchaseHandler.DeleteItem)

	// Sales (protegido)
	salesGroup := protected.Group("/sales")
	saleHandler := NewSaleHandler(deps.SaleUC)
	salesGroup.Post("/", saleHandler.Create)
	salesGroup.Get("/", saleHandler.List)
	salesGroup.Get("/:id", saleHandler.GetByID)
	customers.Get("/:id/sales", saleHandler.ListByCustomer)

	// Debts y payments (protegido)
	debts := protected.Group("/debts")
	debtHandler := NewDebtHandler(deps.PaymentUC)
	debts.Get("/", debtHandler.List)
	debts.Post("/:id/pay", debtHandler.Pay)
	debts.Put("/:id", debtHandler.Update)
	debts.Delete("/:id", RequireRole(entity.RoleAdmin), debtHandler.Delete)

	paymentsGroup := protected.Group("/payments")
	paymentHandler := NewPaymentHandler(deps.PaymentUC)
	paymentsGroup.Post("/", paymentHandler.Create)
	paymentsGroup.Get("/", paymentHandler.List)
	paymentsGroup.Get("/stats", paymentHandler.Stats)
	customers.Get("/:id/payments", paymentHandler.ListByCustomer)

	// Reports (protegido)
	reportsGroup := protected.Group("/reports")
	reportHandler := NewReportHandler(deps.ReportUC, deps.ReportPDFUC)
	reportsGroup.Post("/", reportHandler.Generate)
	reportsGroup.Get("/", reportHandler.List)
	reportsGroup.Get("/:id", reportHandler.GetByID)
	reportsGroup.Get("/:id/pdf", reportHandler.DownloadPDF)

	// Dashboard (protegido)
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	protected.Get("/dashboard", dashboardHandler.Summary)
}

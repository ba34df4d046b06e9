package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/sakti-pos/internal/application/auth"
	"github.com/jhoicas/sakti-pos/internal/application/expense"
	"github.com/jhoicas/sakti-pos/internal/application/inventory"
	"github.com/jhoicas/sakti-pos/internal/application/receivable"
	"github.com/jhoicas/sakti-pos/internal/application/reporting"
	"github.com/jhoicas/sakti-pos/internal/application/sales"
	"github.com/jhoicas/sakti-pos/internal/application/supplier"
	"github.com/jhoicas/sakti-pos/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC       *auth.AuthUseCase
	InventoryUC  *inventory.UseCase
	SalesUC      *sales.UseCase
	SupplierUC   *supplier.UseCase
	ReceivableUC *receivable.UseCase
	ExpenseUC    *expense.UseCase
	ReportingUC  *reporting.UseCase
	JWTSecret    string
}

// Router registra las rutas de la API.
// El kasir opera stock, ventas y proveedores; piutang, gastos y reportes son solo del dueño.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/auth/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	anyRole := RequireRole(entity.RoleOwner, entity.RoleCashier)
	ownerOnly := RequireRole(entity.RoleOwner)

	protected.Get("/auth/me", anyRole, authHandler.Me)

	// Stock (stok barang)
	stock := protected.Group("/stock", anyRole)
	stockHandler := NewStockHandler(deps.InventoryUC)
	stock.Get("/", stockHandler.List)
	stock.Get("/lookup", stockHandler.Lookup)
	stock.Post("/adjust", ownerOnly, stockHandler.Adjust)
	stock.Get("/:id", stockHandler.GetByID)
	stock.Post("/", stockHandler.Create)
	stock.Put("/:id", stockHandler.Update)
	stock.Delete("/:id", ownerOnly, stockHandler.Delete)

	// Sales (penjualan)
	salesGroup := protected.Group("/sales", anyRole)
	saleHandler := NewSaleHandler(deps.SalesUC)
	salesGroup.Get("/", saleHandler.List)
	salesGroup.Post("/", saleHandler.Create)
	salesGroup.Get("/:id", saleHandler.GetByID)
	salesGroup.Put("/:id", saleHandler.Update)
	salesGroup.Get("/:id/receipt", saleHandler.Receipt)

	// Suppliers
	suppliers := protected.Group("/suppliers", anyRole)
	supplierHandler := NewSupplierHandler(deps.SupplierUC)
	suppliers.Get("/", supplierHandler.List)
	suppliers.Get("/bills", ownerOnly, supplierHandler.Bills)
	suppliers.Post("/", supplierHandler.Create)
	suppliers.Get("/:id", supplierHandler.GetByID)
	suppliers.Put("/:id", supplierHandler.Update)

	// Receivables (piutang konsumen)
	receivables := protected.Group("/receivables", ownerOnly)
	receivableHandler := NewReceivableHandler(deps.ReceivableUC)
	receivables.Get("/", receivableHandler.List)
	receivables.Post("/", receivableHandler.Create)
	receivables.Delete("/", receivableHandler.DeleteByCustomer)
	receivables.Get("/:id", receivableHandler.GetByID)
	receivables.Put("/:id", receivableHandler.Update)
	receivables.Delete("/:id", receivableHandler.Delete)

	// Expenses (pengeluaran)
	expenses := protected.Group("/expenses", ownerOnly)
	expenseHandler := NewExpenseHandler(deps.ExpenseUC)
	expenses.Get("/", expenseHandler.List)
	expenses.Post("/", expenseHandler.Create)

	// Reports
	reports := protected.Group("/reports", ownerOnly)
	reportHandler := NewReportHandler(deps.ReportingUC)
	reports.Get("/summary", reportHandler.Summary)
	reports.Get("/profit-by-item", reportHandler.ProfitByItem)
	reports.Get("/snapshots", reportHandler.ListSnapshots)
	reports.Post("/snapshots", reportHandler.TakeSnapshot)
	reports.Get("/snapshots.csv", reportHandler.SnapshotsCSV)
	reports.Get("/export.xlsx", reportHandler.ExportWorkbook)
}

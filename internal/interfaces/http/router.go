package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Bodega-api/internal/application/auth"
	"github.com/jhoicas/Bodega-api/internal/application/documents"
	"github.com/jhoicas/Bodega-api/internal/application/stock"
	"github.com/jhoicas/Bodega-api/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	WarehouseUC *usecase.WarehouseUseCase
	ProductUC   *usecase.ProductUseCase
	ContactUC   *usecase.ContactUseCase
	LifecycleUC *documents.LifecycleUseCase
	VoucherUC   *documents.VoucherUseCase
	StockQuery  *stock.QueryUseCase
	Reorder     *stock.ReorderUseCase
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
	authGroup.Post("/change-password", AuthMiddleware(deps.JWTSecret), authHandler.ChangePassword)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Warehouses (protegido)
	warehouses := protected.Group("/warehouses")
	warehouseHandler := NewWarehouseHandler(deps.WarehouseUC)
	warehouses.Post("/", warehouseHandler.Create)
	warehouses.Get("/", warehouseHandler.List)
	warehouses.Get("/:id", warehouseHandler.GetByID)
	warehouses.Put("/:id", warehouseHandler.Update)

	// Products (protegido)
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/sku/:sku", productHandler.GetBySKU)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Patch("/:id/reorder-point", productHandler.UpdateReorderPoint)

	// Contacts (protegido)
	contacts := protected.Group("/contacts")
	contactHandler := NewContactHandler(deps.ContactUC)
	contacts.Post("/", contactHandler.Create)
	contacts.Get("/", contactHandler.List)
	contacts.Get("/:id", contactHandler.GetByID)
	contacts.Put("/:id", contactHandler.Update)

	// Documents: ciclo de vida de los movimientos de inventario (protegido)
	docs := protected.Group("/documents")
	documentHandler := NewDocumentHandler(deps.LifecycleUC, deps.VoucherUC)
	docs.Post("/", documentHandler.Create)
	docs.Get("/", documentHandler.List)
	docs.Get("/reference/:reference", documentHandler.GetByReference)
	docs.Get("/:id", documentHandler.GetByID)
	docs.Get("/:id/pdf", documentHandler.DownloadPDF)
	docs.Post("/:id/submit", documentHandler.Submit)
	docs.Post("/:id/approve", documentHandler.Approve)
	docs.Post("/:id/reject", documentHandler.Reject)
	docs.Post("/:id/complete", documentHandler.Complete)
	docs.Post("/:id/cancel", documentHandler.Cancel)

	// Stock: saldos, libro y reposición (protegido, solo lectura)
	stockGroup := protected.Group("/stock")
	stockHandler := NewStockHandler(deps.StockQuery, deps.Reorder)
	stockGroup.Get("/balance", stockHandler.GetBalance)
	stockGroup.Get("/balances", stockHandler.ListBalances)
	stockGroup.Get("/ledger", stockHandler.ListLedger)
	stockGroup.Get("/reconcile", stockHandler.Reconcile)
	stockGroup.Get("/replenishment", stockHandler.GetReplenishmentList)
	stockGroup.Get("/out-of-stock", stockHandler.GetOutOfStock)
}

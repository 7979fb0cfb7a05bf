package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Bodega-api/internal/application/dto"
	"github.com/jhoicas/Bodega-api/internal/application/stock"
	"github.com/jhoicas/Bodega-api/internal/domain/entity"
	"github.com/jhoicas/Bodega-api/internal/domain/repository"
)

// StockHandler maneja las consultas de saldos, libro de inventario y reposición (protegido).
type StockHandler struct {
	query   *stock.QueryUseCase
	reorder *stock.ReorderUseCase
}

// NewStockHandler construye el handler.
func NewStockHandler(query *stock.QueryUseCase, reorder *stock.ReorderUseCase) *StockHandler {
	return &StockHandler{query: query, reorder: reorder}
}

// GetBalance godoc
// @Summary      Saldo de un producto en una bodega/ubicación
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        product_id    query  string  true   "Producto"
// @Param        warehouse_id  query  string  true   "Bodega"
// @Param        location      query  string  false  "Ubicación dentro de la bodega"
// @Success      200  {object}  dto.StockBalanceDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/stock/balance [get]
func (h *StockHandler) GetBalance(c *fiber.Ctx) error {
	key := entity.BalanceKey{
		ProductID:   c.Query("product_id"),
		WarehouseID: c.Query("warehouse_id"),
		Location:    c.Query("location"),
	}
	if key.ProductID == "" || key.WarehouseID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "product_id y warehouse_id son requeridos"})
	}
	out, err := h.query.GetBalance(c.Context(), key)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(out)
}

// ListBalances godoc
// @Summary      Listar saldos de una bodega
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        warehouse_id  query  string  true   "Bodega"
// @Param        page          query  int     false  "Página"  default(1)
// @Param        limit         query  int     false  "Límite"  default(20)
// @Success      200  {object}  dto.StockBalanceListResponse
// @Router       /api/stock/balances [get]
func (h *StockHandler) ListBalances(c *fiber.Ctx) error {
	warehouseID := c.Query("warehouse_id")
	if warehouseID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "warehouse_id es requerido"})
	}
	page := dto.PageRequest{Page: c.QueryInt("page", 1), Limit: c.QueryInt("limit", 20)}
	page.DefaultPage()
	if page.Limit > 100 {
		page.Limit = 100
	}
	out, err := h.query.ListBalances(c.Context(), warehouseID, page)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(out)
}

// Reconcile godoc
// @Summary      Conciliar saldo contra el libro
// @Description  Verifica que la suma de los asientos del libro para la clave
//
//	coincida con el saldo materializado. Pensado para auditoría.
//
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        product_id    query  string  true   "Producto"
// @Param        warehouse_id  query  string  true   "Bodega"
// @Param        location      query  string  false  "Ubicación dentro de la bodega"
// @Success      200  {object}  dto.ReconciliationDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/stock/reconcile [get]
func (h *StockHandler) Reconcile(c *fiber.Ctx) error {
	key := entity.BalanceKey{
		ProductID:   c.Query("product_id"),
		WarehouseID: c.Query("warehouse_id"),
		Location:    c.Query("location"),
	}
	if key.ProductID == "" || key.WarehouseID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "product_id y warehouse_id son requeridos"})
	}
	out, err := h.query.Reconcile(c.Context(), key)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(out)
}

// ListLedger godoc
// @Summary      Consultar el libro de inventario
// @Description  Asientos inmutables del libro, filtrables por tipo de movimiento,
//
//	producto, bodega o documento, del más reciente al más antiguo.
//
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        movement_type  query  string  false  "IN | OUT | ADJUSTMENT | TRANSFER"
// @Param        product_id     query  string  false  "Filtrar por producto"
// @Param        warehouse_id   query  string  false  "Filtrar por bodega"
// @Param        document_id    query  string  false  "Filtrar por documento"
// @Param        page           query  int     false  "Página"  default(1)
// @Param        limit          query  int     false  "Límite"  default(20)
// @Success      200  {object}  dto.LedgerListResponse
// @Router       /api/stock/ledger [get]
func (h *StockHandler) ListLedger(c *fiber.Ctx) error {
	filter := repository.LedgerFilter{
		MovementType: c.Query("movement_type"),
		ProductID:    c.Query("product_id"),
		WarehouseID:  c.Query("warehouse_id"),
		DocumentID:   c.Query("document_id"),
	}
	page := dto.PageRequest{Page: c.QueryInt("page", 1), Limit: c.QueryInt("limit", 20)}
	page.DefaultPage()
	if page.Limit > 100 {
		page.Limit = 100
	}
	out, err := h.query.ListLedger(c.Context(), filter, page)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(out)
}

// GetReplenishmentList godoc
// @Summary      Lista de reposición
// @Description  SKUs con stock positivo por debajo de su punto de reorden, con la
//
//	cantidad sugerida de pedido, ordenados por déficit.
//
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        warehouse_id  query  string  false  "Filtrar por bodega. Vacío = todas."
// @Success      200  {object}  map[string]interface{}
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/stock/replenishment [get]
func (h *StockHandler) GetReplenishmentList(c *fiber.Ctx) error {
	list, err := h.reorder.NeedsReplenishment(c.Context(), c.Query("warehouse_id"))
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(fiber.Map{
		"total":       len(list),
		"suggestions": list,
	})
}

// GetOutOfStock godoc
// @Summary      Productos agotados
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        warehouse_id  query  string  false  "Filtrar por bodega. Vacío = todas."
// @Success      200  {object}  map[string]interface{}
// @Router       /api/stock/out-of-stock [get]
func (h *StockHandler) GetOutOfStock(c *fiber.Ctx) error {
	list, err := h.reorder.OutOfStock(c.Context(), c.Query("warehouse_id"))
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(fiber.Map{
		"total":       len(list),
		"suggestions": list,
	})
}

package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/dcastano/pos-inventario-api/internal/application/dto"
	"github.com/dcastano/pos-inventario-api/internal/application/production"
	"github.com/dcastano/pos-inventario-api/internal/domain/entity"
)

// ProductionHandler maneja el ciclo de vida de lotes de producción.
type ProductionHandler struct {
	batchUC    *production.BatchUseCase
	completeUC *production.CompleteBatchUseCase
}

// NewProductionHandler construye el handler de producción.
func NewProductionHandler(batchUC *production.BatchUseCase, completeUC *production.CompleteBatchUseCase) *ProductionHandler {
	return &ProductionHandler{batchUC: batchUC, completeUC: completeUC}
}

// Create planea un lote contra una receta.
func (h *ProductionHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateBatchRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "body inválido")
	}
	batch, err := h.batchUC.Create(c.UserContext(), production.CreateBatchInput{
		RecipeID:        req.RecipeID,
		PlannedQuantity: req.PlannedQuantity,
		Notes:           req.Notes,
		ActorID:         GetUserID(c),
	})
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toBatchResponse(batch))
}

// Start pasa un lote planeado a in_process. No toca stock.
func (h *ProductionHandler) Start(c *fiber.Ctx) error {
	batch, err := h.batchUC.Start(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(toBatchResponse(batch))
}

// Complete ejecuta la completación atómica del lote: débitos de materias
// primas, créditos de producto terminado y costos, todo o nada.
func (h *ProductionHandler) Complete(c *fiber.Ctx) error {
	var req dto.CompleteBatchRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "body inválido")
	}
	breakdown := make([]production.PackagingLine, 0, len(req.Breakdown))
	for _, line := range req.Breakdown {
		breakdown = append(breakdown, production.PackagingLine{
			PackagingTypeID: line.PackagingTypeID,
			Count:           line.Count,
		})
	}
	batch, err := h.completeUC.Complete(c.UserContext(), production.CompleteBatchInput{
		BatchID:          c.Params("id"),
		WarehouseCode:    req.WarehouseCode,
		ProducedQuantity: req.ProducedQuantity,
		Breakdown:        breakdown,
		ActorID:          GetUserID(c),
	})
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(toBatchResponse(batch))
}

// Cancel cancela un lote no completado. Nunca afecta stock.
func (h *ProductionHandler) Cancel(c *fiber.Ctx) error {
	batch, err := h.batchUC.Cancel(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(toBatchResponse(batch))
}

// GetByID obtiene un lote por ID.
func (h *ProductionHandler) GetByID(c *fiber.Ctx) error {
	batch, err := h.batchUC.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(toBatchResponse(batch))
}

// List lista lotes con paginación.
func (h *ProductionHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return badRequest(c, "paginación inválida")
	}
	page.DefaultPage()
	batches, err := h.batchUC.List(c.UserContext(), page.Limit, page.Offset)
	if err != nil {
		return writeDomainError(c, err)
	}
	items := make([]dto.BatchResponse, 0, len(batches))
	for _, b := range batches {
		items = append(items, toBatchResponse(b))
	}
	return c.JSON(dto.BatchListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	})
}

// toBatchResponse redondea los costos a centavos solo para presentación; lo
// almacenado conserva la precisión completa.
func toBatchResponse(b *entity.ProductionBatch) dto.BatchResponse {
	resp := dto.BatchResponse{
		ID:               b.ID,
		RecipeID:         b.RecipeID,
		PlannedQuantity:  b.PlannedQuantity,
		ProducedQuantity: b.ProducedQuantity,
		TotalCost:        b.TotalCost.Round(2),
		UnitCost:         b.UnitCost.Round(2),
		State:            b.State,
		WarehouseCode:    b.WarehouseCode,
		Notes:            b.Notes,
		CreatedBy:        b.CreatedBy,
		CreatedAt:        b.CreatedAt,
		CompletedAt:      b.CompletedAt,
	}
	for _, line := range b.Packaging {
		resp.Packaging = append(resp.Packaging, dto.BatchPackagingResponse{
			PackagingTypeID: line.PackagingTypeID,
			Count:           line.Count,
			Quantity:        line.Quantity,
		})
	}
	return resp
}

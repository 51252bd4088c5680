package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/dcastano/pos-inventario-api/internal/application/dto"
	"github.com/dcastano/pos-inventario-api/internal/application/inventory"
	"github.com/dcastano/pos-inventario-api/internal/domain/entity"
	"github.com/dcastano/pos-inventario-api/internal/domain/repository"
)

// StockHandler maneja consultas de stock, ajustes manuales y la consulta del ledger.
type StockHandler struct {
	adjustUC *inventory.AdjustStockUseCase
	queryUC  *inventory.QueryUseCase
}

// NewStockHandler construye el handler de stock y movimientos.
func NewStockHandler(adjustUC *inventory.AdjustStockUseCase, queryUC *inventory.QueryUseCase) *StockHandler {
	return &StockHandler{adjustUC: adjustUC, queryUC: queryUC}
}

// Stock lista filas de stock con filtros opcionales por producto y bodega.
func (h *StockHandler) Stock(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return badRequest(c, "paginación inválida")
	}
	page.DefaultPage()
	records, err := h.queryUC.Stock(c.UserContext(), repository.StockFilter{
		ProductID:     c.Query("product_id"),
		WarehouseCode: c.Query("warehouse_code"),
		Limit:         page.Limit,
		Offset:        page.Offset,
	})
	if err != nil {
		return writeDomainError(c, err)
	}
	items := make([]dto.StockRecordResponse, 0, len(records))
	for _, r := range records {
		items = append(items, toStockResponse(r))
	}
	return c.JSON(dto.StockListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	})
}

// Adjust aplica un ajuste manual de stock (delta con signo).
func (h *StockHandler) Adjust(c *fiber.Ctx) error {
	var req dto.AdjustStockRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "body inválido")
	}
	entry, err := h.adjustUC.Adjust(c.UserContext(), inventory.AdjustInput{
		ProductID:     req.ProductID,
		WarehouseCode: req.WarehouseCode,
		Delta:         req.Delta,
		Reason:        req.Reason,
		ActorID:       GetUserID(c),
	})
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toMovementResponse(entry))
}

// Movements consulta el ledger con filtros, en orden de auditoría.
func (h *StockHandler) Movements(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return badRequest(c, "paginación inválida")
	}
	page.DefaultPage()
	filter := repository.MovementFilter{
		ProductID:     c.Query("product_id"),
		RawMaterialID: c.Query("raw_material_id"),
		WarehouseCode: c.Query("warehouse_code"),
		ReferenceID:   c.Query("reference_id"),
		Kind:          c.Query("kind"),
		Limit:         page.Limit,
		Offset:        page.Offset,
	}
	if from := c.Query("from"); from != "" {
		t, err := time.Parse(time.RFC3339, from)
		if err != nil {
			return badRequest(c, "from debe ser RFC3339")
		}
		filter.From = &t
	}
	if to := c.Query("to"); to != "" {
		t, err := time.Parse(time.RFC3339, to)
		if err != nil {
			return badRequest(c, "to debe ser RFC3339")
		}
		filter.To = &t
	}
	entries, err := h.queryUC.Movements(c.UserContext(), filter)
	if err != nil {
		return writeDomainError(c, err)
	}
	items := make([]dto.MovementEntryResponse, 0, len(entries))
	for _, e := range entries {
		items = append(items, toMovementResponse(e))
	}
	return c.JSON(dto.MovementListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	})
}

func toStockResponse(r *entity.StockRecord) dto.StockRecordResponse {
	return dto.StockRecordResponse{
		ProductID:     r.ProductID,
		WarehouseCode: r.WarehouseCode,
		Quantity:      r.Quantity,
		MinQuantity:   r.MinQuantity,
		MaxQuantity:   r.MaxQuantity,
		LowStock:      r.LowStock(),
		OutOfStock:    r.OutOfStock(),
		UpdatedAt:     r.UpdatedAt,
	}
}

func toMovementResponse(e *entity.MovementEntry) dto.MovementEntryResponse {
	return dto.MovementEntryResponse{
		ID:             e.ID,
		ProductID:      e.ProductID,
		RawMaterialID:  e.RawMaterialID,
		WarehouseCode:  e.WarehouseCode,
		Kind:           e.Kind,
		QuantityBefore: e.QuantityBefore,
		QuantityDelta:  e.QuantityDelta,
		QuantityAfter:  e.QuantityAfter,
		Reason:         e.Reason,
		ReferenceID:    e.ReferenceID,
		ReferenceKind:  e.ReferenceKind,
		CreatedBy:      e.CreatedBy,
		CreatedAt:      e.CreatedAt,
	}
}

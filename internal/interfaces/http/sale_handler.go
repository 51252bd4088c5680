package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/dcastano/pos-inventario-api/internal/application/dto"
	"github.com/dcastano/pos-inventario-api/internal/application/sales"
	"github.com/dcastano/pos-inventario-api/internal/domain/entity"
)

// SaleHandler maneja ventas POS y anulaciones.
type SaleHandler struct {
	uc *sales.PostSaleUseCase
}

// NewSaleHandler construye el handler de ventas.
func NewSaleHandler(uc *sales.PostSaleUseCase) *SaleHandler {
	return &SaleHandler{uc: uc}
}

// Create registra una venta: débito de stock y fila de venta en una transacción.
func (h *SaleHandler) Create(c *fiber.Ctx) error {
	var req dto.PostSaleRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "body inválido")
	}
	sale, err := h.uc.PostSale(c.UserContext(), sales.PostSaleInput{
		ProductID:     req.ProductID,
		WarehouseCode: req.WarehouseCode,
		Quantity:      req.Quantity,
		UnitPrice:     req.UnitPrice,
		CustomerName:  req.CustomerName,
		PaymentMethod: req.PaymentMethod,
		ActorID:       GetUserID(c),
	})
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toSaleResponse(sale))
}

// Cancel anula una venta completada y reacredita el stock.
func (h *SaleHandler) Cancel(c *fiber.Ctx) error {
	var req dto.CancelSaleRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "body inválido")
	}
	sale, err := h.uc.CancelSale(c.UserContext(), c.Params("id"), GetUserID(c), req.Reason)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(toSaleResponse(sale))
}

// GetByID obtiene una venta por ID.
func (h *SaleHandler) GetByID(c *fiber.Ctx) error {
	sale, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(toSaleResponse(sale))
}

// List lista ventas con paginación.
func (h *SaleHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return badRequest(c, "paginación inválida")
	}
	page.DefaultPage()
	list, err := h.uc.List(c.UserContext(), page.Limit, page.Offset)
	if err != nil {
		return writeDomainError(c, err)
	}
	items := make([]dto.SaleResponse, 0, len(list))
	for _, s := range list {
		items = append(items, toSaleResponse(s))
	}
	return c.JSON(dto.SaleListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	})
}

func toSaleResponse(s *entity.Sale) dto.SaleResponse {
	return dto.SaleResponse{
		ID:            s.ID,
		ProductID:     s.ProductID,
		WarehouseCode: s.WarehouseCode,
		Quantity:      s.Quantity,
		UnitPrice:     s.UnitPrice,
		Total:         s.Total,
		CustomerName:  s.CustomerName,
		PaymentMethod: s.PaymentMethod,
		Status:        s.Status,
		MovementID:    s.MovementID,
		CreatedBy:     s.CreatedBy,
		CreatedAt:     s.CreatedAt,
		CancelledAt:   s.CancelledAt,
	}
}

package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/dcastano/pos-inventario-api/internal/application/dto"
	"github.com/dcastano/pos-inventario-api/internal/application/inventory"
	"github.com/dcastano/pos-inventario-api/internal/domain/entity"
	"github.com/dcastano/pos-inventario-api/internal/domain/repository"
)

// TransferHandler maneja traslados entre bodegas.
type TransferHandler struct {
	uc           *inventory.TransferUseCase
	transferRepo repository.TransferRepository
}

// NewTransferHandler construye el handler de traslados.
func NewTransferHandler(uc *inventory.TransferUseCase, transferRepo repository.TransferRepository) *TransferHandler {
	return &TransferHandler{uc: uc, transferRepo: transferRepo}
}

// Create ejecuta un traslado atómico entre dos bodegas.
func (h *TransferHandler) Create(c *fiber.Ctx) error {
	var req dto.TransferRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "body inválido")
	}
	transfer, err := h.uc.Transfer(c.UserContext(), inventory.TransferInput{
		ProductID:     req.ProductID,
		Quantity:      req.Quantity,
		FromWarehouse: req.FromWarehouse,
		ToWarehouse:   req.ToWarehouse,
		Reason:        req.Reason,
		ActorID:       GetUserID(c),
	})
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toTransferResponse(transfer))
}

// GetByID obtiene un traslado por ID.
func (h *TransferHandler) GetByID(c *fiber.Ctx) error {
	transfer, err := h.transferRepo.GetByID(c.Params("id"))
	if err != nil {
		return writeDomainError(c, err)
	}
	if transfer == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "traslado no encontrado"})
	}
	return c.JSON(toTransferResponse(transfer))
}

// List lista traslados con paginación.
func (h *TransferHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return badRequest(c, "paginación inválida")
	}
	page.DefaultPage()
	transfers, err := h.transferRepo.List(page.Limit, page.Offset)
	if err != nil {
		return writeDomainError(c, err)
	}
	items := make([]dto.TransferResponse, 0, len(transfers))
	for _, t := range transfers {
		items = append(items, toTransferResponse(t))
	}
	return c.JSON(dto.TransferListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	})
}

func toTransferResponse(t *entity.Transfer) dto.TransferResponse {
	return dto.TransferResponse{
		ID:            t.ID,
		ProductID:     t.ProductID,
		Quantity:      t.Quantity,
		FromWarehouse: t.FromWarehouse,
		ToWarehouse:   t.ToWarehouse,
		Reason:        t.Reason,
		Status:        t.Status,
		OutMovementID: t.OutMovementID,
		InMovementID:  t.InMovementID,
		CreatedBy:     t.CreatedBy,
		CreatedAt:     t.CreatedAt,
	}
}

package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/dcastano/pos-inventario-api/internal/application/dto"
	"github.com/dcastano/pos-inventario-api/internal/application/usecase"
)

// RawMaterialHandler maneja el CRUD de materias primas y el reabasto manual.
type RawMaterialHandler struct {
	uc *usecase.RawMaterialUseCase
}

// NewRawMaterialHandler construye el handler de materias primas.
func NewRawMaterialHandler(uc *usecase.RawMaterialUseCase) *RawMaterialHandler {
	return &RawMaterialHandler{uc: uc}
}

// Create crea una materia prima.
func (h *RawMaterialHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateRawMaterialRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "body inválido")
	}
	resp, err := h.uc.Create(req)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// GetByID obtiene una materia prima por ID.
func (h *RawMaterialHandler) GetByID(c *fiber.Ctx) error {
	resp, err := h.uc.GetByID(c.Params("id"))
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(resp)
}

// Update actualiza una materia prima (nunca su stock).
func (h *RawMaterialHandler) Update(c *fiber.Ctx) error {
	var req dto.UpdateRawMaterialRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "body inválido")
	}
	resp, err := h.uc.Update(c.Params("id"), req)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(resp)
}

// Restock aplica un reabasto manual: ajusta el stock de la materia prima y
// deja su fila en el ledger.
func (h *RawMaterialHandler) Restock(c *fiber.Ctx) error {
	var req dto.RestockRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "body inválido")
	}
	entry, err := h.uc.Restock(c.UserContext(), c.Params("id"), req.Delta, req.Reason, GetUserID(c))
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toMovementResponse(entry))
}

// List lista materias primas con paginación.
func (h *RawMaterialHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return badRequest(c, "paginación inválida")
	}
	page.DefaultPage()
	resp, err := h.uc.List(page.Limit, page.Offset)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(resp)
}

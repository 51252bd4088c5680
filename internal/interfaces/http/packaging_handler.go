package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/dcastano/pos-inventario-api/internal/application/dto"
	"github.com/dcastano/pos-inventario-api/internal/application/usecase"
)

// PackagingHandler maneja el CRUD de tipos de empaque.
type PackagingHandler struct {
	uc *usecase.PackagingUseCase
}

// NewPackagingHandler construye el handler de tipos de empaque.
func NewPackagingHandler(uc *usecase.PackagingUseCase) *PackagingHandler {
	return &PackagingHandler{uc: uc}
}

// Create crea un tipo de empaque.
func (h *PackagingHandler) Create(c *fiber.Ctx) error {
	var req dto.CreatePackagingRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "body inválido")
	}
	resp, err := h.uc.Create(req)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// GetByID obtiene un tipo de empaque por ID.
func (h *PackagingHandler) GetByID(c *fiber.Ctx) error {
	resp, err := h.uc.GetByID(c.Params("id"))
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(resp)
}

// Update actualiza un tipo de empaque.
func (h *PackagingHandler) Update(c *fiber.Ctx) error {
	var req dto.UpdatePackagingRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "body inválido")
	}
	resp, err := h.uc.Update(c.Params("id"), req)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(resp)
}

// List lista tipos de empaque con paginación.
func (h *PackagingHandler) List(c *fiber.Ctx) error {
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

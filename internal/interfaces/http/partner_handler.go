package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Inventario-console/internal/application/dto"
	"github.com/jhoicas/Inventario-console/internal/application/partners"
)

// PartnerHandler alta de clientes y proveedores y validación de documentos.
type PartnerHandler struct {
	uc *partners.UseCase
}

// NewPartnerHandler construye el handler.
func NewPartnerHandler(uc *partners.UseCase) *PartnerHandler {
	return &PartnerHandler{uc: uc}
}

// CreateCustomer POST /api/customers
func (h *PartnerHandler) CreateCustomer(c *fiber.Ctx) error {
	var in dto.CreatePartnerRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	customer, err := h.uc.CreateCustomer(requestContext(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(customer)
}

// CreateSupplier POST /api/suppliers
func (h *PartnerHandler) CreateSupplier(c *fiber.Ctx) error {
	var in dto.CreatePartnerRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	supplier, err := h.uc.CreateSupplier(requestContext(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(supplier)
}

// ValidateDocument POST /api/documents/validate
// Un documento inválido responde 200 con valid=false y el motivo traducido.
func (h *PartnerHandler) ValidateDocument(c *fiber.Ctx) error {
	var in dto.ValidateDocumentRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.ValidateDocument(in)
	if err != nil {
		return writeError(c, err)
	}
	if !out.Valid {
		out.Message = Localize(c.Get(fiber.HeaderAcceptLanguage), out.Reason)
	}
	return c.JSON(out)
}

package http

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"

	"github.com/jhoicas/Inventario-console/internal/application/dto"
	"github.com/jhoicas/Inventario-console/internal/application/transactions"
	"github.com/jhoicas/Inventario-console/internal/domain/cart"
	"github.com/jhoicas/Inventario-console/internal/domain/entity"
	"github.com/jhoicas/Inventario-console/internal/infrastructure/backend"
)

// rolesByType roles que pueden abrir cada tipo de transacción.
var rolesByType = map[cart.Mode][]string{
	cart.ModeInput:  {entity.RoleAdmin, entity.RoleBodeguero},
	cart.ModeOutput: {entity.RoleAdmin, entity.RoleVendedor},
}

// TransactionHandler maneja las sesiones de compra/venta y su carrito.
type TransactionHandler struct {
	uc *transactions.UseCase
}

// NewTransactionHandler construye el handler.
func NewTransactionHandler(uc *transactions.UseCase) *TransactionHandler {
	return &TransactionHandler{uc: uc}
}

// param copia el parámetro de ruta: fiber lo respalda con el buffer de la petición, que se reutiliza
// al terminar el handler, y el id queda como clave de bloqueos y envíos en curso.
func param(c *fiber.Ctx, name string) string {
	return utils.CopyString(c.Params(name))
}

// requestContext contexto de la petición con el token del usuario para el backend.
func requestContext(c *fiber.Ctx) context.Context {
	return backend.WithBearerToken(c.UserContext(), GetToken(c))
}

// List GET /api/transactions
func (h *TransactionHandler) List(c *fiber.Ctx) error {
	list, err := h.uc.List(requestContext(c), GetUserID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(list)
}

// Open POST /api/transactions
func (h *TransactionHandler) Open(c *fiber.Ctx) error {
	var in dto.OpenTransactionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	mode := cart.Mode(strings.ToLower(strings.TrimSpace(in.Type)))
	if !mode.Valid() {
		return writeError(c, cart.ErrInvalidMode)
	}
	if !hasRole(GetRole(c), rolesByType[mode]) {
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "rol sin permiso para este tipo de transacción"})
	}
	out, err := h.uc.Open(requestContext(c), GetUserID(c), string(mode))
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Get GET /api/transactions/:id
func (h *TransactionHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.Get(requestContext(c), GetUserID(c), param(c, "id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// SelectParty PUT /api/transactions/:id/party
func (h *TransactionHandler) SelectParty(c *fiber.Ctx) error {
	var in dto.SelectPartyRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	party := string(in.Customer)
	if party == "" {
		party = string(in.Supplier)
	}
	out, err := h.uc.SelectParty(requestContext(c), GetUserID(c), param(c, "id"), party)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// AddItem POST /api/transactions/:id/items
func (h *TransactionHandler) AddItem(c *fiber.Ctx) error {
	var in dto.CartItemRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.ProductID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "product es requerido", Field: "product"})
	}
	out, err := h.uc.AddItem(requestContext(c), GetUserID(c), param(c, "id"), string(in.ProductID), string(in.Quantity))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// UpdateItem PUT /api/transactions/:id/items/:productId (quantity 0 quita la línea)
func (h *TransactionHandler) UpdateItem(c *fiber.Ctx) error {
	var in dto.CartItemRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.UpdateItem(requestContext(c), GetUserID(c), param(c, "id"), param(c, "productId"), string(in.Quantity))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// RemoveItem DELETE /api/transactions/:id/items/:productId
func (h *TransactionHandler) RemoveItem(c *fiber.Ctx) error {
	out, err := h.uc.RemoveItem(requestContext(c), GetUserID(c), param(c, "id"), param(c, "productId"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Clear POST /api/transactions/:id/clear
func (h *TransactionHandler) Clear(c *fiber.Ctx) error {
	out, err := h.uc.Clear(requestContext(c), GetUserID(c), param(c, "id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Submit POST /api/transactions/:id/submit
func (h *TransactionHandler) Submit(c *fiber.Ctx) error {
	out, err := h.uc.Submit(requestContext(c), GetUserID(c), param(c, "id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Cancel POST /api/transactions/:id/cancel
func (h *TransactionHandler) Cancel(c *fiber.Ctx) error {
	if err := h.uc.Cancel(requestContext(c), GetUserID(c), param(c, "id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusAccepted)
}

// Discard DELETE /api/transactions/:id
func (h *TransactionHandler) Discard(c *fiber.Ctx) error {
	if err := h.uc.Discard(requestContext(c), GetUserID(c), param(c, "id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Catalog GET /api/transactions/:id/catalog
func (h *TransactionHandler) Catalog(c *fiber.Ctx) error {
	out, err := h.uc.Catalog(requestContext(c), GetUserID(c), param(c, "id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

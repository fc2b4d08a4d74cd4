package http

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Inventario-console/internal/application/dto"
	"github.com/jhoicas/Inventario-console/internal/application/partners"
	"github.com/jhoicas/Inventario-console/internal/application/transactions"
	"github.com/jhoicas/Inventario-console/internal/domain"
	"github.com/jhoicas/Inventario-console/internal/domain/cart"
	"github.com/jhoicas/Inventario-console/internal/infrastructure/backend"
	"github.com/jhoicas/Inventario-console/pkg/sri"
)

// writeError traduce errores de dominio a estado HTTP y ErrorResponse con mensaje localizado.
func writeError(c *fiber.Ctx, err error) error {
	status, body := errorResponse(c.Get(fiber.HeaderAcceptLanguage), err)
	return c.Status(status).JSON(body)
}

func errorResponse(lang string, err error) (int, dto.ErrorResponse) {
	var fe *partners.FieldError
	if errors.As(err, &fe) {
		return fiber.StatusUnprocessableEntity, dto.ErrorResponse{
			Code:    fieldCode(fe),
			Message: fieldMessage(lang, fe),
			Field:   fe.Field,
		}
	}
	if reason := sri.ReasonOf(err); reason != "" {
		return fiber.StatusUnprocessableEntity, dto.ErrorResponse{Code: string(reason), Message: Localize(lang, string(reason))}
	}

	var se *cart.StockError
	if errors.As(err, &se) {
		return fiber.StatusConflict, dto.ErrorResponse{
			Code:    msgInsufficientStock,
			Message: Localize(lang, msgInsufficientStock, se.Available, se.InCart),
			Details: fiber.Map{
				"product":   se.ProductID,
				"requested": se.Requested,
				"available": se.Available,
				"in_cart":   se.InCart,
			},
		}
	}

	switch {
	case errors.Is(err, cart.ErrMissingSelection):
		return fiber.StatusUnprocessableEntity, localized(lang, msgMissingSelection)
	case errors.Is(err, cart.ErrInvalidQuantity):
		return fiber.StatusUnprocessableEntity, localized(lang, msgInvalidQuantity)
	case errors.Is(err, cart.ErrEmptyCart):
		return fiber.StatusUnprocessableEntity, localized(lang, msgEmptyCart)
	case errors.Is(err, cart.ErrNotFound):
		return fiber.StatusNotFound, localized(lang, msgNotInCart)
	case errors.Is(err, cart.ErrInvalidMode):
		return fiber.StatusBadRequest, dto.ErrorResponse{Code: "INVALID_TYPE", Message: "type debe ser input u output"}
	case errors.Is(err, transactions.ErrSupplierMismatch):
		return fiber.StatusUnprocessableEntity, localized(lang, msgSupplierMismatch)
	case errors.Is(err, transactions.ErrSubmitting):
		return fiber.StatusConflict, localized(lang, msgSubmitting)
	case errors.Is(err, transactions.ErrNotSubmitting):
		return fiber.StatusConflict, localized(lang, msgNotSubmitting)
	case errors.Is(err, domain.ErrSubmissionCanceled):
		return fiber.StatusConflict, localized(lang, msgSubmitCanceled)
	case errors.Is(err, context.DeadlineExceeded):
		return fiber.StatusGatewayTimeout, dto.ErrorResponse{Code: "TIMEOUT", Message: "el backend no respondió a tiempo"}
	}

	body := dto.ErrorResponse{Message: err.Error()}
	var apiErr *backend.APIError
	if errors.As(err, &apiErr) && apiErr.Body != "" {
		body.Details = apiErr.Body
	}
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		body.Code = "VALIDATION"
		return fiber.StatusBadRequest, body
	case errors.Is(err, domain.ErrNotFound):
		body.Code = "NOT_FOUND"
		return fiber.StatusNotFound, body
	case errors.Is(err, domain.ErrUnauthorized):
		body.Code = "UNAUTHORIZED"
		return fiber.StatusUnauthorized, body
	case errors.Is(err, domain.ErrForbidden):
		body.Code = "FORBIDDEN"
		return fiber.StatusForbidden, body
	case errors.Is(err, domain.ErrDuplicate):
		body.Code = "DUPLICATE"
		return fiber.StatusConflict, body
	case errors.Is(err, domain.ErrConflict):
		body.Code = "CONFLICT"
		return fiber.StatusConflict, body
	case errors.Is(err, domain.ErrInsufficientStock):
		body.Code = msgInsufficientStock
		return fiber.StatusConflict, body
	case errors.Is(err, domain.ErrUpstream):
		body.Code = "UPSTREAM"
		return fiber.StatusBadGateway, body
	}
	body.Code = "INTERNAL"
	return fiber.StatusInternalServerError, body
}

func localized(lang, key string) dto.ErrorResponse {
	return dto.ErrorResponse{Code: key, Message: Localize(lang, key)}
}

func fieldCode(fe *partners.FieldError) string {
	if reason := sri.ReasonOf(fe.Err); reason != "" {
		return string(reason)
	}
	return "VALIDATION"
}

func fieldMessage(lang string, fe *partners.FieldError) string {
	if reason := sri.ReasonOf(fe.Err); reason != "" {
		return Localize(lang, string(reason))
	}
	switch fe.Field {
	case "name":
		return Localize(lang, msgRequiredName)
	case "email":
		return Localize(lang, msgInvalidEmail)
	}
	return fe.Err.Error()
}

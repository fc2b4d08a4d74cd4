package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Inventario-console/internal/application/partners"
	"github.com/jhoicas/Inventario-console/internal/application/transactions"
	"github.com/jhoicas/Inventario-console/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	TransactionsUC *transactions.UseCase
	PartnersUC     *partners.UseCase
	JWTSecret      string
	JWTIssuer      string
}

// Router registra las rutas de la API. Todas requieren el Bearer Token emitido por el backend.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api", AuthMiddleware(deps.JWTSecret, deps.JWTIssuer))

	// Documentos (cualquier usuario autenticado)
	documents := api.Group("/documents")
	partnerHandler := NewPartnerHandler(deps.PartnersUC)
	documents.Post("/validate", partnerHandler.ValidateDocument)

	// Clientes (ventas) y proveedores (compras)
	api.Post("/customers", RequireRole(entity.RoleAdmin, entity.RoleVendedor), partnerHandler.CreateCustomer)
	api.Post("/suppliers", RequireRole(entity.RoleAdmin, entity.RoleBodeguero), partnerHandler.CreateSupplier)

	// Transacciones: el tipo permitido por rol se verifica al abrir la sesión.
	txs := api.Group("/transactions", RequireRole(entity.RoleAdmin, entity.RoleBodeguero, entity.RoleVendedor))
	txHandler := NewTransactionHandler(deps.TransactionsUC)
	txs.Get("/", txHandler.List)
	txs.Post("/", txHandler.Open)
	txs.Get("/:id", txHandler.Get)
	txs.Delete("/:id", txHandler.Discard)
	txs.Put("/:id/party", txHandler.SelectParty)
	txs.Get("/:id/catalog", txHandler.Catalog)
	txs.Post("/:id/items", txHandler.AddItem)
	txs.Put("/:id/items/:productId", txHandler.UpdateItem)
	txs.Delete("/:id/items/:productId", txHandler.RemoveItem)
	txs.Post("/:id/clear", txHandler.Clear)
	txs.Post("/:id/submit", txHandler.Submit)
	txs.Post("/:id/cancel", txHandler.Cancel)
}

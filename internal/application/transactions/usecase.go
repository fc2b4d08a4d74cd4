package transactions

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Inventario-console/internal/application/dto"
	"github.com/jhoicas/Inventario-console/internal/domain"
	"github.com/jhoicas/Inventario-console/internal/domain/cart"
	"github.com/jhoicas/Inventario-console/internal/domain/repository"
	"github.com/jhoicas/Inventario-console/pkg/logger"
)

var (
	// ErrSubmitting la sesión tiene un envío en curso; solo se permite cancelar, vaciar o descartar.
	ErrSubmitting = errors.New("transacción: hay un envío en curso")
	// ErrSupplierMismatch el producto no pertenece al proveedor de la compra.
	ErrSupplierMismatch = errors.New("transacción: el producto no pertenece al proveedor seleccionado")
	// ErrNotSubmitting no hay envío en curso que cancelar.
	ErrNotSubmitting = errors.New("transacción: no hay envío en curso")
)

// Deps dependencias del caso de uso.
type Deps struct {
	Sessions      repository.SessionRepository
	Products      repository.ProductRepository
	Customers     repository.CustomerRepository
	Suppliers     repository.SupplierRepository
	Movements     repository.StockMovementRepository
	Logger        *logger.Logger
	SubmitTimeout time.Duration
	Now           func() time.Time
}

// UseCase sesiones de compra/venta: carrito local validado contra el catálogo y envío en lote al backend.
// Las operaciones sobre una misma sesión se serializan; el envío libera el bloqueo durante la llamada
// de red para que el usuario pueda cancelar o descartar.
type UseCase struct {
	deps     Deps
	log      *logger.Logger
	locks    *keyedMutex
	mu       sync.Mutex
	inflight map[string]*submission
}

// NewUseCase construye el caso de uso.
func NewUseCase(deps Deps) *UseCase {
	if deps.Now == nil {
		deps.Now = time.Now
	}
	if deps.SubmitTimeout <= 0 {
		deps.SubmitTimeout = 30 * time.Second
	}
	log := deps.Logger
	if log == nil {
		log = logger.Nop()
	}
	return &UseCase{
		deps:     deps,
		log:      log.Named("transactions"),
		locks:    newKeyedMutex(),
		inflight: make(map[string]*submission),
	}
}

// Open crea una sesión vacía de compra (input) o venta (output).
func (uc *UseCase) Open(ctx context.Context, owner, txType string) (*dto.TransactionResponse, error) {
	mode := cart.Mode(txType)
	if owner == "" || !mode.Valid() {
		return nil, domain.ErrInvalidInput
	}
	now := uc.deps.Now()
	s := &cart.Session{
		ID:        uuid.New().String(),
		Owner:     owner,
		Mode:      mode,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.deps.Sessions.Save(ctx, s); err != nil {
		return nil, fmt.Errorf("guardar sesión: %w", err)
	}
	return uc.toResponse(s), nil
}

// Get devuelve la sesión del usuario.
func (uc *UseCase) Get(ctx context.Context, owner, id string) (*dto.TransactionResponse, error) {
	s, err := uc.load(ctx, owner, id)
	if err != nil {
		return nil, err
	}
	return uc.toResponse(s), nil
}

// List sesiones abiertas del usuario.
func (uc *UseCase) List(ctx context.Context, owner string) ([]*dto.TransactionResponse, error) {
	list, err := uc.deps.Sessions.ListByOwner(ctx, owner)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.TransactionResponse, 0, len(list))
	for _, s := range list {
		out = append(out, uc.toResponse(s))
	}
	return out, nil
}

// SelectParty fija el cliente (venta) o proveedor (compra), verificando que exista en el backend.
func (uc *UseCase) SelectParty(ctx context.Context, owner, id, partyID string) (*dto.TransactionResponse, error) {
	partyID = strings.TrimSpace(partyID)
	if partyID == "" {
		return nil, domain.ErrInvalidInput
	}
	return uc.mutate(ctx, owner, id, func(s *cart.Session, c *cart.Cart) error {
		if s.Mode == cart.ModeOutput {
			if _, err := uc.deps.Customers.GetByID(ctx, partyID); err != nil {
				return fmt.Errorf("cliente %s: %w", partyID, err)
			}
			c.SelectCustomer(partyID)
			return nil
		}
		if _, err := uc.deps.Suppliers.GetByID(ctx, partyID); err != nil {
			return fmt.Errorf("proveedor %s: %w", partyID, err)
		}
		c.SelectSupplier(partyID)
		return nil
	})
}

// AddItem agrega la cantidad indicada del producto con la foto de stock actual del catálogo.
func (uc *UseCase) AddItem(ctx context.Context, owner, id, productID string, rawQty string) (*dto.TransactionResponse, error) {
	qty, err := cart.ParseQuantity(rawQty)
	if err != nil {
		return nil, err
	}
	return uc.mutate(ctx, owner, id, func(s *cart.Session, c *cart.Cart) error {
		product, err := uc.deps.Products.GetByID(ctx, productID)
		if err != nil {
			return fmt.Errorf("producto %s: %w", productID, err)
		}
		if s.Mode == cart.ModeInput && product.SupplierID != "" && c.Supplier() != "" && product.SupplierID != c.Supplier() {
			return ErrSupplierMismatch
		}
		return c.Add(*product, qty, s.Mode)
	})
}

// UpdateItem reemplaza la cantidad de la línea. Cantidad 0 equivale a quitar la línea.
func (uc *UseCase) UpdateItem(ctx context.Context, owner, id, productID string, rawQty string) (*dto.TransactionResponse, error) {
	qty, err := cart.ParseUpdateQuantity(rawQty)
	if err != nil {
		return nil, err
	}
	if qty == 0 {
		return uc.RemoveItem(ctx, owner, id, productID)
	}
	return uc.mutate(ctx, owner, id, func(s *cart.Session, c *cart.Cart) error {
		return c.UpdateQuantity(productID, qty, s.Mode)
	})
}

// RemoveItem quita la línea del producto (sin error si no existe).
func (uc *UseCase) RemoveItem(ctx context.Context, owner, id, productID string) (*dto.TransactionResponse, error) {
	return uc.mutate(ctx, owner, id, func(_ *cart.Session, c *cart.Cart) error {
		c.Remove(productID)
		return nil
	})
}

// Clear vacía el carrito y las selecciones. Se permite durante un envío: el resultado del envío
// ya no vaciará el carrito porque la generación cambió.
func (uc *UseCase) Clear(ctx context.Context, owner, id string) (*dto.TransactionResponse, error) {
	return uc.update(ctx, owner, id, true, func(_ *cart.Session, c *cart.Cart) error {
		c.Clear()
		return nil
	})
}

// Discard cancela cualquier envío en curso y elimina la sesión.
func (uc *UseCase) Discard(ctx context.Context, owner, id string) error {
	unlock := uc.locks.Lock(id)
	defer unlock()
	if _, err := uc.load(ctx, owner, id); err != nil {
		return err
	}
	uc.cancelInflight(id)
	return uc.deps.Sessions.Delete(ctx, id)
}

// Catalog productos que se pueden agregar a la sesión con su disponibilidad restante.
func (uc *UseCase) Catalog(ctx context.Context, owner, id string) ([]dto.CatalogItemResponse, error) {
	s, err := uc.load(ctx, owner, id)
	if err != nil {
		return nil, err
	}
	c := s.Cart()
	supplier := ""
	if s.Mode == cart.ModeInput {
		supplier = c.Supplier()
		if supplier == "" {
			return nil, cart.ErrMissingSelection
		}
	}
	products, err := uc.deps.Products.List(ctx, supplier)
	if err != nil {
		return nil, fmt.Errorf("catálogo: %w", err)
	}
	products = c.FilterCatalog(products, s.Mode)
	out := make([]dto.CatalogItemResponse, 0, len(products))
	for _, p := range products {
		inCart := c.QuantityOf(p.ID)
		available := -1
		if s.Mode == cart.ModeOutput {
			available = p.CurrentStock - inCart
			if available < 0 {
				available = 0
			}
		}
		out = append(out, dto.CatalogItemResponse{
			ID:           p.ID,
			SKU:          p.SKU,
			Name:         p.Name,
			Price:        p.Price,
			CurrentStock: p.CurrentStock,
			Supplier:     p.SupplierID,
			InCart:       inCart,
			Available:    available,
		})
	}
	return out, nil
}

// maxSaveAttempts intentos de carga-cambio-guardado cuando otra instancia guardó la sesión en medio.
const maxSaveAttempts = 3

// mutate carga la sesión, aplica fn sobre el carrito y guarda si fn no falla.
// Un fallo deja la sesión guardada intacta.
func (uc *UseCase) mutate(ctx context.Context, owner, id string, fn func(*cart.Session, *cart.Cart) error) (*dto.TransactionResponse, error) {
	return uc.update(ctx, owner, id, false, fn)
}

// update aplica fn bajo el bloqueo de la sesión, que solo serializa este proceso. Entre instancias
// que comparten el almacén, Save rechaza con domain.ErrConflict una versión desactualizada y fn se
// reaplica sobre la sesión recién leída.
func (uc *UseCase) update(ctx context.Context, owner, id string, duringSubmit bool, fn func(*cart.Session, *cart.Cart) error) (*dto.TransactionResponse, error) {
	unlock := uc.locks.Lock(id)
	defer unlock()

	for attempt := 1; ; attempt++ {
		s, err := uc.load(ctx, owner, id)
		if err != nil {
			return nil, err
		}
		if !duringSubmit && uc.submitting(id) {
			return nil, ErrSubmitting
		}
		c := s.Cart()
		if err := fn(s, c); err != nil {
			return nil, err
		}
		s.Commit(c, uc.deps.Now())
		err = uc.deps.Sessions.Save(ctx, s)
		if errors.Is(err, domain.ErrConflict) && attempt < maxSaveAttempts {
			uc.log.Debug().Str("session", id).Int("attempt", attempt).Msg("la sesión cambió en otra instancia; se reintenta")
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("guardar sesión: %w", err)
		}
		return uc.toResponse(s), nil
	}
}

func (uc *UseCase) load(ctx context.Context, owner, id string) (*cart.Session, error) {
	s, err := uc.deps.Sessions.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if s.Owner != owner {
		return nil, domain.ErrForbidden
	}
	return s, nil
}

func (uc *UseCase) toResponse(s *cart.Session) *dto.TransactionResponse {
	c := s.Cart()
	lines := c.Lines()
	out := &dto.TransactionResponse{
		ID:         s.ID,
		Type:       string(s.Mode),
		Customer:   s.State.Customer,
		Supplier:   s.State.Supplier,
		Lines:      make([]dto.CartLineResponse, 0, len(lines)),
		Total:      c.Total(),
		Empty:      len(lines) == 0,
		Submitting: uc.submitting(s.ID),
		UpdatedAt:  s.UpdatedAt,
	}
	for _, l := range lines {
		out.ItemCount += l.Quantity
		out.Lines = append(out.Lines, lineResponse(l))
	}
	return out
}

func lineResponse(l cart.Line) dto.CartLineResponse {
	return dto.CartLineResponse{
		ProductID:    l.Product.ID,
		SKU:          l.Product.SKU,
		Name:         l.Product.Name,
		Price:        l.Product.Price,
		CurrentStock: l.Product.CurrentStock,
		Quantity:     l.Quantity,
		Subtotal:     l.Subtotal(),
	}
}

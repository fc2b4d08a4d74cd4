package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Inventario-console/internal/application/partners"
	"github.com/jhoicas/Inventario-console/internal/application/transactions"
	"github.com/jhoicas/Inventario-console/internal/domain"
	"github.com/jhoicas/Inventario-console/internal/domain/entity"
	"github.com/jhoicas/Inventario-console/internal/infrastructure/backend"
	"github.com/jhoicas/Inventario-console/internal/infrastructure/memory"
	apphttp "github.com/jhoicas/Inventario-console/internal/interfaces/http"
	"github.com/jhoicas/Inventario-console/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Backend falso
// ──────────────────────────────────────────────────────────────────────────────

type fakeBackend struct {
	mu     sync.Mutex
	tokens []string
	sales  []entity.StockBatch
}

func (f *fakeBackend) seen(ctx context.Context) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tokens = append(f.tokens, backend.BearerToken(ctx))
}

func (f *fakeBackend) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	f.seen(ctx)
	switch id {
	case "arroz":
		return &entity.Product{ID: "arroz", Name: "Arroz", Price: decimal.RequireFromString("1.25"), CurrentStock: 5, SupplierID: "sup-1"}, nil
	case "5":
		return &entity.Product{ID: "5", Name: "Azúcar", Price: decimal.RequireFromString("2.00"), CurrentStock: 3, SupplierID: "3"}, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeBackend) List(ctx context.Context, _ string) ([]entity.Product, error) {
	p, _ := f.GetByID(ctx, "arroz")
	return []entity.Product{*p}, nil
}

type fakeCustomers struct{}

func (fakeCustomers) Create(_ context.Context, c *entity.Customer) (*entity.Customer, error) {
	out := *c
	out.ID = "cus-new"
	return &out, nil
}

func (fakeCustomers) GetByID(_ context.Context, id string) (*entity.Customer, error) {
	if id != "cus-1" {
		return nil, domain.ErrNotFound
	}
	return &entity.Customer{ID: id}, nil
}

type fakeSuppliers struct{}

func (fakeSuppliers) Create(_ context.Context, s *entity.Supplier) (*entity.Supplier, error) {
	out := *s
	out.ID = "sup-new"
	return &out, nil
}

func (fakeSuppliers) GetByID(_ context.Context, id string) (*entity.Supplier, error) {
	return &entity.Supplier{ID: id}, nil
}

func (f *fakeBackend) PostSale(ctx context.Context, b entity.StockBatch) (*entity.BatchResult, error) {
	f.seen(ctx)
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sales = append(f.sales, b)
	return &entity.BatchResult{ID: "venta-1", Reference: "V-0001"}, nil
}

func (f *fakeBackend) PostPurchase(ctx context.Context, b entity.StockBatch) (*entity.BatchResult, error) {
	f.seen(ctx)
	return &entity.BatchResult{ID: "compra-1"}, nil
}

func newAPI(t *testing.T, logOut *bytes.Buffer) (*fiber.App, *fakeBackend) {
	t.Helper()
	fb := &fakeBackend{}
	log := logger.Nop()
	if logOut != nil {
		log = logger.New(logger.Config{Env: "test", Level: "info", Out: logOut})
	}
	txUC := transactions.NewUseCase(transactions.Deps{
		Sessions:  memory.NewSessionRepository(time.Hour),
		Products:  fb,
		Customers: fakeCustomers{},
		Suppliers: fakeSuppliers{},
		Movements: fb,
		Logger:    log,
	})
	app := fiber.New()
	app.Use(apphttp.RequestLogger(log))
	apphttp.Router(app, apphttp.RouterDeps{
		TransactionsUC: txUC,
		PartnersUC:     partners.NewUseCase(fakeCustomers{}, fakeSuppliers{}),
		JWTSecret:      testJWTSecret,
		JWTIssuer:      testIssuer,
	})
	return app, fb
}

type call struct {
	method string
	path   string
	body   interface{}
	role   string
	lang   string
}

func do(t *testing.T, app *fiber.App, c call, out interface{}) int {
	t.Helper()
	var body *bytes.Reader
	if c.body != nil {
		b, err := json.Marshal(c.body)
		require.NoError(t, err)
		body = bytes.NewReader(b)
	} else {
		body = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(c.method, c.path, body)
	req.Header.Set("Content-Type", "application/json")
	role := c.role
	if role == "" {
		role = "admin"
	}
	req.Header.Set("Authorization", tokenForRole(t, role))
	if c.lang != "" {
		req.Header.Set("Accept-Language", c.lang)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	if out != nil && resp.StatusCode != http.StatusNoContent {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

type txBody struct {
	ID        string `json:"id"`
	Type      string `json:"type"`
	Customer  string `json:"customer"`
	Total     string `json:"total"`
	ItemCount int    `json:"item_count"`
	Empty     bool   `json:"empty"`
}

type errBody struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Field   string                 `json:"field"`
	Details map[string]interface{} `json:"details"`
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

func TestTransacciones_VentaCompleta(t *testing.T) {
	app, fb := newAPI(t, nil)

	var tx txBody
	require.Equal(t, http.StatusCreated, do(t, app, call{method: http.MethodPost, path: "/api/transactions", body: map[string]string{"type": "output"}, role: "vendedor"}, &tx))
	base := "/api/transactions/" + tx.ID

	var e errBody
	status := do(t, app, call{method: http.MethodPost, path: base + "/items", body: map[string]interface{}{"product": "arroz", "quantity": 2}, role: "vendedor"}, &e)
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	assert.Equal(t, "MISSING_SELECTION", e.Code)

	require.Equal(t, http.StatusOK, do(t, app, call{method: http.MethodPut, path: base + "/party", body: map[string]string{"customer": "cus-1"}, role: "vendedor"}, &tx))
	assert.Equal(t, "cus-1", tx.Customer)

	require.Equal(t, http.StatusOK, do(t, app, call{method: http.MethodPost, path: base + "/items", body: map[string]interface{}{"product": "arroz", "quantity": "2"}, role: "vendedor"}, &tx))
	require.Equal(t, http.StatusOK, do(t, app, call{method: http.MethodPost, path: base + "/items", body: map[string]interface{}{"product": "arroz", "quantity": 2}, role: "vendedor"}, &tx))
	assert.Equal(t, 4, tx.ItemCount)
	assert.Equal(t, "5", tx.Total)

	e = errBody{}
	status = do(t, app, call{method: http.MethodPost, path: base + "/items", body: map[string]interface{}{"product": "arroz", "quantity": 2}, role: "vendedor"}, &e)
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "INSUFFICIENT_STOCK", e.Code)
	assert.Equal(t, float64(1), e.Details["available"])
	assert.Equal(t, float64(4), e.Details["in_cart"])
	assert.Contains(t, e.Message, "disponible 1")

	var res struct {
		ID      string `json:"id"`
		Cleared bool   `json:"cleared"`
	}
	require.Equal(t, http.StatusCreated, do(t, app, call{method: http.MethodPost, path: base + "/submit", role: "vendedor"}, &res))
	assert.Equal(t, "venta-1", res.ID)
	assert.True(t, res.Cleared)
	require.Len(t, fb.sales, 1)
	assert.Equal(t, 4, fb.sales[0].Items[0].Quantity)
	for _, tok := range fb.tokens {
		assert.NotEmpty(t, tok, "el token del usuario se reenvía al backend")
	}

	require.Equal(t, http.StatusOK, do(t, app, call{method: http.MethodGet, path: base, role: "vendedor"}, &tx))
	assert.True(t, tx.Empty)

	assert.Equal(t, http.StatusNoContent, do(t, app, call{method: http.MethodDelete, path: base, role: "vendedor"}, nil))
	assert.Equal(t, http.StatusNotFound, do(t, app, call{method: http.MethodGet, path: base, role: "vendedor"}, &e))
}

func TestTransacciones_RolPorTipo(t *testing.T) {
	app, _ := newAPI(t, nil)
	var e errBody
	assert.Equal(t, http.StatusForbidden, do(t, app, call{method: http.MethodPost, path: "/api/transactions", body: map[string]string{"type": "input"}, role: "vendedor"}, &e))
	assert.Equal(t, http.StatusForbidden, do(t, app, call{method: http.MethodPost, path: "/api/transactions", body: map[string]string{"type": "output"}, role: "bodeguero"}, &e))
	assert.Equal(t, http.StatusBadRequest, do(t, app, call{method: http.MethodPost, path: "/api/transactions", body: map[string]string{"type": "transfer"}}, &e))
	assert.Equal(t, "INVALID_TYPE", e.Code)

	var tx txBody
	assert.Equal(t, http.StatusCreated, do(t, app, call{method: http.MethodPost, path: "/api/transactions", body: map[string]string{"type": "input"}, role: "bodeguero"}, &tx))
}

func TestTransacciones_CantidadCeroQuitaLinea(t *testing.T) {
	app, _ := newAPI(t, nil)
	var tx txBody
	do(t, app, call{method: http.MethodPost, path: "/api/transactions", body: map[string]string{"type": "output"}}, &tx)
	base := "/api/transactions/" + tx.ID
	do(t, app, call{method: http.MethodPut, path: base + "/party", body: map[string]string{"customer": "cus-1"}}, &tx)
	do(t, app, call{method: http.MethodPost, path: base + "/items", body: map[string]interface{}{"product": "arroz", "quantity": 1}}, &tx)

	var e errBody
	assert.Equal(t, http.StatusUnprocessableEntity, do(t, app, call{method: http.MethodPut, path: base + "/items/arroz", body: map[string]interface{}{"quantity": "abc"}, lang: "en-US"}, &e))
	assert.Equal(t, "INVALID_QUANTITY", e.Code)
	assert.Equal(t, "Quantity must be a positive whole number.", e.Message)

	require.Equal(t, http.StatusOK, do(t, app, call{method: http.MethodPut, path: base + "/items/arroz", body: map[string]interface{}{"quantity": 0}}, &tx))
	assert.True(t, tx.Empty)

	assert.Equal(t, http.StatusConflict, do(t, app, call{method: http.MethodPost, path: base + "/cancel"}, &e))
	assert.Equal(t, "NOT_SUBMITTING", e.Code)
}

func TestTransacciones_IDNumericoYCantidadDecimal(t *testing.T) {
	app, _ := newAPI(t, nil)
	var tx txBody
	do(t, app, call{method: http.MethodPost, path: "/api/transactions", body: map[string]string{"type": "output"}}, &tx)
	base := "/api/transactions/" + tx.ID
	do(t, app, call{method: http.MethodPut, path: base + "/party", body: map[string]string{"customer": "cus-1"}}, &tx)

	require.Equal(t, http.StatusOK, do(t, app, call{method: http.MethodPost, path: base + "/items", body: map[string]interface{}{"product": 5, "quantity": "2.0"}}, &tx))
	assert.Equal(t, 2, tx.ItemCount)
	assert.Equal(t, "4", tx.Total)

	require.Equal(t, http.StatusOK, do(t, app, call{method: http.MethodPut, path: base + "/items/5", body: json.RawMessage(`{"quantity": 0.0}`)}, &tx))
	assert.True(t, tx.Empty)
}

func TestDocumentos_Validar(t *testing.T) {
	app, _ := newAPI(t, nil)

	var out struct {
		Valid   bool   `json:"valid"`
		Reason  string `json:"reason"`
		Message string `json:"message"`
	}
	require.Equal(t, http.StatusOK, do(t, app, call{method: http.MethodPost, path: "/api/documents/validate", body: map[string]string{"document_type": "cedula", "document": "1710034065"}, role: "vendedor"}, &out))
	assert.True(t, out.Valid)

	out.Valid = true
	require.Equal(t, http.StatusOK, do(t, app, call{method: http.MethodPost, path: "/api/documents/validate", body: map[string]string{"document_type": "cedula", "document": "3010034065"}}, &out))
	assert.False(t, out.Valid)
	assert.Equal(t, "INVALID_PROVINCE", out.Reason)
	assert.Equal(t, "El código de provincia no es válido.", out.Message)

	require.Equal(t, http.StatusOK, do(t, app, call{method: http.MethodPost, path: "/api/documents/validate", body: map[string]string{"document_type": "passport", "document": "AB-12"}, lang: "en"}, &out))
	assert.Equal(t, "INVALID_LENGTH", out.Reason)
	assert.True(t, strings.HasPrefix(out.Message, "The passport"))
}

func TestClientes_Crear(t *testing.T) {
	app, _ := newAPI(t, nil)

	var e errBody
	assert.Equal(t, http.StatusUnprocessableEntity, do(t, app, call{method: http.MethodPost, path: "/api/customers", body: map[string]string{"name": "Ana", "document": "1710034064"}, role: "vendedor"}, &e))
	assert.Equal(t, "INVALID_CHECKSUM", e.Code)
	assert.Equal(t, "document", e.Field)

	var created entity.Customer
	assert.Equal(t, http.StatusCreated, do(t, app, call{method: http.MethodPost, path: "/api/customers", body: map[string]string{"name": "Ana", "document": "1710034065"}, role: "vendedor"}, &created))
	assert.Equal(t, "cus-new", created.ID)

	assert.Equal(t, http.StatusForbidden, do(t, app, call{method: http.MethodPost, path: "/api/suppliers", body: map[string]string{"name": "X", "document": "1790011674001"}, role: "vendedor"}, &e))
}

func TestRequestLogger_RequestID(t *testing.T) {
	var buf bytes.Buffer
	app, _ := newAPI(t, &buf)

	req := httptest.NewRequest(http.MethodGet, "/api/transactions", nil)
	req.Header.Set("Authorization", tokenForRole(t, "admin"))
	req.Header.Set(apphttp.HeaderRequestID, "req-123")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "req-123", resp.Header.Get(apphttp.HeaderRequestID))
	assert.Contains(t, buf.String(), `"request_id":"req-123"`)
	assert.Contains(t, buf.String(), `"status":200`)

	req = httptest.NewRequest(http.MethodGet, "/api/transactions", nil)
	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get(apphttp.HeaderRequestID))
}

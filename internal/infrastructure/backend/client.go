// Package backend adapta los puertos de repositorio a la API REST del backend de inventario.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/jhoicas/Inventario-console/internal/domain"
)

// Config parámetros explícitos del cliente (sin singletons de módulo).
type Config struct {
	BaseURL           string
	CSRFToken         string
	Timeout           time.Duration
	RequestsPerSecond float64
	Burst             int
	HTTPClient        *http.Client // opcional; útil en tests
}

// Client cliente HTTP compartido por los repositorios del backend.
// El limitador evita saturar el backend cuando varios operadores envían a la vez.
type Client struct {
	baseURL    string
	csrfToken  string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// NewClient construye el cliente.
func NewClient(cfg Config) *Client {
	hc := cfg.HTTPClient
	if hc == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = 15 * time.Second
		}
		hc = &http.Client{Timeout: timeout}
	}
	limit := rate.Inf
	if cfg.RequestsPerSecond > 0 {
		limit = rate.Limit(cfg.RequestsPerSecond)
	}
	burst := cfg.Burst
	if burst <= 0 {
		burst = 1
	}
	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		csrfToken:  cfg.CSRFToken,
		httpClient: hc,
		limiter:    rate.NewLimiter(limit, burst),
	}
}

// APIError respuesta no exitosa del backend. Unwrap devuelve el error de dominio equivalente.
type APIError struct {
	Method string
	Path   string
	Status int
	Body   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("backend: %s %s: status %d: %s", e.Method, e.Path, e.Status, e.Body)
}

func (e *APIError) Unwrap() error {
	switch {
	case e.Status == http.StatusNotFound:
		return domain.ErrNotFound
	case e.Status == http.StatusUnauthorized:
		return domain.ErrUnauthorized
	case e.Status == http.StatusForbidden:
		return domain.ErrForbidden
	case e.Status == http.StatusConflict:
		if err := e.bodyReason(); err != nil {
			return err
		}
		return domain.ErrConflict
	case e.Status == http.StatusBadRequest || e.Status == http.StatusUnprocessableEntity:
		if err := e.bodyReason(); err != nil {
			return err
		}
		return domain.ErrInvalidInput
	default:
		return domain.ErrUpstream
	}
}

// Marcas en los mensajes de validación del backend.
var (
	duplicateMarkers = []string{"already exists", "ya existe", "unique", "duplicate", "duplicado"}
	stockMarkers     = []string{"insufficient stock", "stock insuficiente", "not enough stock", "current_stock"}
)

// bodyReason distingue duplicados y falta de stock dentro de los rechazos 4xx.
func (e *APIError) bodyReason() error {
	body := strings.ToLower(e.Body)
	for _, m := range stockMarkers {
		if strings.Contains(body, m) {
			return domain.ErrInsufficientStock
		}
	}
	for _, m := range duplicateMarkers {
		if strings.Contains(body, m) {
			return domain.ErrDuplicate
		}
	}
	return nil
}

// maxErrorBody límite del cuerpo de error que se conserva en APIError.
const maxErrorBody = 2048

func (c *Client) do(ctx context.Context, method, path string, in, out interface{}) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("backend: esperar turno: %w", err)
	}

	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("backend: serializar request: %w", err)
		}
		body = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("backend: crear request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.csrfToken != "" && method != http.MethodGet {
		req.Header.Set("X-CSRFToken", c.csrfToken)
	}
	if tok := BearerToken(ctx); tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("backend: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &APIError{Method: method, Path: path, Status: resp.StatusCode, Body: strings.TrimSpace(string(b))}
	}
	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("backend: decodificar respuesta de %s %s: %w", method, path, err)
	}
	return nil
}

// decodeList acepta un arreglo JSON o un objeto paginado {"results": [...]}.
func decodeList(raw json.RawMessage, out interface{}) error {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		return json.Unmarshal(trimmed, out)
	}
	var page struct {
		Results json.RawMessage `json:"results"`
	}
	if err := json.Unmarshal(trimmed, &page); err != nil {
		return err
	}
	if len(page.Results) == 0 {
		return nil
	}
	return json.Unmarshal(page.Results, out)
}

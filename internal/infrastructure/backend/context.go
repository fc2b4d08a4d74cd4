package backend

import "context"

type ctxKey struct{}

// WithBearerToken guarda en el contexto el token del usuario para reenviarlo al backend.
func WithBearerToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, ctxKey{}, token)
}

// BearerToken token guardado por WithBearerToken ("" si no hay).
func BearerToken(ctx context.Context) string {
	s, _ := ctx.Value(ctxKey{}).(string)
	return s
}

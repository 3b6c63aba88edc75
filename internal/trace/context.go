package trace

import "context"

// ctxKey is the key type for storing a Tracer in context.
type ctxKey struct{}

// FromContext extracts the Tracer from ctx, nil when none is attached.
func FromContext(ctx context.Context) *Tracer {
	if ctx == nil {
		return nil
	}
	if t, ok := ctx.Value(ctxKey{}).(*Tracer); ok {
		return t
	}
	return nil
}

// WithTracer attaches a Tracer to ctx.
func WithTracer(ctx context.Context, t *Tracer) context.Context {
	return context.WithValue(ctx, ctxKey{}, t)
}

package logs

import (
	"context"
	"log/slog"
)

type simKey struct{}

// WithSim tags ctx so records logged with it carry the sim name.
func WithSim(ctx context.Context, name string) context.Context {
	return context.WithValue(ctx, simKey{}, name)
}

// Handler adds the sim tag from the context to each record.
type Handler struct {
	slog.Handler
}

func (h *Handler) Handle(ctx context.Context, record slog.Record) error {
	if v, ok := ctx.Value(simKey{}).(string); ok {
		record.Add("sim", v)
	}
	return h.Handler.Handle(ctx, record)
}

func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &Handler{Handler: h.Handler.WithAttrs(attrs)}
}

func (h *Handler) WithGroup(name string) slog.Handler {
	return &Handler{Handler: h.Handler.WithGroup(name)}
}

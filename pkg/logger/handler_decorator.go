package logger

import (
	"context"
	"log/slog"
)

// ContextExtractor extracts a slog attribute from context. It reports false
// when the context carries nothing to log, for example a request outside the
// request ID middleware.
type ContextExtractor func(ctx context.Context) (slog.Attr, bool)

// LogHandlerDecorator wraps a slog.Handler and adds attributes pulled from the
// record's context at Handle time. The stores log with the request context
// (WarnContext, DebugContext), so a rejected cookie is reported together with
// the request that carried it.
//
//	h := logger.NewLogHandlerDecorator(slog.NewJSONHandler(os.Stderr, nil),
//		func(ctx context.Context) (slog.Attr, bool) {
//			id := middleware.GetReqID(ctx)
//			return slog.String("request_id", id), id != ""
//		},
//	)
type LogHandlerDecorator struct {
	next       slog.Handler
	extractors []ContextExtractor
}

// NewLogHandlerDecorator creates a new decorated handler. Nil extractors are dropped.
func NewLogHandlerDecorator(next slog.Handler, extractors ...ContextExtractor) slog.Handler {
	clean := make([]ContextExtractor, 0, len(extractors))
	for _, ex := range extractors {
		if ex != nil {
			clean = append(clean, ex)
		}
	}
	return &LogHandlerDecorator{next: next, extractors: clean}
}

// Enabled defers to the wrapped handler; extractors never run for records
// that would be dropped.
func (h *LogHandlerDecorator) Enabled(ctx context.Context, level slog.Level) bool {
	return h.next.Enabled(ctx, level)
}

// Handle appends every attribute the extractors find in ctx, in extractor
// order, then passes the record on.
func (h *LogHandlerDecorator) Handle(ctx context.Context, rec slog.Record) error {
	if len(h.extractors) == 0 {
		return h.next.Handle(ctx, rec)
	}
	for _, ex := range h.extractors {
		if attr, ok := ex(ctx); ok {
			rec.AddAttrs(attr)
		}
	}
	return h.next.Handle(ctx, rec)
}

// WithAttrs returns a decorator over next.WithAttrs that keeps the extractors,
// so loggers derived with With (such as a store's component logger) still
// receive request attributes.
func (h *LogHandlerDecorator) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &LogHandlerDecorator{
		next:       h.next.WithAttrs(attrs),
		extractors: h.extractors,
	}
}

// WithGroup returns a decorator over next.WithGroup that keeps the extractors.
// Extracted attributes land inside the group.
func (h *LogHandlerDecorator) WithGroup(name string) slog.Handler {
	return &LogHandlerDecorator{
		next:       h.next.WithGroup(name),
		extractors: h.extractors,
	}
}

package services

import "context"

type contextKey string

const (
	entryIDKey   contextKey = "entry_id"
	partnerIDKey contextKey = "partner_id"
	requestIDKey contextKey = "request_id"
)

// WithEntryID annotates context with the entry being inspected.
func WithEntryID(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, entryIDKey, id)
}

// EntryIDFromContext extracts the entry identifier if present.
func EntryIDFromContext(ctx context.Context) (string, bool) {
	if v, ok := ctx.Value(entryIDKey).(string); ok && v != "" {
		return v, true
	}
	return "", false
}

// WithPartnerID annotates context with the Kaltura partner identifier.
func WithPartnerID(ctx context.Context, id int) context.Context {
	if id <= 0 {
		return ctx
	}
	return context.WithValue(ctx, partnerIDKey, id)
}

// PartnerIDFromContext returns the partner identifier if present.
func PartnerIDFromContext(ctx context.Context) (int, bool) {
	v := ctx.Value(partnerIDKey)
	switch val := v.(type) {
	case int:
		return val, true
	case int64:
		return int(val), true
	default:
		return 0, false
	}
}

// WithRequestID annotates context with a correlation identifier.
func WithRequestID(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, requestIDKey, id)
}

// RequestIDFromContext extracts the correlation identifier if present.
func RequestIDFromContext(ctx context.Context) (string, bool) {
	if v, ok := ctx.Value(requestIDKey).(string); ok && v != "" {
		return v, true
	}
	return "", false
}

// Package observability provides logging, metrics, and tracing.
package observability

import (
	"context"
	"log/slog"
	"os"
)

// GlobalLogger is the default structured logger for code that runs outside a
// request, such as seeding and the approval workflow.
var GlobalLogger *slog.Logger

func init() {
	GlobalLogger = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
}

// LogContextKey is a type for context keys used by the logging package.
type LogContextKey string

// CorrelationID keys log lines from the same logical operation.
const CorrelationID LogContextKey = "correlation_id"

// WithCorrelationID returns a new context carrying the given correlation ID.
func WithCorrelationID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, CorrelationID, id)
}

// ExtractCorrelationID retrieves the correlation ID from the context.
func ExtractCorrelationID(ctx context.Context) string {
	if id, ok := ctx.Value(CorrelationID).(string); ok {
		return id
	}
	return ""
}

// LogApprovalDecision records an admin decision on a shelter or store.
func LogApprovalDecision(ctx context.Context, entity string, entityID uint, decision string, reviewerID uint) {
	GlobalLogger.InfoContext(ctx, "approval decision",
		slog.String("entity", entity),
		slog.Uint64("entity_id", uint64(entityID)),
		slog.String("decision", decision),
		slog.Uint64("reviewer_id", uint64(reviewerID)),
		slog.String("correlation_id", ExtractCorrelationID(ctx)),
	)
}

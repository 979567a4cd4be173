package service

import (
	"log/slog"
	"strings"

	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("foodparadise/internal/service")

func resolveLogger(logger *slog.Logger) *slog.Logger {
	if logger != nil {
		return logger
	}
	return slog.Default()
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Package ctxkeys holds the values middleware attaches to a request.
package ctxkeys

import (
	"context"

	"github.com/templui/cuidador/internal/config"
)

type key int

const (
	configKey key = iota
	requestIDKey
)

// Config returns the sanitized configuration, or nil outside a request.
func Config(ctx context.Context) *config.Config {
	cfg, _ := ctx.Value(configKey).(*config.Config)
	return cfg
}

func WithConfig(ctx context.Context, cfg *config.Config) context.Context {
	return context.WithValue(ctx, configKey, cfg)
}

func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// Package logging provides zerolog helpers shared by the CLI and the TUI.
package logging

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Component creates a logger tagged with a component identifier under the
// "cmp" key.
func Component(name string) zerolog.Logger {
	return log.With().Str("cmp", name).Logger()
}

type contextKey string

const (
	sheetKey   contextKey = "sheet"
	surfaceKey contextKey = "surface_id"
)

// WithSheet adds the name of the sheet being presented to the context.
func WithSheet(ctx context.Context, name string) context.Context {
	return context.WithValue(ctx, sheetKey, name)
}

// WithSurfaceID adds the presenting surface ID to the context.
func WithSurfaceID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, surfaceKey, id)
}

// GetSheet returns the sheet name from the context, or "".
func GetSheet(ctx context.Context) string {
	if v, ok := ctx.Value(sheetKey).(string); ok {
		return v
	}
	return ""
}

// GetSurfaceID returns the surface ID from the context, or "".
func GetSurfaceID(ctx context.Context) string {
	if v, ok := ctx.Value(surfaceKey).(string); ok {
		return v
	}
	return ""
}

// ContextHook copies the sheet name and surface ID from the event context
// into the log event.
type ContextHook struct{}

// Run adds contextual fields to the zerolog event.
func (h ContextHook) Run(e *zerolog.Event, _ zerolog.Level, _ string) {
	ctx := e.GetCtx()
	if ctx == nil || ctx == context.Background() {
		return
	}

	if name := GetSheet(ctx); name != "" {
		e.Str("sheet", name)
	}
	if id := GetSurfaceID(ctx); id != "" {
		e.Str("surface_id", id)
	}
}

package logging

import (
	"context"
	"maps"
)

type ctxKey struct{}

// ContextWithFields stores request scoped fields on ctx. Fields already on
// the context are kept; new values win on key collisions.
func ContextWithFields(ctx context.Context, fields map[string]any) context.Context {
	if ctx == nil || len(fields) == 0 {
		return ctx
	}
	merged := ContextFields(ctx)
	if merged == nil {
		merged = make(map[string]any, len(fields))
	}
	maps.Copy(merged, fields)
	return context.WithValue(ctx, ctxKey{}, merged)
}

// ContextFields returns a copy of the fields stored by ContextWithFields.
func ContextFields(ctx context.Context) map[string]any {
	if ctx == nil {
		return nil
	}
	stored, _ := ctx.Value(ctxKey{}).(map[string]any)
	if len(stored) == 0 {
		return nil
	}
	return maps.Clone(stored)
}

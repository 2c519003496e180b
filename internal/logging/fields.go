package logging

import (
	"context"
	"maps"

	"github.com/bobbyhiddn/Veinity.Hub/pkg/interfaces"
)

type fieldsKey struct{}

// ContextWithFields returns ctx annotated with fields. Later calls layer on
// top of earlier ones, with the newest value winning per key.
func ContextWithFields(ctx context.Context, fields map[string]any) context.Context {
	if ctx == nil || len(fields) == 0 {
		return ctx
	}
	merged := mergeFields(ContextFields(ctx), fields)
	return context.WithValue(ctx, fieldsKey{}, merged)
}

// ContextFields returns a copy of the fields stored on ctx, or nil.
func ContextFields(ctx context.Context) map[string]any {
	if ctx == nil {
		return nil
	}
	fields, _ := ctx.Value(fieldsKey{}).(map[string]any)
	if len(fields) == 0 {
		return nil
	}
	return maps.Clone(fields)
}

// WithFields attaches fields to logger when it implements
// interfaces.FieldsLogger and returns logger unchanged otherwise.
func WithFields(logger interfaces.Logger, fields map[string]any) interfaces.Logger {
	if len(fields) == 0 {
		return logger
	}
	if fl, ok := logger.(interfaces.FieldsLogger); ok {
		return fl.WithFields(maps.Clone(fields))
	}
	return logger
}

func mergeFields(layers ...map[string]any) map[string]any {
	size := 0
	for _, layer := range layers {
		size += len(layer)
	}
	if size == 0 {
		return nil
	}
	out := make(map[string]any, size)
	for _, layer := range layers {
		maps.Copy(out, layer)
	}
	return out
}

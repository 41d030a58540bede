package query

import (
	"context"
)

type invalidationTargetsContextKey struct{}

// WithInvalidationTargets attaches extra resource names to invalidate
// when a write executed under this context succeeds. Use it for flows
// where the affected resources depend on runtime data rather than the
// static contract declared with WithInvalidates.
func WithInvalidationTargets(ctx context.Context, resources ...string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	if len(resources) == 0 {
		return ctx
	}

	combined := append(invalidationTargetsFromContext(ctx), resources...)
	combined = dedupeStrings(combined)
	if len(combined) == 0 {
		return ctx
	}

	return context.WithValue(ctx, invalidationTargetsContextKey{}, combined)
}

func invalidationTargetsFromContext(ctx context.Context) []string {
	if ctx == nil {
		return nil
	}
	if targets, ok := ctx.Value(invalidationTargetsContextKey{}).([]string); ok {
		return append([]string(nil), targets...)
	}
	return nil
}

func dedupeStrings(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	result := make([]string, 0, len(values))
	for _, v := range values {
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		result = append(result, v)
	}
	return result
}

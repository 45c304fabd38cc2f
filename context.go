package rsclient

import "context"

type silentContextKey struct{}
type redirectContextKey struct{}

// WithSilent marks every request issued under ctx as silent: classified
// failures skip the user-facing notifier but are still returned to the
// caller for local handling.
func WithSilent(ctx context.Context) context.Context {
	return context.WithValue(ctx, silentContextKey{}, true)
}

// WithRedirect records the surface the caller wanted before login began.
// Login reports it back as the landing target instead of the role-based
// default.
func WithRedirect(ctx context.Context, target string) context.Context {
	return context.WithValue(ctx, redirectContextKey{}, target)
}

func silentFromContext(ctx context.Context) bool {
	if ctx == nil {
		return false
	}

	silent, _ := ctx.Value(silentContextKey{}).(bool)
	return silent
}

func redirectFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}

	target, _ := ctx.Value(redirectContextKey{}).(string)
	return target
}

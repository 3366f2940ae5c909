package app

import "context"

type contextKey struct{}

var appContextKey = contextKey{}

// FromContext returns the App stored by WithApp
func FromContext(ctx context.Context) (*App, error) {
	a, ok := ctx.Value(appContextKey).(*App)
	if !ok || a == nil {
		return nil, ErrNotInitialized
	}
	return a, nil
}

// WithApp stores the App in ctx for subcommands
func WithApp(ctx context.Context, a *App) context.Context {
	return context.WithValue(ctx, appContextKey, a)
}

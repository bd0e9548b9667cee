package resources

import "context"

// ActorFunc returns the username acting in ctx, or "" when unknown.
type ActorFunc func(ctx context.Context) string

type actorKey struct{}

// WithActor records the acting username on ctx.
func WithActor(ctx context.Context, username string) context.Context {
	return context.WithValue(ctx, actorKey{}, username)
}

// ActorFromContext reads the username stored by WithActor.
func ActorFromContext(ctx context.Context) string {
	username, _ := ctx.Value(actorKey{}).(string)
	return username
}

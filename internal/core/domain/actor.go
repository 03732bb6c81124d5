package domain

import "context"

type actorKey struct{}

// WithActor returns a copy of ctx carrying the login of the authenticated caller.
func WithActor(ctx context.Context, login string) context.Context {
	return context.WithValue(ctx, actorKey{}, login)
}

// ActorFrom returns the caller login stored by WithActor, or "".
func ActorFrom(ctx context.Context) string {
	login, _ := ctx.Value(actorKey{}).(string)
	return login
}

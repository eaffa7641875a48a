package domain

import "context"

type CtxKey string

const (
	KeyUserID    CtxKey = "UserID"
	KeyActor     CtxKey = "Actor"
	KeyRequestID CtxKey = "RequestID"
)

// WithActor stores the authenticated caller in ctx.
func WithActor(ctx context.Context, actor *Actor) context.Context {
	ctx = context.WithValue(ctx, KeyUserID, actor.UserID)
	return context.WithValue(ctx, KeyActor, actor)
}

// ActorFromContext returns the authenticated caller, if any.
func ActorFromContext(ctx context.Context) (*Actor, bool) {
	actor, ok := ctx.Value(KeyActor).(*Actor)
	return actor, ok && actor != nil
}

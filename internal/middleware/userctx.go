package middleware

import "context"

type userKey struct{}

// User is the authenticated caller.
type User struct {
	Username string
	IsAdmin  bool
}

func WithUser(ctx context.Context, u User) context.Context {
	return context.WithValue(ctx, userKey{}, u)
}

// FromCtx returns the caller, if the request carried a valid token.
func FromCtx(ctx context.Context) (User, bool) {
	u, ok := ctx.Value(userKey{}).(User)
	return u, ok
}

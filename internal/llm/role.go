package llm

import "context"

type roleKey struct{}

// WithRole tags ctx with the generation role issuing the call (architect,
// copywriter, stylist, seo, intent, patch). Used for logging and by the
// fake client to pick deterministic fixtures.
func WithRole(ctx context.Context, role string) context.Context {
	return context.WithValue(ctx, roleKey{}, role)
}

// RoleFrom returns the role tagged on ctx, or "".
func RoleFrom(ctx context.Context) string {
	role, _ := ctx.Value(roleKey{}).(string)
	return role
}

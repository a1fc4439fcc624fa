package httpx

import "context"

type ctxKey string

// CtxKeyUserID holds the id of the account behind an admin session.
const CtxKeyUserID ctxKey = "user_id"

// WithUserID stores the authenticated account id in ctx.
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, CtxKeyUserID, userID)
}

// UserIDFromContext returns the authenticated account id, if any.
func UserIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(CtxKeyUserID).(string)
	return id, ok && id != ""
}

// Package requestid carries the request id through context.Context so
// layers below HTTP can tag audit records and logs with it.
package requestid

import "context"

type ctxKey struct{}

func With(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

// From returns "" when ctx carries no request id.
func From(ctx context.Context) string {
	v, _ := ctx.Value(ctxKey{}).(string)
	return v
}

package audit

import "context"

// RequestMeta is the per-request information attached to every audit event.
type RequestMeta struct {
	IP        string
	RequestID string
	AccountID string // set once the bearer token is verified
}

type requestMetaKey struct{}

func WithRequest(ctx context.Context, meta RequestMeta) context.Context {
	return context.WithValue(ctx, requestMetaKey{}, meta)
}

// WithAccount records the authenticated account on the request metadata.
func WithAccount(ctx context.Context, accountID string) context.Context {
	meta, _ := RequestFromContext(ctx)
	meta.AccountID = accountID
	return WithRequest(ctx, meta)
}

func RequestFromContext(ctx context.Context) (RequestMeta, bool) {
	if ctx == nil {
		return RequestMeta{}, false
	}
	meta, ok := ctx.Value(requestMetaKey{}).(RequestMeta)
	return meta, ok
}

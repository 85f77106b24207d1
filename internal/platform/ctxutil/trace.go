package ctxutil

import "context"

type traceDataKey struct{}
type requestDataKey struct{}

// TraceData identifies a request in logs and spans. Area is the part of the
// site the request hit (leads, catalog, content, analytics, admin, system).
type TraceData struct {
	TraceID   string
	RequestID string
	Area      string
}

func WithTraceData(ctx context.Context, td *TraceData) context.Context {
	return context.WithValue(ctx, traceDataKey{}, td)
}

func GetTraceData(ctx context.Context) *TraceData {
	if td, ok := ctx.Value(traceDataKey{}).(*TraceData); ok {
		return td
	}
	return nil
}

// RequestData describes the caller. Admin is set only after a valid admin token was presented.
// AuthErr holds the verification failure of a token that was presented but rejected.
type RequestData struct {
	Admin   bool
	Subject string
	AuthErr error
}

func WithRequestData(ctx context.Context, rd *RequestData) context.Context {
	return context.WithValue(ctx, requestDataKey{}, rd)
}

func GetRequestData(ctx context.Context) *RequestData {
	if rd, ok := ctx.Value(requestDataKey{}).(*RequestData); ok {
		return rd
	}
	return nil
}

func IsAdmin(ctx context.Context) bool {
	rd := GetRequestData(ctx)
	return rd != nil && rd.Admin
}

// AuthError returns the rejected-token error recorded for the caller, if any.
func AuthError(ctx context.Context) error {
	if rd := GetRequestData(ctx); rd != nil {
		return rd.AuthErr
	}
	return nil
}

// Default returns context.Background() when ctx is nil.
func Default(ctx context.Context) context.Context {
	if ctx == nil {
		return context.Background()
	}
	return ctx
}

package httpclient

import (
	"context"
	"net/http"
)

// RequestIDHeader заголовок, в котором передается идентификатор сессии викторины
const RequestIDHeader = "X-Request-ID"

type requestIDKey struct{}

// ContextWithRequestID кладет идентификатор в контекст запроса
func ContextWithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestIDFromContext достает идентификатор из контекста
func RequestIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(requestIDKey{}).(string)
	return id, ok && id != ""
}

type requestIDDoer struct {
	next Doer
}

// WithRequestID проставляет X-Request-ID из контекста каждому исходящему запросу
func WithRequestID(next Doer) Doer {
	return &requestIDDoer{next: next}
}

func (d *requestIDDoer) Do(req *http.Request) (*http.Response, error) {
	if id, ok := RequestIDFromContext(req.Context()); ok && req.Header.Get(RequestIDHeader) == "" {
		req = req.Clone(req.Context())
		req.Header.Set(RequestIDHeader, id)
	}
	return d.next.Do(req)
}

var _ Doer = (*requestIDDoer)(nil)

package httpcontext

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/valyala/fasthttp"

	appLogger "github.com/fastygo/tasklist/pkg/logger"
)

// HeaderRequestID carries the request ID in both directions.
const HeaderRequestID = "X-Request-ID"

// Adapter converts fasthttp.RequestCtx into a stdlib context with a deadline
// and a request ID.
type Adapter struct {
	base    context.Context
	timeout time.Duration
}

// NewAdapter constructs an Adapter. Contexts it hands out are cancelled when
// base is, so in-flight requests observe shutdown.
func NewAdapter(base context.Context, timeout time.Duration) *Adapter {
	if base == nil {
		base = context.Background()
	}
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Adapter{
		base:    base,
		timeout: timeout,
	}
}

// Attach derives the request context and echoes the request ID header.
func (a *Adapter) Attach(ctx *fasthttp.RequestCtx) (context.Context, context.CancelFunc) {
	stdCtx, cancel := context.WithTimeout(a.base, a.timeout)

	reqID := requestID(ctx)
	stdCtx = appLogger.ContextWithRequestID(stdCtx, reqID)
	ctx.Response.Header.Set(HeaderRequestID, reqID)

	return stdCtx, cancel
}

func requestID(ctx *fasthttp.RequestCtx) string {
	if header := strings.TrimSpace(string(ctx.Request.Header.Peek(HeaderRequestID))); header != "" {
		return header
	}
	return uuid.NewString()
}

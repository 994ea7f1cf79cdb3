package httpcontext

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valyala/fasthttp"

	appLogger "github.com/fastygo/tasklist/pkg/logger"
)

func TestAttachKeepsIncomingRequestID(t *testing.T) {
	var rc fasthttp.RequestCtx
	rc.Request.Header.Set(HeaderRequestID, "abc-123")

	ctx, cancel := NewAdapter(context.Background(), time.Second).Attach(&rc)
	defer cancel()

	assert.Equal(t, "abc-123", appLogger.RequestID(ctx))
	assert.Equal(t, "abc-123", string(rc.Response.Header.Peek(HeaderRequestID)))
	_, hasDeadline := ctx.Deadline()
	assert.True(t, hasDeadline)
}

func TestAttachGeneratesRequestID(t *testing.T) {
	var rc fasthttp.RequestCtx
	ctx, cancel := NewAdapter(nil, 0).Attach(&rc)
	defer cancel()

	_, err := uuid.Parse(appLogger.RequestID(ctx))
	require.NoError(t, err)
}

func TestAttachFollowsBaseCancellation(t *testing.T) {
	base, stop := context.WithCancel(context.Background())
	var rc fasthttp.RequestCtx
	ctx, cancel := NewAdapter(base, time.Minute).Attach(&rc)
	defer cancel()

	stop()
	<-ctx.Done()
	assert.ErrorIs(t, ctx.Err(), context.Canceled)
}

package middleware

import (
	"time"

	"github.com/MoonManEnt/mavro-pro-ai-marketing-os-sub004/internal/constants"
	ctxutil "github.com/MoonManEnt/mavro-pro-ai-marketing-os-sub004/pkg/context"
	"github.com/MoonManEnt/mavro-pro-ai-marketing-os-sub004/pkg/logger"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ContextMiddleware seeds the request context with a request id, client
// details and a start time, and logs request start and completion.
func ContextMiddleware(module string) gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(constants.HeaderXRequestID)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Header(constants.HeaderXRequestID, requestID)

		ctx := ctxutil.NewContextWithRequest(c.Request.Context(), c.Request, module, c.FullPath())
		ctx = ctxutil.WithRequestID(ctx, requestID)
		c.Request = c.Request.WithContext(ctx)

		logger.DebugWithContext(ctx, "Request started").
			Method(c.Request.Method).
			Path(c.Request.URL.Path).
			Log()

		c.Next()

		// Auth middleware may have replaced the request context.
		done := c.Request.Context()
		logger.InfoWithContext(done, "Request completed").
			Method(c.Request.Method).
			Path(c.Request.URL.Path).
			StatusCode(c.Writer.Status()).
			Int("response_size", c.Writer.Size()).
			Duration(time.Since(ctxutil.GetStartTime(ctx))).
			Log()
	}
}

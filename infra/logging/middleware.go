package logging

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/giovaniif/locallawnpro/infra/requestid"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// Middleware attaches a request-scoped logger to the request context and
// writes one access line per request once the handler chain returns.
func Middleware(base *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		ctx := c.Request.Context()

		fields := []zap.Field{zap.String("request_id", requestid.FromContext(ctx))}
		if sc := trace.SpanContextFromContext(ctx); sc.IsValid() {
			fields = append(fields,
				zap.String("trace_id", sc.TraceID().String()),
				zap.String("span_id", sc.SpanID().String()),
			)
		}
		logger := base.With(fields...)
		c.Request = c.Request.WithContext(ContextWithLogger(ctx, logger))

		c.Next()

		route := c.FullPath()
		if route == "" {
			route = c.Request.URL.Path
		}
		status := c.Writer.Status()
		accessFields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("route", route),
			zap.Int("status", status),
			zap.Duration("latency", time.Since(start)),
			zap.String("client_ip", c.ClientIP()),
		}
		switch {
		case status >= 500:
			logger.Error("http_request", accessFields...)
		case status >= 400:
			logger.Warn("http_request", accessFields...)
		default:
			logger.Info("http_request", accessFields...)
		}
	}
}

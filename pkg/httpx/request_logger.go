package httpx

import (
	"time"

	"github.com/Gunvolt24/cartsync/internal/ports"
	"github.com/Gunvolt24/cartsync/pkg/ctxmeta"
	"github.com/gin-gonic/gin"
)

// RequestLogger logs one line per request. Probes and the event stream are skipped.
func RequestLogger(log ports.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		switch path {
		case "/metrics", "/ping":
			return
		case "":
			path = c.Request.URL.Path
		}

		ctx := c.Request.Context()
		rid, _ := ctxmeta.RequestIDFromContext(ctx)
		traceID, _ := ctxmeta.TraceIDFromContext(ctx)

		status := c.Writer.Status()
		logf := log.Infof
		if status >= 500 {
			logf = log.Warnf
		}
		logf(ctx,
			"request id=%s trace=%s method=%s path=%s status=%d ip=%s duration=%s size=%d",
			rid, traceID, c.Request.Method, path, status, c.ClientIP(), time.Since(start), c.Writer.Size(),
		)
	}
}

package httpapi

import (
	"context"
	"errors"
	"net/http"

	gateway "github.com/Gunvolt24/cartsync/internal/gateway/rest"
	"github.com/Gunvolt24/cartsync/internal/pipeline"
	"github.com/gin-gonic/gin"
)

// statusFor maps pipeline and gateway errors to an HTTP status and a
// client-facing message.
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, gateway.ErrRejected):
		return http.StatusBadGateway, "cart api rejected the change"
	case errors.Is(err, gateway.ErrDecode):
		return http.StatusBadGateway, "cart api returned an invalid cart"
	case errors.Is(err, gateway.ErrTransport):
		return http.StatusBadGateway, "cart api unavailable"
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, "timed out waiting for the cart api"
	case errors.Is(err, context.Canceled):
		// client went away; nobody reads the body
		return 499, "request cancelled"
	case errors.Is(err, pipeline.ErrClosed):
		return http.StatusServiceUnavailable, "shutting down"
	default:
		return http.StatusInternalServerError, "internal server error"
	}
}

func (h *Handler) fail(c *gin.Context, op string, productID int, err error) {
	status, msg := statusFor(err)
	ctx := c.Request.Context()
	if status >= http.StatusInternalServerError {
		h.log.Errorf(ctx, "%s failed product=%d status=%d err=%v", op, productID, status, err)
	} else {
		h.log.Warnf(ctx, "%s failed product=%d status=%d err=%v", op, productID, status, err)
	}

	var gwErr *gateway.Error
	if errors.As(err, &gwErr) && gwErr.Status != 0 {
		c.JSON(status, gin.H{"error": msg, "upstreamStatus": gwErr.Status})
		return
	}
	c.JSON(status, gin.H{"error": msg})
}

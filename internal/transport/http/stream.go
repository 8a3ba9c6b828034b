package httpapi

import (
	"time"

	"github.com/gin-gonic/gin"
)

const keepAliveEvery = 15 * time.Second

// streamCart pushes every published snapshot as a server-sent "cart" event.
// The current value (possibly null) is sent first.
func (h *Handler) streamCart(c *gin.Context) {
	updates, unsubscribe := h.service.Subscribe()
	defer unsubscribe()

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")

	keepAlive := time.NewTicker(keepAliveEvery)
	defer keepAlive.Stop()

	ctx := c.Request.Context()
	for {
		select {
		case <-ctx.Done():
			return
		case snap, ok := <-updates:
			if !ok {
				c.SSEvent("close", "pipeline closed")
				c.Writer.Flush()
				return
			}
			if snap == nil {
				c.SSEvent("cart", "null")
			} else {
				c.SSEvent("cart", snap)
			}
			c.Writer.Flush()
		case <-keepAlive.C:
			c.SSEvent("ping", time.Now().UTC().Format(time.RFC3339))
			c.Writer.Flush()
		}
	}
}

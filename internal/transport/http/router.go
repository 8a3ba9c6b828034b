package httpapi

import (
	"net/http"

	"github.com/Gunvolt24/cartsync/pkg/httpx"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

// NewRouter builds the gin engine. A non-empty serviceName turns on otelgin.
func NewRouter(h *Handler, serviceName string) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(httpx.RequestIDMiddleware())
	if serviceName != "" {
		r.Use(otelgin.Middleware(serviceName))
	}
	r.Use(httpx.RequestLogger(h.log))

	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	cart := r.Group("/cart")
	cart.GET("", h.getCart)
	cart.POST("/refresh", h.refreshCart)
	cart.GET("/stream", h.streamCart)
	cart.GET("/compare", h.compare)
	cart.GET("/flushes", h.flushes)

	items := cart.Group("/items/:productId")
	items.POST("/increment", h.increment)
	items.POST("/decrement", h.decrement)
	items.PUT("", h.setQuantity)
	items.DELETE("", h.removeItem)

	return r
}

// Package httpapi exposes the cart pipeline over HTTP.
package httpapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/Gunvolt24/cartsync/internal/domain"
	"github.com/Gunvolt24/cartsync/internal/ports"
	"github.com/Gunvolt24/cartsync/pkg/httpx"
	"github.com/gin-gonic/gin"
)

const (
	defaultHandlerTimeout = 5 * time.Second
	defaultFlushesLimit   = 50
	maxFlushesLimit       = 500
)

// Handler serves the cart API on top of a CartService. Shopping comparison
// and the flush journal are optional and answer 404 when not configured.
type Handler struct {
	service  ports.CartService
	shopping ports.ShoppingGateway
	journal  ports.FlushJournal
	log      ports.Logger
	timeout  time.Duration
}

// HandlerOption enables optional endpoints of a Handler.
type HandlerOption func(*Handler)

// WithShopping enables GET /cart/compare.
func WithShopping(s ports.ShoppingGateway) HandlerOption {
	return func(h *Handler) { h.shopping = s }
}

// WithFlushJournal enables GET /cart/flushes.
func WithFlushJournal(j ports.FlushJournal) HandlerOption {
	return func(h *Handler) { h.journal = j }
}

// NewHandler wires handlers to the pipeline. timeout bounds each request
// except the event stream; zero means five seconds.
func NewHandler(service ports.CartService, log ports.Logger, timeout time.Duration, opts ...HandlerOption) *Handler {
	if timeout <= 0 {
		timeout = defaultHandlerTimeout
	}
	h := &Handler{service: service, log: log, timeout: timeout}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

type setQuantityRequest struct {
	Quantity *int `json:"quantity" binding:"required"`
}

func (h *Handler) getCart(c *gin.Context) {
	snap := h.service.Snapshot()
	if snap == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "cart not loaded yet"})
		return
	}
	c.JSON(http.StatusOK, snap)
}

func (h *Handler) refreshCart(c *gin.Context) {
	ctx, cancel := h.withTimeout(c)
	defer cancel()

	if err := h.service.RefreshCart(ctx); err != nil {
		h.fail(c, "refresh", 0, err)
		return
	}
	h.respondSnapshot(c)
}

func (h *Handler) increment(c *gin.Context) {
	h.mutate(c, "increment", h.service.Increment)
}

func (h *Handler) decrement(c *gin.Context) {
	h.mutate(c, "decrement", h.service.Decrement)
}

func (h *Handler) removeItem(c *gin.Context) {
	h.mutate(c, "remove", h.service.RemoveFromCart)
}

func (h *Handler) setQuantity(c *gin.Context) {
	productID, err := httpx.ParseProductID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	var req setQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "body must be {\"quantity\": N}"})
		return
	}
	if *req.Quantity < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "quantity must be >= 0"})
		return
	}

	ctx, cancel := h.withTimeout(c)
	defer cancel()

	if err := h.service.SetQuantity(ctx, productID, *req.Quantity); err != nil {
		h.fail(c, "set", productID, err)
		return
	}
	h.respondSnapshot(c)
}

// mutate runs a product-level operation. A nil error also covers the case
// where the edit was folded into a later one; the response then carries
// whatever the pipeline has confirmed so far.
func (h *Handler) mutate(c *gin.Context, op string, fn func(context.Context, int) error) {
	productID, err := httpx.ParseProductID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := h.withTimeout(c)
	defer cancel()

	if err := fn(ctx, productID); err != nil {
		h.fail(c, op, productID, err)
		return
	}
	h.respondSnapshot(c)
}

func (h *Handler) compare(c *gin.Context) {
	if h.shopping == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "store comparison is disabled"})
		return
	}
	snap := h.service.Snapshot()
	if snap == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "cart not loaded yet"})
		return
	}

	filter, err := parseShoppingFilter(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := h.withTimeout(c)
	defer cancel()

	results, err := h.shopping.ShoppingResults(ctx, snap.ID, filter)
	if err != nil {
		h.fail(c, "compare", 0, err)
		return
	}
	if results == nil {
		results = []domain.ShoppingResult{}
	}
	c.JSON(http.StatusOK, gin.H{"cartId": snap.ID, "results": results})
}

func (h *Handler) flushes(c *gin.Context) {
	if h.journal == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "flush journal is disabled"})
		return
	}
	limit := httpx.ParseLimit(c, defaultFlushesLimit, maxFlushesLimit)

	ctx, cancel := h.withTimeout(c)
	defer cancel()

	recs, err := h.journal.Recent(ctx, limit)
	if err != nil {
		h.log.Errorf(ctx, "flush journal read failed limit=%d err=%v", limit, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	if recs == nil {
		recs = []domain.FlushRecord{}
	}
	c.JSON(http.StatusOK, recs)
}

func (h *Handler) respondSnapshot(c *gin.Context) {
	snap := h.service.Snapshot()
	if snap == nil {
		c.Status(http.StatusNoContent)
		return
	}
	c.JSON(http.StatusOK, snap)
}

func (h *Handler) withTimeout(c *gin.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request.Context(), h.timeout)
}

func parseShoppingFilter(c *gin.Context) (domain.ShoppingFilter, error) {
	var (
		f   domain.ShoppingFilter
		err error
	)
	if f.StoreIDs, err = httpx.ParseIntList(c.Query("storeIds")); err != nil {
		return f, err
	}
	for key, dst := range map[string]*float64{"radius": &f.Radius, "lat": &f.Latitude, "long": &f.Longitude} {
		if *dst, err = httpx.QueryFloat(c, key); err != nil {
			return f, fmt.Errorf("invalid query parameter %s", key)
		}
	}
	if f.Radius < 0 {
		return f, errors.New("radius must be >= 0")
	}
	return f, nil
}

package httpx_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Gunvolt24/cartsync/pkg/ctxmeta"
	"github.com/Gunvolt24/cartsync/pkg/httpx"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func serveWithRequestID(header string) (rid, fromCtx string) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(httpx.RequestIDMiddleware())
	r.GET("/", func(c *gin.Context) {
		fromCtx, _ = ctxmeta.RequestIDFromContext(c.Request.Context())
		c.Status(http.StatusNoContent)
	})

	req := httptest.NewRequest(http.MethodGet, "/", http.NoBody)
	if header != "" {
		req.Header.Set(httpx.HeaderRequestID, header)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w.Header().Get(httpx.HeaderRequestID), fromCtx
}

func TestRequestIDMiddleware_GeneratesWhenMissing(t *testing.T) {
	rid, fromCtx := serveWithRequestID("")
	if _, err := uuid.Parse(rid); err != nil {
		t.Fatalf("generated X-Request-ID must be a UUID, got=%q err=%v", rid, err)
	}
	if fromCtx != rid {
		t.Fatalf("ctx id %q != header %q", fromCtx, rid)
	}
}

func TestRequestIDMiddleware_KeepsProvidedHeader(t *testing.T) {
	rid, fromCtx := serveWithRequestID("custom-id-42")
	if rid != "custom-id-42" || fromCtx != "custom-id-42" {
		t.Fatalf("got header=%q ctx=%q", rid, fromCtx)
	}
}

func TestRequestIDMiddleware_ReplacesOversizedHeader(t *testing.T) {
	rid, _ := serveWithRequestID(strings.Repeat("a", 200))
	if _, err := uuid.Parse(rid); err != nil {
		t.Fatalf("oversized id must be replaced, got %q", rid)
	}
}

package httpx

import (
	"errors"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

var (
	ErrBadProductID = errors.New("productId must be a positive integer")
	ErrBadIntList   = errors.New("expected a comma-separated list of integers")
)

// ClampInt keeps v within [lo, hi].
func ClampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// ParseLimit reads ?limit= with a default and an upper bound.
// Garbage falls back to the default.
func ParseLimit(c *gin.Context, defaultLimit, maxLimit int) int {
	limit := ClampInt(defaultLimit, 1, maxLimit)
	if v, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultLimit))); err == nil {
		limit = ClampInt(v, 1, maxLimit)
	}
	return limit
}

// ParseProductID reads the :productId path parameter.
func ParseProductID(c *gin.Context) (int, error) {
	id, err := strconv.Atoi(strings.TrimSpace(c.Param("productId")))
	if err != nil || id <= 0 {
		return 0, ErrBadProductID
	}
	return id, nil
}

// ParseIntList parses "1,2, 3". Empty input gives nil.
func ParseIntList(raw string) ([]int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	parts := strings.Split(raw, ",")
	out := make([]int, 0, len(parts))
	for _, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, ErrBadIntList
		}
		out = append(out, v)
	}
	return out, nil
}

// QueryFloat reads an optional float query parameter; absent means 0.
func QueryFloat(c *gin.Context, key string) (float64, error) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return 0, nil
	}
	return strconv.ParseFloat(raw, 64)
}

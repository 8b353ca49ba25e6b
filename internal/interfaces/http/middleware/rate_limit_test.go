package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/storefront/internal/pkg/logger"
)

func rateLimitedRouter(t *testing.T, limit int) (*gin.Engine, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	cfg := testConfig()
	cfg.Storage.KeyPrefix = "storefront"
	cfg.Security.RateLimitPerMinute = limit

	r := gin.New()
	r.Use(RateLimit(cfg, rdb, logger.Discard()))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusNoContent) })
	return r, mr
}

func TestRateLimit(t *testing.T) {
	r, mr := rateLimitedRouter(t, 2)

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "203.0.113.7:4000"
		r.ServeHTTP(w, req)
		codes = append(codes, w.Code)
	}

	assert.Equal(t, []int{http.StatusNoContent, http.StatusNoContent, http.StatusTooManyRequests}, codes)

	got, err := mr.Get("storefront:rate_limit:203.0.113.7")
	require.NoError(t, err)
	assert.Equal(t, "2", got)
	assert.Positive(t, mr.TTL("storefront:rate_limit:203.0.113.7"))
}

func TestRateLimitFailsOpen(t *testing.T) {
	r, mr := rateLimitedRouter(t, 1)
	mr.Close()

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusNoContent, w.Code)
}

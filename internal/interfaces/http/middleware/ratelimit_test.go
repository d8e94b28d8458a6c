package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time { return c.t }

func newTestLimiter(rate float64, burst int) (*TokenBucketLimiter, *fakeClock) {
	clock := &fakeClock{t: time.Unix(1_700_000_000, 0)}
	l := NewTokenBucketLimiter(rate, burst, 0)
	l.now = clock.now
	return l, clock
}

func TestTokenBucketLimiter_BurstThenRefill(t *testing.T) {
	l, clock := newTestLimiter(2, 3)

	for i := 0; i < 3; i++ {
		ok, info := l.Allow("k")
		require.True(t, ok, "request %d", i)
		assert.Equal(t, 2-i, info.Remaining)
	}
	ok, info := l.Allow("k")
	assert.False(t, ok)
	assert.Equal(t, 0, info.Remaining)
	assert.Equal(t, 3, info.Limit)

	clock.t = clock.t.Add(500 * time.Millisecond)
	ok, _ = l.Allow("k")
	assert.True(t, ok)

	ok, _ = l.Allow("other")
	assert.True(t, ok)
	assert.Equal(t, 2, l.BucketCount())
}

func TestTokenBucketLimiter_Cleanup(t *testing.T) {
	l, clock := newTestLimiter(1, 1)
	l.cleanupInterval = time.Minute
	l.Allow("idle")

	clock.t = clock.t.Add(2 * time.Minute)
	l.cleanup()
	assert.Equal(t, 0, l.BucketCount())
	l.Stop()
	l.Stop()
}

func TestRateLimit_Middleware(t *testing.T) {
	l, _ := newTestLimiter(1, 1)
	h := RateLimit(l, nil)(okHandler())

	req := func() *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodPost, "/api/v1/predict", nil)
		r.RemoteAddr = "10.0.0.1:5555"
		h.ServeHTTP(w, r)
		return w
	}

	first := req()
	assert.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, "1", first.Header().Get("X-RateLimit-Limit"))

	second := req()
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
	assert.NotEmpty(t, second.Header().Get("Retry-After"))
	var body map[string]string
	require.NoError(t, json.Unmarshal(second.Body.Bytes(), &body))
	assert.Equal(t, "COMMON_013", body["code"])
}

func TestClientIPKey(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.RemoteAddr = "192.0.2.7:1234"
	assert.Equal(t, "192.0.2.7", ClientIPKey(r))

	r.RemoteAddr = "192.0.2.7"
	assert.Equal(t, "192.0.2.7", ClientIPKey(r))
}

func TestPathPrefixKey(t *testing.T) {
	key := PathPrefixKey(func(*http.Request) string { return "ip" })
	assert.Equal(t, "predict:ip", key(httptest.NewRequest(http.MethodPost, "/api/v1/predict", nil)))
	assert.Equal(t, "sessions:ip", key(httptest.NewRequest(http.MethodPost, "/api/v1/sessions/abc/undo", nil)))
}

//Personal.AI order the ending

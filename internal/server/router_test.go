package server

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"testing/fstest"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/celerix-dev/mergington-activities/internal/engine"
)

var testBundle = fstest.MapFS{
	"index.html": {Data: []byte("<!DOCTYPE html><title>Mergington High School</title>")},
	"app.js":     {Data: []byte("console.log('ok');")},
	"styles.css": {Data: []byte("body{}")},
}

func newTestRouter(t *testing.T) (*Router, *engine.MemStore) {
	gin.SetMode(gin.TestMode)
	store := engine.NewMemStore(engine.DefaultSeed())
	router := NewRouter(Options{
		Store:          store,
		Static:         testBundle,
		Logger:         zaptest.NewLogger(t),
		CORSOrigin:     "*",
		MetricsEnabled: true,
		ReadTimeout:    5 * time.Second,
		WriteTimeout:   5 * time.Second,
		IdleTimeout:    5 * time.Second,
	})
	return router, store
}

func serve(r *Router, method, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)
	w := httptest.NewRecorder()
	r.Handler().ServeHTTP(w, req)
	return w
}

func TestRootRedirect(t *testing.T) {
	router, _ := newTestRouter(t)

	w := serve(router, http.MethodGet, "/")
	assert.Contains(t, []int{301, 302, 307}, w.Code)
	assert.True(t, strings.HasSuffix(w.Header().Get("Location"), "/static/index.html"))
}

func TestStaticAssets(t *testing.T) {
	router, _ := newTestRouter(t)

	w := serve(router, http.MethodGet, "/static/app.js")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "console.log('ok');", w.Body.String())

	w = serve(router, http.MethodGet, "/static/")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Mergington High School")

	w = serve(router, http.MethodGet, "/static/missing.js")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHealthz(t *testing.T) {
	router, _ := newTestRouter(t)

	w := serve(router, http.MethodGet, "/healthz")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status": "ok"}`, w.Body.String())
}

func TestRequestIDAndCORS(t *testing.T) {
	router, _ := newTestRouter(t)

	w := serve(router, http.MethodGet, "/activities")
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	rec := httptest.NewRecorder()
	router.Handler().ServeHTTP(rec, req)
	assert.Equal(t, "abc-123", rec.Header().Get("X-Request-ID"))

	w = serve(router, http.MethodOptions, "/activities/Chess%20Club/signup")
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	router, _ := newTestRouter(t)

	w := serve(router, http.MethodPost, "/activities/Chess%20Club/signup?email=metrics%40mergington.edu")
	require.Equal(t, http.StatusOK, w.Code)

	w = serve(router, http.MethodGet, "/metrics")
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, `activities_membership_changes_total{activity="Chess Club",operation="signup",outcome="ok"}`)
	assert.Contains(t, body, `activities_participants{activity="Chess Club"}`)
	assert.Contains(t, body, `activities_http_requests_total`)
}

func TestUnknownRoute(t *testing.T) {
	router, _ := newTestRouter(t)

	w := serve(router, http.MethodGet, "/nope")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRouter_ListenAndStop(t *testing.T) {
	router, store := newTestRouter(t)

	done := make(chan error, 1)
	go func() { done <- router.Listen("127.0.0.1:0") }()

	// Wait a bit for listener to be set
	var base string
	for i := 0; i < 20; i++ {
		time.Sleep(25 * time.Millisecond)
		if addr := router.Addr(); addr != nil {
			base = "http://" + addr.String()
			break
		}
	}
	require.NotEmpty(t, base, "server did not start in time")

	client := &http.Client{
		Timeout: 5 * time.Second,
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}

	resp, err := client.Get(base + "/")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusTemporaryRedirect, resp.StatusCode)

	// Concurrent signups of distinct emails all land exactly once.
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			q := url.Values{"email": {fmt.Sprintf("s%d@mergington.edu", id)}}
			req, _ := http.NewRequest(http.MethodPost, base+"/activities/Art%20Club/signup?"+q.Encode(), nil)
			resp, err := client.Do(req)
			if err != nil {
				t.Errorf("signup %d: %v", id, err)
				return
			}
			io.Copy(io.Discard, resp.Body)
			resp.Body.Close()
			if resp.StatusCode != http.StatusOK {
				t.Errorf("signup %d: status %d", id, resp.StatusCode)
			}
		}(i)
	}
	wg.Wait()

	a, err := store.Get("Art Club")
	require.NoError(t, err)
	assert.Len(t, a.Participants, 22)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, router.Stop(ctx))

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Listen did not return after Stop")
	}
}

func TestRouter_StopBeforeListen(t *testing.T) {
	router, _ := newTestRouter(t)
	assert.Nil(t, router.Addr())
	assert.NoError(t, router.Stop(context.Background()))
}

package main

import (
	"context"
	"encoding/json"
	"image/png"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/semaphore"
)

func serve(t *testing.T, target string) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)
	cfg := DefaultConfig()
	cfg.Width, cfg.Height, cfg.Ticks = 120, 90, 2
	rec := httptest.NewRecorder()
	newRouter(cfg).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestHealthz(t *testing.T) {
	rec := serve(t, "/healthz")
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body["status"] != "ok" {
		t.Errorf("Expected status ok, got %v", body)
	}
}

func TestConfigEndpoint(t *testing.T) {
	rec := serve(t, "/config")
	var body struct {
		Theme string `json:"theme"`
		Width int    `json:"width"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body.Theme != "night" || body.Width != 120 {
		t.Errorf("Unexpected config body %+v", body)
	}
}

func TestFramePNG(t *testing.T) {
	rec := serve(t, "/frame.png?theme=glyphs&w=64&h=48&ticks=3&seed=9")
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "image/png" {
		t.Errorf("Expected image/png, got %q", ct)
	}
	if cc := rec.Header().Get("Cache-Control"); cc != "no-store" {
		t.Errorf("Expected no-store, got %q", cc)
	}
	img, err := png.Decode(rec.Body)
	if err != nil {
		t.Fatalf("Expected PNG body: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 64 || b.Dy() != 48 {
		t.Errorf("Expected 64x48, got %dx%d", b.Dx(), b.Dy())
	}
}

func TestFramePNGDefaults(t *testing.T) {
	rec := serve(t, "/frame.png")
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}
	img, err := png.Decode(rec.Body)
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() != 120 || b.Dy() != 90 {
		t.Errorf("Expected configured 120x90, got %dx%d", b.Dx(), b.Dy())
	}
}

func TestFramePNGBadRequest(t *testing.T) {
	for _, target := range []string{
		"/frame.png?theme=plaid",
		"/frame.png?w=abc",
		"/frame.png?w=0",
		"/frame.png?h=99999",
		"/frame.png?ticks=-1",
		"/frame.png?seed=x",
	} {
		rec := serve(t, target)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("%s: expected 400, got %d", target, rec.Code)
			continue
		}
		var body map[string]string
		if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil || body["error"] == "" {
			t.Errorf("%s: expected a JSON error, got %q", target, rec.Body.String())
		}
	}
}

func TestFramePNGOverBudget(t *testing.T) {
	for _, target := range []string{
		"/frame.png?w=4096&h=4096&ticks=3600",
		"/frame.png?ticks=601",
		"/frame.png?w=4096&h=4096&ticks=1",
		"/frame.png?w=2560&h=1440&ticks=120",
	} {
		rec := serve(t, target)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("%s: expected 400, got %d", target, rec.Code)
			continue
		}
		if !strings.Contains(rec.Body.String(), "render budget") {
			t.Errorf("%s: expected a budget error, got %q", target, rec.Body.String())
		}
	}
}

func TestFramePNGWithinBudget(t *testing.T) {
	rec := serve(t, "/frame.png?w=320&h=180&ticks=600")
	if rec.Code != http.StatusOK {
		t.Errorf("Expected 200 at the tick limit, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestFrameHandlerBusy(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cfg := DefaultConfig()
	cfg.Width, cfg.Height, cfg.Ticks = 32, 32, 1

	slots := semaphore.NewWeighted(1)
	r := gin.New()
	r.GET("/frame.png", frameHandler(cfg, slots))

	if !slots.TryAcquire(1) {
		t.Fatal("Expected a free slot")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/frame.png", nil).WithContext(ctx))
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("Expected 503 while every slot is taken, got %d", rec.Code)
	}

	slots.Release(1)
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/frame.png", nil))
	if rec.Code != http.StatusOK {
		t.Errorf("Expected 200 once a slot is free, got %d", rec.Code)
	}
	if !slots.TryAcquire(1) {
		t.Error("Expected the handler to release its slot")
	}
}

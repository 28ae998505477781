package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"runtime"
	"strconv"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/semaphore"

	"github.com/olivierh59500/particles-background/backdrop"
)

// Serve mode limits. Frames over budget are rejected before rendering and
// at most renderSlots() renders run at once.
const (
	maxServeArea  = 2560 * 1440
	maxServeTicks = 600
	maxServeWork  = 1920 * 1080 * 120
	renderTimeout = 10 * time.Second
)

var errOverBudget = errors.New("frame over render budget")

func renderSlots() int64 {
	return int64(max(1, runtime.GOMAXPROCS(0)))
}

// parseFrameRequest reads the query of /frame.png, defaulting to cfg.
func parseFrameRequest(c *gin.Context, cfg Config) (frameRequest, error) {
	theme, err := backdrop.ParseTheme(c.DefaultQuery("theme", cfg.Theme))
	if err != nil {
		return frameRequest{}, err
	}
	req := frameRequest{Theme: theme, Opacity: cfg.Opacity, Turbulence: cfg.Turbulence}

	ints := []struct {
		key string
		def int
		dst *int
	}{
		{"w", cfg.Width, &req.Width},
		{"h", cfg.Height, &req.Height},
		{"ticks", cfg.Ticks, &req.Ticks},
	}
	for _, q := range ints {
		v, err := strconv.Atoi(c.DefaultQuery(q.key, strconv.Itoa(q.def)))
		if err != nil {
			return frameRequest{}, fmt.Errorf("bad %s: %w", q.key, err)
		}
		*q.dst = v
	}
	if req.Seed, err = strconv.ParseInt(c.DefaultQuery("seed", strconv.FormatInt(cfg.Seed, 10)), 10, 64); err != nil {
		return frameRequest{}, fmt.Errorf("bad seed: %w", err)
	}

	if err := checkSize(req.Width, req.Height); err != nil {
		return frameRequest{}, err
	}
	if req.Ticks < 0 {
		return frameRequest{}, fmt.Errorf("ticks out of range 0-%d", maxServeTicks)
	}
	if req.Ticks > maxServeTicks || req.Width*req.Height > maxServeArea || req.work() > maxServeWork {
		return frameRequest{}, fmt.Errorf("%w: %dx%d for %d ticks (limits: %d ticks, %d px, %d px-ticks)",
			errOverBudget, req.Width, req.Height, req.Ticks, maxServeTicks, maxServeArea, maxServeWork)
	}
	return req, nil
}

func newRouter(cfg Config) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	if cfg.Debug {
		r.Use(gin.Logger())
	}

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/config", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"theme":   cfg.Theme,
			"width":   cfg.Width,
			"height":  cfg.Height,
			"ticks":   cfg.Ticks,
			"opacity": cfg.Opacity,
		})
	})

	r.GET("/frame.png", frameHandler(cfg, semaphore.NewWeighted(renderSlots())))

	return r
}

// frameHandler renders a PNG per request. slots bounds concurrent renders;
// a request that cannot get a slot before its context ends gets 503.
func frameHandler(cfg Config, slots *semaphore.Weighted) gin.HandlerFunc {
	return func(c *gin.Context) {
		req, err := parseFrameRequest(c, cfg)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), renderTimeout)
		defer cancel()
		if err := slots.Acquire(ctx, 1); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "renderer busy"})
			return
		}
		defer slots.Release(1)

		img, err := renderFrame(ctx, req)
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		var buf bytes.Buffer
		if err := encodePNG(&buf, img); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.Header("Cache-Control", "no-store")
		c.Data(http.StatusOK, "image/png", buf.Bytes())
	}
}

// runServer serves rendered frames until SIGINT or SIGTERM.
func runServer(cfg Config) error {
	if !cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}
	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           newRouter(cfg),
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errc := make(chan error, 1)
	go func() {
		log.Printf("serving frames on %s", cfg.Addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

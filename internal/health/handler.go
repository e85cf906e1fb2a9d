package health

import (
	"context"
	"database/sql"
	"net/http"
	"runtime"
	"runtime/debug"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/sangkips/flight-notify-service/internal/handlers"
)

// CheckFunc reports whether one dependency is reachable.
type CheckFunc func(ctx context.Context) error

type checker struct {
	name     string
	check    CheckFunc
	required bool
}

type Handler struct {
	checkers []checker
	started  time.Time
}

func NewHandler() *Handler {
	return &Handler{started: time.Now()}
}

// Require adds a dependency the service cannot work without. A failure
// makes /health answer 503.
func (h *Handler) Require(name string, fn CheckFunc) *Handler {
	h.checkers = append(h.checkers, checker{name: name, check: fn, required: true})
	return h
}

// Optional adds a dependency whose loss only degrades the service.
func (h *Handler) Optional(name string, fn CheckFunc) *Handler {
	h.checkers = append(h.checkers, checker{name: name, check: fn})
	return h
}

func (h *Handler) RegisterHealthRoutes(r chi.Router) {
	r.Get("/health", h.Health)
	r.Post("/cleanup", h.Cleanup)
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string           `json:"status"`
	Checks    map[string]Check `json:"checks"`
	Process   Process          `json:"process"`
	Timestamp time.Time        `json:"timestamp"`
}

// Check represents a single health check
type Check struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

type Process struct {
	Uptime     string `json:"uptime"`
	Goroutines int    `json:"goroutines"`
	Memory     Memory `json:"memory"`
}

type Memory struct {
	AllocBytes     uint64 `json:"allocBytes"`
	HeapInuseBytes uint64 `json:"heapInuseBytes"`
	SysBytes       uint64 `json:"sysBytes"`
	NumGC          uint32 `json:"numGC"`
}

func readMemory() Memory {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return Memory{
		AllocBytes:     m.Alloc,
		HeapInuseBytes: m.HeapInuse,
		SysBytes:       m.Sys,
		NumGC:          m.NumGC,
	}
}

// Health runs every registered check.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	checks := make(map[string]Check, len(h.checkers))
	status := "healthy"
	for _, c := range h.checkers {
		if err := c.check(ctx); err != nil {
			checks[c.name] = Check{Status: "unhealthy", Message: c.name + " check failed: " + err.Error()}
			switch {
			case c.required:
				status = "unhealthy"
			case status == "healthy":
				status = "degraded"
			}
			continue
		}
		checks[c.name] = Check{Status: "healthy", Message: c.name + " is accessible"}
	}

	statusCode := http.StatusOK
	if status == "unhealthy" {
		statusCode = http.StatusServiceUnavailable
	}

	handlers.RespondWithJSON(w, statusCode, HealthResponse{
		Status: status,
		Checks: checks,
		Process: Process{
			Uptime:     time.Since(h.started).Round(time.Second).String(),
			Goroutines: runtime.NumGoroutine(),
			Memory:     readMemory(),
		},
		Timestamp: time.Now(),
	})
}

type CleanupResponse struct {
	Success bool   `json:"success"`
	Before  Memory `json:"before"`
	After   Memory `json:"after"`
}

// Cleanup forces a collection and returns freed memory to the OS.
func (h *Handler) Cleanup(w http.ResponseWriter, r *http.Request) {
	before := readMemory()
	runtime.GC()
	debug.FreeOSMemory()
	after := readMemory()

	log.Info().
		Uint64("alloc_before", before.AllocBytes).
		Uint64("alloc_after", after.AllocBytes).
		Msg("manual garbage collection")

	handlers.RespondWithJSON(w, http.StatusOK, CleanupResponse{Success: true, Before: before, After: after})
}

// DatabaseCheck pings db and runs a trivial query.
func DatabaseCheck(db *sql.DB) CheckFunc {
	return func(ctx context.Context) error {
		if err := db.PingContext(ctx); err != nil {
			return err
		}
		var result int
		return db.QueryRowContext(ctx, "SELECT 1").Scan(&result)
	}
}

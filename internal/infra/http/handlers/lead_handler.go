package handlers

import (
	"net"
	"net/http"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/xavierca1/ligue-leads/internal/usecase"
)

type LeadHandler struct {
	createLead  *usecase.CreateLeadUseCase
	rateLimiter *RateLimiter
	log         *zap.Logger
}

func NewLeadHandler(createLead *usecase.CreateLeadUseCase, limiter *RateLimiter, log *zap.Logger) *LeadHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &LeadHandler{
		createLead:  createLead,
		rateLimiter: limiter,
		log:         log,
	}
}

// CaptureLead salva o lead e responde sem esperar e-mail/WhatsApp.
func (h *LeadHandler) CaptureLead(w http.ResponseWriter, r *http.Request) {
	if h.rateLimiter != nil && !h.rateLimiter.Allow(getClientIP(r)) {
		writeError(w, http.StatusTooManyRequests, "", "Too many requests. Please try again later.")
		return
	}

	var input usecase.CreateLeadInput
	if err := decodeJSON(w, r, &input); err != nil {
		writeError(w, http.StatusBadRequest, usecase.CodeValidation, "Invalid JSON")
		return
	}

	out, err := h.createLead.Execute(r.Context(), input)
	if err != nil {
		writeUsecaseError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, out)
}

// getClientIP só confia em RemoteAddr; quem reescreve a partir dos headers do
// proxy é o chimw.RealIP no router.
func getClientIP(r *http.Request) string {
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}

type RateLimiter struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	limit    int
	window   time.Duration
	now      func() time.Time
}

type visitor struct {
	count     int
	lastReset time.Time
}

func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		visitors: make(map[string]*visitor),
		limit:    limit,
		window:   window,
		now:      time.Now,
	}
}

func (rl *RateLimiter) Allow(ip string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	v, exists := rl.visitors[ip]
	now := rl.now()

	if !exists {
		rl.visitors[ip] = &visitor{count: 1, lastReset: now}
		return true
	}

	if now.Sub(v.lastReset) > rl.window {
		v.count = 1
		v.lastReset = now
		return true
	}

	v.count++
	return v.count <= rl.limit
}

// Cleanup remove visitantes antigos até done fechar.
func (rl *RateLimiter) Cleanup(done <-chan struct{}, every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			rl.sweep()
		}
	}
}

func (rl *RateLimiter) sweep() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	for ip, v := range rl.visitors {
		if now.Sub(v.lastReset) > rl.window*2 {
			delete(rl.visitors, ip)
		}
	}
}

package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/FredesVirginia/captus-back/internal/apierror"
)

// slidingWindow counts requests per client IP inside a fixed-length window
// that resets lazily on the first request after expiry.
type slidingWindow struct {
	mu      sync.Mutex
	entries map[string]*windowEntry
	limit   int
	window  time.Duration
}

type windowEntry struct {
	count     int
	windowEnd time.Time
}

var (
	windowsMu  sync.Mutex
	allWindows []*slidingWindow
)

func newSlidingWindow(limit int, window time.Duration) *slidingWindow {
	w := &slidingWindow{
		entries: make(map[string]*windowEntry),
		limit:   limit,
		window:  window,
	}
	windowsMu.Lock()
	allWindows = append(allWindows, w)
	windowsMu.Unlock()
	return w
}

// allow counts one request for ip. It returns false once the limit is hit,
// along with the time the current window closes.
func (w *slidingWindow) allow(ip string) (bool, time.Time) {
	w.mu.Lock()
	defer w.mu.Unlock()

	now := time.Now()
	e, ok := w.entries[ip]
	if !ok || now.After(e.windowEnd) {
		e = &windowEntry{windowEnd: now.Add(w.window)}
		w.entries[ip] = e
	}
	e.count++
	return e.count <= w.limit, e.windowEnd
}

func (w *slidingWindow) purge(now time.Time) int {
	w.mu.Lock()
	defer w.mu.Unlock()

	purged := 0
	for ip, e := range w.entries {
		if now.After(e.windowEnd) {
			delete(w.entries, ip)
			purged++
		}
	}
	return purged
}

// loginWindow throttles credential guessing: 20 attempts per minute per IP.
var loginWindow = newSlidingWindow(20, time.Minute)

// LoginRateLimiter guards the login endpoint only.
func LoginRateLimiter() gin.HandlerFunc {
	return func(c *gin.Context) {
		if ok, _ := loginWindow.allow(c.ClientIP()); !ok {
			c.AbortWithStatusJSON(http.StatusTooManyRequests,
				apierror.New("TOO_MANY_REQUESTS", http.StatusTooManyRequests, "Demasiados intentos de login. Intente en 1 minuto."))
			return
		}
		c.Next()
	}
}

// RateLimiter is the general per-IP limiter applied to the whole API.
func RateLimiter(limit int, window time.Duration) gin.HandlerFunc {
	w := newSlidingWindow(limit, window)
	return func(c *gin.Context) {
		ok, windowEnd := w.allow(c.ClientIP())
		if !ok {
			c.Header("Retry-After", windowEnd.Format(time.RFC1123))
			c.AbortWithStatusJSON(http.StatusTooManyRequests,
				apierror.New("TOO_MANY_REQUESTS", http.StatusTooManyRequests, "Demasiadas solicitudes. Intente nuevamente en un momento."))
			return
		}
		c.Next()
	}
}

// Expired entries are swept periodically so IPs that never return do not
// accumulate in the maps.

const purgeInterval = 5 * time.Minute

func init() {
	go func() {
		ticker := time.NewTicker(purgeInterval)
		defer ticker.Stop()

		for range ticker.C {
			now := time.Now()
			total := 0

			windowsMu.Lock()
			windows := allWindows
			windowsMu.Unlock()

			for _, w := range windows {
				total += w.purge(now)
			}
			if total > 0 {
				log.Debug().Int("entries_purged", total).Msg("rate limiter maps purged")
			}
		}
	}()
}

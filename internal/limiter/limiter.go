// Package limiter implements the fixed-window, per-client request limiter that guards public submissions.
//
// State lives in process memory only. A [Limiter] is constructed once at startup and shared by reference with
// every handler that needs it.
package limiter

import (
	"fmt"
	"sync"
	"time"

	"github.com/desertthunder/jobboard/internal/shared"
	"github.com/robfig/cron/v3"
)

const (
	DefaultLimit  = 10
	DefaultWindow = time.Hour
)

// Limiter counts requests per client identifier within a trailing window.
type Limiter struct {
	mu      sync.Mutex
	limit   int
	window  time.Duration
	now     func() time.Time
	clients map[string][]time.Time
}

// New creates a [Limiter] allowing limit requests per window. A nil now uses [time.Now].
func New(limit int, window time.Duration, now func() time.Time) *Limiter {
	if limit <= 0 {
		limit = DefaultLimit
	}
	if window <= 0 {
		window = DefaultWindow
	}
	if now == nil {
		now = time.Now
	}
	return &Limiter{limit: limit, window: window, now: now, clients: make(map[string][]time.Time)}
}

// Check records a request for clientID, failing with [shared.ErrRateLimited] when the client already made
// limit requests within the window. Rejected requests are not recorded.
func (l *Limiter) Check(clientID string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	recent := l.prune(clientID, now)
	if len(recent) >= l.limit {
		return fmt.Errorf("%w: %d requests per %s", shared.ErrRateLimited, l.limit, l.window)
	}

	l.clients[clientID] = append(recent, now)
	return nil
}

// Remaining returns how many more requests clientID may make in the current window.
func (l *Limiter) Remaining(clientID string) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	return max(l.limit-len(l.prune(clientID, l.now())), 0)
}

// RetryAfter returns how long clientID has to wait before its next request is accepted.
// It is zero when the client is under the limit.
func (l *Limiter) RetryAfter(clientID string) time.Duration {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	recent := l.prune(clientID, now)
	if len(recent) < l.limit {
		return 0
	}
	// the oldest request that has to expire to free a slot
	oldest := recent[len(recent)-l.limit]
	return oldest.Add(l.window).Sub(now)
}

// Sweep drops clients whose requests have all left the window and returns how many were removed.
func (l *Limiter) Sweep() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	removed := 0
	for id := range l.clients {
		if len(l.prune(id, now)) == 0 {
			delete(l.clients, id)
			removed++
		}
	}
	return removed
}

// Clients returns the number of tracked clients.
func (l *Limiter) Clients() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.clients)
}

// Schedule registers [Limiter.Sweep] on c using a cron spec such as "@every 10m".
func (l *Limiter) Schedule(c *cron.Cron, spec string) (cron.EntryID, error) {
	id, err := c.AddFunc(spec, func() { l.Sweep() })
	if err != nil {
		return 0, fmt.Errorf("%w: sweep schedule %q: %w", shared.ErrInvalidConfig, spec, err)
	}
	return id, nil
}

// prune drops timestamps with now - t >= window and stores the result. Callers hold mu.
func (l *Limiter) prune(clientID string, now time.Time) []time.Time {
	stamps := l.clients[clientID]
	keep := stamps[:0]
	for _, t := range stamps {
		if now.Sub(t) < l.window {
			keep = append(keep, t)
		}
	}
	if len(keep) == 0 {
		delete(l.clients, clientID)
		return nil
	}
	l.clients[clientID] = keep
	return keep
}

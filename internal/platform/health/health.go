package health

import (
	"context"
	"errors"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/gin-gonic/gin"
)

var errNotReady = errors.New("service not ready")

// Pinger is satisfied by *pgxpool.Pool.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Manager tracks whether the service may receive traffic.
type Manager struct {
	ready  atomic.Bool
	db     Pinger
	pingTO time.Duration
}

// NewManager creates a Manager. When db is non-nil readiness also requires a successful ping.
func NewManager(initialReady bool, db Pinger) *Manager {
	m := &Manager{db: db, pingTO: 2 * time.Second}
	m.ready.Store(initialReady)
	return m
}

func (m *Manager) SetReady(ready bool) {
	m.ready.Store(ready)
}

func (m *Manager) IsReady() bool {
	return m.ready.Load()
}

// Check reports readiness, pinging the database if one is attached.
func (m *Manager) Check(ctx context.Context) error {
	if !m.IsReady() {
		return errNotReady
	}
	if m.db == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, m.pingTO)
	defer cancel()
	return m.db.Ping(ctx)
}

func LivenessHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func ReadinessHandler(m *Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := m.Check(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not_ready", "error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	}
}

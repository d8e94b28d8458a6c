package sketch

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	domainSketch "github.com/turtacn/molsketch/internal/domain/sketch"
	"github.com/turtacn/molsketch/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/molsketch/internal/infrastructure/monitoring/prometheus"
	"github.com/turtacn/molsketch/pkg/errors"
)

// Config bounds the number and lifetime of hosted sessions.
type Config struct {
	MaxSessions   int
	IdleTTL       time.Duration
	SweepInterval time.Duration
	NotifyTimeout time.Duration
}

// SessionCloser is implemented by notifiers that hold per-session
// resources, such as open subscriber connections.
type SessionCloser interface {
	CloseSession(sessionID string)
}

// Manager owns all hosted sessions.
type Manager struct {
	cfg       Config
	notifiers []domainSketch.Notifier
	metrics   *prometheus.AppMetrics
	logger    logging.Logger
	now       func() time.Time

	mu       sync.RWMutex
	sessions map[string]*Session
}

// Option customizes a Manager.
type Option func(*Manager)

// WithNotifiers sets the sinks every committed change is delivered to.
func WithNotifiers(n ...domainSketch.Notifier) Option {
	return func(m *Manager) { m.notifiers = append(m.notifiers, n...) }
}

func WithMetrics(metrics *prometheus.AppMetrics) Option {
	return func(m *Manager) { m.metrics = metrics }
}

func WithLogger(logger logging.Logger) Option {
	return func(m *Manager) { m.logger = logger }
}

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) { m.now = now }
}

func NewManager(cfg Config, opts ...Option) *Manager {
	if cfg.MaxSessions <= 0 {
		cfg.MaxSessions = 1000
	}
	if cfg.IdleTTL <= 0 {
		cfg.IdleTTL = 30 * time.Minute
	}
	if cfg.SweepInterval <= 0 {
		cfg.SweepInterval = time.Minute
	}
	if cfg.NotifyTimeout <= 0 {
		cfg.NotifyTimeout = 2 * time.Second
	}
	m := &Manager{
		cfg:      cfg,
		logger:   logging.NewNopLogger(),
		now:      time.Now,
		sessions: make(map[string]*Session),
	}
	for _, opt := range opts {
		opt(m)
	}
	m.logger = m.logger.Named("sessions")
	return m
}

// Create opens a new empty session.
func (m *Manager) Create(ctx context.Context) (*Session, error) {
	m.mu.Lock()
	if len(m.sessions) >= m.cfg.MaxSessions {
		m.mu.Unlock()
		return nil, errors.New(errors.ErrCodeSessionLimitReached, "too many open sketch sessions")
	}
	s := newSession(uuid.NewString(), m)
	m.sessions[s.id] = s
	count := len(m.sessions)
	m.mu.Unlock()

	prometheus.SetActiveSessions(m.metrics, count)
	m.logger.WithContext(ctx).Info("Session created", logging.String("session_id", s.id), logging.Int("active", count))
	return s, nil
}

func (m *Manager) Get(id string) (*Session, error) {
	m.mu.RLock()
	s, ok := m.sessions[id]
	m.mu.RUnlock()
	if !ok {
		return nil, errors.New(errors.ErrCodeSessionNotFound, "sketch session not found").WithDetail("id=" + id)
	}
	return s, nil
}

func (m *Manager) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	_, ok := m.sessions[id]
	delete(m.sessions, id)
	count := len(m.sessions)
	m.mu.Unlock()
	if !ok {
		return errors.New(errors.ErrCodeSessionNotFound, "sketch session not found").WithDetail("id=" + id)
	}

	m.release(id)
	prometheus.SetActiveSessions(m.metrics, count)
	m.logger.WithContext(ctx).Info("Session deleted", logging.String("session_id", id))
	return nil
}

// Count returns the number of open sessions.
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// Sweep closes sessions idle for longer than the configured TTL and returns
// how many were closed.
func (m *Manager) Sweep(now time.Time) int {
	m.mu.RLock()
	var expired []string
	for id, s := range m.sessions {
		if now.Sub(s.idleSince()) > m.cfg.IdleTTL {
			expired = append(expired, id)
		}
	}
	m.mu.RUnlock()

	if len(expired) == 0 {
		return 0
	}
	m.mu.Lock()
	for _, id := range expired {
		delete(m.sessions, id)
	}
	count := len(m.sessions)
	m.mu.Unlock()

	for _, id := range expired {
		m.release(id)
		m.logger.Info("Session expired", logging.String("session_id", id))
	}
	prometheus.SetActiveSessions(m.metrics, count)
	return len(expired)
}

// Run sweeps idle sessions until ctx is cancelled.
func (m *Manager) Run(ctx context.Context) {
	ticker := time.NewTicker(m.cfg.SweepInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.Sweep(m.now())
		}
	}
}

// Close drops every session and closes the notifiers.
func (m *Manager) Close() error {
	m.mu.Lock()
	m.sessions = make(map[string]*Session)
	m.mu.Unlock()
	prometheus.SetActiveSessions(m.metrics, 0)

	var firstErr error
	for _, n := range m.notifiers {
		if err := n.Close(); err != nil {
			m.logger.Error("Failed to close notifier", logging.String("notifier", n.Name()), logging.Err(err))
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}

func (m *Manager) release(id string) {
	for _, n := range m.notifiers {
		if c, ok := n.(SessionCloser); ok {
			c.CloseSession(id)
		}
	}
}

// dispatch delivers ev to every notifier, each bounded by NotifyTimeout.
// Failures are logged and counted, never surfaced to the editor.
func (m *Manager) dispatch(ctx context.Context, ev domainSketch.ChangeEvent) {
	for _, n := range m.notifiers {
		nctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), m.cfg.NotifyTimeout)
		err := n.Notify(nctx, ev)
		cancel()
		prometheus.RecordChangeEvent(m.metrics, n.Name(), err)
		if err != nil {
			m.logger.WithContext(ctx).Warn("Change notification failed",
				logging.String("notifier", n.Name()),
				logging.String("session_id", ev.SessionID),
				logging.Int64("revision", int64(ev.Revision)),
				logging.Err(err))
		}
	}
}

//Personal.AI order the ending

package workers

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"time"
)

const probeTimeout = 3 * time.Second

// APIHealth is the last known state of the payments API.
type APIHealth struct {
	Checked   bool
	Reachable bool
	// StatusCode of the last probe, zero when the API did not answer.
	StatusCode int
	Latency    time.Duration
	CheckedAt  time.Time
	Error      string
}

// APIMonitor probes the payments API on a fixed interval so the dashboard can
// show whether it is up without issuing a call per page view.
type APIMonitor struct {
	logger     *slog.Logger
	healthURL  string
	interval   time.Duration
	httpClient *http.Client

	mu     sync.RWMutex
	health APIHealth
}

func NewAPIMonitor(healthURL string, interval time.Duration, httpClient *http.Client, logger *slog.Logger) *APIMonitor {
	return &APIMonitor{
		healthURL:  healthURL,
		interval:   interval,
		httpClient: httpClient,
		logger:     logger,
	}
}

// StartMonitoring blocks, probing until ctx is done.
func (m *APIMonitor) StartMonitoring(ctx context.Context) {
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	m.Check(ctx)

	for {
		select {
		case <-ticker.C:
			m.Check(ctx)
		case <-ctx.Done():
			return
		}
	}
}

// Check runs one probe and records its result.
func (m *APIMonitor) Check(ctx context.Context) APIHealth {
	ctx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()

	health := APIHealth{Checked: true, CheckedAt: time.Now()}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, m.healthURL, nil)
	if err != nil {
		m.logger.Error("failed to create health check request", "url", m.healthURL, "error", err)
		health.Error = err.Error()
		return m.update(health)
	}

	start := time.Now()
	resp, err := m.httpClient.Do(req)
	health.Latency = time.Since(start)

	if err != nil {
		m.logger.Warn("health check request failed", "url", m.healthURL, "error", err)
		health.Error = err.Error()
		return m.update(health)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 1<<20))

	health.StatusCode = resp.StatusCode
	if resp.StatusCode >= 500 {
		m.logger.Warn("health check returned server error", "url", m.healthURL, "status", resp.StatusCode)
		health.Error = fmt.Sprintf("status %d", resp.StatusCode)
		return m.update(health)
	}

	health.Reachable = true
	return m.update(health)
}

func (m *APIMonitor) update(health APIHealth) APIHealth {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.health.Reachable != health.Reachable || !m.health.Checked {
		m.logger.Info("payments api health changed", "reachable", health.Reachable, "latency", health.Latency)
	}
	m.health = health
	return health
}

// Snapshot returns the latest probe result.
func (m *APIMonitor) Snapshot() APIHealth {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.health
}

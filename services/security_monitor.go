package services

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	failedLoginWindow    = 10 * time.Minute
	failedLoginThreshold = 5
	alertCooldown        = time.Hour
	maxAlertHistory      = 100
)

var SecurityAlerts = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "portal_security_alerts_total",
		Help: "Security alerts raised by the login monitor",
	},
	[]string{"portal"},
)

// SecurityAlert is one raised alert
type SecurityAlert struct {
	Timestamp time.Time
	IP        string
	Portal    string
	Reason    string
}

// LoginMonitor counts failed portal logins per client IP and raises an
// alert when an IP crosses the threshold inside the window. At most one
// alert per IP is raised per cooldown.
type LoginMonitor struct {
	mu           sync.Mutex
	now          func() time.Time
	failedLogins map[string][]time.Time
	alertedIPs   map[string]time.Time
	alerts       []SecurityAlert
}

// Monitor is the process-wide login monitor
var Monitor = NewLoginMonitor()

func NewLoginMonitor() *LoginMonitor {
	return &LoginMonitor{
		now:          time.Now,
		failedLogins: make(map[string][]time.Time),
		alertedIPs:   make(map[string]time.Time),
	}
}

// TrackFailedLogin records a failed attempt on portal and reports whether
// it raised an alert
func (m *LoginMonitor) TrackFailedLogin(ip, portal string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	windowStart := now.Add(-failedLoginWindow)
	attempts := m.failedLogins[ip][:0]
	for _, t := range m.failedLogins[ip] {
		if t.After(windowStart) {
			attempts = append(attempts, t)
		}
	}
	attempts = append(attempts, now)
	m.failedLogins[ip] = attempts

	if len(attempts) < failedLoginThreshold {
		return false
	}
	if last, ok := m.alertedIPs[ip]; ok && now.Sub(last) < alertCooldown {
		return false
	}
	m.alertedIPs[ip] = now

	alert := SecurityAlert{Timestamp: now, IP: ip, Portal: portal, Reason: "Multiple failed logins detected"}
	m.alerts = append([]SecurityAlert{alert}, m.alerts...)
	if len(m.alerts) > maxAlertHistory {
		m.alerts = m.alerts[:maxAlertHistory]
	}
	SecurityAlerts.WithLabelValues(portal).Inc()
	log.Printf("[SECURITY ALERT] %s on %s portal from IP: %s", alert.Reason, portal, ip)
	return true
}

// RecentAlerts returns the alert history, newest first
func (m *LoginMonitor) RecentAlerts() []SecurityAlert {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]SecurityAlert, len(m.alerts))
	copy(out, m.alerts)
	return out
}

// Prune drops attempts and cooldowns that can no longer matter
func (m *LoginMonitor) Prune() {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := m.now()
	for ip, attempts := range m.failedLogins {
		if len(attempts) == 0 || now.Sub(attempts[len(attempts)-1]) > failedLoginWindow {
			delete(m.failedLogins, ip)
		}
	}
	for ip, last := range m.alertedIPs {
		if now.Sub(last) > alertCooldown {
			delete(m.alertedIPs, ip)
		}
	}
}

// Run prunes hourly until ctx is done
func (m *LoginMonitor) Run(ctx context.Context) {
	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.Prune()
		}
	}
}

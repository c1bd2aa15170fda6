package service

import (
	"sync"
	"time"

	"github.com/andresuchdata/flowpilot/backend-go/internal/domain"
)

const (
	defaultActivityCapacity = 80
	defaultAlertCapacity    = 40
)

// ActivityFeed keeps the most recent activity lines and alerts in memory.
type ActivityFeed struct {
	mu          sync.Mutex
	activity    []domain.ActivityEntry
	alerts      []domain.AlertEntry
	activityCap int
	alertCap    int
	now         func() time.Time
}

func NewActivityFeed(activityCap, alertCap int) *ActivityFeed {
	return &ActivityFeed{
		activityCap: activityCap,
		alertCap:    alertCap,
		now:         time.Now,
	}
}

// Push records an activity line at the given level.
func (f *ActivityFeed) Push(level, message string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.activity = prepend(f.activity, domain.ActivityEntry{At: f.now().UTC(), Level: level, Message: message}, f.activityCap)
}

// Alert records a raised alert.
func (f *ActivityFeed) Alert(message string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.alerts = prepend(f.alerts, domain.AlertEntry{At: f.now().UTC(), Message: message}, f.alertCap)
}

// Activity returns up to limit entries, newest first. limit <= 0 means all.
func (f *ActivityFeed) Activity(limit int) []domain.ActivityEntry {
	f.mu.Lock()
	defer f.mu.Unlock()
	return head(f.activity, limit)
}

// Alerts returns up to limit alerts, newest first. limit <= 0 means all.
func (f *ActivityFeed) Alerts(limit int) []domain.AlertEntry {
	f.mu.Lock()
	defer f.mu.Unlock()
	return head(f.alerts, limit)
}

func prepend[T any](list []T, v T, capacity int) []T {
	list = append([]T{v}, list...)
	if capacity > 0 && len(list) > capacity {
		list = list[:capacity]
	}
	return list
}

func head[T any](list []T, limit int) []T {
	if limit <= 0 || limit > len(list) {
		limit = len(list)
	}
	out := make([]T, limit)
	copy(out, list[:limit])
	return out
}

package scanguard

import (
	"context"
	"sync"
	"time"

	"github.com/cmlabs-hris/dtr-payroll-go/internal/domain/attendance"
)

// LocalGuard keeps cooldowns and locks in process memory. It is correct for
// a single API instance only.
type LocalGuard struct {
	mu       sync.Mutex
	locked   map[string]struct{}
	lastScan map[string]time.Time
	cooldown time.Duration
	now      func() time.Time
}

func NewLocalGuard(cooldown time.Duration) *LocalGuard {
	return &LocalGuard{
		locked:   make(map[string]struct{}),
		lastScan: make(map[string]time.Time),
		cooldown: cooldown,
		now:      time.Now,
	}
}

func (g *LocalGuard) Lock(_ context.Context, employeeID string) (func(context.Context) error, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if _, held := g.locked[employeeID]; held {
		return nil, attendance.ErrScanInProgress
	}
	g.locked[employeeID] = struct{}{}

	var once sync.Once
	release := func(context.Context) error {
		once.Do(func() {
			g.mu.Lock()
			delete(g.locked, employeeID)
			g.mu.Unlock()
		})
		return nil
	}
	return release, nil
}

func (g *LocalGuard) InCooldown(_ context.Context, employeeID string) (bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	last, ok := g.lastScan[employeeID]
	if !ok {
		return false, nil
	}
	if g.now().Sub(last) >= g.cooldown {
		delete(g.lastScan, employeeID)
		return false, nil
	}
	return true, nil
}

func (g *LocalGuard) MarkScanned(_ context.Context, employeeID string) error {
	if g.cooldown <= 0 {
		return nil
	}
	g.mu.Lock()
	g.lastScan[employeeID] = g.now()
	g.mu.Unlock()
	return nil
}

package managergroup

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/steelcutops/metapkg/metapkg/action"
	pm "github.com/steelcutops/metapkg/metapkg/packagemanager"
)

const (
	DefaultConcurrency = 4
	DefaultTimeout     = 2 * time.Minute
)

// ManagerGroup holds managers in report order and syncs them concurrently.
type ManagerGroup struct {
	sync.RWMutex
	Managers []pm.PackageManager

	// Concurrency bounds the number of managers synced at once.
	Concurrency int
	// Timeout bounds each manager's sync. Zero means no limit.
	Timeout time.Duration
	Logger  logrus.FieldLogger
}

// NewManagerGroup creates a new ManagerGroup with the given managers.
func NewManagerGroup(managers ...pm.PackageManager) *ManagerGroup {
	return &ManagerGroup{
		Managers:    managers,
		Concurrency: DefaultConcurrency,
		Timeout:     DefaultTimeout,
		Logger:      logrus.StandardLogger(),
	}
}

// AddManager appends a manager to the group.
func (mg *ManagerGroup) AddManager(m pm.PackageManager) {
	mg.Lock()
	defer mg.Unlock()
	mg.Managers = append(mg.Managers, m)
}

// RemoveManager removes the manager with the given ID.
func (mg *ManagerGroup) RemoveManager(id string) {
	mg.Lock()
	defer mg.Unlock()
	kept := mg.Managers[:0]
	for _, m := range mg.Managers {
		if m.ID() != id {
			kept = append(kept, m)
		}
	}
	mg.Managers = kept
}

// HasManager checks if a manager with the given ID is in the group.
func (mg *ManagerGroup) HasManager(id string) bool {
	return mg.Manager(id) != nil
}

// Manager returns the manager with the given ID, or nil.
func (mg *ManagerGroup) Manager(id string) pm.PackageManager {
	mg.RLock()
	defer mg.RUnlock()
	for _, m := range mg.Managers {
		if m.ID() == id {
			return m
		}
	}
	return nil
}

func (mg *ManagerGroup) managers() []pm.PackageManager {
	mg.RLock()
	defer mg.RUnlock()
	return append([]pm.PackageManager(nil), mg.Managers...)
}

// Discover drops the managers that are not active on this machine. Order is
// preserved.
func (mg *ManagerGroup) Discover(ctx context.Context) {
	var active []pm.PackageManager
	for _, m := range mg.managers() {
		if m.Active(ctx) {
			active = append(active, m)
			continue
		}
		mg.Logger.WithField("manager", m.ID()).Debug("Manager not active")
	}

	mg.Lock()
	mg.Managers = active
	mg.Unlock()
}

// Sync refreshes every manager. A failure, including an expired Timeout, is
// recorded as that manager's last error.
func (mg *ManagerGroup) Sync(ctx context.Context) {
	g, ctx := errgroup.WithContext(ctx)
	if mg.Concurrency > 0 {
		g.SetLimit(mg.Concurrency)
	}

	for _, m := range mg.managers() {
		m := m
		g.Go(func() error {
			syncCtx := ctx
			if mg.Timeout > 0 {
				var cancel context.CancelFunc
				syncCtx, cancel = context.WithTimeout(ctx, mg.Timeout)
				defer cancel()
			}

			start := time.Now()
			m.Sync(syncCtx)
			mg.Logger.WithFields(logrus.Fields{
				"manager":  m.ID(),
				"updates":  len(m.Updates()),
				"duration": time.Since(start),
			}).Debug("Synced")
			return nil
		})
	}

	_ = g.Wait()
}

// TotalUpdates is the number of outdated packages across all managers.
func (mg *ManagerGroup) TotalUpdates() int {
	total := 0
	for _, m := range mg.managers() {
		total += len(m.Updates())
	}
	return total
}

// ErrorCount is the number of managers whose last sync failed.
func (mg *ManagerGroup) ErrorCount() int {
	count := 0
	for _, m := range mg.managers() {
		if m.LastError() != "" {
			count++
		}
	}
	return count
}

// Err aggregates the last error of every manager, or returns nil.
func (mg *ManagerGroup) Err() error {
	var result *multierror.Error
	for _, m := range mg.managers() {
		if m.LastError() != "" {
			result = multierror.Append(result, fmt.Errorf("%s: %s", m.ID(), m.LastError()))
		}
	}
	return result.ErrorOrNil()
}

// Summary is a snapshot of the group suitable for rendering.
type Summary struct {
	Total    int              `json:"total" yaml:"total"`
	Errors   int              `json:"errors" yaml:"errors"`
	Managers []ManagerSummary `json:"managers" yaml:"managers"`
}

type ManagerSummary struct {
	ID         string           `json:"id" yaml:"id"`
	Name       string           `json:"name" yaml:"name"`
	Error      string           `json:"error,omitempty" yaml:"error,omitempty"`
	UpgradeAll *action.Command  `json:"upgrade_all,omitempty" yaml:"upgrade_all,omitempty"`
	Packages   []PackageSummary `json:"packages" yaml:"packages"`
}

type PackageSummary struct {
	pm.Update `yaml:",inline"`
	Upgrade   *action.Command `json:"upgrade,omitempty" yaml:"upgrade,omitempty"`
}

// Summary captures the current state of every manager, in group order.
func (mg *ManagerGroup) Summary() Summary {
	summary := Summary{}
	for _, m := range mg.managers() {
		updates := m.Updates()
		ms := ManagerSummary{
			ID:       m.ID(),
			Name:     m.Name(),
			Error:    m.LastError(),
			Packages: make([]PackageSummary, 0, len(updates)),
		}
		if ms.Error != "" {
			summary.Errors++
		}
		if len(updates) > 0 {
			ms.UpgradeAll = m.UpdateAllCommand()
		}
		for _, update := range updates {
			ms.Packages = append(ms.Packages, PackageSummary{
				Update:  update,
				Upgrade: m.UpdateCommand(update.Name),
			})
		}
		summary.Total += len(updates)
		summary.Managers = append(summary.Managers, ms)
	}
	return summary
}

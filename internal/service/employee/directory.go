package employee

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/cmlabs-hris/hrms-lite/internal/domain/employee"
	"golang.org/x/sync/singleflight"
)

const directoryKey = "employees"

// CachedDirectory keeps the employee list between invalidations. Concurrent
// loads share one upstream call.
type CachedDirectory struct {
	repo  employee.EmployeeRepository
	group singleflight.Group

	mu         sync.RWMutex
	employees  []employee.Employee
	loaded     bool
	generation uint64
}

func NewDirectory(repo employee.EmployeeRepository) *CachedDirectory {
	return &CachedDirectory{repo: repo}
}

// Load implements employee.Directory. A failed load is not cached.
func (d *CachedDirectory) Load(ctx context.Context) ([]employee.Employee, error) {
	d.mu.RLock()
	if d.loaded {
		employees := slices.Clone(d.employees)
		d.mu.RUnlock()
		return employees, nil
	}
	generation := d.generation
	d.mu.RUnlock()

	// The shared call outlives any single caller; each caller still honours
	// its own ctx while waiting.
	ch := d.group.DoChan(directoryKey, func() (any, error) {
		d.mu.RLock()
		if d.loaded {
			employees := d.employees
			d.mu.RUnlock()
			return employees, nil
		}
		d.mu.RUnlock()

		employees, err := d.repo.List(context.WithoutCancel(ctx))
		if err != nil {
			return nil, err
		}
		d.mu.Lock()
		if d.generation == generation {
			d.employees = employees
			d.loaded = true
		}
		d.mu.Unlock()
		return employees, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, fmt.Errorf("%w: %w", employee.ErrDirectoryUnavailable, res.Err)
		}
		return slices.Clone(res.Val.([]employee.Employee)), nil
	}
}

// Invalidate implements employee.Directory.
func (d *CachedDirectory) Invalidate() {
	d.mu.Lock()
	d.employees = nil
	d.loaded = false
	d.generation++
	d.mu.Unlock()
	d.group.Forget(directoryKey)
}

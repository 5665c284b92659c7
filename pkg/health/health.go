// Package health tracks panel liveness: process stats plus the
// reachability of the external backend as reported by ping calls.
package health

import (
	"os"
	"runtime"
	"sync"
	"time"

	"github.com/shirou/gopsutil/v3/process"
)

// Status represents the health status of a component
type Status string

const (
	StatusHealthy   Status = "healthy"
	StatusDegraded  Status = "degraded"
	StatusUnhealthy Status = "unhealthy"
)

// BackendComponent is the name under which backend reachability is tracked.
const BackendComponent = "backend"

// ComponentHealth represents the health status of a single component
type ComponentHealth struct {
	Name        string    `json:"name"`
	Status      Status    `json:"status"`
	Description string    `json:"description,omitempty"`
	LastChecked time.Time `json:"last_checked"`
}

// Report represents overall panel health
type Report struct {
	Status     Status            `json:"status"`
	Uptime     int64             `json:"uptime_seconds"`
	Timestamp  time.Time         `json:"timestamp"`
	Goroutines int               `json:"goroutines"`
	MemoryMB   uint64            `json:"memory_mb"`
	CPUPercent float64           `json:"cpu_percent"`
	Components []ComponentHealth `json:"components"`
}

// Monitor tracks panel health metrics
type Monitor struct {
	startTime  time.Time
	mu         sync.RWMutex
	components map[string]*ComponentHealth
	proc       *process.Process
}

// NewMonitor creates a new health monitor
func NewMonitor() *Monitor {
	// Best effort; process stats are omitted from reports if unavailable
	proc, _ := process.NewProcess(int32(os.Getpid()))

	return &Monitor{
		startTime:  time.Now(),
		components: make(map[string]*ComponentHealth),
		proc:       proc,
	}
}

// SetComponentStatus updates the status of a component
func (m *Monitor) SetComponentStatus(name string, status Status, description string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.components[name] = &ComponentHealth{
		Name:        name,
		Status:      status,
		Description: description,
		LastChecked: time.Now(),
	}
}

// Report returns the current panel health
func (m *Monitor) Report() *Report {
	m.mu.RLock()
	components := make([]ComponentHealth, 0, len(m.components))
	overallStatus := StatusHealthy
	for _, comp := range m.components {
		components = append(components, *comp)
		if comp.Status == StatusUnhealthy {
			overallStatus = StatusUnhealthy
		} else if comp.Status == StatusDegraded && overallStatus == StatusHealthy {
			overallStatus = StatusDegraded
		}
	}
	m.mu.RUnlock()

	report := &Report{
		Status:     overallStatus,
		Uptime:     int64(time.Since(m.startTime).Seconds()),
		Timestamp:  time.Now(),
		Goroutines: runtime.NumGoroutine(),
		Components: components,
	}

	if m.proc != nil {
		if mem, err := m.proc.MemoryInfo(); err == nil && mem != nil {
			report.MemoryMB = mem.RSS / 1024 / 1024
		}
		if cpu, err := m.proc.CPUPercent(); err == nil {
			report.CPUPercent = cpu
		}
	}

	return report
}

package ports

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"
)

var ErrDuplicateChecker = errors.New("duplicate health checker")

// HealthChecker is a dependency probed by /-/ready: the SQLite store and
// the remote quote source.
type HealthChecker interface {
	// Name identifies the check in readiness output. It must be unique.
	Name() string

	// Check returns nil when the dependency is usable. It must honor ctx.
	Check(ctx context.Context) error
}

// BestEffortChecker is a HealthChecker whose failure only degrades the
// service. Local quotes keep working while the remote is down.
type BestEffortChecker interface {
	HealthChecker
	BestEffort() bool
}

type HealthRegistry interface {
	Register(checker HealthChecker) error
	CheckAll(ctx context.Context) *HealthResult
}

type HealthStatus string

const (
	HealthStatusHealthy   HealthStatus = "healthy"
	HealthStatusDegraded  HealthStatus = "degraded"
	HealthStatusUnhealthy HealthStatus = "unhealthy"
)

// severityOrder lists statuses from best to worst.
var severityOrder = []HealthStatus{HealthStatusHealthy, HealthStatusDegraded, HealthStatusUnhealthy}

// worse returns whichever of a and b is more severe.
func worse(a, b HealthStatus) HealthStatus {
	if slices.Index(severityOrder, b) > slices.Index(severityOrder, a) {
		return b
	}

	return a
}

type HealthResult struct {
	Status    HealthStatus            `json:"status"`
	Checks    map[string]*CheckResult `json:"checks"`
	Timestamp time.Time               `json:"timestamp"`
}

type CheckResult struct {
	Status   HealthStatus  `json:"status"`
	Message  string        `json:"message,omitempty"`
	Duration time.Duration `json:"duration"`
}

// DefaultHealthRegistry runs its checks concurrently on every CheckAll.
type DefaultHealthRegistry struct {
	mu       sync.RWMutex
	checkers []HealthChecker
}

func NewHealthRegistry() *DefaultHealthRegistry {
	return &DefaultHealthRegistry{}
}

// Register adds checker. Names must be unique.
func (r *DefaultHealthRegistry) Register(checker HealthChecker) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	taken := slices.ContainsFunc(r.checkers, func(c HealthChecker) bool {
		return c.Name() == checker.Name()
	})
	if taken {
		return fmt.Errorf("%w: %s", ErrDuplicateChecker, checker.Name())
	}

	r.checkers = append(r.checkers, checker)

	return nil
}

// CheckAll probes every checker. The overall status is the worst single
// result: a failed best-effort check counts as degraded, any other failure
// as unhealthy.
func (r *DefaultHealthRegistry) CheckAll(ctx context.Context) *HealthResult {
	r.mu.RLock()
	checkers := slices.Clone(r.checkers)
	r.mu.RUnlock()

	results := make([]*CheckResult, len(checkers))

	var wg sync.WaitGroup
	for i, checker := range checkers {
		wg.Go(func() {
			results[i] = probe(ctx, checker)
		})
	}
	wg.Wait()

	out := &HealthResult{
		Status:    HealthStatusHealthy,
		Checks:    make(map[string]*CheckResult, len(checkers)),
		Timestamp: time.Now(),
	}

	for i, checker := range checkers {
		out.Checks[checker.Name()] = results[i]
		out.Status = worse(out.Status, results[i].Status)
	}

	return out
}

func probe(ctx context.Context, checker HealthChecker) *CheckResult {
	start := time.Now()
	err := checker.Check(ctx)
	res := &CheckResult{Status: HealthStatusHealthy, Duration: time.Since(start)}

	if err == nil {
		return res
	}

	res.Status = HealthStatusUnhealthy
	if be, ok := checker.(BestEffortChecker); ok && be.BestEffort() {
		res.Status = HealthStatusDegraded
	}

	res.Message = err.Error()

	return res
}

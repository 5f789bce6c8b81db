package health

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

type Status string

const (
	StatusHealthy   Status = "healthy"
	StatusDegraded  Status = "degraded"
	StatusUnhealthy Status = "unhealthy"
)

type Checker interface {
	Check(ctx context.Context) error
	Name() string
}

type Health struct {
	Status    Status                 `json:"status"`
	Timestamp time.Time              `json:"timestamp"`
	Checks    map[string]CheckResult `json:"checks"`
}

type CheckResult struct {
	Status    Status    `json:"status"`
	Message   string    `json:"message,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// degradedError marks a check failure that does not make the agent
// unhealthy: the condition is being recovered from automatically.
type degradedError struct {
	err error
}

func (e *degradedError) Error() string { return e.err.Error() }
func (e *degradedError) Unwrap() error { return e.err }

// Degraded wraps err so the registry reports the check as degraded
// instead of unhealthy.
func Degraded(err error) error {
	if err == nil {
		return nil
	}
	return &degradedError{err: err}
}

type CheckerRegistry struct {
	checkers []Checker
}

func NewCheckerRegistry() *CheckerRegistry {
	return &CheckerRegistry{
		checkers: make([]Checker, 0),
	}
}

func (r *CheckerRegistry) Register(checker Checker) {
	r.checkers = append(r.checkers, checker)
}

func (r *CheckerRegistry) Check(ctx context.Context) Health {
	results := make(map[string]CheckResult)
	allHealthy := true
	anyDegraded := false

	for _, checker := range r.checkers {
		err := checker.Check(ctx)
		result := CheckResult{
			Timestamp: time.Now(),
		}

		var degraded *degradedError
		switch {
		case err == nil:
			result.Status = StatusHealthy
		case errors.As(err, &degraded):
			result.Status = StatusDegraded
			result.Message = err.Error()
			anyDegraded = true
		default:
			result.Status = StatusUnhealthy
			result.Message = err.Error()
			allHealthy = false
		}

		results[checker.Name()] = result
	}

	overallStatus := StatusHealthy
	if !allHealthy {
		overallStatus = StatusUnhealthy
	} else if anyDegraded {
		overallStatus = StatusDegraded
	}

	return Health{
		Status:    overallStatus,
		Timestamp: time.Now(),
		Checks:    results,
	}
}

// SourceChecker reports on the decoded-message source subprocess. A dead
// source is degraded rather than unhealthy: the supervisor restarts it on
// its own and the agent keeps serving.
type SourceChecker struct {
	running func() bool
}

func NewSourceChecker(running func() bool) *SourceChecker {
	return &SourceChecker{running: running}
}

func (c *SourceChecker) Name() string {
	return "source"
}

func (c *SourceChecker) Check(ctx context.Context) error {
	if !c.running() {
		return Degraded(fmt.Errorf("source subprocess is not running"))
	}
	return nil
}

// CacheDirChecker verifies the cache snapshot directory is writable, so a
// permission problem surfaces long before the shutdown snapshot fails.
type CacheDirChecker struct {
	path string
}

func NewCacheDirChecker(snapshotPath string) *CacheDirChecker {
	return &CacheDirChecker{path: snapshotPath}
}

func (c *CacheDirChecker) Name() string {
	return "cache_dir"
}

func (c *CacheDirChecker) Check(ctx context.Context) error {
	dir := filepath.Dir(c.path)
	f, err := os.CreateTemp(dir, ".dcragent-health-*")
	if err != nil {
		return fmt.Errorf("cache directory not writable: %w", err)
	}
	name := f.Name()
	_ = f.Close()
	_ = os.Remove(name)
	return nil
}

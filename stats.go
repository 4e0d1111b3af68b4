package reagent

import (
	"strings"
	"sync"
)

// ExecutionStats contains counters and gauges for tracking run metrics.
// All standard reagent metrics use keys prefixed with "reagent:" to avoid
// collisions with user-defined keys.
//
// # Use Cases
//
// Stats serve two purposes:
//
//  1. Termination limits: checked on every update to stop runaway agent
//     loops (e.g., max iterations, consecutive errors). See [Limit] and
//     [DefaultLimits].
//
//  2. Event-driven reads: read by event subscribers for logging,
//     milestones, or token accounting.
//
// # Counters vs Gauges
//
// Counters are monotonically increasing. Gauges can go up and down (via
// [ExecutionStats.IncrGauge], [ExecutionStats.SetGauge],
// [ExecutionStats.ResetGauge]). Use gauges for values that reset or
// fluctuate, such as consecutive error counts.
//
// # Limit Checking
//
// Limit checking is triggered automatically when stats are modified. Both
// counters and gauges are checked against configured limits.
//
// # Thread Safety
//
// All methods are safe for concurrent use.
type ExecutionStats struct {
	mu       sync.RWMutex
	counters map[string]int64
	gauges   map[string]float64
	execCtx  *ExecutionContext // back-ref for limit checking
}

// NewExecutionStats creates a new ExecutionStats instance without context
// association. Use this for standalone stats that don't need limit
// checking.
func NewExecutionStats() *ExecutionStats {
	return &ExecutionStats{
		counters: make(map[string]int64),
		gauges:   make(map[string]float64),
	}
}

// newExecutionStatsWithContext creates a new ExecutionStats with a
// back-reference to the ExecutionContext for limit checking.
func newExecutionStatsWithContext(ctx *ExecutionContext) *ExecutionStats {
	return &ExecutionStats{
		counters: make(map[string]int64),
		gauges:   make(map[string]float64),
		execCtx:  ctx,
	}
}

// IncrCounter increments a counter by delta. Creates the counter if it
// doesn't exist.
//
// Panics if delta is negative (counters only go up).
// Protected keys (e.g., KeyIterations) are silently ignored.
func (s *ExecutionStats) IncrCounter(key string, delta int64) {
	if delta < 0 {
		panic("reagent: IncrCounter called with negative delta")
	}
	if isProtectedKey(key) {
		return
	}
	s.incrCounterInternal(key, delta)
}

// incrCounterInternal increments a counter without the public API checks.
// Used by the framework for protected keys like KeyIterations.
func (s *ExecutionStats) incrCounterInternal(key string, delta int64) {
	s.mu.Lock()
	s.counters[key] += delta
	s.mu.Unlock()

	if s.execCtx != nil {
		s.execCtx.checkLimits()
	}
}

// GetCounter returns the current value of a counter, or 0 if not set.
func (s *ExecutionStats) GetCounter(key string) int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.counters[key]
}

// IncrGauge increments a gauge by delta (positive or negative). Creates
// the gauge if it doesn't exist.
func (s *ExecutionStats) IncrGauge(key string, delta float64) {
	s.mu.Lock()
	s.gauges[key] += delta
	s.mu.Unlock()

	if s.execCtx != nil {
		s.execCtx.checkLimits()
	}
}

// SetGauge sets a gauge to a specific value.
func (s *ExecutionStats) SetGauge(key string, value float64) {
	s.mu.Lock()
	s.gauges[key] = value
	s.mu.Unlock()

	if s.execCtx != nil {
		s.execCtx.checkLimits()
	}
}

// GetGauge returns the current value of a gauge, or 0.0 if not set.
func (s *ExecutionStats) GetGauge(key string) float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.gauges[key]
}

// ResetGauge sets a gauge to 0.0.
func (s *ExecutionStats) ResetGauge(key string) {
	s.mu.Lock()
	s.gauges[key] = 0
	s.mu.Unlock()
}

// Counters returns a snapshot copy of all counters.
func (s *ExecutionStats) Counters() map[string]int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]int64, len(s.counters))
	for k, v := range s.counters {
		out[k] = v
	}
	return out
}

// Gauges returns a snapshot copy of all gauges.
func (s *ExecutionStats) Gauges() map[string]float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]float64, len(s.gauges))
	for k, v := range s.gauges {
		out[k] = v
	}
	return out
}

// exceededLimit returns the first limit whose threshold is exceeded by the
// current counters or gauges, or nil if none.
func (s *ExecutionStats) exceededLimit(limits []Limit) *Limit {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for i := range limits {
		lim := &limits[i]
		switch lim.Type {
		case LimitExactKey:
			if float64(s.counters[lim.Key]) > lim.MaxValue {
				return lim
			}
			if s.gauges[lim.Key] > lim.MaxValue {
				return lim
			}
		case LimitKeyPrefix:
			for k, v := range s.counters {
				if strings.HasPrefix(k, lim.Key) && float64(v) > lim.MaxValue {
					return lim
				}
			}
			for k, v := range s.gauges {
				if strings.HasPrefix(k, lim.Key) && v > lim.MaxValue {
					return lim
				}
			}
		}
	}
	return nil
}

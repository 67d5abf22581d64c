// Package resource governs what concurrent sieve runs may consume.
//
//	┌──────────────────────────────────────────────────────────┐
//	│                       Controller                         │
//	├─────────────────┬──────────────────┬─────────────────────┤
//	│  Memory budget  │  Run slots       │  Export rate        │
//	│  (fail-fast)    │  (semaphore)     │  (token bucket)     │
//	├─────────────────┼──────────────────┼─────────────────────┤
//	│  AcquireMemory  │  AcquireRun      │  WaitExport         │
//	│  ReleaseMemory  │  TryAcquireRun   │  RateLimitedReader  │
//	│  MemoryUsage    │  ReleaseRun      │                     │
//	└─────────────────┴──────────────────┴─────────────────────┘
//
// A run reserves its ring and wheel heap bytes before it starts:
//
//	rc := resource.NewController(resource.Config{MemoryLimitBytes: 64 << 20})
//	if err := rc.AcquireMemory(footprint); err != nil {
//	    return err // ErrMemoryLimitExceeded
//	}
//	defer rc.ReleaseMemory(footprint)
//
// All methods accept a nil *Controller and then do nothing.
package resource

package diag

import (
	"math"
	"sync/atomic"
)

// AtomicFloat provides atomic float64 operations using bit conversion, the
// same shape as the teacher's status.AtomicFloat. Zero value is ready to
// use (represents 0.0).
type AtomicFloat struct {
	bits atomic.Uint64
}

// Store sets the value atomically.
func (f *AtomicFloat) Store(v float64) {
	f.bits.Store(math.Float64bits(v))
}

// Load returns the current value atomically.
func (f *AtomicFloat) Load() float64 {
	return math.Float64frombits(f.bits.Load())
}

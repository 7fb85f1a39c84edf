package ecs

import (
	"unsafe"

	"github.com/lixenwraith/driftwood/bitset"
)

// UntypedComponentStore is the dense, byte-level, type-erased storage
// described in spec §3/§9: a presence bitset, a contiguous byte buffer
// sized capacity*elemSize, and function pointers for type-erased clone and
// drop. It never validates entity generations -- that is the caller's
// responsibility (spec §4.2 "Failure model").
//
// The typed Store[T] wrapper is the sole constructor used anywhere in this
// module, which is what makes the unsafe pointer casts in Insert/Get sound:
// every byte range covered by a set presence bit was written through
// (*T)(ptr) = value for the same T the store was built for.
type UntypedComponentStore struct {
	presence         *bitset.Bitset
	storage          []byte
	elemSize         uintptr
	maxIndexEverUsed int
	cloneFn          func(dst, src unsafe.Pointer)
	dropFn           func(ptr unsafe.Pointer)

	// zeroSized backs zero-size components (marker types) so Insert/Get
	// never need to slice an empty buffer -- the spec requires these to
	// "yield a sentinel rather than reading memory".
	zeroSized bool
}

var zeroSizedSentinel byte

func newUntypedComponentStore(elemSize uintptr, capacity int, cloneFn func(dst, src unsafe.Pointer), dropFn func(ptr unsafe.Pointer)) *UntypedComponentStore {
	s := &UntypedComponentStore{
		presence: bitset.New(capacity),
		elemSize: elemSize,
		cloneFn:  cloneFn,
		dropFn:   dropFn,
	}
	if elemSize == 0 {
		s.zeroSized = true
		return s
	}
	s.storage = make([]byte, elemSize*uintptr(capacity))
	return s
}

func (s *UntypedComponentStore) ptrAt(index int) unsafe.Pointer {
	if s.zeroSized {
		return unsafe.Pointer(&zeroSizedSentinel)
	}
	return unsafe.Pointer(&s.storage[uintptr(index)*s.elemSize])
}

// Insert reserves the slot for index, setting the presence bit. Returns a
// pointer to write the new value into and whether a value was already
// present (the caller is expected to read-then-overwrite if so).
func (s *UntypedComponentStore) Insert(index int) (ptr unsafe.Pointer, hadPrevious bool) {
	hadPrevious = s.presence.Test(index)
	if !hadPrevious {
		s.presence.Set(index)
		if index+1 > s.maxIndexEverUsed {
			s.maxIndexEverUsed = index + 1
		}
	}
	return s.ptrAt(index), hadPrevious
}

// Get returns a pointer to the stored value and true iff present.
func (s *UntypedComponentStore) Get(index int) (unsafe.Pointer, bool) {
	if !s.presence.Test(index) {
		return nil, false
	}
	return s.ptrAt(index), true
}

// Remove clears the presence bit and runs the drop function over the slot,
// if one was registered. Reports whether a value had been present.
func (s *UntypedComponentStore) Remove(index int) bool {
	if !s.presence.Test(index) {
		return false
	}
	ptr := s.ptrAt(index)
	s.presence.Reset(index)
	if s.dropFn != nil {
		s.dropFn(ptr)
	}
	return true
}

// Has reports presence without returning a pointer.
func (s *UntypedComponentStore) Has(index int) bool {
	return s.presence.Test(index)
}

// Presence exposes the presence bitset for join construction.
func (s *UntypedComponentStore) Presence() *bitset.Bitset {
	return s.presence
}

// Clone produces a deep copy: the presence bitset is cloned, the byte
// buffer is duplicated, and every present slot is individually re-cloned
// via cloneFn so components holding reference-typed fields (slices, maps)
// get the same value-identity-handle semantics the teacher's stores rely
// on (spec §9 "Rollback-friendly cloning").
func (s *UntypedComponentStore) Clone() *UntypedComponentStore {
	out := &UntypedComponentStore{
		presence:         s.presence.Clone(),
		elemSize:         s.elemSize,
		maxIndexEverUsed: s.maxIndexEverUsed,
		cloneFn:          s.cloneFn,
		dropFn:           s.dropFn,
		zeroSized:        s.zeroSized,
	}
	if s.zeroSized {
		return out
	}
	out.storage = make([]byte, len(s.storage))
	for i := 0; i < s.maxIndexEverUsed; i++ {
		if s.presence.Test(i) {
			out.cloneFn(out.ptrAt(i), s.ptrAt(i))
		}
	}
	return out
}

// DropAll runs the drop function over every present slot and clears
// presence, used when clearing a whole World.
func (s *UntypedComponentStore) DropAll() {
	if s.dropFn == nil {
		s.presence.Clear()
		return
	}
	for i := 0; i < s.maxIndexEverUsed; i++ {
		if s.presence.Test(i) {
			s.dropFn(s.ptrAt(i))
		}
	}
	s.presence.Clear()
}

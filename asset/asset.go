// Package asset implements the read-only, handle-keyed metadata lookup
// described in spec §6: "Opaque read-only handle->metadata lookup. Handles
// are (type_id, path) pairs with stable hash; the simulation never blocks
// on loads and treats an unresolvable handle as a skipped hydration."
//
// Grounded on dm-vev-adamant's use of github.com/google/uuid for stable
// entity/world identities and github.com/cespare/xxhash/v2 for content
// hashing: a Handle's id is derived deterministically from (typeID, path)
// via an xxhash digest folded into a uuid.UUID, never uuid.New(), so two
// peers loading the same map produce bit-identical handles.
package asset

import (
	"encoding/binary"

	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"
)

// TypeID discriminates what kind of metadata a Handle resolves to (map
// meta, element meta, tilemap atlas, ...). Concrete values are owned by
// the caller (worldmap, navgraph, ...), asset itself is type-agnostic.
type TypeID uint32

// Handle is a stable (typeID, path) identity. Two handles built from the
// same (typeID, path) pair always compare equal, which is what lets a
// snapshot clone or a second peer reconstruct the same handle from map
// data alone rather than needing to transmit handle values.
type Handle struct {
	TypeID TypeID
	id     uuid.UUID
}

// NewHandle derives a Handle deterministically from (typeID, path).
func NewHandle(typeID TypeID, path string) Handle {
	digest := xxhash.Sum64String(path)
	var b [16]byte
	binary.BigEndian.PutUint32(b[0:4], uint32(typeID))
	binary.BigEndian.PutUint64(b[4:12], digest)
	// Repeat the digest's high 32 bits in the last four bytes so all 16
	// bytes are defined. The id carries no more than the 64-bit digest, so
	// two paths with the same digest get the same handle.
	binary.BigEndian.PutUint32(b[12:16], uint32(digest>>32))
	id, err := uuid.FromBytes(b[:])
	if err != nil {
		// uuid.FromBytes only fails on a length mismatch; b is always 16
		// bytes, so this is unreachable.
		panic(err)
	}
	return Handle{TypeID: typeID, id: id}
}

// String renders the handle's identity for logging/diagnostics.
func (h Handle) String() string {
	return h.id.String()
}

// IsZero reports whether h is the zero Handle (never a valid asset).
func (h Handle) IsZero() bool {
	return h.TypeID == 0 && h.id == uuid.Nil
}

// Server is the read-only asset lookup surface the simulation depends on.
// The host supplies an implementation backed by its real loader; the
// simulation never blocks on it (spec §6).
type Server interface {
	Get(h Handle) (any, bool)
}

// MemoryServer is an in-memory Server, useful for tests and for hosts that
// pre-load every map's assets before starting a match.
type MemoryServer struct {
	data map[Handle]any
}

// NewMemoryServer creates an empty MemoryServer.
func NewMemoryServer() *MemoryServer {
	return &MemoryServer{data: make(map[Handle]any)}
}

// Set installs metadata for a handle.
func (s *MemoryServer) Set(h Handle, value any) {
	s.data[h] = value
}

// Get implements Server.
func (s *MemoryServer) Get(h Handle) (any, bool) {
	v, ok := s.data[h]
	return v, ok
}

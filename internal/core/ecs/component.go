package ecs

// Removable is implemented by all component stores so the Registry can
// drop an entity from every store when it leaves the grid.
type Removable interface {
	Remove(id EntityID)
}

// Store is a sparse set of per-entity values keyed by slot index. Lookups
// compare the full ID, so a stale ID never sees the value of the slot's
// next occupant.
type Store[T any] struct {
	sparse []int32 // slot index -> position in dense, -1 when empty
	dense  []EntityID
	values []*T
}

func NewStore[T any]() *Store[T] {
	return &Store[T]{
		dense:  make([]EntityID, 0, 64),
		values: make([]*T, 0, 64),
	}
}

func (s *Store[T]) pos(id EntityID) int {
	idx := int(id.Index())
	if idx >= len(s.sparse) {
		return -1
	}
	p := int(s.sparse[idx])
	if p < 0 || s.dense[p] != id {
		return -1
	}
	return p
}

// Set stores c for id, replacing any value held by an older generation of
// the same slot.
func (s *Store[T]) Set(id EntityID, c *T) {
	idx := int(id.Index())
	for len(s.sparse) <= idx {
		s.sparse = append(s.sparse, -1)
	}
	if p := s.sparse[idx]; p >= 0 {
		s.dense[p] = id
		s.values[p] = c
		return
	}
	s.sparse[idx] = int32(len(s.dense))
	s.dense = append(s.dense, id)
	s.values = append(s.values, c)
}

func (s *Store[T]) Get(id EntityID) (*T, bool) {
	p := s.pos(id)
	if p < 0 {
		return nil, false
	}
	return s.values[p], true
}

// Remove deletes id by moving the last entry into its place.
func (s *Store[T]) Remove(id EntityID) {
	p := s.pos(id)
	if p < 0 {
		return
	}
	last := len(s.dense) - 1
	moved := s.dense[last]
	s.dense[p], s.values[p] = moved, s.values[last]
	s.sparse[moved.Index()] = int32(p)
	s.sparse[id.Index()] = -1
	s.values[last] = nil
	s.dense, s.values = s.dense[:last], s.values[:last]
}

func (s *Store[T]) Has(id EntityID) bool { return s.pos(id) >= 0 }
func (s *Store[T]) Len() int             { return len(s.dense) }

// Each walks the dense array backwards, so fn may Remove the entry it was
// given. Removing any other entry during Each is not allowed.
func (s *Store[T]) Each(fn func(EntityID, *T)) {
	for i := len(s.dense) - 1; i >= 0; i-- {
		fn(s.dense[i], s.values[i])
	}
}

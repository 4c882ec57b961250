package set

// Ordered is a set that iterates in insertion order. Delete leaves a hole
// that is reclaimed once holes outnumber live entries, so Add, Has and
// Delete stay O(1) amortised.
//
// The zero value is not usable; construct with New or Of.
type Ordered[T comparable] struct {
	pos   map[T]int
	slots []slot[T]
	holes int
	iters int // active Each calls; compaction waits for zero
}

type slot[T any] struct {
	v    T
	live bool
}

func New[T comparable]() *Ordered[T] {
	return &Ordered[T]{pos: make(map[T]int)}
}

// Of returns a set holding vs in order, duplicates dropped.
func Of[T comparable](vs ...T) *Ordered[T] {
	s := &Ordered[T]{pos: make(map[T]int, len(vs)), slots: make([]slot[T], 0, len(vs))}
	return s.AddAll(vs...)
}

func (s *Ordered[T]) Len() int { return len(s.pos) }

func (s *Ordered[T]) Has(v T) bool {
	_, ok := s.pos[v]
	return ok
}

// Add inserts v at the end. It reports false if v was already present, in
// which case its position is unchanged.
func (s *Ordered[T]) Add(v T) bool {
	if _, ok := s.pos[v]; ok {
		return false
	}
	s.pos[v] = len(s.slots)
	s.slots = append(s.slots, slot[T]{v: v, live: true})
	return true
}

// AddAll adds each of vs in order and returns s.
func (s *Ordered[T]) AddAll(vs ...T) *Ordered[T] {
	for _, v := range vs {
		s.Add(v)
	}
	return s
}

// Delete removes v and reports whether it was present.
func (s *Ordered[T]) Delete(v T) bool {
	i, ok := s.pos[v]
	if !ok {
		return false
	}
	delete(s.pos, v)
	var zero T
	s.slots[i] = slot[T]{v: zero}
	s.holes++
	s.maybeCompact()
	return true
}

func (s *Ordered[T]) maybeCompact() {
	if s.iters == 0 && s.holes > len(s.pos) {
		s.compact()
	}
}

func (s *Ordered[T]) compact() {
	live := s.slots[:0]
	for _, sl := range s.slots {
		if sl.live {
			s.pos[sl.v] = len(live)
			live = append(live, sl)
		}
	}
	clear(s.slots[len(live):])
	s.slots = live
	s.holes = 0
}

func (s *Ordered[T]) Clear() {
	clear(s.pos)
	s.slots = s.slots[:0]
	s.holes = 0
}

// Each calls fn for every member in order until fn returns false. Members
// added during iteration are visited; deleting members is safe.
func (s *Ordered[T]) Each(fn func(T) bool) {
	s.iters++
	defer func() {
		s.iters--
		s.maybeCompact()
	}()
	for i := 0; i < len(s.slots); i++ {
		if sl := s.slots[i]; sl.live && !fn(sl.v) {
			return
		}
	}
}

// Values returns the members in order as a fresh slice.
func (s *Ordered[T]) Values() []T {
	out := make([]T, 0, len(s.pos))
	s.Each(func(v T) bool {
		out = append(out, v)
		return true
	})
	return out
}

// First returns the earliest member still present.
func (s *Ordered[T]) First() (T, bool) {
	for _, sl := range s.slots {
		if sl.live {
			return sl.v, true
		}
	}
	var zero T
	return zero, false
}

func (s *Ordered[T]) Find(fn func(T) bool) (T, bool) {
	var found T
	ok := false
	s.Each(func(v T) bool {
		if fn(v) {
			found, ok = v, true
			return false
		}
		return true
	})
	return found, ok
}

func (s *Ordered[T]) Some(fn func(T) bool) bool {
	_, ok := s.Find(fn)
	return ok
}

func (s *Ordered[T]) Every(fn func(T) bool) bool {
	return !s.Some(func(v T) bool { return !fn(v) })
}

// Filter returns a new set of the members for which keep returns true.
func (s *Ordered[T]) Filter(keep func(T) bool) *Ordered[T] {
	out := New[T]()
	s.Each(func(v T) bool {
		if keep(v) {
			out.Add(v)
		}
		return true
	})
	return out
}

func (s *Ordered[T]) Copy() *Ordered[T] {
	return s.Filter(func(T) bool { return true })
}

// Union returns s followed by the members of others not already seen.
func (s *Ordered[T]) Union(others ...*Ordered[T]) *Ordered[T] {
	out := s.Copy()
	for _, o := range others {
		o.Each(func(v T) bool {
			out.Add(v)
			return true
		})
	}
	return out
}

// Intersection keeps the members of s present in every other set.
func (s *Ordered[T]) Intersection(others ...*Ordered[T]) *Ordered[T] {
	return s.Filter(func(v T) bool {
		for _, o := range others {
			if !o.Has(v) {
				return false
			}
		}
		return true
	})
}

// Difference keeps the members of s present in none of the other sets.
func (s *Ordered[T]) Difference(others ...*Ordered[T]) *Ordered[T] {
	return s.Filter(func(v T) bool {
		for _, o := range others {
			if o.Has(v) {
				return false
			}
		}
		return true
	})
}

package ecs

import "testing"

func TestEntityPoolNeverIssuesZero(t *testing.T) {
	p := NewEntityPool()
	for i := 0; i < 10; i++ {
		if id := p.Create(); id.IsZero() || id.Index() == 0 {
			t.Fatalf("Create returned reserved id %v", id)
		}
	}
	if p.Alive(0) {
		t.Error("zero id reported alive")
	}
}

func TestEntityPoolGenerations(t *testing.T) {
	p := NewEntityPool()
	a := p.Create()
	p.Destroy(a)
	if p.Alive(a) {
		t.Fatal("destroyed id still alive")
	}
	b := p.Create()
	if b.Index() != a.Index() {
		t.Fatalf("slot not recycled: %d vs %d", b.Index(), a.Index())
	}
	if b.Generation() != a.Generation()+1 {
		t.Errorf("generation = %d, want %d", b.Generation(), a.Generation()+1)
	}
	p.Destroy(a) // stale, ignored
	if !p.Alive(b) || p.Len() != 1 {
		t.Errorf("stale destroy affected live id: alive=%v len=%d", p.Alive(b), p.Len())
	}
}

func TestRegistryRelease(t *testing.T) {
	p := NewEntityPool()
	r := NewRegistry(p)
	names := NewStore[string]()
	sizes := NewStore[float64]()
	r.Register(names)
	r.Register(sizes)

	id := p.Create()
	name, size := "a", 1.5
	names.Set(id, &name)
	sizes.Set(id, &size)

	r.Release(id)
	if names.Has(id) || sizes.Has(id) || p.Alive(id) {
		t.Error("Release left data behind")
	}
	if names.Len() != 0 || sizes.Len() != 0 {
		t.Errorf("store lengths %d, %d", names.Len(), sizes.Len())
	}
}

func TestStoreIgnoresStaleIDs(t *testing.T) {
	p := NewEntityPool()
	s := NewStore[int]()
	a := p.Create()
	one := 1
	s.Set(a, &one)
	p.Destroy(a)
	b := p.Create() // same slot, next generation
	if s.Has(b) {
		t.Fatal("new generation sees the old value")
	}
	two := 2
	s.Set(b, &two)
	if s.Has(a) || s.Len() != 1 {
		t.Errorf("stale id still present: has=%v len=%d", s.Has(a), s.Len())
	}
	s.Remove(a) // stale, ignored
	if v, ok := s.Get(b); !ok || *v != 2 {
		t.Errorf("Get(b) = %v, %v", v, ok)
	}
}

func TestStoreRemoveKeepsOthers(t *testing.T) {
	p := NewEntityPool()
	s := NewStore[int]()
	var ids []EntityID
	for i := 0; i < 5; i++ {
		id := p.Create()
		v := i
		s.Set(id, &v)
		ids = append(ids, id)
	}
	s.Remove(ids[1])
	s.Remove(ids[4])
	if s.Len() != 3 {
		t.Fatalf("Len = %d", s.Len())
	}
	for i, id := range ids {
		v, ok := s.Get(id)
		removed := i == 1 || i == 4
		if ok == removed || (ok && *v != i) {
			t.Errorf("Get(%d) = %v, %v", i, v, ok)
		}
	}
	seen := 0
	s.Each(func(id EntityID, v *int) {
		if !s.Has(id) {
			t.Errorf("Each visited removed id %v", id)
		}
		s.Remove(id)
		seen++
	})
	if seen != 3 || s.Len() != 0 {
		t.Errorf("Each saw %d, %d left", seen, s.Len())
	}
}

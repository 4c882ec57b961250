package ecs

// Registry ties an EntityPool to the stores holding per-entity data, so
// releasing an ID also clears it everywhere.
type Registry struct {
	pool   *EntityPool
	stores []Removable
}

func NewRegistry(pool *EntityPool) *Registry {
	return &Registry{pool: pool, stores: make([]Removable, 0, 4)}
}

// Register adds a component store to the registry.
func (r *Registry) Register(store Removable) {
	r.stores = append(r.stores, store)
}

// Release removes id from every registered store and retires it in the pool.
func (r *Registry) Release(id EntityID) {
	for _, s := range r.stores {
		s.Remove(id)
	}
	r.pool.Destroy(id)
}

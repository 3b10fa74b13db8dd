package vdom

import "slices"

// EvictionPolicy decides which cached component a KeepAlive drops when its
// cache grows.
type EvictionPolicy interface {
	// Added is called when def enters the cache.
	Added(def *Definition)
	// Touched is called when a cached def is shown again.
	Touched(def *Definition)
	// Removed is called when def leaves the cache for any reason.
	Removed(def *Definition)
	// Victim returns the entry to drop from a cache holding size entries,
	// or nil to keep them all.
	Victim(size int) *Definition
}

type unbounded struct{}

// Unbounded never evicts.
func Unbounded() EvictionPolicy { return unbounded{} }

func (unbounded) Added(*Definition) {}
func (unbounded) Touched(*Definition) {}
func (unbounded) Removed(*Definition) {}
func (unbounded) Victim(int) *Definition { return nil }

// OldestUntouched keeps at most max entries and evicts the one shown least
// recently.
func OldestUntouched(max int) EvictionPolicy {
	return &oldestUntouched{max: max}
}

type oldestUntouched struct {
	max   int
	order []*Definition // least recently touched first
}

func (p *oldestUntouched) Added(def *Definition) {
	p.Removed(def)
	p.order = append(p.order, def)
}

func (p *oldestUntouched) Touched(def *Definition) {
	p.Added(def)
}

func (p *oldestUntouched) Removed(def *Definition) {
	if i := slices.Index(p.order, def); i >= 0 {
		p.order = slices.Delete(p.order, i, i+1)
	}
}

func (p *oldestUntouched) Victim(size int) *Definition {
	if p.max <= 0 || size <= p.max || len(p.order) == 0 {
		return nil
	}
	return p.order[0]
}

package reactive

import "sync"

// dep is a single observable slot. Signal embeds one; Store keeps one per
// key plus one for its key set.
type dep struct {
	subs  []Listener
	subMu sync.RWMutex
}

// track subscribes the current listener, if any.
func (d *dep) track() {
	l := getCurrentListener()
	if l == nil {
		return
	}
	d.subscribe(l)
	if st, ok := l.(sourceTracker); ok {
		st.addSource(d)
	}
}

// subscribe adds a listener, deduplicated by ID.
func (d *dep) subscribe(l Listener) {
	d.subMu.Lock()
	defer d.subMu.Unlock()

	lid := l.ID()
	for _, existing := range d.subs {
		if existing.ID() == lid {
			return
		}
	}
	d.subs = append(d.subs, l)
}

// unsubscribe removes a listener.
func (d *dep) unsubscribe(l Listener) {
	d.subMu.Lock()
	defer d.subMu.Unlock()

	lid := l.ID()
	for i, existing := range d.subs {
		if existing.ID() == lid {
			d.subs = append(d.subs[:i], d.subs[i+1:]...)
			return
		}
	}
}

// subscriberCount returns the number of subscribed listeners.
func (d *dep) subscriberCount() int {
	d.subMu.RLock()
	defer d.subMu.RUnlock()
	return len(d.subs)
}

// notify marks every subscriber dirty, or queues them while batching.
// Subscribers are copied first so listeners may unsubscribe while notified.
func (d *dep) notify() {
	d.subMu.RLock()
	subs := make([]Listener, len(d.subs))
	copy(subs, d.subs)
	d.subMu.RUnlock()

	ctx := getTrackingContext()
	if ctx.batchDepth > 0 {
		ctx.pendingUpdates = append(ctx.pendingUpdates, subs...)
		return
	}
	for _, sub := range subs {
		sub.MarkDirty()
	}
}

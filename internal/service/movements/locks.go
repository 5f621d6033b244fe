package movements

import (
	"sort"
	"sync"
)

// outletLocks serializes mutating operations per outlet. Multi-outlet
// operations acquire their locks in lexicographic outlet order so two
// opposite-direction transfers cannot deadlock.
type outletLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newOutletLocks() *outletLocks {
	return &outletLocks{locks: make(map[string]*sync.Mutex)}
}

func (ol *outletLocks) get(outletID string) *sync.Mutex {
	ol.mu.Lock()
	defer ol.mu.Unlock()
	l, ok := ol.locks[outletID]
	if !ok {
		l = &sync.Mutex{}
		ol.locks[outletID] = l
	}
	return l
}

// acquire locks the given outlets in sorted order and returns the matching
// unlock function.
func (ol *outletLocks) acquire(outletIDs ...string) func() {
	unique := make([]string, 0, len(outletIDs))
	seen := make(map[string]bool, len(outletIDs))
	for _, id := range outletIDs {
		if !seen[id] {
			seen[id] = true
			unique = append(unique, id)
		}
	}
	sort.Strings(unique)

	held := make([]*sync.Mutex, 0, len(unique))
	for _, id := range unique {
		l := ol.get(id)
		l.Lock()
		held = append(held, l)
	}

	return func() {
		for i := len(held) - 1; i >= 0; i-- {
			held[i].Unlock()
		}
	}
}

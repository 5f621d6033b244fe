// Package catalog holds the reference data the inventory core reads: the
// product and menu-item catalogs, the outlet registry and the per-pair
// low-stock thresholds. All stores are in-memory and dependency-injected into
// the services that need them.
package catalog

import (
	"sync"

	"github.com/OmAmbre27/smart-inventory-sub000/internal/domain/models"
)

// ProductSource is the read surface the services depend on.
type ProductSource interface {
	Product(id string) (models.Product, bool)
	Products() []models.Product
}

// MenuSource resolves menu items for order fulfillment.
type MenuSource interface {
	MenuItem(id string) (models.MenuItem, bool)
}

// OutletSource answers outlet existence checks.
type OutletSource interface {
	HasOutlet(id string) bool
	Outlets() []models.Outlet
}

// Store is the in-memory catalog implementation.
type Store struct {
	mu      sync.RWMutex
	items   map[string]models.Product
	order   []string
	menu    map[string]models.MenuItem
	outlets map[string]models.Outlet
	olist   []string
}

// NewStore builds an empty catalog store.
func NewStore() *Store {
	return &Store{
		items:   make(map[string]models.Product),
		menu:    make(map[string]models.MenuItem),
		outlets: make(map[string]models.Outlet),
	}
}

// PutProduct inserts or replaces a product.
func (s *Store) PutProduct(p models.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items[p.ID]; !ok {
		s.order = append(s.order, p.ID)
	}
	s.items[p.ID] = p
}

// Product looks up a product by id.
func (s *Store) Product(id string) (models.Product, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.items[id]
	return p, ok
}

// Products lists the catalog in insertion order.
func (s *Store) Products() []models.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Product, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.items[id])
	}
	return out
}

// PutMenuItem inserts or replaces a menu item.
func (s *Store) PutMenuItem(m models.MenuItem) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.menu[m.ID] = m
}

// MenuItem looks up a menu item by id.
func (s *Store) MenuItem(id string) (models.MenuItem, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	m, ok := s.menu[id]
	return m, ok
}

// PutOutlet registers an outlet.
func (s *Store) PutOutlet(o models.Outlet) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.outlets[o.ID]; !ok {
		s.olist = append(s.olist, o.ID)
	}
	s.outlets[o.ID] = o
}

// HasOutlet reports whether the outlet is registered.
func (s *Store) HasOutlet(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.outlets[id]
	return ok
}

// Outlets lists registered outlets in insertion order.
func (s *Store) Outlets() []models.Outlet {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Outlet, 0, len(s.olist))
	for _, id := range s.olist {
		out = append(out, s.outlets[id])
	}
	return out
}

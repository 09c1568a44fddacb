package ratings

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"mandi-mitra/internal/models"
)

// MemoryStore keeps vendors in process memory.
type MemoryStore struct {
	mu      sync.RWMutex
	vendors map[uint]models.Vendor
}

func NewMemoryStore(seed []models.Vendor) *MemoryStore {
	s := &MemoryStore{vendors: make(map[uint]models.Vendor, len(seed))}
	for _, v := range seed {
		s.vendors[v.ID] = cloneVendor(v)
	}
	return s
}

func (s *MemoryStore) List(_ context.Context) ([]models.Vendor, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Vendor, 0, len(s.vendors))
	for _, v := range s.vendors {
		out = append(out, cloneVendor(v))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *MemoryStore) Get(_ context.Context, id uint) (models.Vendor, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.vendors[id]
	if !ok {
		return models.Vendor{}, fmt.Errorf("%w: %d", ErrVendorNotFound, id)
	}
	return cloneVendor(v), nil
}

func (s *MemoryStore) Update(_ context.Context, id uint, fn func(*models.Vendor) error) (models.Vendor, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	v, ok := s.vendors[id]
	if !ok {
		return models.Vendor{}, fmt.Errorf("%w: %d", ErrVendorNotFound, id)
	}
	v = cloneVendor(v)
	if err := fn(&v); err != nil {
		return models.Vendor{}, err
	}
	s.vendors[id] = v
	return cloneVendor(v), nil
}

func cloneVendor(v models.Vendor) models.Vendor {
	v.Items = append([]string(nil), v.Items...)
	return v
}

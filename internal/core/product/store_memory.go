// Copyright (c) 2026 Tienda. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package product

import (
	"context"
	"slices"
	"sort"
	"strings"
	"sync"

	"github.com/taibuivan/tienda/pkg/convert"
	"github.com/taibuivan/tienda/pkg/slice"
)

// MemoryRepository keeps the catalog in process memory.
type MemoryRepository struct {
	mu       sync.RWMutex
	products map[string]*Product
	order    []string
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{products: make(map[string]*Product)}
}

func (repository *MemoryRepository) List(_ context.Context, filter Filter, limit, offset int) ([]*Product, int, error) {
	repository.mu.RLock()
	defer repository.mu.RUnlock()

	matches := slice.Filter(repository.snapshot(), matcher(filter.Query))

	switch filter.Sort {
	case SortAsc:
		sort.SliceStable(matches, func(i, j int) bool { return matches[i].Price < matches[j].Price })
	case SortDesc:
		sort.SliceStable(matches, func(i, j int) bool { return matches[i].Price > matches[j].Price })
	default:
		slices.Reverse(matches)
	}

	total := len(matches)
	if offset >= total {
		return []*Product{}, total, nil
	}
	end := min(offset+limit, total)

	return matches[offset:end], total, nil
}

func (repository *MemoryRepository) All(_ context.Context) ([]*Product, error) {
	repository.mu.RLock()
	defer repository.mu.RUnlock()

	return repository.snapshot(), nil
}

func (repository *MemoryRepository) FindByID(_ context.Context, id string) (*Product, error) {
	repository.mu.RLock()
	defer repository.mu.RUnlock()

	stored, ok := repository.products[id]
	if !ok {
		return nil, ErrProductNotFound
	}
	return clone(stored), nil
}

func (repository *MemoryRepository) Exists(_ context.Context, id string) (bool, error) {
	repository.mu.RLock()
	defer repository.mu.RUnlock()

	_, ok := repository.products[id]
	return ok, nil
}

func (repository *MemoryRepository) Create(_ context.Context, product *Product) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	if repository.codeTaken(product.Code, "") {
		return ErrDuplicateCode
	}

	repository.products[product.ID] = clone(product)
	repository.order = append(repository.order, product.ID)
	return nil
}

func (repository *MemoryRepository) Update(_ context.Context, product *Product) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	if _, ok := repository.products[product.ID]; !ok {
		return ErrProductNotFound
	}
	if repository.codeTaken(product.Code, product.ID) {
		return ErrDuplicateCode
	}

	repository.products[product.ID] = clone(product)
	return nil
}

func (repository *MemoryRepository) Delete(_ context.Context, id string) (*Product, error) {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	stored, ok := repository.products[id]
	if !ok {
		return nil, ErrProductNotFound
	}

	delete(repository.products, id)
	repository.order = slices.DeleteFunc(repository.order, func(candidate string) bool { return candidate == id })
	return stored, nil
}

// snapshot returns copies in insertion order. Caller holds the lock.
func (repository *MemoryRepository) snapshot() []*Product {
	products := make([]*Product, 0, len(repository.order))
	for _, id := range repository.order {
		products = append(products, clone(repository.products[id]))
	}
	return products
}

func (repository *MemoryRepository) codeTaken(code, exceptID string) bool {
	for id, stored := range repository.products {
		if id != exceptID && stored.Code == code {
			return true
		}
	}
	return false
}

func matcher(query string) func(*Product) bool {
	if status, ok := convert.ToBoolOK(query); ok {
		return func(product *Product) bool { return product.Status == status }
	}

	needle := strings.ToLower(strings.TrimSpace(query))
	return func(product *Product) bool {
		return needle == "" ||
			strings.Contains(strings.ToLower(product.Title), needle) ||
			strings.Contains(strings.ToLower(product.Category), needle)
	}
}

func clone(product *Product) *Product {
	copied := *product
	copied.Thumbnails = slices.Clone(product.Thumbnails)
	if copied.Thumbnails == nil {
		copied.Thumbnails = []string{}
	}
	return &copied
}

package repositories

import (
	"sort"
	"strings"
	"sync"
	"time"

	"inventory/internal/models"
)

// MemoryProductRepository is an in-memory implementation of ProductRepository.
type MemoryProductRepository struct {
	products map[uint]models.Product
	lastID   uint
	mu       sync.RWMutex
}

// NewMemoryProductRepository creates a new instance of MemoryProductRepository.
func NewMemoryProductRepository() *MemoryProductRepository {
	return &MemoryProductRepository{
		products: make(map[uint]models.Product),
	}
}

// List returns copies of the products matching filter.
func (r *MemoryProductRepository) List(filter models.ProductFilter) ([]models.Product, error) {
	r.mu.RLock()
	productList := make([]models.Product, 0, len(r.products))
	needle := strings.ToLower(filter.Name)
	for _, p := range r.products {
		if needle != "" && !strings.Contains(strings.ToLower(p.Name), needle) {
			continue
		}
		if filter.InStock && p.Quantity <= 0 {
			continue
		}
		productList = append(productList, p)
	}
	r.mu.RUnlock()

	less := memoryLess(filter.SortColumn())
	desc := filter.Descending()
	sort.SliceStable(productList, func(i, j int) bool {
		a, b := productList[i], productList[j]
		if desc {
			a, b = b, a
		}
		if less(a, b) {
			return true
		}
		if less(b, a) {
			return false
		}
		// Ties fall back to ascending id, like the SQL backend.
		return productList[i].ID < productList[j].ID
	})

	return paginate(productList, filter.Offset, filter.Limit), nil
}

func memoryLess(column string) func(a, b models.Product) bool {
	switch column {
	case models.SortByName:
		return func(a, b models.Product) bool { return a.Name < b.Name }
	case models.SortByPrice:
		return func(a, b models.Product) bool { return a.Price.LessThan(b.Price.Decimal) }
	case models.SortByQuantity:
		return func(a, b models.Product) bool { return a.Quantity < b.Quantity }
	case models.SortBySupplierName:
		return func(a, b models.Product) bool { return a.SupplierName < b.SupplierName }
	default:
		return func(a, b models.Product) bool { return a.ID < b.ID }
	}
}

func paginate(products []models.Product, offset, limit int) []models.Product {
	if offset >= len(products) {
		return []models.Product{}
	}
	products = products[offset:]
	if limit > 0 && limit < len(products) {
		products = products[:limit]
	}
	return products
}

// GetByID returns a product by its ID.
func (r *MemoryProductRepository) GetByID(id uint) (*models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	product, ok := r.products[id]
	if !ok {
		return nil, &models.NotFoundError{ID: id}
	}
	return &product, nil
}

// Create assigns the next id and stores a copy of product.
func (r *MemoryProductRepository) Create(product *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.lastID++
	now := time.Now()
	product.ID = r.lastID
	product.CreatedAt = now
	product.UpdatedAt = now
	r.products[product.ID] = *product
	return nil
}

// Update applies changes to an existing product.
func (r *MemoryProductRepository) Update(id uint, changes models.ProductChanges) (*models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	product, ok := r.products[id]
	if !ok {
		return nil, &models.NotFoundError{ID: id}
	}
	if !changes.Empty() {
		changes.Apply(&product)
		product.UpdatedAt = time.Now()
		r.products[id] = product
	}
	return &product, nil
}

// DecrementQuantity removes one unit from stock.
func (r *MemoryProductRepository) DecrementQuantity(id uint) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	product, ok := r.products[id]
	if !ok {
		return 0, &models.NotFoundError{ID: id}
	}
	if product.Quantity <= 0 {
		return 0, &models.AlreadyZeroError{ID: id}
	}
	product.Quantity--
	product.UpdatedAt = time.Now()
	r.products[id] = product
	return product.Quantity, nil
}

// Delete removes a product by its ID.
func (r *MemoryProductRepository) Delete(id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.products[id]; !ok {
		return &models.NotFoundError{ID: id}
	}
	delete(r.products, id)
	return nil
}

// DeleteAll removes every product. The id counter is not reset.
func (r *MemoryProductRepository) DeleteAll() (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	n := int64(len(r.products))
	r.products = make(map[uint]models.Product)
	return n, nil
}

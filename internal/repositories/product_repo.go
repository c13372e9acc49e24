package repositories

import (
	"inventory/internal/models"
)

// ProductRepository defines the interface for product data access.
//
// Every mutating method is a single atomic operation. Not-found and
// out-of-stock conditions are reported as *models.NotFoundError and
// *models.AlreadyZeroError; anything else is a storage fault.
type ProductRepository interface {
	List(filter models.ProductFilter) ([]models.Product, error)
	GetByID(id uint) (*models.Product, error)
	Create(product *models.Product) error
	Update(id uint, changes models.ProductChanges) (*models.Product, error)
	DecrementQuantity(id uint) (int, error)
	Delete(id uint) error
	DeleteAll() (int64, error)
}

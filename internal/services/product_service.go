package services

import (
	"log"
	"time"

	"inventory/internal/models"
	"inventory/internal/repositories"

	"github.com/google/uuid"
)

// ChangeNotifier is told about every committed product mutation.
type ChangeNotifier interface {
	PublishProductChanged(event models.ProductEvent) error
}

// ProductService handles business logic related to products.
type ProductService struct {
	repo     repositories.ProductRepository
	notifier ChangeNotifier
}

// NewProductService creates a new ProductService. notifier may be nil.
func NewProductService(repo repositories.ProductRepository, notifier ChangeNotifier) *ProductService {
	return &ProductService{
		repo:     repo,
		notifier: notifier,
	}
}

// ListProducts retrieves the products matching filter.
func (s *ProductService) ListProducts(filter models.ProductFilter) ([]models.Product, error) {
	if err := ValidateFilter(filter); err != nil {
		return nil, err
	}
	return s.repo.List(filter)
}

// GetProductByID retrieves a single product by its ID.
func (s *ProductService) GetProductByID(id uint) (*models.Product, error) {
	return s.repo.GetByID(id)
}

// CreateProduct validates all five business fields and stores a new
// product. Nothing is written when validation fails.
func (s *ProductService) CreateProduct(input models.ProductInput) (*models.Product, error) {
	changes, err := ValidateProductInput(input, true)
	if err != nil {
		return nil, err
	}

	product := &models.Product{}
	changes.Apply(product)
	if err := s.repo.Create(product); err != nil {
		return nil, err
	}

	log.Printf("Created product %d (%s)", product.ID, product.Name)
	s.publish(models.ProductEvent{Action: models.ActionInserted, ProductID: product.ID, Quantity: &product.Quantity})
	return product, nil
}

// UpdateProduct validates and replaces only the supplied fields.
func (s *ProductService) UpdateProduct(id uint, input models.ProductInput) (*models.Product, error) {
	changes, err := ValidateProductInput(input, false)
	if err != nil {
		return nil, err
	}

	product, err := s.repo.Update(id, changes)
	if err != nil {
		return nil, err
	}

	if !changes.Empty() {
		log.Printf("Updated product %d", id)
		s.publish(models.ProductEvent{Action: models.ActionUpdated, ProductID: id, Quantity: &product.Quantity})
	}
	return product, nil
}

// SellProduct takes one unit out of stock and returns the new quantity.
// An out-of-stock product yields *models.AlreadyZeroError and is left as is.
func (s *ProductService) SellProduct(id uint) (int, error) {
	quantity, err := s.repo.DecrementQuantity(id)
	if err != nil {
		return 0, err
	}

	s.publish(models.ProductEvent{Action: models.ActionSold, ProductID: id, Quantity: &quantity})
	return quantity, nil
}

// DeleteProduct deletes a product by its ID.
func (s *ProductService) DeleteProduct(id uint) error {
	if err := s.repo.Delete(id); err != nil {
		return err
	}

	log.Printf("Deleted product %d", id)
	s.publish(models.ProductEvent{Action: models.ActionDeleted, ProductID: id})
	return nil
}

// DeleteAllProducts empties the product table and returns the number of
// products removed.
func (s *ProductService) DeleteAllProducts() (int64, error) {
	n, err := s.repo.DeleteAll()
	if err != nil {
		return 0, err
	}

	log.Printf("Deleted all products (%d rows)", n)
	s.publish(models.ProductEvent{Action: models.ActionCleared, Affected: n})
	return n, nil
}

// publish never fails the caller; the mutation is already committed.
func (s *ProductService) publish(event models.ProductEvent) {
	if s.notifier == nil {
		return
	}
	event.ID = uuid.New().String()
	event.OccurredAt = time.Now().UTC()
	if err := s.notifier.PublishProductChanged(event); err != nil {
		log.Printf("Warning: failed to publish %s event for product %d: %v", event.Action, event.ProductID, err)
	}
}

package repositories

import (
	"errors"
	"fmt"
	"strings"

	"inventory/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GORMProductRepository is a GORM implementation of ProductRepository.
type GORMProductRepository struct {
	db *gorm.DB
}

// NewGORMProductRepository creates a new instance of GORMProductRepository.
func NewGORMProductRepository(db *gorm.DB) *GORMProductRepository {
	return &GORMProductRepository{
		db: db,
	}
}

// List retrieves the products matching filter from the database.
func (r *GORMProductRepository) List(filter models.ProductFilter) ([]models.Product, error) {
	query := r.db.Model(&models.Product{})
	if filter.Name != "" {
		query = query.Where(`LOWER(name) LIKE ? ESCAPE '\'`, "%"+likeEscaper.Replace(strings.ToLower(filter.Name))+"%")
	}
	if filter.InStock {
		query = query.Where("quantity > ?", 0)
	}

	column := filter.SortColumn()
	sortBy := clause.Column{Name: column}
	if column == models.SortByPrice && r.db.Dialector.Name() == "sqlite" {
		// Prices are TEXT on SQLite; compare them as numbers.
		sortBy = clause.Column{Name: "CAST(price AS REAL)", Raw: true}
	}
	query = query.Order(clause.OrderByColumn{Column: sortBy, Desc: filter.Descending()})
	if column != models.SortByID {
		query = query.Order(clause.OrderByColumn{Column: clause.Column{Name: "id"}})
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}

	products := []models.Product{}
	if err := query.Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return products, nil
}

// GetByID retrieves a single product by its ID from the database.
func (r *GORMProductRepository) GetByID(id uint) (*models.Product, error) {
	return findProduct(r.db, id)
}

func findProduct(db *gorm.DB, id uint) (*models.Product, error) {
	var product models.Product
	if err := db.First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &models.NotFoundError{ID: id}
		}
		return nil, fmt.Errorf("failed to get product by ID %d: %w", id, err)
	}
	return &product, nil
}

// Create inserts a new product; the database assigns the id.
func (r *GORMProductRepository) Create(product *models.Product) error {
	product.ID = 0
	if err := r.db.Create(product).Error; err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}
	return nil
}

// Update writes changes to an existing product in one transaction and
// returns the stored result.
func (r *GORMProductRepository) Update(id uint, changes models.ProductChanges) (*models.Product, error) {
	var updated *models.Product
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if !changes.Empty() {
			res := tx.Model(&models.Product{}).Where("id = ?", id).Updates(changes.Columns())
			if res.Error != nil {
				return fmt.Errorf("failed to update product %d: %w", id, res.Error)
			}
			if res.RowsAffected == 0 {
				return &models.NotFoundError{ID: id}
			}
		}
		p, err := findProduct(tx, id)
		if err != nil {
			return err
		}
		updated = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// DecrementQuantity removes one unit from stock with a conditional
// update, so concurrent sells can never drive quantity below zero.
func (r *GORMProductRepository) DecrementQuantity(id uint) (int, error) {
	var quantity int
	err := r.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Product{}).
			Where("id = ? AND quantity > ?", id, 0).
			Update("quantity", gorm.Expr("quantity - ?", 1))
		if res.Error != nil {
			return fmt.Errorf("failed to decrement quantity for product %d: %w", id, res.Error)
		}

		p, err := findProduct(tx, id)
		if err != nil {
			return err
		}
		if res.RowsAffected == 0 {
			return &models.AlreadyZeroError{ID: id}
		}
		quantity = p.Quantity
		return nil
	})
	if err != nil {
		return 0, err
	}
	return quantity, nil
}

// Delete deletes a product by its ID from the database.
func (r *GORMProductRepository) Delete(id uint) error {
	res := r.db.Delete(&models.Product{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete product: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return &models.NotFoundError{ID: id}
	}
	return nil
}

// DeleteAll deletes every product and returns how many rows went away.
func (r *GORMProductRepository) DeleteAll() (int64, error) {
	res := r.db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&models.Product{})
	if res.Error != nil {
		return 0, fmt.Errorf("failed to delete all products: %w", res.Error)
	}
	return res.RowsAffected, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

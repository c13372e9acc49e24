package handlers

import (
	"fmt"
	"log"
	"strconv"
	"strings"

	"inventory/internal/middleware"
	"inventory/internal/models"
	"inventory/internal/services"

	"github.com/gofiber/fiber/v2"
)

// ProductHandler handles HTTP requests for products.
type ProductHandler struct {
	service *services.ProductService
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(service *services.ProductService) *ProductHandler {
	return &ProductHandler{
		service: service,
	}
}

// RegisterRoutes registers the product routes. guard runs before every
// route that mutates the product table.
func (h *ProductHandler) RegisterRoutes(router fiber.Router, guard fiber.Handler) {
	productRoutes := router.Group("/products")
	productRoutes.Get("/", h.HandleListProducts)
	productRoutes.Get("/:id", h.HandleGetProduct)
	productRoutes.Post("/", guard, h.HandleCreateProduct)
	productRoutes.Put("/:id", guard, h.HandleUpdateProduct)
	productRoutes.Patch("/:id", guard, h.HandleUpdateProduct)
	productRoutes.Post("/:id/sell", guard, h.HandleSellProduct)
	productRoutes.Delete("/:id", guard, h.HandleDeleteProduct)
	productRoutes.Delete("/", guard, h.HandleDeleteAllProducts)
}

func parseProductID(c *fiber.Ctx) (uint, bool) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

func invalidProductID(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"message": fmt.Sprintf("Invalid product ID %q", c.Params("id")),
	})
}

// bindProductInput decodes a JSON product body into input. When it
// reports false the error response has already been written.
func bindProductInput(c *fiber.Ctx, input *models.ProductInput) (bool, error) {
	if !c.Is("json") {
		return false, c.Status(fiber.StatusUnsupportedMediaType).JSON(fiber.Map{
			"message": "Content-Type must be " + fiber.MIMEApplicationJSON,
		})
	}
	if err := c.BodyParser(input); err != nil {
		log.Printf("Error parsing product body on %s %s: %v", c.Method(), c.Path(), err)
		return false, c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	return true, nil
}

// HandleListProducts lists products, optionally filtered and sorted.
func (h *ProductHandler) HandleListProducts(c *fiber.Ctx) error {
	var filter models.ProductFilter
	if err := c.QueryParser(&filter); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid query parameters",
			"error":   err.Error(),
		})
	}

	products, err := h.service.ListProducts(filter)
	if err != nil {
		return writeError(c, err, "retrieve products")
	}
	return c.JSON(products)
}

// HandleGetProduct retrieves a single product by its ID.
func (h *ProductHandler) HandleGetProduct(c *fiber.Ctx) error {
	id, ok := parseProductID(c)
	if !ok {
		return invalidProductID(c)
	}

	product, err := h.service.GetProductByID(id)
	if err != nil {
		return writeError(c, err, "retrieve product")
	}
	return c.JSON(product)
}

// HandleCreateProduct creates a new product.
func (h *ProductHandler) HandleCreateProduct(c *fiber.Ctx) error {
	var input models.ProductInput
	if ok, err := bindProductInput(c, &input); !ok {
		return err
	}

	product, err := h.service.CreateProduct(input)
	if err != nil {
		return writeError(c, err, "create product")
	}
	c.Location(fmt.Sprintf("%s/%d", strings.TrimSuffix(c.Path(), "/"), product.ID))
	return c.Status(fiber.StatusCreated).JSON(product)
}

// HandleUpdateProduct replaces the supplied fields of a product.
func (h *ProductHandler) HandleUpdateProduct(c *fiber.Ctx) error {
	id, ok := parseProductID(c)
	if !ok {
		return invalidProductID(c)
	}

	var input models.ProductInput
	if ok, err := bindProductInput(c, &input); !ok {
		return err
	}

	product, err := h.service.UpdateProduct(id, input)
	if err != nil {
		return writeError(c, err, "update product")
	}
	return c.JSON(fiber.Map{
		"message":  fmt.Sprintf("Product %d updated successfully", id),
		"affected": 1,
		"product":  product,
	})
}

// HandleSellProduct takes one unit of a product out of stock.
func (h *ProductHandler) HandleSellProduct(c *fiber.Ctx) error {
	id, ok := parseProductID(c)
	if !ok {
		return invalidProductID(c)
	}

	quantity, err := h.service.SellProduct(id)
	if err != nil {
		return writeError(c, err, "sell product")
	}
	return c.JSON(fiber.Map{
		"id":       id,
		"quantity": quantity,
	})
}

// HandleDeleteProduct deletes a product by its ID.
func (h *ProductHandler) HandleDeleteProduct(c *fiber.Ctx) error {
	id, ok := parseProductID(c)
	if !ok {
		return invalidProductID(c)
	}

	if err := h.service.DeleteProduct(id); err != nil {
		return writeError(c, err, "delete product")
	}
	return c.JSON(fiber.Map{
		"message":  fmt.Sprintf("Product %d deleted successfully", id),
		"affected": 1,
	})
}

// HandleDeleteAllProducts empties the product table.
func (h *ProductHandler) HandleDeleteAllProducts(c *fiber.Ctx) error {
	n, err := h.service.DeleteAllProducts()
	if err != nil {
		return writeError(c, err, "delete products")
	}
	if operator, ok := c.Locals(middleware.OperatorKey).(string); ok {
		log.Printf("Operator %s cleared %d products", operator, n)
	}
	return c.JSON(fiber.Map{
		"message":  fmt.Sprintf("%d products deleted", n),
		"affected": n,
	})
}

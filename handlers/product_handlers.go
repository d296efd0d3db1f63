package handlers

import (
	"context"
	"log"

	"demandcast/database"
	"demandcast/models"
	"demandcast/utils"

	"github.com/gofiber/fiber/v2"
)

// HandleListProducts lists the product catalog with pagination.
// GET /api/v1/products?page=1&pageSize=20
func HandleListProducts(c *fiber.Ctx) error {
	db := database.GetDB()
	ctx := context.Background()

	page := c.QueryInt("page", 1)
	pageSize := c.QueryInt("pageSize", 20)
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	offset := (page - 1) * pageSize

	query := `
		SELECT p.product_id, p.name, c.name, p.price, COALESCE(SUM(i.quantity), 0)
		FROM products p
		JOIN categories c ON p.category_id = c.category_id
		LEFT JOIN inventory i ON p.product_id = i.product_id
		GROUP BY p.product_id, p.name, c.name, p.price
		ORDER BY p.product_id
		LIMIT $1 OFFSET $2
	`
	rows, err := db.Query(ctx, query, pageSize, offset)
	if err != nil {
		log.Printf("Error listing products: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to retrieve products"})
	}
	defer rows.Close()

	products := []models.Product{}
	for rows.Next() {
		var p models.Product
		if err := rows.Scan(&p.ProductID, &p.Name, &p.Category, &p.Price, &p.StockUnits); err != nil {
			log.Printf("Error scanning product: %v", err)
			continue
		}
		products = append(products, p)
	}

	var totalItems int
	if err := db.QueryRow(ctx, "SELECT COUNT(*) FROM products").Scan(&totalItems); err != nil {
		log.Printf("Error counting products: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to count products"})
	}

	return c.JSON(fiber.Map{
		"status": "success",
		"data": fiber.Map{
			"items":      products,
			"pagination": utils.CreatePagination(totalItems, page, pageSize),
		},
	})
}

// HandleGetProductByID returns one product with its current stock.
// GET /api/v1/products/:productId
func HandleGetProductByID(c *fiber.Ctx) error {
	db := database.GetDB()
	ctx := context.Background()

	productID, err := c.ParamsInt("productId")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": "Invalid product id"})
	}

	query := `
		SELECT p.product_id, p.name, c.name, p.price, COALESCE(SUM(i.quantity), 0)
		FROM products p
		JOIN categories c ON p.category_id = c.category_id
		LEFT JOIN inventory i ON p.product_id = i.product_id
		WHERE p.product_id = $1
		GROUP BY p.product_id, p.name, c.name, p.price
	`
	var p models.Product
	if err := db.QueryRow(ctx, query, productID).Scan(&p.ProductID, &p.Name, &p.Category, &p.Price, &p.StockUnits); err != nil {
		log.Printf("Error getting product %d: %v", productID, err)
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"status": "error", "message": "Product not found"})
	}

	return c.JSON(fiber.Map{"status": "success", "data": p})
}

package handlers

import (
	"context"
	"log"

	"demandcast/database"
	"demandcast/models"

	"github.com/gofiber/fiber/v2"
)

// HandleGetStockLevels returns current stock per product against its
// reorder level.
// GET /api/v1/inventory/stock-levels
func HandleGetStockLevels(c *fiber.Ctx) error {
	db := database.GetDB()
	ctx := context.Background()

	query := `
		SELECT p.product_id, p.name, c.name, COALESCE(SUM(i.quantity), 0), p.reorder_level
		FROM products p
		JOIN categories c ON p.category_id = c.category_id
		LEFT JOIN inventory i ON p.product_id = i.product_id
		GROUP BY p.product_id, p.name, c.name, p.reorder_level
		ORDER BY COALESCE(SUM(i.quantity), 0) ASC
	`
	rows, err := db.Query(ctx, query)
	if err != nil {
		log.Printf("Error fetching stock levels: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to retrieve stock levels"})
	}
	defer rows.Close()

	levels := []models.StockLevel{}
	for rows.Next() {
		var s models.StockLevel
		if err := rows.Scan(&s.ProductID, &s.ProductName, &s.Category, &s.CurrentStock, &s.ReorderLevel); err != nil {
			log.Printf("Error scanning stock level: %v", err)
			continue
		}
		levels = append(levels, s)
	}

	return c.JSON(fiber.Map{"status": "success", "data": levels})
}

// HandleGetExpiringStock lists inventory batches expiring within the next
// N days (default 30).
// GET /api/v1/inventory/expiring-soon?days=30
func HandleGetExpiringStock(c *fiber.Ctx) error {
	db := database.GetDB()
	ctx := context.Background()

	days := c.QueryInt("days", 30)
	if days < 1 {
		days = 30
	}

	query := `
		SELECT p.product_id, p.name, i.inventory_id, i.quantity, i.expiry_date,
		       (i.expiry_date - CURRENT_DATE) AS days_left
		FROM inventory i
		JOIN products p ON i.product_id = p.product_id
		WHERE i.expiry_date IS NOT NULL
		  AND i.expiry_date >= CURRENT_DATE
		  AND i.expiry_date <= CURRENT_DATE + $1::int
		  AND i.quantity > 0
		ORDER BY i.expiry_date ASC
	`
	rows, err := db.Query(ctx, query, days)
	if err != nil {
		log.Printf("Error fetching expiring stock: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to retrieve expiring stock"})
	}
	defer rows.Close()

	batches := []models.ExpiringBatch{}
	for rows.Next() {
		var b models.ExpiringBatch
		if err := rows.Scan(&b.ProductID, &b.ProductName, &b.BatchID, &b.Quantity, &b.ExpiryDate, &b.DaysLeft); err != nil {
			log.Printf("Error scanning expiring batch: %v", err)
			continue
		}
		batches = append(batches, b)
	}

	return c.JSON(fiber.Map{"status": "success", "data": batches})
}

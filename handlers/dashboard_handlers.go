package handlers

import (
	"context"
	"log"

	"demandcast/database"
	"demandcast/models"

	"github.com/gofiber/fiber/v2"
)

// HandleGetDashboardStats fetches the admin dashboard headline numbers.
// GET /api/v1/admin/dashboard-stats
func HandleGetDashboardStats(c *fiber.Ctx) error {
	db := database.GetDB()
	ctx := context.Background()

	var stats models.DashboardStats

	if err := db.QueryRow(ctx, "SELECT COUNT(*) FROM products").Scan(&stats.TotalProducts); err != nil {
		log.Printf("Error counting products: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to fetch dashboard stats"})
	}

	lowStockQuery := `
		SELECT COUNT(*) FROM (
			SELECT p.product_id
			FROM products p
			LEFT JOIN inventory i ON p.product_id = i.product_id
			GROUP BY p.product_id, p.reorder_level
			HAVING COALESCE(SUM(i.quantity), 0) <= p.reorder_level
		) low
	`
	if err := db.QueryRow(ctx, lowStockQuery).Scan(&stats.LowStockProducts); err != nil {
		log.Printf("Error counting low stock products: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to fetch dashboard stats"})
	}

	salesQuery := `
		SELECT COALESCE(SUM(s.quantity), 0)::float8,
		       COALESCE(SUM(s.quantity * p.price), 0)::float8
		FROM sales s
		JOIN products p ON s.product_id = p.product_id
		WHERE s.sale_date >= CURRENT_DATE - 30
	`
	if err := db.QueryRow(ctx, salesQuery).Scan(&stats.SalesLast30Days, &stats.RevenueLast30); err != nil {
		log.Printf("Error fetching recent sales totals: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to fetch dashboard stats"})
	}

	return c.JSON(fiber.Map{"status": "success", "data": stats})
}

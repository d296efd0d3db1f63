package handlers

import (
	"context"
	"log"
	"strings"

	"demandcast/database"
	"demandcast/models"

	"github.com/gofiber/fiber/v2"
)

// HandleGetRecommendations lists pending procurement recommendations,
// optionally filtered by priority.
// GET /api/v1/procurement/recommendations?priority=high
func HandleGetRecommendations(c *fiber.Ctx) error {
	db := database.GetDB()
	ctx := context.Background()

	priority := strings.ToUpper(c.Query("priority"))

	query := `
		SELECT pr.recommendation_id, p.name, c.name, pr.recommended_quantity,
		       pr.reason, pr.priority, pr.status, pr.created_date,
		       COALESCE(SUM(i.quantity), 0)
		FROM procurement_recommendations pr
		JOIN products p ON pr.product_id = p.product_id
		JOIN categories c ON p.category_id = c.category_id
		LEFT JOIN inventory i ON p.product_id = i.product_id
		WHERE pr.status = 'PENDING'
	`
	args := []interface{}{}
	if priority != "" {
		query += " AND pr.priority = $1"
		args = append(args, priority)
	}
	query += `
		GROUP BY pr.recommendation_id, p.name, c.name, pr.recommended_quantity,
		         pr.reason, pr.priority, pr.status, pr.created_date
		ORDER BY CASE pr.priority WHEN 'HIGH' THEN 1 WHEN 'MEDIUM' THEN 2 WHEN 'LOW' THEN 3 END,
		         pr.created_date DESC
	`

	rows, err := db.Query(ctx, query, args...)
	if err != nil {
		log.Printf("Error fetching procurement recommendations: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to retrieve recommendations"})
	}
	defer rows.Close()

	recommendations := []models.Recommendation{}
	for rows.Next() {
		var r models.Recommendation
		if err := rows.Scan(&r.RecommendationID, &r.ProductName, &r.Category, &r.RecommendedQuantity,
			&r.Reason, &r.Priority, &r.Status, &r.CreatedDate, &r.CurrentStock); err != nil {
			log.Printf("Error scanning recommendation: %v", err)
			continue
		}
		recommendations = append(recommendations, r)
	}

	return c.JSON(fiber.Map{
		"status": "success",
		"data": fiber.Map{
			"total_recommendations": len(recommendations),
			"filter_priority":       priority,
			"recommendations":       recommendations,
		},
	})
}

// HandleGetProcurementStats returns the pending recommendation counts by
// priority.
// GET /api/v1/procurement/stats
func HandleGetProcurementStats(c *fiber.Ctx) error {
	db := database.GetDB()
	ctx := context.Background()

	query := `
		SELECT priority, COUNT(*), COALESCE(SUM(recommended_quantity), 0)
		FROM procurement_recommendations
		WHERE status = 'PENDING'
		GROUP BY priority
	`
	rows, err := db.Query(ctx, query)
	if err != nil {
		log.Printf("Error fetching procurement stats: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to retrieve procurement stats"})
	}
	defer rows.Close()

	stats := []models.PriorityStat{}
	totalPending := 0
	for rows.Next() {
		var s models.PriorityStat
		if err := rows.Scan(&s.Priority, &s.Count, &s.TotalUnits); err != nil {
			log.Printf("Error scanning priority stat: %v", err)
			continue
		}
		totalPending += s.Count
		stats = append(stats, s)
	}

	return c.JSON(fiber.Map{
		"status": "success",
		"data": fiber.Map{
			"total_pending":      totalPending,
			"priority_breakdown": stats,
		},
	})
}

package handlers

import (
	"context"
	"errors"
	"log"

	"demandcast/forecast"

	"github.com/gofiber/fiber/v2"
)

// Engine is the shared forecasting engine, wired up in main. It is safe
// for concurrent use: every request runs its own pipeline.
var Engine *forecast.Engine

// SetEngine injects the forecasting engine.
func SetEngine(e *forecast.Engine) {
	Engine = e
}

// HandleGetProductForecast returns the demand forecast for a product.
// GET /api/v1/forecasts/product/:productId?days=30
func HandleGetProductForecast(c *fiber.Ctx) error {
	ctx := context.Background()

	productID, err := c.ParamsInt("productId")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": "Invalid product id"})
	}

	days := c.QueryInt("days", forecast.DefaultHorizon)
	if days < 1 {
		days = 1
	}
	if days > forecast.MaxHorizon {
		days = forecast.MaxHorizon
	}

	result, err := Engine.ProductForecast(ctx, productID, days)
	if err != nil {
		if errors.Is(err, forecast.ErrDataUnavailable) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"status": "error", "message": "Product not found"})
		}
		log.Printf("Error forecasting product %d: %v", productID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to generate forecast"})
	}

	return c.JSON(fiber.Map{"status": "success", "data": result})
}

// HandleGetForecastSummary returns the ranked demand forecast across all
// recently active products.
// GET /api/v1/forecasts/summary
func HandleGetForecastSummary(c *fiber.Ctx) error {
	ctx := context.Background()

	entries, err := Engine.Summary(ctx, forecast.DefaultHorizon)
	if err != nil {
		log.Printf("Error generating forecast summary: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to generate forecast summary"})
	}

	return c.JSON(fiber.Map{"status": "success", "data": entries})
}

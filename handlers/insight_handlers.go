package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"demandcast/config"
	"demandcast/forecast"
	"demandcast/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// HandleForecastInsight runs the demand forecast for a product and asks
// Gemini to turn it into a short, human-readable purchasing insight.
// POST /api/v1/forecasts/product/:productId/insight
func HandleForecastInsight(c *fiber.Ctx) error {
	ctx := context.Background()

	productID, err := c.ParamsInt("productId")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": "Invalid product id"})
	}

	// The question is optional; an empty or absent body falls back to the
	// default prompt.
	var req models.InsightRequest
	if err := c.BodyParser(&req); err != nil {
		req.Question = ""
	}

	result, err := Engine.ProductForecast(ctx, productID, forecast.DefaultHorizon)
	if err != nil {
		if errors.Is(err, forecast.ErrDataUnavailable) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"status": "error", "message": "Product not found"})
		}
		log.Printf("Error forecasting product %d for insight: %v", productID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to generate forecast"})
	}

	analysis, err := generateForecastAnalysis(ctx, req.Question, result)
	if err != nil {
		log.Printf("Error generating forecast insight: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to generate insight"})
	}

	return c.JSON(fiber.Map{"status": "success", "data": fiber.Map{"analysis": analysis, "source": result.Source}})
}

// generateForecastAnalysis uses Gemini to create a human-readable analysis
// of a forecast result.
func generateForecastAnalysis(ctx context.Context, question string, result *forecast.Result) (string, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(config.AppConfig.GeminiAPIKey))
	if err != nil {
		return "", fmt.Errorf("failed to create AI client: %w", err)
	}
	defer client.Close()

	jsonData, err := json.Marshal(result)
	if err != nil {
		return "", fmt.Errorf("failed to serialize forecast: %w", err)
	}

	if question == "" {
		question = "Summarize the demand outlook and suggest restocking actions."
	}

	model := client.GenerativeModel("gemini-1.5-pro")
	prompt := fmt.Sprintf(
		`You are a helpful AI assistant for a retail inventory team. The user asked: "%s". Based on the following demand forecast (daily predicted demand with seasonality, market momentum and confidence annotations), provide a concise and helpful analysis:

		Forecast: %s`,
		question,
		string(jsonData),
	)

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("failed to generate analysis: %w", err)
	}

	return fmt.Sprint(resp.Candidates[0].Content.Parts[0]), nil
}

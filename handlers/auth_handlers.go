package handlers

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"time"

	"demandcast/config"
	"demandcast/database"
	"demandcast/models"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"
)

// HandleAdminLogin authenticates an admin by email and password.
// POST /api/v1/auth/admin-login
func HandleAdminLogin(c *fiber.Ctx) error {
	db := database.GetDB()
	ctx := context.Background()

	var req models.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": "Invalid request body"})
	}

	var adminID int
	var name, passwordHash string
	query := "SELECT admin_id, name, password_hash FROM admins WHERE email = $1"
	if err := db.QueryRow(ctx, query, req.Email).Scan(&adminID, &name, &passwordHash); err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"status": "error", "message": "Invalid credentials"})
	}

	if err := bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(req.Password)); err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"status": "error", "message": "Invalid credentials"})
	}

	token, err := createJWT(strconv.Itoa(adminID), "admin")
	if err != nil {
		log.Printf("Error creating JWT: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to create token"})
	}

	return c.JSON(fiber.Map{"status": "success", "data": fiber.Map{"token": token, "name": name, "role": "admin"}})
}

// HandleCustomerLogin authenticates a customer by username and password.
// POST /api/v1/auth/customer-login
func HandleCustomerLogin(c *fiber.Ctx) error {
	db := database.GetDB()
	ctx := context.Background()

	var req models.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": "Invalid request body"})
	}

	var customerID int
	var name, passwordHash string
	query := "SELECT customer_id, name, password_hash FROM customers WHERE username = $1"
	if err := db.QueryRow(ctx, query, req.Username).Scan(&customerID, &name, &passwordHash); err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"status": "error", "message": "Invalid credentials"})
	}

	if err := bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(req.Password)); err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"status": "error", "message": "Invalid credentials"})
	}

	token, err := createJWT(strconv.Itoa(customerID), "customer")
	if err != nil {
		log.Printf("Error creating JWT: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to create token"})
	}

	return c.JSON(fiber.Map{"status": "success", "data": fiber.Map{"token": token, "name": name, "role": "customer"}})
}

// createJWT issues a signed token for the given user and role.
func createJWT(userID, role string) (string, error) {
	claims := models.JwtClaims{
		UserID: userID,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(config.AppConfig.JWTSecret))
	if err != nil {
		return "", fmt.Errorf("signing token: %w", err)
	}
	return signed, nil
}

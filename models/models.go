package models

import (
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// JwtClaims is the payload carried by issued access tokens.
type JwtClaims struct {
	UserID string `json:"userId"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

type LoginRequest struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
}

// Product is one row of the catalog.
type Product struct {
	ProductID  int     `json:"product_id"`
	Name       string  `json:"name"`
	Category   string  `json:"category"`
	Price      float64 `json:"price"`
	StockUnits int     `json:"stock_units"`
}

// StockLevel is the aggregated on-hand quantity for a product.
type StockLevel struct {
	ProductID    int    `json:"product_id"`
	ProductName  string `json:"product_name"`
	Category     string `json:"category"`
	CurrentStock int    `json:"current_stock"`
	ReorderLevel int    `json:"reorder_level"`
}

// ExpiringBatch is an inventory batch approaching its expiry date.
type ExpiringBatch struct {
	ProductID   int       `json:"product_id"`
	ProductName string    `json:"product_name"`
	BatchID     int       `json:"batch_id"`
	Quantity    int       `json:"quantity"`
	ExpiryDate  time.Time `json:"expiry_date"`
	DaysLeft    int       `json:"days_left"`
}

// Recommendation is a pending procurement recommendation.
type Recommendation struct {
	RecommendationID    int       `json:"recommendation_id"`
	ProductName         string    `json:"product_name"`
	Category            string    `json:"category"`
	RecommendedQuantity int       `json:"recommended_quantity"`
	Reason              string    `json:"reason"`
	Priority            string    `json:"priority"`
	Status              string    `json:"status"`
	CreatedDate         time.Time `json:"created_date"`
	CurrentStock        int       `json:"current_stock"`
}

// PriorityStat is one row of the procurement priority breakdown.
type PriorityStat struct {
	Priority   string `json:"priority"`
	Count      int    `json:"count"`
	TotalUnits int    `json:"total_units"`
}

// DashboardStats is the admin dashboard headline summary.
type DashboardStats struct {
	TotalProducts    int     `json:"total_products"`
	LowStockProducts int     `json:"low_stock_products"`
	SalesLast30Days  float64 `json:"sales_last_30_days"`
	RevenueLast30    float64 `json:"revenue_last_30_days"`
}

// InsightRequest carries the optional question for the AI forecast insight.
type InsightRequest struct {
	Question string `json:"question"`
}

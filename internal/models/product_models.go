package models

import "time"

// Product is a catalog entry (furniture, decor, materials).
type Product struct {
	ID            int64     `json:"id" db:"id"`
	Name          string    `json:"name" db:"name"`
	Description   *string   `json:"description,omitempty" db:"description"`
	Price         float64   `json:"price" db:"price"`
	Category      string    `json:"category" db:"category"`
	StockQuantity int       `json:"stock_quantity" db:"stock_quantity"`
	ImageURL      *string   `json:"image_url,omitempty" db:"image_url"`
	IsActive      bool      `json:"is_active" db:"is_active"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time `json:"updated_at" db:"updated_at"`
}

// ProductFilters defines the available filters for querying the catalog.
type ProductFilters struct {
	Category *string `form:"category"`
	Page     int     `form:"page"`
	PageSize int     `form:"page_size"`
}

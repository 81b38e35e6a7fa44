package catalog

import (
	"time"

	"github.com/shopspring/decimal"
)

type StockStatus string

const (
	StockInStock StockStatus = "in-stock"
	StockLow     StockStatus = "low-stock"
	StockSoldOut StockStatus = "sold-out"
)

type Product struct {
	ID          string           `json:"id"`
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Price       decimal.Decimal  `json:"price"`
	SalePrice   *decimal.Decimal `json:"sale_price,omitempty"`
	CategoryID  string           `json:"category_id,omitempty"`
	StockStatus StockStatus      `json:"stock_status"`
	// StockQuantity is only meaningful while StockStatus is low-stock.
	StockQuantity *int      `json:"stock_quantity,omitempty"`
	Images        []string  `json:"images"`
	Tags          []string  `json:"tags"`
	Featured      bool      `json:"featured"`
	Published     bool      `json:"published"`
	SKU           string    `json:"sku"`
	Sizes         []string  `json:"sizes"`
	Colors        []string  `json:"colors"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type Category struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

type Collection struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description string    `json:"description"`
	HeroImage   string    `json:"hero_image"`
	Active      bool      `json:"active"`
	CreatedAt   time.Time `json:"created_at"`
}

type CollectionWithProducts struct {
	Collection
	Products []Product `json:"products"`
}

type HeroSlide struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Subtitle     *string   `json:"subtitle,omitempty"`
	Image        string    `json:"image"`
	DisplayOrder int       `json:"display_order"`
	Active       bool      `json:"active"`
	CreatedAt    time.Time `json:"created_at"`
}

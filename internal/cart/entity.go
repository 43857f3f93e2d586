// Copyright (c) 2026 Medora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package cart

import "math"

// Field names used in validation details.
const (
	FieldProductID = "productId"
	FieldQuantity  = "quantity"
)

// ProductSummary is the catalog projection shown on a cart line.
type ProductSummary struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
	Image string  `json:"image"`
}

// Line is one product in a cart.
type Line struct {
	Product  ProductSummary `json:"product"`
	Quantity int            `json:"quantity"`
	Subtotal float64        `json:"subtotal"`
}

// Cart is the caller's cart at read time. Prices are current catalog prices.
type Cart struct {
	UserID string  `json:"userId"`
	Items  []Line  `json:"items"`
	Total  float64 `json:"total"`
}

// AddInput adds quantity units of a product.
type AddInput struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// UpdateInput sets the quantity of a product already in the cart.
type UpdateInput struct {
	Quantity int `json:"quantity"`
}

// newCart fills subtotals and the total, summing in cents.
func newCart(userID string, lines []Line) *Cart {
	var totalCents int64
	for i := range lines {
		cents := int64(math.Round(lines[i].Product.Price*100)) * int64(lines[i].Quantity)
		lines[i].Subtotal = float64(cents) / 100
		totalCents += cents
	}
	return &Cart{UserID: userID, Items: lines, Total: float64(totalCents) / 100}
}

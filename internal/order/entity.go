// Copyright (c) 2026 Medora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package order

import "time"

// Field names used in validation details.
const (
	FieldProducts      = "products"
	FieldQuantity      = "quantity"
	FieldPaymentMethod = "paymentMethod"
	FieldStreet        = "address.street"
	FieldCity          = "address.city"
	FieldState         = "address.state"
	FieldPostalCode    = "address.postalCode"
	FieldCountry       = "address.country"
)

// Status is the fulfilment state of an order.
type Status string

const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusShipped    Status = "shipped"
	StatusDelivered  Status = "delivered"
	StatusCancelled  Status = "cancelled"
)

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

// PaymentMethod is how the customer pays.
type PaymentMethod string

const (
	PaymentCOD  PaymentMethod = "COD"
	PaymentCard PaymentMethod = "Card"
	PaymentUPI  PaymentMethod = "UPI"
)

// Valid reports whether m is accepted.
func (m PaymentMethod) Valid() bool {
	return m == PaymentCOD || m == PaymentCard || m == PaymentUPI
}

// Location is the delivery coordinate.
type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Address is the delivery address.
type Address struct {
	Street     string   `json:"street"`
	City       string   `json:"city"`
	State      string   `json:"state"`
	PostalCode string   `json:"postalCode"`
	Country    string   `json:"country"`
	Location   Location `json:"location"`
}

// Item is a priced order line. Name and price are snapshots taken when the order was placed.
type Item struct {
	ProductID   string  `json:"productId"`
	ProductName string  `json:"productName"`
	UnitPrice   float64 `json:"unitPrice"`
	Quantity    int     `json:"quantity"`
}

// Order is a placed order.
type Order struct {
	ID            string        `json:"id"`
	UserID        string        `json:"userId"`
	Items         []Item        `json:"products"`
	TotalPrice    float64       `json:"totalPrice"`
	Address       Address       `json:"address"`
	PaymentMethod PaymentMethod `json:"paymentMethod"`
	Status        Status        `json:"status"`
	CreatedAt     time.Time     `json:"createdAt"`
	UpdatedAt     time.Time     `json:"updatedAt"`
}

// Customer is the user projection attached to admin order listings.
type Customer struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// View is an order joined with its customer.
type View struct {
	Order
	User Customer `json:"user"`
}

// ItemInput is one requested line. The price is never taken from the client.
type ItemInput struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// CreateInput places an order. A client-sent totalPrice is ignored.
type CreateInput struct {
	Products      []ItemInput   `json:"products"`
	Address       Address       `json:"address"`
	PaymentMethod PaymentMethod `json:"paymentMethod"`
}

// UpdateStatusInput moves an order to another status.
type UpdateStatusInput struct {
	Status Status `json:"status"`
}

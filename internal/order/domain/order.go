package domain

import "time"

type Status string

const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusShipped    Status = "shipped"
	StatusDelivered  Status = "delivered"
	StatusCancelled  Status = "cancelled"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

type Customer struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
}

type Shipping struct {
	Street     string `json:"street"`
	City       string `json:"city"`
	PostalCode string `json:"postalCode"`
}

// Item is a frozen copy of a cart line at placement time. Prices are in
// minor currency units.
type Item struct {
	ProductID string `json:"productId"`
	Name      string `json:"name"`
	UnitPrice int64  `json:"unitPrice"`
	Quantity  int    `json:"quantity"`
	LineTotal int64  `json:"lineTotal"`
}

// Order is immutable after placement except for status transitions.
type Order struct {
	ID          string    `json:"id"`
	Customer    Customer  `json:"customer"`
	Shipping    Shipping  `json:"shipping"`
	Items       []Item    `json:"items"`
	TotalAmount int64     `json:"totalAmount"`
	OrderDate   time.Time `json:"orderDate"`
	Status      Status    `json:"status"`
}

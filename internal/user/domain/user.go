package domain

import "time"

type Address struct {
	Street     string `json:"street"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postalCode"`
	Country    string `json:"country"`
}

type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	DisplayName  string    `json:"displayName"`
	Address      Address   `json:"address"`
	Phone        string    `json:"phoneNumber"`
	IsAdmin      bool      `json:"isAdmin"`
	Wishlist     []string  `json:"wishlist"`
	OrderHistory []string  `json:"orderHistory"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// UserUpdate is a sparse profile patch: nil fields stay untouched.
type UserUpdate struct {
	DisplayName *string  `json:"displayName,omitempty"`
	Phone       *string  `json:"phoneNumber,omitempty"`
	Address     *Address `json:"address,omitempty"`
}

func (u UserUpdate) Apply(target *User) {
	if u.DisplayName != nil {
		target.DisplayName = *u.DisplayName
	}
	if u.Phone != nil {
		target.Phone = *u.Phone
	}
	if u.Address != nil {
		target.Address = *u.Address
	}
}

package domain

import "time"

type Dimensions struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Depth  float64 `json:"depth"`
}

// Product is a catalog entry. Price is in minor currency units.
type Product struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Price       int64      `json:"price"`
	ImageURL    string     `json:"imageUrl"`
	Category    string     `json:"category"`
	Stock       int        `json:"stock"`
	Rating      float64    `json:"rating"`
	Dimensions  Dimensions `json:"dimensions"`
	Material    string     `json:"material"`
	Color       string     `json:"color"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// ProductUpdate is a sparse patch: nil fields are left untouched.
type ProductUpdate struct {
	Name        *string     `json:"name,omitempty"`
	Description *string     `json:"description,omitempty"`
	Price       *int64      `json:"price,omitempty"`
	ImageURL    *string     `json:"imageUrl,omitempty"`
	Category    *string     `json:"category,omitempty"`
	Stock       *int        `json:"stock,omitempty"`
	Rating      *float64    `json:"rating,omitempty"`
	Dimensions  *Dimensions `json:"dimensions,omitempty"`
	Material    *string     `json:"material,omitempty"`
	Color       *string     `json:"color,omitempty"`
}

// Apply copies the set fields of u onto p.
func (u ProductUpdate) Apply(p *Product) {
	if u.Name != nil {
		p.Name = *u.Name
	}
	if u.Description != nil {
		p.Description = *u.Description
	}
	if u.Price != nil {
		p.Price = *u.Price
	}
	if u.ImageURL != nil {
		p.ImageURL = *u.ImageURL
	}
	if u.Category != nil {
		p.Category = *u.Category
	}
	if u.Stock != nil {
		p.Stock = *u.Stock
	}
	if u.Rating != nil {
		p.Rating = *u.Rating
	}
	if u.Dimensions != nil {
		p.Dimensions = *u.Dimensions
	}
	if u.Material != nil {
		p.Material = *u.Material
	}
	if u.Color != nil {
		p.Color = *u.Color
	}
}

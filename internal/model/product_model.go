package model

import (
	"encoding/json"
	"time"
)

const (
	ProductActive   = "active"
	ProductInactive = "inactive"
)

// ProductCategories is the fixed set the storefront filters on.
var ProductCategories = []string{"fruit", "vegetable", "seed", "meat", "equipment"}

type ProductDetails struct {
	Weight string `json:"weight,omitempty"`
	Origin string `json:"origin,omitempty"`
}

type Product struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Category    string         `json:"category"`
	Price       float64        `json:"price"`
	Images      []string       `json:"images"`
	Description string         `json:"description,omitempty"`
	Status      string         `json:"status"`
	Organic     bool           `json:"organic"`
	Details     ProductDetails `json:"details"`
	ShelfLife   string         `json:"shelfLife,omitempty"`
	Features    []string       `json:"features,omitempty"`
	CreatedAt   *time.Time     `json:"created_at,omitempty"`
	UpdatedAt   *time.Time     `json:"updated_at,omitempty"`
}

// UnmarshalJSON accepts both the current shape (images array) and the legacy
// one that carried a single "image" string, folding the latter into Images.
func (p *Product) UnmarshalJSON(data []byte) error {
	type alias Product
	aux := struct {
		*alias
		Image string `json:"image,omitempty"`
	}{alias: (*alias)(p)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if len(p.Images) == 0 && aux.Image != "" {
		p.Images = []string{aux.Image}
	}
	return nil
}

// PrimaryImage is the image the catalog cards and cart lines show.
func (p *Product) PrimaryImage() string {
	if len(p.Images) == 0 {
		return ""
	}
	return p.Images[0]
}

func ValidCategory(c string) bool {
	for _, known := range ProductCategories {
		if c == known {
			return true
		}
	}
	return false
}

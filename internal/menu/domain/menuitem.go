package domain

import "time"

// Menu item categories as the restaurant dashboards use them. Free-form
// beyond the common set, so no closed enum here.
const (
	CategoryStarters  = "starters"
	CategoryMains     = "mains"
	CategoryDesserts  = "desserts"
	CategoryBeverages = "beverages"
)

// MenuItem is a single dish on a restaurant's menu. Price is in cents.
type MenuItem struct {
	ID           string    `json:"id" bson:"_id,omitempty"`
	RestaurantID string    `json:"restaurant_id" bson:"restaurant_id"`
	Name         string    `json:"name" bson:"name"`
	Description  string    `json:"description" bson:"description"`
	Price        int64     `json:"price" bson:"price"`
	ImageURL     string    `json:"image_url" bson:"image_url"`
	Category     string    `json:"category" bson:"category"`
	Available    bool      `json:"available" bson:"available"`
	CreatedAt    time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" bson:"updated_at"`
}

// ListFilter narrows a menu listing. Zero values mean "no filter".
type ListFilter struct {
	RestaurantID  string
	Category      string
	OnlyAvailable bool
}

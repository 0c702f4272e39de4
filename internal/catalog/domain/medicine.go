package domain

import "time"

// Medicine is a catalog document. PriceQty is the per-pack price the cart
// charges; Price is the single-unit display price. ImageRef points at the
// document store's file endpoint and is resolved through the image proxy.
type Medicine struct {
	ID          string    `bson:"_id,omitempty" json:"id"`
	Name        string    `bson:"name" json:"name"`
	Price       float64   `bson:"price" json:"price"`
	PriceQty    float64   `bson:"priceqty" json:"priceqty"`
	Description string    `bson:"description" json:"description"`
	ImageRef    string    `bson:"image_ref" json:"imageRef"`
	CreatedAt   time.Time `bson:"created_at" json:"-"`
	UpdatedAt   time.Time `bson:"updated_at" json:"-"`
}

package entity

import "time"

// Listing is a rack offered for rent inside a host store.
type Listing struct {
	ID              string   `json:"id" firestore:"id"`
	Title           string   `json:"title" firestore:"title"`
	Description     string   `json:"description" firestore:"description"`
	Category        string   `json:"category" firestore:"category"`
	Images          []string `json:"images" firestore:"images"`
	Locality        string   `json:"locality" firestore:"locality"`
	City            string   `json:"city" firestore:"city"`
	Footfall        int      `json:"footfall" firestore:"footfall"`
	ExpectedRevenue float64  `json:"expectedRevenue" firestore:"expectedRevenue"`
	PricePerMonth   float64  `json:"pricePerMonth" firestore:"pricePerMonth"`
	Size            string   `json:"size" firestore:"size"`
	OwnerID         string   `json:"ownerId" firestore:"ownerId"`
	Plus            bool     `json:"plus" firestore:"plus"`

	CreatedAt time.Time `json:"createdAt" firestore:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" firestore:"updatedAt"`
}

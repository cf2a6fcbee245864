package entity

import "time"

// Favorite marks a listing saved by a user.
type Favorite struct {
	UserID    string    `json:"userId" firestore:"userId"`
	ListingID string    `json:"listingId" firestore:"listingId"`
	CreatedAt time.Time `json:"createdAt" firestore:"createdAt"`
}

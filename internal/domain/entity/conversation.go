package entity

import "time"

// Conversation is a thread between exactly two participants, the buyer who
// opened it and the owner of the listing it is about. At most one conversation
// exists per (buyer, listing, owner) triple.
type Conversation struct {
	ID            string    `json:"id" firestore:"id"`
	ListingID     string    `json:"listingId" firestore:"listingId"`
	BuyerID       string    `json:"buyerId" firestore:"buyerId"`
	OwnerID       string    `json:"ownerId" firestore:"ownerId"`
	CreatedAt     time.Time `json:"createdAt" firestore:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt" firestore:"updatedAt"`
	LastMessageAt time.Time `json:"lastMessageAt" firestore:"lastMessageAt"`
}

// HasParticipant reports whether userID is the buyer or the owner.
func (c *Conversation) HasParticipant(userID string) bool {
	return userID == c.BuyerID || userID == c.OwnerID
}

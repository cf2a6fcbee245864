package entity

import "time"

// User is the profile upserted from identity-provider claims on token exchange.
type User struct {
	ID       string `json:"id" firestore:"id"`
	Name     string `json:"name" firestore:"name"`
	Email    string `json:"email" firestore:"email"`
	Phone    string `json:"phone,omitempty" firestore:"phone,omitempty"`
	Avatar   string `json:"avatar,omitempty" firestore:"avatar,omitempty"`
	Provider string `json:"provider" firestore:"provider"`

	CreatedAt time.Time `json:"createdAt" firestore:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" firestore:"updatedAt"`
}

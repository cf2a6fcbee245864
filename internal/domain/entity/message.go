package entity

import "time"

// Message is immutable once created; the chat core never edits or deletes it.
type Message struct {
	ID             string    `json:"id" firestore:"id"`
	ConversationID string    `json:"conversationId" firestore:"conversationId"`
	SenderID       string    `json:"senderId" firestore:"senderId"`
	Text           string    `json:"text" firestore:"text"`
	CreatedAt      time.Time `json:"createdAt" firestore:"createdAt"`
}

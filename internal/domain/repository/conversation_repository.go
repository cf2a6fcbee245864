package repository

import (
	"context"

	"rackup/internal/domain/entity"
)

// ConversationRepository is the durability boundary of the chat core. The
// store must apply AppendMessage as one logical operation: the message write
// and the conversation's lastMessageAt bump commit together.
type ConversationRepository interface {
	// Create persists the conversation keyed on its (buyer, listing, owner)
	// triple. Racing creates for the same triple converge on one stored
	// conversation; the entity is updated in place with the winner's state.
	Create(ctx context.Context, conversation *entity.Conversation) error
	GetByID(ctx context.Context, id string) (*entity.Conversation, error)
	// FindByKey looks up the conversation for a (buyer, listing, owner)
	// triple and returns a NOT_FOUND error when none exists.
	FindByKey(ctx context.Context, buyerID, listingID, ownerID string) (*entity.Conversation, error)
	ListByUserID(ctx context.Context, userID string, limit int) ([]*entity.Conversation, error)
	AppendMessage(ctx context.Context, conversationID, senderID, text string) (*entity.Message, error)
	// ListMessages returns messages oldest first, at most limit.
	ListMessages(ctx context.Context, conversationID string, limit int) ([]*entity.Message, error)
}

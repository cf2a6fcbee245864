package repository

import (
	"context"
	"sort"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"rackup/internal/domain/entity"
	"rackup/internal/domain/repository"
	"rackup/pkg/errors"
)

type firestoreConversationRepository struct {
	client *firestore.Client
}

func NewFirestoreConversationRepository(client *firestore.Client) repository.ConversationRepository {
	return &firestoreConversationRepository{
		client: client,
	}
}

// conversationDocID keys the document on the participant triple, so two
// racing creates target the same document instead of minting two threads.
func conversationDocID(buyerID, listingID, ownerID string) string {
	return buyerID + "_" + listingID + "_" + ownerID
}

func (r *firestoreConversationRepository) Create(ctx context.Context, conversation *entity.Conversation) error {
	if conversation.ID == "" {
		conversation.ID = conversationDocID(conversation.BuyerID, conversation.ListingID, conversation.OwnerID)
	}

	now := time.Now()
	conversation.CreatedAt = now
	conversation.UpdatedAt = now
	conversation.LastMessageAt = now

	ref := r.client.Collection("conversations").Doc(conversation.ID)
	if _, err := ref.Create(ctx, conversation); err != nil {
		if status.Code(err) != codes.AlreadyExists {
			return errors.Internal("Failed to create conversation", err)
		}

		// Lost the race; converge on the thread the winner persisted.
		doc, err := ref.Get(ctx)
		if err != nil {
			return errors.Internal("Failed to load existing conversation", err)
		}
		if err := doc.DataTo(conversation); err != nil {
			return errors.Internal("Failed to parse conversation data", err)
		}
	}

	return nil
}

func (r *firestoreConversationRepository) GetByID(ctx context.Context, id string) (*entity.Conversation, error) {
	doc, err := r.client.Collection("conversations").Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("Conversation", err)
		}
		return nil, errors.Internal("Failed to get conversation", err)
	}

	var conversation entity.Conversation
	if err := doc.DataTo(&conversation); err != nil {
		return nil, errors.Internal("Failed to parse conversation data", err)
	}

	return &conversation, nil
}

func (r *firestoreConversationRepository) FindByKey(ctx context.Context, buyerID, listingID, ownerID string) (*entity.Conversation, error) {
	query := r.client.Collection("conversations").
		Where("buyerId", "==", buyerID).
		Where("listingId", "==", listingID).
		Where("ownerId", "==", ownerID).
		Limit(1)

	iter := query.Documents(ctx)
	doc, err := iter.Next()
	if err != nil {
		if err == iterator.Done {
			return nil, errors.NotFound("Conversation", nil)
		}
		return nil, errors.Internal("Failed to query conversation", err)
	}

	var conversation entity.Conversation
	if err := doc.DataTo(&conversation); err != nil {
		return nil, errors.Internal("Failed to parse conversation data", err)
	}

	return &conversation, nil
}

func (r *firestoreConversationRepository) ListByUserID(ctx context.Context, userID string, limit int) ([]*entity.Conversation, error) {
	buyerDocs, err := r.client.Collection("conversations").
		Where("buyerId", "==", userID).Documents(ctx).GetAll()
	if err != nil {
		return nil, errors.Internal("Failed to fetch conversations", err)
	}

	ownerDocs, err := r.client.Collection("conversations").
		Where("ownerId", "==", userID).Documents(ctx).GetAll()
	if err != nil {
		return nil, errors.Internal("Failed to fetch conversations", err)
	}

	var conversations []*entity.Conversation
	for _, doc := range append(buyerDocs, ownerDocs...) {
		var conversation entity.Conversation
		if err := doc.DataTo(&conversation); err != nil {
			continue // skip malformed documents
		}
		conversations = append(conversations, &conversation)
	}

	// The two per-role queries come back in arbitrary relative order; sort the
	// merged set by recent activity before cutting it down.
	sort.Slice(conversations, func(i, j int) bool {
		return conversations[i].LastMessageAt.After(conversations[j].LastMessageAt)
	})
	if limit > 0 && len(conversations) > limit {
		conversations = conversations[:limit]
	}

	return conversations, nil
}

// AppendMessage writes the message and bumps the conversation's lastMessageAt
// in one transaction, so a message can never be observed whose conversation
// still carries an older timestamp.
func (r *firestoreConversationRepository) AppendMessage(ctx context.Context, conversationID, senderID, text string) (*entity.Message, error) {
	message := &entity.Message{
		ID:             uuid.New().String(),
		ConversationID: conversationID,
		SenderID:       senderID,
		Text:           text,
		CreatedAt:      time.Now(),
	}

	convRef := r.client.Collection("conversations").Doc(conversationID)
	msgRef := convRef.Collection("messages").Doc(message.ID)

	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		if err := tx.Set(msgRef, message); err != nil {
			return err
		}
		return tx.Update(convRef, []firestore.Update{
			{Path: "lastMessageAt", Value: message.CreatedAt},
			{Path: "updatedAt", Value: message.CreatedAt},
		})
	})
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("Conversation", err)
		}
		return nil, errors.Internal("Failed to append message", err)
	}

	return message, nil
}

func (r *firestoreConversationRepository) ListMessages(ctx context.Context, conversationID string, limit int) ([]*entity.Message, error) {
	query := r.client.Collection("conversations").Doc(conversationID).
		Collection("messages").OrderBy("createdAt", firestore.Asc)
	if limit > 0 {
		query = query.Limit(limit)
	}

	iter := query.Documents(ctx)
	var messages []*entity.Message

	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, errors.Internal("Failed to iterate messages", err)
		}

		var message entity.Message
		if err := doc.DataTo(&message); err != nil {
			return nil, errors.Internal("Failed to parse message data", err)
		}

		messages = append(messages, &message)
	}

	return messages, nil
}

package usecase

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"unicode/utf8"

	"rackup/internal/domain/entity"
	"rackup/internal/domain/repository"
	"rackup/internal/infrastructure/ratelimit"
	ws "rackup/internal/infrastructure/websocket"
	"rackup/pkg/errors"
	"rackup/pkg/logger"
)

const (
	maxMessageRunes     = 4000
	maxMessagePage      = 200
	maxConversationPage = 100
)

// ChatUseCase is the single gate every message passes through, whether it
// arrived over REST or over a streaming session. It authorizes the sender,
// persists the message and fans it out to attached connections.
type ChatUseCase struct {
	conversationRepo repository.ConversationRepository
	listingRepo      repository.ListingRepository
	registry         *ws.Registry
	rateLimiter      *ratelimit.RateLimiter
	appendLocks      sync.Map // conversation id -> *sync.Mutex
}

func NewChatUseCase(
	conversationRepo repository.ConversationRepository,
	listingRepo repository.ListingRepository,
	registry *ws.Registry,
) *ChatUseCase {
	rateLimiter := ratelimit.NewRateLimiter()
	rateLimiter.StartCleanupRoutine()

	return &ChatUseCase{
		conversationRepo: conversationRepo,
		listingRepo:      listingRepo,
		registry:         registry,
		rateLimiter:      rateLimiter,
	}
}

type CreateConversationInput struct {
	ListingID string
}

// CreateConversation opens the thread between the caller and the listing's
// owner. Creation is idempotent on the (buyer, listing, owner) triple: calling
// it twice yields the same conversation.
func (uc *ChatUseCase) CreateConversation(ctx context.Context, buyerID string, input CreateConversationInput) (*entity.Conversation, error) {
	allowed, _ := uc.rateLimiter.Allow(buyerID, "create_conversation")
	if !allowed {
		return nil, errors.TooManyRequests("Too many new conversations. Please wait before starting another")
	}

	listing, err := uc.listingRepo.GetByID(ctx, input.ListingID)
	if err != nil {
		return nil, err
	}

	if buyerID == listing.OwnerID {
		return nil, errors.BadRequest("You cannot start a conversation about your own listing", nil)
	}

	existing, err := uc.conversationRepo.FindByKey(ctx, buyerID, listing.ID, listing.OwnerID)
	if err == nil && existing != nil {
		return existing, nil
	}
	if err != nil && !errors.Is(err, "NOT_FOUND") {
		return nil, err
	}

	conversation := &entity.Conversation{
		ListingID: listing.ID,
		BuyerID:   buyerID,
		OwnerID:   listing.OwnerID,
	}

	if err := uc.conversationRepo.Create(ctx, conversation); err != nil {
		return nil, err
	}

	return conversation, nil
}

// GetConversation loads a conversation the caller participates in. Reading is
// restricted to the two participants, same as sending.
func (uc *ChatUseCase) GetConversation(ctx context.Context, userID, conversationID string) (*entity.Conversation, error) {
	conversation, err := uc.conversationRepo.GetByID(ctx, conversationID)
	if err != nil {
		return nil, err
	}

	if !conversation.HasParticipant(userID) {
		return nil, errors.Forbidden("You are not a participant in this conversation", nil)
	}

	return conversation, nil
}

func (uc *ChatUseCase) ListConversations(ctx context.Context, userID string) ([]*entity.Conversation, error) {
	return uc.conversationRepo.ListByUserID(ctx, userID, maxConversationPage)
}

// SendMessage authorizes, persists and broadcasts one message. Concurrent
// sends to the same conversation are serialized by a per-conversation lock
// held through the broadcast handoff, so the order clients receive frames in
// is the order the store persisted them in. Sends to different conversations
// do not contend.
func (uc *ChatUseCase) SendMessage(ctx context.Context, senderID, conversationID, text string) (*entity.Message, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, errors.Validation("Message text is required", nil)
	}
	if utf8.RuneCountInString(text) > maxMessageRunes {
		return nil, errors.Validation("Message text is too long", nil)
	}

	allowed, _ := uc.rateLimiter.Allow(senderID, "send_message")
	if !allowed {
		return nil, errors.TooManyRequests("You are sending messages too quickly. Please slow down")
	}

	lock := uc.conversationLock(conversationID)
	lock.Lock()
	defer lock.Unlock()

	conversation, err := uc.conversationRepo.GetByID(ctx, conversationID)
	if err != nil {
		return nil, err
	}

	if !conversation.HasParticipant(senderID) {
		return nil, errors.Forbidden("You are not a participant in this conversation", nil)
	}

	message, err := uc.conversationRepo.AppendMessage(ctx, conversationID, senderID, text)
	if err != nil {
		return nil, err
	}

	// Persist-then-broadcast: a client must never see a message over the
	// stream that a read of the conversation cannot also retrieve.
	uc.broadcast(conversationID, message)

	return message, nil
}

// ListMessages returns up to 200 messages, oldest first.
func (uc *ChatUseCase) ListMessages(ctx context.Context, userID, conversationID string, limit int) ([]*entity.Message, error) {
	if _, err := uc.GetConversation(ctx, userID, conversationID); err != nil {
		return nil, err
	}

	if limit <= 0 || limit > maxMessagePage {
		limit = maxMessagePage
	}

	return uc.conversationRepo.ListMessages(ctx, conversationID, limit)
}

// broadcast delivers a persisted message to every attached connection of its
// conversation, including the sender's own. Delivery is best effort per
// recipient: a failed connection is detached and closed without aborting the
// rest, and the failure never reaches the sender.
func (uc *ChatUseCase) broadcast(conversationID string, message *entity.Message) {
	payload, err := json.Marshal(ws.NewMessageFrame(message))
	if err != nil {
		logger.Error("chat: failed to marshal message frame for %s: %v", conversationID, err)
		return
	}

	for _, client := range uc.registry.Snapshot(conversationID) {
		if err := client.Deliver(payload); err != nil {
			logger.Warn("chat: dropping connection of %s on %s: %v", client.UserID, conversationID, err)
			uc.registry.Detach(conversationID, client)
			client.Drop("delivery failed")
		}
	}
}

func (uc *ChatUseCase) conversationLock(conversationID string) *sync.Mutex {
	lock, _ := uc.appendLocks.LoadOrStore(conversationID, &sync.Mutex{})
	return lock.(*sync.Mutex)
}

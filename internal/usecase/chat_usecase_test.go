package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rackup/internal/domain/entity"
	ws "rackup/internal/infrastructure/websocket"
	"rackup/pkg/errors"
)

func newChatFixture(t *testing.T) (*ChatUseCase, *memConversationRepo, *memListingRepo, *ws.Registry) {
	t.Helper()
	conversationRepo := newMemConversationRepo()
	listingRepo := newMemListingRepo()
	registry := ws.NewRegistry()
	return NewChatUseCase(conversationRepo, listingRepo, registry), conversationRepo, listingRepo, registry
}

func seedListing(t *testing.T, listingRepo *memListingRepo, ownerID string) *entity.Listing {
	t.Helper()
	listing := &entity.Listing{Title: "Corner rack", City: "Mumbai", PricePerMonth: 1500, OwnerID: ownerID}
	require.NoError(t, listingRepo.Create(context.Background(), listing))
	return listing
}

func seedConversation(t *testing.T, uc *ChatUseCase, listingRepo *memListingRepo, buyerID, ownerID string) *entity.Conversation {
	t.Helper()
	listing := seedListing(t, listingRepo, ownerID)
	conversation, err := uc.CreateConversation(context.Background(), buyerID, CreateConversationInput{ListingID: listing.ID})
	require.NoError(t, err)
	return conversation
}

func decodeMessageFrame(t *testing.T, payload []byte) ws.MessageFrame {
	t.Helper()
	var frame ws.MessageFrame
	require.NoError(t, json.Unmarshal(payload, &frame))
	return frame
}

func TestCreateConversationIsIdempotent(t *testing.T) {
	uc, _, listingRepo, _ := newChatFixture(t)
	listing := seedListing(t, listingRepo, "owner")

	first, err := uc.CreateConversation(context.Background(), "buyer", CreateConversationInput{ListingID: listing.ID})
	require.NoError(t, err)

	second, err := uc.CreateConversation(context.Background(), "buyer", CreateConversationInput{ListingID: listing.ID})
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "buyer", first.BuyerID)
	assert.Equal(t, "owner", first.OwnerID)
}

func TestConcurrentCreatesYieldOneConversation(t *testing.T) {
	uc, conversationRepo, listingRepo, _ := newChatFixture(t)
	listing := seedListing(t, listingRepo, "owner")

	const racers = 8
	results := make([]*entity.Conversation, racers)
	var wg sync.WaitGroup
	for i := 0; i < racers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			conversation, err := uc.CreateConversation(context.Background(), "buyer", CreateConversationInput{ListingID: listing.ID})
			assert.NoError(t, err)
			results[i] = conversation
		}(i)
	}
	wg.Wait()

	for _, conversation := range results {
		require.NotNil(t, conversation)
		assert.Equal(t, results[0].ID, conversation.ID, "every racer must land on the same thread")
	}

	all, err := conversationRepo.ListByUserID(context.Background(), "buyer", 0)
	require.NoError(t, err)
	assert.Len(t, all, 1, "the store must hold exactly one conversation for the triple")
}

func TestCreateConversationRejectsSelfChat(t *testing.T) {
	uc, _, listingRepo, _ := newChatFixture(t)
	listing := seedListing(t, listingRepo, "owner")

	_, err := uc.CreateConversation(context.Background(), "owner", CreateConversationInput{ListingID: listing.ID})

	assert.True(t, errors.Is(err, "BAD_REQUEST"))
}

func TestCreateConversationUnknownListing(t *testing.T) {
	uc, _, _, _ := newChatFixture(t)

	_, err := uc.CreateConversation(context.Background(), "buyer", CreateConversationInput{ListingID: "missing"})

	assert.True(t, errors.Is(err, "NOT_FOUND"))
}

func TestGetConversationRejectsOutsider(t *testing.T) {
	uc, _, listingRepo, _ := newChatFixture(t)
	conversation := seedConversation(t, uc, listingRepo, "buyer", "owner")

	_, err := uc.GetConversation(context.Background(), "stranger", conversation.ID)

	assert.True(t, errors.Is(err, "FORBIDDEN"))
}

func TestSendMessagePersistsAndBroadcastsToBothParticipants(t *testing.T) {
	uc, _, listingRepo, registry := newChatFixture(t)
	conversation := seedConversation(t, uc, listingRepo, "buyer", "owner")

	buyerClient := ws.NewClient(conversation.ID, "buyer", nil)
	ownerClient := ws.NewClient(conversation.ID, "owner", nil)
	registry.Attach(conversation.ID, buyerClient)
	registry.Attach(conversation.ID, ownerClient)

	message, err := uc.SendMessage(context.Background(), "buyer", conversation.ID, "is the rack free in June?")
	require.NoError(t, err)
	assert.Equal(t, "buyer", message.SenderID)
	assert.NotEmpty(t, message.ID)

	// Both sessions receive the frame, the sender's own included.
	for _, client := range []*ws.Client{buyerClient, ownerClient} {
		frame := decodeMessageFrame(t, <-client.Send)
		assert.Equal(t, ws.FrameTypeMessage, frame.Type)
		assert.Equal(t, message.ID, frame.Message.ID)
		assert.Equal(t, "is the rack free in June?", frame.Message.Text)
	}

	stored, err := uc.ListMessages(context.Background(), "owner", conversation.ID, 0)
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, message.ID, stored[0].ID)
}

func TestSendMessageAdvancesLastMessageAt(t *testing.T) {
	uc, conversationRepo, listingRepo, _ := newChatFixture(t)
	conversation := seedConversation(t, uc, listingRepo, "buyer", "owner")
	assert.True(t, conversation.LastMessageAt.IsZero())

	_, err := uc.SendMessage(context.Background(), "buyer", conversation.ID, "hello")
	require.NoError(t, err)

	updated, err := conversationRepo.GetByID(context.Background(), conversation.ID)
	require.NoError(t, err)
	assert.False(t, updated.LastMessageAt.IsZero())
}

func TestSendMessageRejectsOutsiderWithoutSideEffects(t *testing.T) {
	uc, _, listingRepo, registry := newChatFixture(t)
	conversation := seedConversation(t, uc, listingRepo, "buyer", "owner")

	buyerClient := ws.NewClient(conversation.ID, "buyer", nil)
	registry.Attach(conversation.ID, buyerClient)

	_, err := uc.SendMessage(context.Background(), "stranger", conversation.ID, "let me in")
	assert.True(t, errors.Is(err, "FORBIDDEN"))

	// Nothing persisted, nothing broadcast.
	messages, listErr := uc.ListMessages(context.Background(), "buyer", conversation.ID, 0)
	require.NoError(t, listErr)
	assert.Empty(t, messages)
	assert.Empty(t, buyerClient.Send)
}

func TestSendMessageValidation(t *testing.T) {
	uc, _, listingRepo, _ := newChatFixture(t)
	conversation := seedConversation(t, uc, listingRepo, "buyer", "owner")

	_, err := uc.SendMessage(context.Background(), "buyer", conversation.ID, "   ")
	assert.True(t, errors.Is(err, "VALIDATION_ERROR"), "blank text must be rejected")

	oversized := make([]rune, maxMessageRunes+1)
	for i := range oversized {
		oversized[i] = 'k'
	}
	_, err = uc.SendMessage(context.Background(), "buyer", conversation.ID, string(oversized))
	assert.True(t, errors.Is(err, "VALIDATION_ERROR"), "oversized text must be rejected")
}

func TestSendMessageUnknownConversation(t *testing.T) {
	uc, _, _, _ := newChatFixture(t)

	_, err := uc.SendMessage(context.Background(), "buyer", "missing", "hello")

	assert.True(t, errors.Is(err, "NOT_FOUND"))
}

func TestFailedDeliveryDetachesClientWithoutFailingSend(t *testing.T) {
	uc, _, listingRepo, registry := newChatFixture(t)
	conversation := seedConversation(t, uc, listingRepo, "buyer", "owner")

	healthy := ws.NewClient(conversation.ID, "buyer", nil)
	broken := ws.NewClient(conversation.ID, "owner", nil)
	broken.Close(1000, "gone")
	registry.Attach(conversation.ID, healthy)
	registry.Attach(conversation.ID, broken)

	_, err := uc.SendMessage(context.Background(), "buyer", conversation.ID, "anyone there?")
	require.NoError(t, err, "one dead session must not fail the send")

	snapshot := registry.Snapshot(conversation.ID)
	assert.Contains(t, snapshot, healthy)
	assert.NotContains(t, snapshot, broken, "failed client must be detached")
}

func TestConcurrentSendsDeliverInPersistedOrder(t *testing.T) {
	uc, _, listingRepo, registry := newChatFixture(t)
	conversation := seedConversation(t, uc, listingRepo, "buyer", "owner")

	observer := ws.NewClient(conversation.ID, "owner", nil)
	registry.Attach(conversation.ID, observer)

	const total = 20
	var wg sync.WaitGroup
	for i := 0; i < total; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := uc.SendMessage(context.Background(), "buyer", conversation.ID, fmt.Sprintf("message %d", i))
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	stored, err := uc.ListMessages(context.Background(), "owner", conversation.ID, 0)
	require.NoError(t, err)
	require.Len(t, stored, total)

	// The stream observed the exact order the store persisted.
	for _, message := range stored {
		frame := decodeMessageFrame(t, <-observer.Send)
		assert.Equal(t, message.ID, frame.Message.ID)
	}
}

func TestListMessagesCapsLimit(t *testing.T) {
	uc, conversationRepo, listingRepo, _ := newChatFixture(t)
	conversation := seedConversation(t, uc, listingRepo, "buyer", "owner")

	for i := 0; i < maxMessagePage+10; i++ {
		_, err := conversationRepo.AppendMessage(context.Background(), conversation.ID, "buyer", fmt.Sprintf("m%d", i))
		require.NoError(t, err)
	}

	messages, err := uc.ListMessages(context.Background(), "buyer", conversation.ID, maxMessagePage*2)
	require.NoError(t, err)
	assert.Len(t, messages, maxMessagePage)
}

func TestListConversationsOrdersByRecentActivity(t *testing.T) {
	uc, _, listingRepo, _ := newChatFixture(t)
	first := seedConversation(t, uc, listingRepo, "buyer", "owner-1")
	second := seedConversation(t, uc, listingRepo, "buyer", "owner-2")

	_, err := uc.SendMessage(context.Background(), "buyer", first.ID, "older thread wakes up")
	require.NoError(t, err)

	mine, err := uc.ListConversations(context.Background(), "buyer")
	require.NoError(t, err)
	require.Len(t, mine, 2)
	assert.Equal(t, first.ID, mine[0].ID, "the thread with the newest message comes first")
	assert.Equal(t, second.ID, mine[1].ID)
}

func TestListConversations(t *testing.T) {
	uc, _, listingRepo, _ := newChatFixture(t)
	seedConversation(t, uc, listingRepo, "buyer", "owner-1")
	seedConversation(t, uc, listingRepo, "buyer", "owner-2")

	mine, err := uc.ListConversations(context.Background(), "buyer")
	require.NoError(t, err)
	assert.Len(t, mine, 2)

	ownerSide, err := uc.ListConversations(context.Background(), "owner-1")
	require.NoError(t, err)
	assert.Len(t, ownerSide, 1)

	none, err := uc.ListConversations(context.Background(), "stranger")
	require.NoError(t, err)
	assert.Empty(t, none)
}

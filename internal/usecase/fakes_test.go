package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"rackup/internal/domain/entity"
	"rackup/pkg/errors"
)

// In-memory repositories backing the use case tests. They mirror the
// Firestore adapters' error contracts: NOT_FOUND app errors for missing
// documents, idempotent upserts.

type memConversationRepo struct {
	mu            sync.Mutex
	conversations map[string]*entity.Conversation
	messages      map[string][]*entity.Message
	seq           int
}

func newMemConversationRepo() *memConversationRepo {
	return &memConversationRepo{
		conversations: make(map[string]*entity.Conversation),
		messages:      make(map[string][]*entity.Message),
	}
}

func (r *memConversationRepo) Create(ctx context.Context, conversation *entity.Conversation) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	conversation.ID = conversation.BuyerID + "_" + conversation.ListingID + "_" + conversation.OwnerID
	if existing, ok := r.conversations[conversation.ID]; ok {
		*conversation = *existing
		return nil
	}
	conversation.CreatedAt = time.Now()
	conversation.UpdatedAt = conversation.CreatedAt
	copied := *conversation
	r.conversations[conversation.ID] = &copied
	return nil
}

func (r *memConversationRepo) GetByID(ctx context.Context, id string) (*entity.Conversation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	conversation, ok := r.conversations[id]
	if !ok {
		return nil, errors.NotFound("Conversation", nil)
	}
	copied := *conversation
	return &copied, nil
}

func (r *memConversationRepo) FindByKey(ctx context.Context, buyerID, listingID, ownerID string) (*entity.Conversation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, conversation := range r.conversations {
		if conversation.BuyerID == buyerID && conversation.ListingID == listingID && conversation.OwnerID == ownerID {
			copied := *conversation
			return &copied, nil
		}
	}
	return nil, errors.NotFound("Conversation", nil)
}

func (r *memConversationRepo) ListByUserID(ctx context.Context, userID string, limit int) ([]*entity.Conversation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var result []*entity.Conversation
	for _, conversation := range r.conversations {
		if conversation.HasParticipant(userID) {
			copied := *conversation
			result = append(result, &copied)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].LastMessageAt.After(result[j].LastMessageAt)
	})
	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

func (r *memConversationRepo) AppendMessage(ctx context.Context, conversationID, senderID, text string) (*entity.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	conversation, ok := r.conversations[conversationID]
	if !ok {
		return nil, errors.NotFound("Conversation", nil)
	}

	r.seq++
	message := &entity.Message{
		ID:             fmt.Sprintf("msg-%d", r.seq),
		ConversationID: conversationID,
		SenderID:       senderID,
		Text:           text,
		CreatedAt:      time.Now(),
	}
	r.messages[conversationID] = append(r.messages[conversationID], message)
	conversation.LastMessageAt = message.CreatedAt
	conversation.UpdatedAt = message.CreatedAt
	return message, nil
}

func (r *memConversationRepo) ListMessages(ctx context.Context, conversationID string, limit int) ([]*entity.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	messages := r.messages[conversationID]
	if limit > 0 && len(messages) > limit {
		messages = messages[:limit]
	}
	result := make([]*entity.Message, len(messages))
	for i, message := range messages {
		copied := *message
		result[i] = &copied
	}
	return result, nil
}

type memListingRepo struct {
	mu       sync.Mutex
	listings map[string]*entity.Listing
	seq      int
}

func newMemListingRepo() *memListingRepo {
	return &memListingRepo{listings: make(map[string]*entity.Listing)}
}

func (r *memListingRepo) Create(ctx context.Context, listing *entity.Listing) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.seq++
	listing.ID = fmt.Sprintf("listing-%d", r.seq)
	listing.CreatedAt = time.Now()
	listing.UpdatedAt = listing.CreatedAt
	copied := *listing
	r.listings[listing.ID] = &copied
	return nil
}

func (r *memListingRepo) GetByID(ctx context.Context, id string) (*entity.Listing, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	listing, ok := r.listings[id]
	if !ok {
		return nil, errors.NotFound("Listing", nil)
	}
	copied := *listing
	return &copied, nil
}

func (r *memListingRepo) List(ctx context.Context, limit int) ([]*entity.Listing, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var result []*entity.Listing
	for _, listing := range r.listings {
		copied := *listing
		result = append(result, &copied)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

func (r *memListingRepo) Update(ctx context.Context, listing *entity.Listing) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.listings[listing.ID]; !ok {
		return errors.NotFound("Listing", nil)
	}
	listing.UpdatedAt = time.Now()
	copied := *listing
	r.listings[listing.ID] = &copied
	return nil
}

func (r *memListingRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.listings[id]; !ok {
		return errors.NotFound("Listing", nil)
	}
	delete(r.listings, id)
	return nil
}

type memUserRepo struct {
	mu    sync.Mutex
	users map[string]*entity.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: make(map[string]*entity.User)}
}

func (r *memUserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[id]
	if !ok {
		return nil, errors.NotFound("User", nil)
	}
	copied := *user
	return &copied, nil
}

func (r *memUserRepo) Upsert(ctx context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	copied := *user
	r.users[user.ID] = &copied
	return nil
}

type memFavoriteRepo struct {
	mu        sync.Mutex
	favorites map[string]*entity.Favorite
}

func newMemFavoriteRepo() *memFavoriteRepo {
	return &memFavoriteRepo{favorites: make(map[string]*entity.Favorite)}
}

func (r *memFavoriteRepo) Set(ctx context.Context, favorite *entity.Favorite) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	copied := *favorite
	copied.CreatedAt = time.Now()
	r.favorites[favorite.UserID+"_"+favorite.ListingID] = &copied
	return nil
}

func (r *memFavoriteRepo) Remove(ctx context.Context, userID, listingID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.favorites, userID+"_"+listingID)
	return nil
}

func (r *memFavoriteRepo) ListByUserID(ctx context.Context, userID string) ([]*entity.Favorite, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var result []*entity.Favorite
	for _, favorite := range r.favorites {
		if favorite.UserID == userID {
			copied := *favorite
			result = append(result, &copied)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ListingID < result[j].ListingID })
	return result, nil
}

type memLocationRepo struct {
	mu   sync.Mutex
	rows map[string]*entity.Location
}

func newMemLocationRepo() *memLocationRepo {
	return &memLocationRepo{rows: make(map[string]*entity.Location)}
}

func (r *memLocationRepo) BulkUpsert(ctx context.Context, rows []*entity.Location) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, row := range rows {
		key := strings.ToLower(row.State + "|" + row.City + "|" + row.Pincode)
		copied := *row
		r.rows[key] = &copied
	}
	return len(rows), nil
}

func (r *memLocationRepo) ListAll(ctx context.Context) ([]*entity.Location, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var result []*entity.Location
	for _, row := range r.rows {
		copied := *row
		result = append(result, &copied)
	}
	return result, nil
}

package repository

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"google.golang.org/api/iterator"

	"rackup/internal/domain/entity"
	"rackup/internal/domain/repository"
	"rackup/pkg/errors"
)

type firestoreStatusCheckRepository struct {
	client *firestore.Client
}

func NewFirestoreStatusCheckRepository(client *firestore.Client) repository.StatusCheckRepository {
	return &firestoreStatusCheckRepository{
		client: client,
	}
}

func (r *firestoreStatusCheckRepository) Create(ctx context.Context, check *entity.StatusCheck) error {
	if check.ID == "" {
		check.ID = uuid.New().String()
	}
	if check.Timestamp.IsZero() {
		check.Timestamp = time.Now().UTC()
	}

	_, err := r.client.Collection("status_checks").Doc(check.ID).Set(ctx, check)
	if err != nil {
		return errors.Internal("Failed to create status check", err)
	}

	return nil
}

func (r *firestoreStatusCheckRepository) List(ctx context.Context, limit int) ([]*entity.StatusCheck, error) {
	query := r.client.Collection("status_checks").OrderBy("timestamp", firestore.Desc)
	if limit > 0 {
		query = query.Limit(limit)
	}

	iter := query.Documents(ctx)
	var checks []*entity.StatusCheck

	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, errors.Internal("Failed to iterate status checks", err)
		}

		var check entity.StatusCheck
		if err := doc.DataTo(&check); err != nil {
			continue // skip malformed documents
		}

		checks = append(checks, &check)
	}

	return checks, nil
}

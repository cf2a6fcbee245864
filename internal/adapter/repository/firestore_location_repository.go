package repository

import (
	"context"
	"fmt"
	"strings"

	"cloud.google.com/go/firestore"

	"rackup/internal/domain/entity"
	"rackup/internal/domain/repository"
	"rackup/pkg/errors"
)

type firestoreLocationRepository struct {
	client *firestore.Client
}

func NewFirestoreLocationRepository(client *firestore.Client) repository.LocationRepository {
	return &firestoreLocationRepository{
		client: client,
	}
}

// BulkUpsert writes rows through a BulkWriter keyed on (state, city, pincode),
// so re-importing the same dataset is idempotent.
func (r *firestoreLocationRepository) BulkUpsert(ctx context.Context, rows []*entity.Location) (int, error) {
	bw := r.client.BulkWriter(ctx)

	written := 0
	for _, row := range rows {
		docID := locationDocID(row)
		if _, err := bw.Set(r.client.Collection("locations").Doc(docID), row); err != nil {
			bw.End()
			return written, errors.Internal("Failed to enqueue location write", err)
		}
		written++
	}

	bw.End()
	return written, nil
}

func (r *firestoreLocationRepository) ListAll(ctx context.Context) ([]*entity.Location, error) {
	docs, err := r.client.Collection("locations").Documents(ctx).GetAll()
	if err != nil {
		return nil, errors.Internal("Failed to fetch locations", err)
	}

	var locations []*entity.Location
	for _, doc := range docs {
		var location entity.Location
		if err := doc.DataTo(&location); err != nil {
			continue // skip malformed documents
		}
		locations = append(locations, &location)
	}

	return locations, nil
}

func locationDocID(row *entity.Location) string {
	key := fmt.Sprintf("%s|%s|%s", row.State, row.City, row.Pincode)
	return strings.ToLower(strings.ReplaceAll(key, "/", "-"))
}

package gcp

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"

	"github.com/Lllllllleong/functionrecipes/internal/models"
)

// NewFirestoreClient creates and returns a new Firestore client for the given project ID.
func NewFirestoreClient(ctx context.Context, projectID string) (*firestore.Client, error) {
	if projectID == "" {
		return nil, fmt.Errorf("projectID must be provided to create a firestore client")
	}

	client, err := firestore.NewClient(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to create Firestore client: %w", err)
	}

	return client, nil
}

// SummaryRecorder appends one document per summarizer invocation.
type SummaryRecorder struct {
	client     *firestore.Client
	collection string
}

func NewSummaryRecorder(client *firestore.Client, collection string) *SummaryRecorder {
	return &SummaryRecorder{client: client, collection: collection}
}

// Record stores rec and returns the new document ID.
func (r *SummaryRecorder) Record(ctx context.Context, rec models.SummaryRecord) (string, error) {
	docRef, _, err := r.client.Collection(r.collection).Add(ctx, rec)
	if err != nil {
		return "", fmt.Errorf("failed to create summary record: %w", err)
	}
	return docRef.ID, nil
}

package cloud

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go/v4"
	"google.golang.org/api/option"

	"rentacar-backend/internal/logger"
)

const (
	payloadField   = "payload"
	updatedAtField = "updated_at"
)

// FirestoreStore mirrors records into Cloud Firestore collections.
// Each document holds the record JSON in a string field so the schema of the
// relational side never has to be mapped onto Firestore types.
type FirestoreStore struct {
	client *firestore.Client
	prefix string
}

// NewFirestoreStore connects through the Firebase Admin SDK. An empty
// credentialsFile falls back to application default credentials.
func NewFirestoreStore(ctx context.Context, projectID, credentialsFile, prefix string) (*FirestoreStore, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}

	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: projectID}, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize firebase app: %w", err)
	}

	client, err := app.Firestore(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create firestore client: %w", err)
	}

	return &FirestoreStore{client: client, prefix: prefix}, nil
}

func (s *FirestoreStore) collection(name string) *firestore.CollectionRef {
	return s.client.Collection(s.prefix + name)
}

func (s *FirestoreStore) List(ctx context.Context, collection string) (map[string][]byte, error) {
	logger.ExternalServiceCall("firestore", "list", "collection", collection)

	snaps, err := s.collection(collection).Documents(ctx).GetAll()
	logger.ExternalServiceResult("firestore", "list", err, "collection", collection, "count", len(snaps))
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", collection, err)
	}

	docs := make(map[string][]byte, len(snaps))
	for _, snap := range snaps {
		payload, ok := snap.Data()[payloadField].(string)
		if !ok {
			logger.Warn("Skipping firestore document without payload", "collection", collection, "id", snap.Ref.ID)
			continue
		}
		docs[snap.Ref.ID] = []byte(payload)
	}
	return docs, nil
}

func (s *FirestoreStore) Put(ctx context.Context, collection, id string, payload []byte) error {
	logger.ExternalServiceCall("firestore", "put", "collection", collection, "id", id)

	_, err := s.collection(collection).Doc(id).Set(ctx, map[string]interface{}{
		payloadField:   string(payload),
		updatedAtField: time.Now().UTC(),
	})
	logger.ExternalServiceResult("firestore", "put", err, "collection", collection, "id", id)
	if err != nil {
		return fmt.Errorf("failed to write %s/%s: %w", collection, id, err)
	}
	return nil
}

func (s *FirestoreStore) Close() error {
	return s.client.Close()
}

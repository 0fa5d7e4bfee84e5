package kv

import (
	"context"
	"encoding/base64"
	"fmt"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	fbstorage "firebase.google.com/go/v4/storage"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"rentify-backend-go/internal/config"
)

// kvCollection is the single Firestore collection holding one document
// per key. Firestore document IDs allow ':' so the derived keys map
// directly onto document IDs.
const kvCollection = "kv"

var (
	fsClient     *firestore.Client
	fbAuthClient *auth.Client
	fbStorClient *fbstorage.Client
)

// InitFirebase initializes the Firebase Admin SDK and the Firestore,
// Auth and Storage clients from the application configuration.
// Credentials come from a service account file, inline base64 JSON, or
// Application Default Credentials, in that order of preference.
func InitFirebase(ctx context.Context, cfg *config.Config) error {
	if cfg == nil {
		return fmt.Errorf("InitFirebase: cfg cannot be nil")
	}

	var opts []option.ClientOption
	if cfg.GoogleApplicationCredentials != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.GoogleApplicationCredentials))
	} else if cfg.FirebaseServiceAccountJSONBase64 != "" {
		decoded, err := base64.StdEncoding.DecodeString(cfg.FirebaseServiceAccountJSONBase64)
		if err != nil {
			return fmt.Errorf("failed to decode FIREBASE_SERVICE_ACCOUNT_JSON_BASE64: %w", err)
		}
		opts = append(opts, option.WithCredentialsJSON(decoded))
	}

	app, err := firebase.NewApp(ctx, &firebase.Config{
		ProjectID:     cfg.FirebaseProjectID,
		StorageBucket: cfg.StorageBucket,
	}, opts...)
	if err != nil {
		return fmt.Errorf("firebase.NewApp: %w", err)
	}

	client, err := app.Firestore(ctx)
	if err != nil {
		return fmt.Errorf("app.Firestore: %w", err)
	}

	authClient, err := app.Auth(ctx)
	if err != nil {
		client.Close()
		return fmt.Errorf("app.Auth: %w", err)
	}

	storClient, err := app.Storage(ctx)
	if err != nil {
		client.Close()
		return fmt.Errorf("app.Storage: %w", err)
	}

	fsClient = client
	fbAuthClient = authClient
	fbStorClient = storClient
	return nil
}

// GetFirestoreClient returns the Firestore client initialized by
// InitFirebase, or nil if initialization has not run.
func GetFirestoreClient() *firestore.Client { return fsClient }

// GetAuthClient returns the Firebase Auth client.
func GetAuthClient() *auth.Client { return fbAuthClient }

// GetStorageClient returns the Firebase Storage client.
func GetStorageClient() *fbstorage.Client { return fbStorClient }

type kvDocument struct {
	Value []byte `firestore:"value"`
}

// FirestoreStore implements Store on top of a Firestore collection.
type FirestoreStore struct {
	client *firestore.Client
}

// NewFirestoreStore creates a Store backed by the given Firestore client.
func NewFirestoreStore(client *firestore.Client) *FirestoreStore {
	return &FirestoreStore{client: client}
}

func (s *FirestoreStore) Get(ctx context.Context, key string) ([]byte, error) {
	snap, err := s.client.Collection(kvCollection).Doc(key).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, fmt.Errorf("%q: %w", key, ErrKeyNotFound)
		}
		return nil, fmt.Errorf("firestore get %q: %w", key, err)
	}
	var doc kvDocument
	if err := snap.DataTo(&doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptRecord, err)
	}
	return doc.Value, nil
}

func (s *FirestoreStore) Set(ctx context.Context, key string, value []byte) error {
	_, err := s.client.Collection(kvCollection).Doc(key).Set(ctx, kvDocument{Value: value})
	if err != nil {
		return fmt.Errorf("firestore set %q: %w", key, err)
	}
	return nil
}

// GetByPrefix scans the collection by document-ID range. U+F8FF is
// the conventional high sentinel for Firestore prefix queries.
func (s *FirestoreStore) GetByPrefix(ctx context.Context, prefix string) ([][]byte, error) {
	iter := s.client.Collection(kvCollection).
		OrderBy(firestore.DocumentID, firestore.Asc).
		StartAt(prefix).
		EndBefore(prefix + "\uf8ff").
		Documents(ctx)
	defer iter.Stop()

	var values [][]byte
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("firestore scan %q: %w", prefix, err)
		}
		var doc kvDocument
		if err := snap.DataTo(&doc); err != nil {
			// A single undecodable document must not poison a scan.
			continue
		}
		values = append(values, doc.Value)
	}
	return values, nil
}

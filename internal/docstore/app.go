// Package docstore keeps the domain records in Cloud Firestore and hands
// out the Firebase Auth client used to verify operator tokens.
package docstore

import (
	"context"
	"errors"
	"fmt"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go/v4"
	firebaseauth "firebase.google.com/go/v4/auth"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	templatesCollection = "templates"
	routesCollection    = "flightRoutes"
	usersCollection     = "users"
	messagesCollection  = "sentMessages"
)

// App bundles the Firebase clients built from one service account.
type App struct {
	Firestore *firestore.Client
	Auth      *firebaseauth.Client
}

// NewApp initializes Firebase for projectID. An empty credentialsPath falls
// back to application default credentials, which is also how the Firestore
// emulator is reached.
func NewApp(ctx context.Context, projectID, credentialsPath string) (*App, error) {
	var opts []option.ClientOption
	if credentialsPath != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsPath))
	}

	fb, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: projectID}, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Firebase app: %w", err)
	}

	fs, err := fb.Firestore(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get Firestore client: %w", err)
	}

	authClient, err := fb.Auth(ctx)
	if err != nil {
		fs.Close()
		return nil, fmt.Errorf("failed to get Firebase Auth client: %w", err)
	}

	return &App{Firestore: fs, Auth: authClient}, nil
}

// Ping reads at most one template to prove the store answers.
func (a *App) Ping(ctx context.Context) error {
	it := a.Firestore.Collection(templatesCollection).Limit(1).Documents(ctx)
	defer it.Stop()
	if _, err := it.Next(); err != nil && !errors.Is(err, iterator.Done) {
		return err
	}
	return nil
}

func (a *App) Close() error {
	return a.Firestore.Close()
}

func isNotFound(err error) bool {
	return status.Code(err) == codes.NotFound
}

func isAlreadyExists(err error) bool {
	return status.Code(err) == codes.AlreadyExists
}

// replaceExisting overwrites the document at ref, failing with NotFound when
// it does not exist.
func replaceExisting(ctx context.Context, client *firestore.Client, ref *firestore.DocumentRef, v interface{}) error {
	return client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		if _, err := tx.Get(ref); err != nil {
			return err
		}
		return tx.Set(ref, v)
	})
}

package docstore

import (
	"context"

	"cloud.google.com/go/firestore"

	"github.com/sangkips/flight-notify-service/internal/domains/users"
)

// UserRepository stores users keyed by their Firebase uid. Email
// uniqueness is enforced inside a transaction since Firestore has no unique
// constraints.
type UserRepository struct {
	client *firestore.Client
}

func NewUserRepository(client *firestore.Client) *UserRepository {
	return &UserRepository{client: client}
}

var _ users.Repository = (*UserRepository)(nil)

func (r *UserRepository) col() *firestore.CollectionRef {
	return r.client.Collection(usersCollection)
}

func userFromSnapshot(snap *firestore.DocumentSnapshot) (users.User, error) {
	var u users.User
	if err := snap.DataTo(&u); err != nil {
		return users.User{}, err
	}
	u.ID = snap.Ref.ID
	return u, nil
}

// emailTaken reports whether a user other than id already holds email.
func (r *UserRepository) emailTaken(tx *firestore.Transaction, email, id string) (bool, error) {
	snaps, err := tx.Documents(r.col().Where("email", "==", email)).GetAll()
	if err != nil {
		return false, err
	}
	for _, snap := range snaps {
		if snap.Ref.ID != id {
			return true, nil
		}
	}
	return false, nil
}

func (r *UserRepository) CreateUser(ctx context.Context, u users.User) (users.User, error) {
	ref := r.col().Doc(u.ID)
	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		taken, err := r.emailTaken(tx, u.Email, u.ID)
		if err != nil {
			return err
		}
		if taken {
			return users.ErrEmailTaken
		}
		return tx.Create(ref, u)
	})
	if err != nil {
		if isAlreadyExists(err) {
			return users.User{}, users.ErrEmailTaken
		}
		return users.User{}, err
	}
	return u, nil
}

func (r *UserRepository) GetUser(ctx context.Context, id string) (users.User, error) {
	snap, err := r.col().Doc(id).Get(ctx)
	if err != nil {
		if isNotFound(err) {
			return users.User{}, users.ErrUserNotFound
		}
		return users.User{}, err
	}
	return userFromSnapshot(snap)
}

func (r *UserRepository) ListUsers(ctx context.Context) ([]users.User, error) {
	snaps, err := r.col().OrderBy("email", firestore.Asc).Documents(ctx).GetAll()
	if err != nil {
		return nil, err
	}
	list := make([]users.User, 0, len(snaps))
	for _, snap := range snaps {
		u, err := userFromSnapshot(snap)
		if err != nil {
			return nil, err
		}
		list = append(list, u)
	}
	return list, nil
}

func (r *UserRepository) UpdateUser(ctx context.Context, u users.User) (users.User, error) {
	ref := r.col().Doc(u.ID)
	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		if _, err := tx.Get(ref); err != nil {
			return err
		}
		taken, err := r.emailTaken(tx, u.Email, u.ID)
		if err != nil {
			return err
		}
		if taken {
			return users.ErrEmailTaken
		}
		return tx.Set(ref, u)
	})
	if err != nil {
		if isNotFound(err) {
			return users.User{}, users.ErrUserNotFound
		}
		return users.User{}, err
	}
	return u, nil
}

func (r *UserRepository) DeleteUser(ctx context.Context, id string) error {
	if _, err := r.col().Doc(id).Delete(ctx, firestore.Exists); err != nil {
		if isNotFound(err) {
			return users.ErrUserNotFound
		}
		return err
	}
	return nil
}

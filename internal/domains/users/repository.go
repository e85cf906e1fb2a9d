package users

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/sangkips/flight-notify-service/internal/domains/users/models"
)

type Repository interface {
	CreateUser(ctx context.Context, u User) (User, error)
	GetUser(ctx context.Context, id string) (User, error)
	ListUsers(ctx context.Context) ([]User, error)
	UpdateUser(ctx context.Context, u User) (User, error)
	DeleteUser(ctx context.Context, id string) error
}

type repository struct {
	q *models.Queries
}

func NewRepository(db models.DBTX) Repository {
	return &repository{q: models.New(db)}
}

func fromModel(m models.User) User {
	return User{
		ID:          m.ID,
		Email:       m.Email,
		DisplayName: m.DisplayName,
		Role:        m.Role,
		IsActive:    m.IsActive,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func mapError(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return ErrUserNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return ErrEmailTaken
	}
	return err
}

func (r *repository) CreateUser(ctx context.Context, u User) (User, error) {
	m, err := r.q.CreateUser(ctx, models.CreateUserParams{
		ID:          u.ID,
		Email:       u.Email,
		DisplayName: u.DisplayName,
		Role:        u.Role,
		IsActive:    u.IsActive,
		CreatedAt:   u.CreatedAt,
	})
	if err != nil {
		return User{}, mapError(err)
	}
	return fromModel(m), nil
}

func (r *repository) GetUser(ctx context.Context, id string) (User, error) {
	m, err := r.q.GetUser(ctx, id)
	if err != nil {
		return User{}, mapError(err)
	}
	return fromModel(m), nil
}

func (r *repository) ListUsers(ctx context.Context) ([]User, error) {
	rows, err := r.q.ListUsers(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]User, 0, len(rows))
	for _, m := range rows {
		out = append(out, fromModel(m))
	}
	return out, nil
}

func (r *repository) UpdateUser(ctx context.Context, u User) (User, error) {
	m, err := r.q.UpdateUser(ctx, models.UpdateUserParams{
		ID:          u.ID,
		Email:       u.Email,
		DisplayName: u.DisplayName,
		Role:        u.Role,
		IsActive:    u.IsActive,
		UpdatedAt:   u.UpdatedAt,
	})
	if err != nil {
		return User{}, mapError(err)
	}
	return fromModel(m), nil
}

func (r *repository) DeleteUser(ctx context.Context, id string) error {
	n, err := r.q.DeleteUser(ctx, id)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrUserNotFound
	}
	return nil
}

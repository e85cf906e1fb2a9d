package users

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/sangkips/flight-notify-service/internal/cache"
)

const snapshotKey = "users"

type Service struct {
	repo  Repository
	local *cache.Store
	now   func() time.Time
}

// NewService wires the user store. local may be nil, in which case List
// has no fallback.
func NewService(repo Repository, local *cache.Store) *Service {
	return &Service{repo: repo, local: local, now: time.Now}
}

func (s *Service) Create(ctx context.Context, req UserRequest) (User, error) {
	now := s.now().UTC()
	u := User{
		ID:          strings.TrimSpace(req.ID),
		Email:       strings.ToLower(strings.TrimSpace(req.Email)),
		DisplayName: strings.TrimSpace(req.DisplayName),
		Role:        req.Role,
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	if u.Role == "" {
		u.Role = RoleOperator
	}
	if req.IsActive != nil {
		u.IsActive = *req.IsActive
	}
	return s.repo.CreateUser(ctx, u)
}

func (s *Service) Get(ctx context.Context, id string) (User, error) {
	return s.repo.GetUser(ctx, id)
}

// List reads the remote store first and falls back to the last local
// snapshot when it is unreachable.
func (s *Service) List(ctx context.Context) (ListResponse, error) {
	list, src, err := cache.ReadThrough(ctx, s.local, snapshotKey, s.repo.ListUsers)
	if err != nil {
		return ListResponse{}, err
	}
	if list == nil {
		list = []User{}
	}
	return ListResponse{Data: list, Source: string(src)}, nil
}

func (s *Service) Update(ctx context.Context, id string, req UserRequest) (User, error) {
	current, err := s.repo.GetUser(ctx, id)
	if err != nil {
		return User{}, err
	}
	current.Email = strings.ToLower(strings.TrimSpace(req.Email))
	current.DisplayName = strings.TrimSpace(req.DisplayName)
	if req.Role != "" {
		current.Role = req.Role
	}
	if req.IsActive != nil {
		current.IsActive = *req.IsActive
	}
	current.UpdatedAt = s.now().UTC()
	return s.repo.UpdateUser(ctx, current)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.DeleteUser(ctx, id)
}

package users

import (
	"errors"
	"time"
)

var (
	ErrUserNotFound = errors.New("user not found")
	ErrEmailTaken   = errors.New("email already registered")
)

const (
	RoleAdmin    = "admin"
	RoleOperator = "operator"
)

// User is an operations staff profile. The id matches the Firebase uid when
// auth is enabled.
type User struct {
	ID          string    `json:"id" firestore:"-"`
	Email       string    `json:"email" firestore:"email"`
	DisplayName string    `json:"displayName" firestore:"displayName"`
	Role        string    `json:"role" firestore:"role"`
	IsActive    bool      `json:"isActive" firestore:"isActive"`
	CreatedAt   time.Time `json:"createdAt" firestore:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt" firestore:"updatedAt"`
}

type UserRequest struct {
	ID          string `json:"id"`
	Email       string `json:"email" validate:"required,email"`
	DisplayName string `json:"displayName" validate:"max=200"`
	Role        string `json:"role" validate:"omitempty,oneof=admin operator"`
	IsActive    *bool  `json:"isActive"`
}

type ListResponse struct {
	Data   []User `json:"data"`
	Source string `json:"source"`
}

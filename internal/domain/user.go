package domain

import (
	"context"
	"fmt"
)

// Role is the closed set of application roles.
type Role string

const (
	RoleAdmin     Role = "Admin"
	RoleOrganizer Role = "EventOrganizer"
	RoleStudent   Role = "Student"
	RoleVisitor   Role = "Visitor"
)

// Roles lists every role in canonical order.
var Roles = []Role{RoleAdmin, RoleOrganizer, RoleStudent, RoleVisitor}

// ParseRole converts a string to a Role.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleAdmin, RoleOrganizer, RoleStudent, RoleVisitor:
		return Role(s), nil
	}
	return "", fmt.Errorf("%w: unknown role %q", ErrValidation, s)
}

// CanRegister reports whether the role may register for events.
func (r Role) CanRegister() bool {
	return r == RoleStudent || r == RoleVisitor
}

// User represents a registered account. Role is immutable after creation.
type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Role     Role   `json:"role"`
}

// NewUser returns a new User with the given fields. ID is set by the
// repository on create.
func NewUser(username, fullName, email string, role Role) *User {
	return &User{
		Username: username,
		FullName: fullName,
		Email:    email,
		Role:     role,
	}
}

// Session identifies the actor a menu session runs as. It is built once by
// the calling surface and passed explicitly into every gated operation.
type Session struct {
	ActorID string
	Role    Role
}

// UserRepository defines the interface for user storage. List preserves
// insertion order.
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id string) (*User, error)
	List(ctx context.Context) ([]*User, error)
}

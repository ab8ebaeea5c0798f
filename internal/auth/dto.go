package auth

import (
	"github.com/angelmondragon/yahipe-backend/internal/catalog"
	"github.com/angelmondragon/yahipe-backend/pkg/enums"
	"github.com/google/uuid"
)

// LoginRequest captures the user credentials sent to the login endpoint.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UserDTO is the public view of a signed-in user.
type UserDTO struct {
	ID     string         `json:"id"`
	Email  string         `json:"email"`
	Name   string         `json:"name"`
	Role   enums.UserRole `json:"role"`
	ShopID string         `json:"shop_id,omitempty"`
}

// FromUser strips the credential from a catalog user.
func FromUser(u catalog.User) *UserDTO {
	return &UserDTO{
		ID:     u.ID,
		Email:  u.Email,
		Name:   u.Name,
		Role:   u.Role,
		ShopID: u.ShopID,
	}
}

// LoginResponse returns the session handle and the user it belongs to.
type LoginResponse struct {
	SessionID uuid.UUID `json:"session_id"`
	User      *UserDTO  `json:"user"`
	// Dashboard names the area the client should route to.
	Dashboard string `json:"dashboard"`
}

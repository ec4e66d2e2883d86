package auth

import (
	"context"
	"net/http"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/google/uuid"
)

// Role is the portal a signed-in account belongs to.
type Role string

const (
	RoleVendor Role = "vendor"
	RoleAdmin  Role = "admin"
)

// Account is a portal login. Vendor accounts carry the vendor they act for.
type Account struct {
	ID           uuid.UUID
	Email        string
	PasswordHash string
	Role         Role
	VendorID     *uuid.UUID
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Claims is the JWT payload issued at login.
type Claims struct {
	Role     Role   `json:"role"`
	VendorID string `json:"vendorId,omitempty"`
	jwt.StandardClaims
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	Token     string     `json:"token"`
	ExpiresAt time.Time  `json:"expiresAt"`
	Role      Role       `json:"role"`
	VendorID  *uuid.UUID `json:"vendorId"`
}

// Service defines the interface for authentication-related business logic.
type Service interface {
	Login(ctx context.Context, req LoginRequest) (*LoginResponse, error)
	ParseToken(token string) (*Claims, error)
}

// Repository reads portal accounts.
type Repository interface {
	GetAccountByEmail(ctx context.Context, email string) (*Account, error)
}

// Middleware is the surface route groups need from this package.
type Middleware interface {
	RequireVendor(next http.Handler) http.Handler
	RequireAdmin(next http.Handler) http.Handler
}

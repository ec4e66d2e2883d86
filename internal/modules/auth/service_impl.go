package auth

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/georgemunganga/vendorhub-backend/internal/httpx"
	"github.com/georgemunganga/vendorhub-backend/internal/validate"
	"golang.org/x/crypto/bcrypt"
)

const (
	msgBadCredentials = "Email hoặc mật khẩu không đúng"
	msgBadToken       = "Phiên đăng nhập không hợp lệ hoặc đã hết hạn"
)

type service struct {
	repo   Repository
	jwtKey []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewService creates a new auth service.
func NewService(repo Repository, secret string, ttl time.Duration) Service {
	return &service{repo: repo, jwtKey: []byte(secret), ttl: ttl, now: time.Now}
}

func (s *service) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	if err := validate.Struct(req); err != nil {
		return nil, err
	}

	account, err := s.repo.GetAccountByEmail(ctx, req.Email)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, httpx.Unauthorized(msgBadCredentials)
	}
	if err != nil {
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(req.Password)); err != nil {
		return nil, httpx.Unauthorized(msgBadCredentials)
	}
	if account.Role == RoleVendor && account.VendorID == nil {
		return nil, fmt.Errorf("vendor account %s has no vendor", account.ID)
	}

	expirationTime := s.now().Add(s.ttl)
	claims := &Claims{
		Role: account.Role,
		StandardClaims: jwt.StandardClaims{
			Subject:   account.ID.String(),
			IssuedAt:  s.now().Unix(),
			ExpiresAt: expirationTime.Unix(),
		},
	}
	if account.VendorID != nil {
		claims.VendorID = account.VendorID.String()
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(s.jwtKey)
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}

	return &LoginResponse{
		Token:     tokenString,
		ExpiresAt: expirationTime,
		Role:      account.Role,
		VendorID:  account.VendorID,
	}, nil
}

func (s *service) ParseToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.jwtKey, nil
	})
	if err != nil || !token.Valid {
		return nil, httpx.Unauthorized(msgBadToken)
	}
	return claims, nil
}

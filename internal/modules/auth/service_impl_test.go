package auth

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/georgemunganga/vendorhub-backend/internal/httpx"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type fakeRepo struct {
	accounts map[string]*Account
	err      error
}

func (f *fakeRepo) GetAccountByEmail(_ context.Context, email string) (*Account, error) {
	if f.err != nil {
		return nil, f.err
	}
	a, ok := f.accounts[email]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return a, nil
}

func hash(t *testing.T, pw string) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.MinCost)
	require.NoError(t, err)
	return string(h)
}

func newTestService(t *testing.T) (Service, uuid.UUID) {
	t.Helper()
	vendorID := uuid.New()
	repo := &fakeRepo{accounts: map[string]*Account{
		"shop@example.vn":  {ID: uuid.New(), Email: "shop@example.vn", PasswordHash: hash(t, "secret123"), Role: RoleVendor, VendorID: &vendorID},
		"admin@example.vn": {ID: uuid.New(), Email: "admin@example.vn", PasswordHash: hash(t, "admin123"), Role: RoleAdmin},
	}}
	return NewService(repo, "test-secret", time.Hour), vendorID
}

func TestLogin_VendorTokenCarriesVendorID(t *testing.T) {
	svc, vendorID := newTestService(t)

	resp, err := svc.Login(context.Background(), LoginRequest{Email: "shop@example.vn", Password: "secret123"})
	require.NoError(t, err)
	assert.Equal(t, RoleVendor, resp.Role)
	require.NotNil(t, resp.VendorID)
	assert.Equal(t, vendorID, *resp.VendorID)

	claims, err := svc.ParseToken(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, RoleVendor, claims.Role)
	assert.Equal(t, vendorID.String(), claims.VendorID)
}

func TestLogin_AdminHasNoVendor(t *testing.T) {
	svc, _ := newTestService(t)

	resp, err := svc.Login(context.Background(), LoginRequest{Email: "admin@example.vn", Password: "admin123"})
	require.NoError(t, err)
	assert.Equal(t, RoleAdmin, resp.Role)
	assert.Nil(t, resp.VendorID)
}

func TestLogin_BadCredentials(t *testing.T) {
	svc, _ := newTestService(t)
	var unauth *httpx.UnauthorizedError

	_, err := svc.Login(context.Background(), LoginRequest{Email: "shop@example.vn", Password: "wrong"})
	assert.True(t, errors.As(err, &unauth))

	_, err = svc.Login(context.Background(), LoginRequest{Email: "nobody@example.vn", Password: "secret123"})
	assert.True(t, errors.As(err, &unauth))
}

func TestLogin_Validation(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Login(context.Background(), LoginRequest{Email: "not-an-email"})
	var verr *httpx.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Len(t, verr.Details, 2)
}

func TestLogin_RepositoryFailureIsNotUnauthorized(t *testing.T) {
	svc := NewService(&fakeRepo{err: errors.New("db down")}, "k", time.Hour)

	_, err := svc.Login(context.Background(), LoginRequest{Email: "shop@example.vn", Password: "x"})
	require.Error(t, err)
	var unauth *httpx.UnauthorizedError
	assert.False(t, errors.As(err, &unauth))
}

func TestParseToken_Rejects(t *testing.T) {
	svc, _ := newTestService(t)
	var unauth *httpx.UnauthorizedError

	_, err := svc.ParseToken("garbage")
	assert.True(t, errors.As(err, &unauth))

	other := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{Role: RoleAdmin})
	signed, err := other.SignedString([]byte("another-secret"))
	require.NoError(t, err)
	_, err = svc.ParseToken(signed)
	assert.True(t, errors.As(err, &unauth))

	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		Role:           RoleAdmin,
		StandardClaims: jwt.StandardClaims{ExpiresAt: time.Now().Add(-time.Minute).Unix()},
	})
	signed, err = expired.SignedString([]byte("test-secret"))
	require.NoError(t, err)
	_, err = svc.ParseToken(signed)
	assert.True(t, errors.As(err, &unauth))
}

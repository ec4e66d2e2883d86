package httpx

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/georgemunganga/vendorhub-backend/internal/tenant"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVendorScope(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	_, err := VendorScope(req)
	var unauth *UnauthorizedError
	assert.True(t, errors.As(err, &unauth))

	id := uuid.New()
	req = req.WithContext(tenant.WithVendor(req.Context(), tenant.NewVendor(id)))
	v, err := VendorScope(req)
	require.NoError(t, err)
	got, _ := v.ID()
	assert.Equal(t, id, got)
}

func TestPathID(t *testing.T) {
	withParam := func(val string) *http.Request {
		rctx := chi.NewRouteContext()
		rctx.URLParams.Add("id", val)
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
	}

	id := uuid.New()
	got, err := PathID(withParam(id.String()), "id", "Không tìm thấy")
	require.NoError(t, err)
	assert.Equal(t, id, got)

	_, err = PathID(withParam("42"), "id", "Không tìm thấy")
	var nf *NotFoundError
	require.True(t, errors.As(err, &nf))
	assert.Equal(t, "Không tìm thấy", nf.Message)
}

func TestQueryInt(t *testing.T) {
	n, err := QueryInt(httptest.NewRequest(http.MethodGet, "/?page=3", nil), "page", 1)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	n, err = QueryInt(httptest.NewRequest(http.MethodGet, "/", nil), "page", 1)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	_, err = QueryInt(httptest.NewRequest(http.MethodGet, "/?page=abc", nil), "page", 1)
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "page", verr.Details[0].Field)
}

package httpx

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestFail_StatusMapping(t *testing.T) {
	cases := []struct {
		name string
		err  error
		code int
	}{
		{"validation", Invalid("Dữ liệu không hợp lệ"), http.StatusBadRequest},
		{"not found", NotFound("Không tìm thấy"), http.StatusNotFound},
		{"state", State("Yêu cầu đã được %s", "duyệt"), http.StatusBadRequest},
		{"conflict", Conflict("Đã tồn tại"), http.StatusConflict},
		{"unauthorized", Unauthorized("Chưa đăng nhập"), http.StatusUnauthorized},
		{"forbidden", Forbidden("Không có quyền"), http.StatusForbidden},
		{"wrapped not found", fmt.Errorf("get: %w", NotFound("x")), http.StatusNotFound},
		{"unexpected", errors.New("connection reset"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			Fail(rec, zap.NewNop(), tc.err)
			assert.Equal(t, tc.code, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
		})
	}
}

func TestFail_InternalDoesNotLeak(t *testing.T) {
	rec := httptest.NewRecorder()
	Fail(rec, zap.NewNop(), errors.New("pq: password authentication failed"))

	body := decodeBody(t, rec)
	assert.Equal(t, MsgInternal, body["error"])
}

func TestFail_ValidationDetails(t *testing.T) {
	rec := httptest.NewRecorder()
	Fail(rec, zap.NewNop(), Invalid("Dữ liệu không hợp lệ", FieldError{Field: "amount", Message: "quá nhỏ"}))

	body := decodeBody(t, rec)
	details, ok := body["details"].([]interface{})
	require.True(t, ok)
	require.Len(t, details, 1)
	assert.Equal(t, "amount", details[0].(map[string]interface{})["field"])
}

func TestDecode(t *testing.T) {
	var dst struct {
		Notes string `json:"notes"`
	}

	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"notes":"ok"}`))
	require.NoError(t, Decode(r, &dst))
	assert.Equal(t, "ok", dst.Notes)

	r = httptest.NewRequest(http.MethodPost, "/", nil)
	assert.NoError(t, Decode(r, &dst))

	r = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{bad`))
	var verr *ValidationError
	assert.ErrorAs(t, Decode(r, &dst), &verr)
}

func TestIsUniqueViolation(t *testing.T) {
	assert.True(t, IsUniqueViolation(fmt.Errorf("insert: %w", &pq.Error{Code: "23505"})))
	assert.False(t, IsUniqueViolation(&pq.Error{Code: "23503"}))
	assert.False(t, IsUniqueViolation(errors.New("duplicate key")))
}

func TestIsForeignKeyViolation(t *testing.T) {
	assert.True(t, IsForeignKeyViolation(&pq.Error{Code: "23503"}))
	assert.False(t, IsForeignKeyViolation(&pq.Error{Code: "23505"}))
	assert.False(t, IsForeignKeyViolation(nil))
}

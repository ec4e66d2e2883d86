package httpx

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"go.uber.org/zap"
)

// MsgInternal is returned for every unexpected failure; the cause is only logged.
const MsgInternal = "Lỗi máy chủ nội bộ"

const msgBadJSON = "Dữ liệu gửi lên không đúng định dạng JSON"

func Respond(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

// Fail maps err onto the JSON error envelope.
func Fail(w http.ResponseWriter, log *zap.Logger, err error) {
	var (
		validation *ValidationError
		notFound   *NotFoundError
		state      *StateError
		conflict   *ConflictError
		unauth     *UnauthorizedError
		forbidden  *ForbiddenError
	)
	switch {
	case errors.As(err, &validation):
		body := map[string]interface{}{"error": validation.Message}
		if len(validation.Details) > 0 {
			body["details"] = validation.Details
		}
		Respond(w, http.StatusBadRequest, body)
	case errors.As(err, &notFound):
		Respond(w, http.StatusNotFound, map[string]string{"error": notFound.Message})
	case errors.As(err, &state):
		Respond(w, http.StatusBadRequest, map[string]string{"error": state.Message})
	case errors.As(err, &conflict):
		Respond(w, http.StatusConflict, map[string]string{"error": conflict.Message})
	case errors.As(err, &unauth):
		Respond(w, http.StatusUnauthorized, map[string]string{"error": unauth.Message})
	case errors.As(err, &forbidden):
		Respond(w, http.StatusForbidden, map[string]string{"error": forbidden.Message})
	default:
		log.Error("request failed", zap.Error(err))
		Respond(w, http.StatusInternalServerError, map[string]string{"error": MsgInternal})
	}
}

// Decode reads a JSON body into dst. An empty body leaves dst untouched.
func Decode(r *http.Request, dst interface{}) error {
	if r.Body == nil {
		return nil
	}
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return Invalid(msgBadJSON)
	}
	return nil
}

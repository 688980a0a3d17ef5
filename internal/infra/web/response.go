package web

import (
	"encoding/json"
	"errors"
	"net/http"

	"account-pool-service/internal/domain"
)

// envelope is the uniform response shape. Success carries HTTP 200 with
// status 200 and code "0"; failures repeat the HTTP status and carry a
// domain code string or "-1".
type envelope struct {
	Status int    `json:"status"`
	Msg    string `json:"msg"`
	Data   any    `json:"data"`
	Code   string `json:"code"`
}

func writeJSON(w http.ResponseWriter, httpStatus int, body envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(httpStatus)
	_ = json.NewEncoder(w).Encode(body)
}

func writeOK(w http.ResponseWriter, data any, msg string) {
	if msg == "" {
		msg = "Success"
	}
	writeJSON(w, http.StatusOK, envelope{Status: http.StatusOK, Msg: msg, Data: data, Code: "0"})
}

func writeFail(w http.ResponseWriter, httpStatus int, msg, code string) {
	writeJSON(w, httpStatus, envelope{Status: httpStatus, Msg: msg, Code: code})
}

// errorMapping translates a domain error into an HTTP status and code.
var errorMapping = []struct {
	err    error
	status int
	code   string
}{
	{domain.ErrInvalidArgument, http.StatusBadRequest, "VALIDATION_ERROR"},
	{domain.ErrInvalidCredentials, http.StatusUnauthorized, "UNAUTHORIZED"},
	{domain.ErrWrongPassword, http.StatusBadRequest, "VALIDATION_ERROR"},
	{domain.ErrAccountExpired, http.StatusForbidden, "ACCOUNT_EXPIRED"},
	{domain.ErrQuotaExceeded, http.StatusForbidden, "QUOTA_EXCEEDED"},
	{domain.ErrCodeInvalid, http.StatusBadRequest, "VALIDATION_ERROR"},
	{domain.ErrCodeExhausted, http.StatusBadRequest, "CODE_EXHAUSTED"},
	{domain.ErrCodeExpired, http.StatusBadRequest, "CODE_EXPIRED"},
	{domain.ErrVerificationExpired, http.StatusBadRequest, "CODE_EXPIRED"},
	{domain.ErrVerificationInvalid, http.StatusBadRequest, "VALIDATION_ERROR"},
	{domain.ErrNoAvailableAccounts, http.StatusNotFound, "NO_AVAILABLE_ACCOUNTS"},
	{domain.ErrNotFound, http.StatusNotFound, "NOT_FOUND"},
	{domain.ErrAlreadyExists, http.StatusConflict, "CONFLICT"},
	{domain.ErrDeliveryFailed, http.StatusInternalServerError, "INTERNAL_ERROR"},
	{ErrTokenExpired, http.StatusUnauthorized, "TOKEN_EXPIRED"},
	{ErrTokenInvalid, http.StatusUnauthorized, "INVALID_TOKEN"},
}

// writeError maps domain failures onto the envelope. Unrecognized errors
// become a generic 500; the real message stays in the server log only.
func writeError(w http.ResponseWriter, err error) {
	for _, m := range errorMapping {
		if errors.Is(err, m.err) {
			writeFail(w, m.status, err.Error(), m.code)
			return
		}
	}
	writeFail(w, http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
}

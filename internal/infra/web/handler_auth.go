package web

import (
	"encoding/json"
	"net/http"

	"account-pool-service/internal/domain"
	"account-pool-service/internal/infra/logging"
)

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeFail(w, http.StatusBadRequest, "invalid request body", "VALIDATION_ERROR")
		return false
	}
	return true
}

type checkUserRequest struct {
	Email string `json:"email"`
}

func (s *Server) handleCheckUser(w http.ResponseWriter, r *http.Request) {
	var req checkUserRequest
	if !decodeBody(w, r, &req) {
		return
	}

	exists, err := s.authUC.CheckUser(r.Context(), req.Email)
	if err != nil {
		writeError(w, err)
		return
	}
	writeOK(w, map[string]bool{"exists": exists}, "")
}

type sendEmailCodeRequest struct {
	Email string `json:"email"`
	Type  string `json:"type"`
}

func (s *Server) handleSendEmailCode(w http.ResponseWriter, r *http.Request) {
	var req sendEmailCodeRequest
	if !decodeBody(w, r, &req) {
		return
	}

	if err := s.authUC.SendEmailCode(r.Context(), req.Email, req.Type); err != nil {
		if err == domain.ErrDeliveryFailed {
			l := logging.With(r.Context(), s.log)
			l.Error().Str("email", req.Email).Msg("verification code issued but not delivered")
		}
		writeError(w, err)
		return
	}
	writeOK(w, nil, "Verification code sent")
}

type registerRequest struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
	Code     string `json:"code"`
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if !decodeBody(w, r, &req) {
		return
	}

	res, err := s.authUC.Register(r.Context(), req.Email, req.Username, req.Password, req.Code)
	if err != nil {
		writeError(w, err)
		return
	}
	writeOK(w, res, "Registration successful")
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decodeBody(w, r, &req) {
		return
	}

	res, err := s.authUC.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}
	writeOK(w, res, "Login successful")
}

type resetPasswordRequest struct {
	Email       string `json:"email"`
	Code        string `json:"code"`
	NewPassword string `json:"newPassword"`
}

func (s *Server) handleResetPassword(w http.ResponseWriter, r *http.Request) {
	var req resetPasswordRequest
	if !decodeBody(w, r, &req) {
		return
	}

	if err := s.authUC.ResetPassword(r.Context(), req.Email, req.Code, req.NewPassword); err != nil {
		writeError(w, err)
		return
	}
	writeOK(w, nil, "Password reset successful")
}

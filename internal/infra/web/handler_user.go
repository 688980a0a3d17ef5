package web

import (
	"net/http"
)

func (s *Server) handleUserInfo(w http.ResponseWriter, r *http.Request) {
	claims, ok := ClaimsFromContext(r.Context())
	if !ok {
		writeFail(w, http.StatusUnauthorized, "authorization required", "UNAUTHORIZED")
		return
	}

	info, err := s.userUC.Info(r.Context(), claims.UID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeOK(w, info, "")
}

type updatePasswordRequest struct {
	OldPassword     string `json:"old_password"`
	NewPassword     string `json:"new_password"`
	ConfirmPassword string `json:"confirm_password"`
}

func (s *Server) handleUpdatePassword(w http.ResponseWriter, r *http.Request) {
	claims, ok := ClaimsFromContext(r.Context())
	if !ok {
		writeFail(w, http.StatusUnauthorized, "authorization required", "UNAUTHORIZED")
		return
	}

	var req updatePasswordRequest
	if !decodeBody(w, r, &req) {
		return
	}

	err := s.userUC.UpdatePassword(r.Context(), claims.UID, req.OldPassword, req.NewPassword, req.ConfirmPassword)
	if err != nil {
		writeError(w, err)
		return
	}
	writeOK(w, nil, "Password updated successfully")
}

type activateRequest struct {
	Code string `json:"code"`
}

func (s *Server) handleActivate(w http.ResponseWriter, r *http.Request) {
	claims, ok := ClaimsFromContext(r.Context())
	if !ok {
		writeFail(w, http.StatusUnauthorized, "authorization required", "UNAUTHORIZED")
		return
	}

	var req activateRequest
	if !decodeBody(w, r, &req) {
		return
	}

	if err := s.activateUC.Activate(r.Context(), claims.UID, req.Code); err != nil {
		writeError(w, err)
		return
	}
	writeOK(w, nil, "Account activated successfully")
}

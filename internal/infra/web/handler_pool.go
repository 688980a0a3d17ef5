package web

import (
	"net/http"
)

type getAccountResponse struct {
	Success        bool `json:"success"`
	AccountInfo    any  `json:"account_info"`
	ActivationCode any  `json:"activation_code"`
}

func (s *Server) handleGetAccount(w http.ResponseWriter, r *http.Request) {
	claims, ok := ClaimsFromContext(r.Context())
	if !ok {
		writeFail(w, http.StatusUnauthorized, "authorization required", "UNAUTHORIZED")
		return
	}

	requested := r.URL.Query().Get("account")
	info, err := s.poolUC.GetAccount(r.Context(), claims.UID, requested)
	if err != nil {
		writeError(w, err)
		return
	}
	writeOK(w, getAccountResponse{Success: true, AccountInfo: info}, "")
}

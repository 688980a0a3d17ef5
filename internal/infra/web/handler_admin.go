package web

import (
	"net/http"
	"time"

	"account-pool-service/internal/usecase"
)

type createAccountRequest struct {
	Account  string `json:"account"`
	Password string `json:"password"`
	Token    string `json:"token"`
	Notes    string `json:"notes"`
}

type createAccountResponse struct {
	ID        string    `json:"id"`
	Account   string    `json:"account"`
	Status    int       `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

func (s *Server) handleCreateAccount(w http.ResponseWriter, r *http.Request) {
	var req createAccountRequest
	if !decodeBody(w, r, &req) {
		return
	}

	a, err := s.adminUC.CreateAccount(r.Context(), req.Account, req.Password, req.Token, req.Notes)
	if err != nil {
		writeError(w, err)
		return
	}
	writeOK(w, createAccountResponse{
		ID:        a.ID,
		Account:   a.Account,
		Status:    a.Status,
		CreatedAt: a.CreatedAt,
	}, "Account created successfully")
}

type createActivationCodeRequest struct {
	Code     string `json:"code"`
	Type     string `json:"type"`
	Name     string `json:"name"`
	Level    int    `json:"level"`
	Duration int    `json:"duration"`
	Quota    int    `json:"quota"`
	MaxUses  int    `json:"max_uses"`
	Notes    string `json:"notes"`
}

type createActivationCodeResponse struct {
	ID        string     `json:"id"`
	Code      string     `json:"code"`
	Type      string     `json:"type"`
	Level     int        `json:"level"`
	Duration  int        `json:"duration"`
	Quota     int        `json:"quota"`
	MaxUses   int        `json:"max_uses"`
	Status    int        `json:"status"`
	ExpiredAt *time.Time `json:"expired_at"`
	CreatedAt time.Time  `json:"created_at"`
}

func (s *Server) handleCreateActivationCode(w http.ResponseWriter, r *http.Request) {
	var req createActivationCodeRequest
	if !decodeBody(w, r, &req) {
		return
	}

	ac, err := s.adminUC.CreateActivationCode(r.Context(), usecase.CreateActivationCodeInput{
		Code:     req.Code,
		Type:     req.Type,
		Name:     req.Name,
		Level:    req.Level,
		Duration: req.Duration,
		Quota:    req.Quota,
		MaxUses:  req.MaxUses,
		Notes:    req.Notes,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeOK(w, createActivationCodeResponse{
		ID:        ac.ID,
		Code:      ac.Code,
		Type:      ac.Type,
		Level:     ac.Level,
		Duration:  ac.Duration,
		Quota:     ac.Quota,
		MaxUses:   ac.MaxUses,
		Status:    ac.Status,
		ExpiredAt: ac.ExpiredAt,
		CreatedAt: ac.CreatedAt,
	}, "Activation code created successfully")
}

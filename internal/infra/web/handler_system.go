package web

import (
	"net/http"
	"strconv"

	"account-pool-service/internal/usecase"

	"github.com/go-chi/chi/v5"
)

func (s *Server) handlePublicInfo(w http.ResponseWriter, r *http.Request) {
	ann, err := s.systemUC.PublicInfo(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeOK(w, ann, "")
}

func (s *Server) handleArticleList(w http.ResponseWriter, r *http.Request) {
	page, err := strconv.Atoi(chi.URLParam(r, "page"))
	if err != nil {
		page = 1
	}

	list, err := s.systemUC.Articles(r.Context(), page)
	if err != nil {
		writeError(w, err)
		return
	}
	writeOK(w, list, "")
}

func (s *Server) handleReportBug(w http.ResponseWriter, r *http.Request) {
	var req usecase.BugReportInput
	if !decodeBody(w, r, &req) {
		return
	}

	if err := s.systemUC.ReportBug(r.Context(), req); err != nil {
		writeError(w, err)
		return
	}
	writeOK(w, map[string]string{"message": "Bug report submitted successfully"}, "")
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	writeOK(w, map[string]string{"version": s.systemUC.Version()}, "")
}

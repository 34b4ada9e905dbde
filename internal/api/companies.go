// ABOUTME: Company CRUD handlers
// ABOUTME: Mutations are admin-only; reads are open to any authenticated account

package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/calibra/calibra-api/internal/store"
)

type companyRequest struct {
	Name    string `json:"name"`
	Address string `json:"address"`
}

func (s *Server) handleCreateCompany(w http.ResponseWriter, r *http.Request) {
	var req companyRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		respondError(w, http.StatusBadRequest, "name is required")
		return
	}

	company := &store.Company{
		ID:        uuid.NewString(),
		Name:      strings.TrimSpace(req.Name),
		Address:   strings.TrimSpace(req.Address),
		CreatedAt: time.Now().UTC(),
	}
	if err := s.store.CreateCompany(r.Context(), company); err != nil {
		s.logger.Error("creating company", "error", err)
		respondStoreError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, company)
}

func (s *Server) handleListCompanies(w http.ResponseWriter, r *http.Request) {
	companies, err := s.store.ListCompanies(r.Context())
	if err != nil {
		s.logger.Error("listing companies", "error", err)
		respondStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, companies)
}

func (s *Server) handleGetCompany(w http.ResponseWriter, r *http.Request) {
	company, err := s.store.GetCompany(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		respondStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, company)
}

func (s *Server) handleUpdateCompany(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	company, err := s.store.GetCompany(r.Context(), id)
	if err != nil {
		respondStoreError(w, err)
		return
	}

	var req companyRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		respondError(w, http.StatusBadRequest, "name is required")
		return
	}

	company.Name = strings.TrimSpace(req.Name)
	company.Address = strings.TrimSpace(req.Address)
	if err := s.store.UpdateCompany(r.Context(), company); err != nil {
		s.logger.Error("updating company", "company_id", id, "error", err)
		respondStoreError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, company)
}

func (s *Server) handleDeleteCompany(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if err := s.store.DeleteCompany(r.Context(), id); err != nil {
		respondStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

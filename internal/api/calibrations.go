// ABOUTME: Calibration record CRUD handlers
// ABOUTME: Records are company-scoped; listing supports an optional company filter

package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/calibra/calibra-api/internal/store"
)

type calibrationRequest struct {
	CompanyID    string    `json:"companyId"`
	Instrument   string    `json:"instrument"`
	SerialNumber string    `json:"serialNumber"`
	CalibratedAt time.Time `json:"calibratedAt"`
	DueAt        time.Time `json:"dueAt"`
	Result       string    `json:"result"`
	Notes        string    `json:"notes"`
}

func (req *calibrationRequest) validate() string {
	switch {
	case req.CompanyID == "":
		return "companyId is required"
	case strings.TrimSpace(req.Instrument) == "":
		return "instrument is required"
	case req.CalibratedAt.IsZero():
		return "calibratedAt is required"
	case req.DueAt.IsZero():
		return "dueAt is required"
	case req.DueAt.Before(req.CalibratedAt):
		return "dueAt must not precede calibratedAt"
	}
	return ""
}

func (s *Server) handleCreateCalibration(w http.ResponseWriter, r *http.Request) {
	var req calibrationRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if msg := req.validate(); msg != "" {
		respondError(w, http.StatusBadRequest, msg)
		return
	}

	// The company must exist before records can hang off it
	if _, err := s.store.GetCompany(r.Context(), req.CompanyID); err != nil {
		respondStoreError(w, err)
		return
	}

	cal := &store.Calibration{
		ID:           uuid.NewString(),
		CompanyID:    req.CompanyID,
		Instrument:   strings.TrimSpace(req.Instrument),
		SerialNumber: strings.TrimSpace(req.SerialNumber),
		CalibratedAt: req.CalibratedAt.UTC(),
		DueAt:        req.DueAt.UTC(),
		Result:       req.Result,
		Notes:        req.Notes,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.store.CreateCalibration(r.Context(), cal); err != nil {
		s.logger.Error("creating calibration", "error", err)
		respondStoreError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, cal)
}

func (s *Server) handleListCalibrations(w http.ResponseWriter, r *http.Request) {
	companyID := r.URL.Query().Get("companyId")

	cals, err := s.store.ListCalibrations(r.Context(), companyID)
	if err != nil {
		s.logger.Error("listing calibrations", "error", err)
		respondStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, cals)
}

func (s *Server) handleGetCalibration(w http.ResponseWriter, r *http.Request) {
	cal, err := s.store.GetCalibration(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		respondStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, cal)
}

func (s *Server) handleUpdateCalibration(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	cal, err := s.store.GetCalibration(r.Context(), id)
	if err != nil {
		respondStoreError(w, err)
		return
	}

	var req calibrationRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	// company_id is immutable after creation; reuse the stored one
	req.CompanyID = cal.CompanyID
	if msg := req.validate(); msg != "" {
		respondError(w, http.StatusBadRequest, msg)
		return
	}

	cal.Instrument = strings.TrimSpace(req.Instrument)
	cal.SerialNumber = strings.TrimSpace(req.SerialNumber)
	cal.CalibratedAt = req.CalibratedAt.UTC()
	cal.DueAt = req.DueAt.UTC()
	cal.Result = req.Result
	cal.Notes = req.Notes

	if err := s.store.UpdateCalibration(r.Context(), cal); err != nil {
		s.logger.Error("updating calibration", "calibration_id", id, "error", err)
		respondStoreError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, cal)
}

func (s *Server) handleDeleteCalibration(w http.ResponseWriter, r *http.Request) {
	if err := s.store.DeleteCalibration(r.Context(), mux.Vars(r)["id"]); err != nil {
		respondStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

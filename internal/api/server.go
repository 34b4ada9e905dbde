// ABOUTME: API server assembly: router construction and middleware wiring
// ABOUTME: Mounts public, authenticated, and admin route layers on a gorilla/mux router

package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/calibra/calibra-api/internal/auth"
	"github.com/calibra/calibra-api/internal/blob"
	"github.com/calibra/calibra-api/internal/store"
)

// Server wires the store, attachment presigner, and session machinery into
// an HTTP router.
type Server struct {
	store   store.Store
	blobs   blob.Presigner
	codec   auth.TokenCodec
	cookies *auth.CookieManager
	logger  *slog.Logger
}

// NewServer creates the API server. The presigner may be nil when no object
// storage is configured; attachment endpoints then report the feature as
// unavailable.
func NewServer(st store.Store, blobs blob.Presigner, codec auth.TokenCodec, cookies *auth.CookieManager) *Server {
	return &Server{
		store:   st,
		blobs:   blobs,
		codec:   codec,
		cookies: cookies,
		logger:  slog.Default().With("component", "api"),
	}
}

// Router builds the full route tree.
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)

	auth.NewHandlers(s.store, s.codec, s.cookies).RegisterRoutes(r)

	protected := r.PathPrefix("/api").Subrouter()
	protected.Use(auth.RequireAuth(s.store, s.codec, s.cookies, s.logger))

	adminOnly := auth.RequireRole(store.RoleAdmin, s.logger)

	// Companies: reads for any authenticated account, mutations admin-only
	protected.Handle("/companies", adminOnly(http.HandlerFunc(s.handleCreateCompany))).Methods(http.MethodPost)
	protected.HandleFunc("/companies", s.handleListCompanies).Methods(http.MethodGet)
	protected.HandleFunc("/companies/{id}", s.handleGetCompany).Methods(http.MethodGet)
	protected.Handle("/companies/{id}", adminOnly(http.HandlerFunc(s.handleUpdateCompany))).Methods(http.MethodPut)
	protected.Handle("/companies/{id}", adminOnly(http.HandlerFunc(s.handleDeleteCompany))).Methods(http.MethodDelete)

	// Calibrations
	protected.HandleFunc("/calibrations", s.handleCreateCalibration).Methods(http.MethodPost)
	protected.HandleFunc("/calibrations", s.handleListCalibrations).Methods(http.MethodGet)
	protected.HandleFunc("/calibrations/{id}", s.handleGetCalibration).Methods(http.MethodGet)
	protected.HandleFunc("/calibrations/{id}", s.handleUpdateCalibration).Methods(http.MethodPut)
	protected.HandleFunc("/calibrations/{id}", s.handleDeleteCalibration).Methods(http.MethodDelete)

	// Products and their attachments
	protected.HandleFunc("/products", s.handleCreateProduct).Methods(http.MethodPost)
	protected.HandleFunc("/products", s.handleListProducts).Methods(http.MethodGet)
	protected.HandleFunc("/products/{id}", s.handleGetProduct).Methods(http.MethodGet)
	protected.HandleFunc("/products/{id}", s.handleUpdateProduct).Methods(http.MethodPut)
	protected.HandleFunc("/products/{id}", s.handleDeleteProduct).Methods(http.MethodDelete)
	protected.HandleFunc("/products/{id}/attachment", s.handleCreateProductAttachment).Methods(http.MethodPost)
	protected.HandleFunc("/products/{id}/attachment", s.handleGetProductAttachment).Methods(http.MethodGet)

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// ABOUTME: Product CRUD handlers plus attachment upload/download endpoints
// ABOUTME: Attachments move through presigned URLs; only the storage key is persisted

package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/calibra/calibra-api/internal/store"
)

type productRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (s *Server) handleCreateProduct(w http.ResponseWriter, r *http.Request) {
	var req productRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		respondError(w, http.StatusBadRequest, "name is required")
		return
	}

	product := &store.Product{
		ID:          uuid.NewString(),
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.store.CreateProduct(r.Context(), product); err != nil {
		s.logger.Error("creating product", "error", err)
		respondStoreError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, product)
}

func (s *Server) handleListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := s.store.ListProducts(r.Context())
	if err != nil {
		s.logger.Error("listing products", "error", err)
		respondStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, products)
}

func (s *Server) handleGetProduct(w http.ResponseWriter, r *http.Request) {
	product, err := s.store.GetProduct(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		respondStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, product)
}

func (s *Server) handleUpdateProduct(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	product, err := s.store.GetProduct(r.Context(), id)
	if err != nil {
		respondStoreError(w, err)
		return
	}

	var req productRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		respondError(w, http.StatusBadRequest, "name is required")
		return
	}

	product.Name = strings.TrimSpace(req.Name)
	product.Description = req.Description
	if err := s.store.UpdateProduct(r.Context(), product); err != nil {
		s.logger.Error("updating product", "product_id", id, "error", err)
		respondStoreError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, product)
}

func (s *Server) handleDeleteProduct(w http.ResponseWriter, r *http.Request) {
	if err := s.store.DeleteProduct(r.Context(), mux.Vars(r)["id"]); err != nil {
		respondStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// handleCreateProductAttachment issues a presigned PUT URL and records the
// storage key on the product. The client uploads directly to the bucket.
func (s *Server) handleCreateProductAttachment(w http.ResponseWriter, r *http.Request) {
	if s.blobs == nil {
		respondError(w, http.StatusServiceUnavailable, "attachment storage not configured")
		return
	}

	id := mux.Vars(r)["id"]
	if _, err := s.store.GetProduct(r.Context(), id); err != nil {
		respondStoreError(w, err)
		return
	}

	key, url, err := s.blobs.PresignUpload(r.Context())
	if err != nil {
		s.logger.Error("presigning attachment upload", "product_id", id, "error", err)
		respondError(w, http.StatusInternalServerError, "internal error")
		return
	}

	if err := s.store.SetProductAttachment(r.Context(), id, key); err != nil {
		s.logger.Error("recording attachment key", "product_id", id, "error", err)
		respondStoreError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"uploadUrl": url})
}

// handleGetProductAttachment issues a presigned GET URL for the product's
// attachment, or 404 when none has been uploaded.
func (s *Server) handleGetProductAttachment(w http.ResponseWriter, r *http.Request) {
	if s.blobs == nil {
		respondError(w, http.StatusServiceUnavailable, "attachment storage not configured")
		return
	}

	id := mux.Vars(r)["id"]
	product, err := s.store.GetProduct(r.Context(), id)
	if err != nil {
		respondStoreError(w, err)
		return
	}
	if product.AttachmentKey == "" {
		respondError(w, http.StatusNotFound, "product has no attachment")
		return
	}

	url, err := s.blobs.PresignDownload(r.Context(), product.AttachmentKey)
	if err != nil {
		s.logger.Error("presigning attachment download", "product_id", id, "error", err)
		respondError(w, http.StatusInternalServerError, "internal error")
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"downloadUrl": url})
}

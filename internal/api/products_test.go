// ABOUTME: Tests for product handlers and attachment endpoints
// ABOUTME: Covers CRUD plus presigned upload/download flows with distinct keys

package api

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/calibra/calibra-api/internal/auth"
	"github.com/calibra/calibra-api/internal/store"
)

func createProduct(t *testing.T, ts *testServer, session *http.Cookie, name string) store.Product {
	t.Helper()
	rec := ts.request(t, http.MethodPost, "/api/products", `{"name":"`+name+`"}`, session)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var product store.Product
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &product))
	return product
}

func TestProductCRUD(t *testing.T) {
	ts := newTestServer(t)
	user := ts.sessionFor(t, store.RoleUser)

	created := createProduct(t, ts, user, "Torque Wrench")
	assert.Equal(t, "Torque Wrench", created.Name)

	rec := ts.request(t, http.MethodGet, "/api/products/"+created.ID, "", user)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = ts.request(t, http.MethodPut, "/api/products/"+created.ID,
		`{"name":"Torque Wrench Mk2","description":"recalibrated model"}`, user)
	require.Equal(t, http.StatusOK, rec.Code)
	var updated store.Product
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
	assert.Equal(t, "Torque Wrench Mk2", updated.Name)

	rec = ts.request(t, http.MethodGet, "/api/products", "", user)
	require.Equal(t, http.StatusOK, rec.Code)
	var listed []store.Product
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &listed))
	require.Len(t, listed, 1)

	rec = ts.request(t, http.MethodDelete, "/api/products/"+created.ID, "", user)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = ts.request(t, http.MethodGet, "/api/products/"+created.ID, "", user)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestProductAttachment_UploadThenDownload(t *testing.T) {
	ts := newTestServer(t)
	user := ts.sessionFor(t, store.RoleUser)
	product := createProduct(t, ts, user, "Torque Wrench")

	// No attachment yet
	rec := ts.request(t, http.MethodGet, "/api/products/"+product.ID+"/attachment", "", user)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	// Request an upload URL
	rec = ts.request(t, http.MethodPost, "/api/products/"+product.ID+"/attachment", "", user)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var upload struct {
		UploadURL string `json:"uploadUrl"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &upload))
	assert.Contains(t, upload.UploadURL, "https://bucket.test/put/")

	// The key was recorded, so a download URL is now available
	rec = ts.request(t, http.MethodGet, "/api/products/"+product.ID+"/attachment", "", user)
	require.Equal(t, http.StatusOK, rec.Code)
	var download struct {
		DownloadURL string `json:"downloadUrl"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &download))
	assert.Contains(t, download.DownloadURL, "https://bucket.test/get/products/test/")
}

func TestProductAttachment_DistinctKeysPerUpload(t *testing.T) {
	ts := newTestServer(t)
	user := ts.sessionFor(t, store.RoleUser)
	first := createProduct(t, ts, user, "Wrench A")
	second := createProduct(t, ts, user, "Wrench B")

	for _, p := range []store.Product{first, second} {
		rec := ts.request(t, http.MethodPost, "/api/products/"+p.ID+"/attachment", "", user)
		require.Equal(t, http.StatusOK, rec.Code)
	}

	a, err := ts.store.GetProduct(context.Background(), first.ID)
	require.NoError(t, err)
	b, err := ts.store.GetProduct(context.Background(), second.ID)
	require.NoError(t, err)
	assert.NotEmpty(t, a.AttachmentKey)
	assert.NotEqual(t, a.AttachmentKey, b.AttachmentKey)
}

func TestProductAttachment_UnknownProduct(t *testing.T) {
	ts := newTestServer(t)
	user := ts.sessionFor(t, store.RoleUser)

	rec := ts.request(t, http.MethodPost, "/api/products/missing/attachment", "", user)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestProductAttachment_StorageNotConfigured(t *testing.T) {
	ts := newTestServer(t)
	user := ts.sessionFor(t, store.RoleUser)
	product := createProduct(t, ts, user, "Torque Wrench")

	// Rebuild the router without a presigner
	bare := NewServer(ts.store, nil, ts.codec, auth.NewCookieManager("session", time.Hour, false))
	ts.router = bare.Router()

	rec := ts.request(t, http.MethodPost, "/api/products/"+product.ID+"/attachment", "", user)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

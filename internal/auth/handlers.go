// ABOUTME: Auth HTTP endpoints: signup, login, logout, and whoami
// ABOUTME: Orchestrates credential store, token codec, and cookie manager to run sessions

package auth

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"golang.org/x/crypto/bcrypt"

	"github.com/calibra/calibra-api/internal/store"
)

// dummyHash is a bcrypt hash compared against when the email is unknown,
// keeping login timing constant so valid emails cannot be enumerated.
const dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// AccountStore is the store dependency of the auth endpoints.
type AccountStore interface {
	CreateAccount(ctx context.Context, account *store.Account) error
	GetAccountByID(ctx context.Context, id string) (*store.Account, error)
	GetAccountByEmail(ctx context.Context, email string) (*store.Account, error)
}

// Handlers implements the auth HTTP endpoints.
type Handlers struct {
	accounts AccountStore
	codec    TokenCodec
	cookies  *CookieManager
	logger   *slog.Logger
}

// NewHandlers creates the auth endpoint handlers.
func NewHandlers(accounts AccountStore, codec TokenCodec, cookies *CookieManager) *Handlers {
	return &Handlers{
		accounts: accounts,
		codec:    codec,
		cookies:  cookies,
		logger:   slog.Default().With("component", "auth"),
	}
}

// RegisterRoutes registers the auth routes on the given router.
func (h *Handlers) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/auth/signup", h.handleSignup).Methods(http.MethodPost)
	r.HandleFunc("/auth/login", h.handleLogin).Methods(http.MethodPost)
	r.HandleFunc("/auth/logout", h.handleLogout).Methods(http.MethodPost)

	me := OptionalAuth(h.accounts, h.codec, h.cookies)
	r.Handle("/auth/me", me(http.HandlerFunc(h.handleMe))).Methods(http.MethodGet)
}

type signupRequest struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
	Mobile   string `json:"mobile"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// safeProjection returns the account with credential material removed, fit
// for any response payload.
func safeProjection(account *store.Account) *store.Account {
	safe := *account
	safe.PasswordHash = ""
	return &safe
}

// handleSignup creates a new account from email, username, password, and mobile.
func (h *Handlers) handleSignup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Email == "" || req.Username == "" || req.Password == "" || req.Mobile == "" {
		writeError(w, http.StatusBadRequest, "email, username, password and mobile are required")
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		h.logger.Error("failed to hash password", "error", err)
		writeError(w, http.StatusInternalServerError, "an error occurred")
		return
	}

	account := &store.Account{
		ID:           uuid.NewString(),
		Email:        email,
		Username:     req.Username,
		PasswordHash: string(hash),
		Mobile:       req.Mobile,
		Role:         store.RoleUser,
		CreatedAt:    time.Now().UTC(),
	}

	if err := h.accounts.CreateAccount(r.Context(), account); err != nil {
		if errors.Is(err, store.ErrEmailExists) {
			writeError(w, http.StatusBadRequest, "email already registered")
			return
		}
		h.logger.Error("failed to create account", "error", err)
		writeError(w, http.StatusInternalServerError, "an error occurred")
		return
	}

	h.logger.Info("account created", "id", account.ID, "email", account.Email)
	writeJSON(w, http.StatusCreated, safeProjection(account))
}

// handleLogin verifies credentials and establishes a session. Unknown email
// and wrong password produce the same response so the endpoint cannot be
// used to enumerate registered emails.
func (h *Handlers) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "email and password are required")
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	account, err := h.accounts.GetAccountByEmail(r.Context(), email)
	if err != nil {
		if errors.Is(err, store.ErrAccountNotFound) {
			// Dummy bcrypt comparison to keep timing constant
			_ = bcrypt.CompareHashAndPassword([]byte(dummyHash), []byte(req.Password))
			writeError(w, http.StatusUnauthorized, "invalid credentials")
			return
		}
		h.logger.Error("failed to look up account", "error", err)
		writeError(w, http.StatusInternalServerError, "an error occurred")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(req.Password)); err != nil {
		writeError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	token, err := h.codec.Issue(account.ID, account.Role, account.Username)
	if err != nil {
		h.logger.Error("failed to issue token", "error", err)
		writeError(w, http.StatusInternalServerError, "an error occurred")
		return
	}

	h.cookies.Write(w, token)
	h.logger.Info("login successful", "id", account.ID, "email", account.Email)
	writeJSON(w, http.StatusOK, safeProjection(account))
}

// handleLogout clears the session cookie. Always succeeds, with or without
// an existing session.
func (h *Handlers) handleLogout(w http.ResponseWriter, r *http.Request) {
	h.cookies.Clear(w)
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// handleMe reports the current principal, or null when no valid session is
// present. Clients poll this to render UI state, so an absent session is a
// success, not an error.
func (h *Handlers) handleMe(w http.ResponseWriter, r *http.Request) {
	principal := FromContext(r.Context())
	if principal == nil {
		writeJSON(w, http.StatusOK, map[string]any{"user": nil})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"user": safeProjection(principal)})
}
